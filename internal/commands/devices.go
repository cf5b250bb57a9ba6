package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/voicechat/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input and output devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDevices()
	},
}

func runDevices() error {
	// NewRecorder initializes the audio host that ListDevices needs
	recorder, err := audio.NewRecorder(0)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Audio host unavailable"))
		return fmt.Errorf("audio host unavailable: %w", err)
	}
	defer recorder.Close()

	devices, err := audio.ListDevices()
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No audio devices found.")
		return nil
	}

	nameStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)
	markStyle := lipgloss.NewStyle().Foreground(colorSuccess)

	fmt.Printf("Found %d audio devices:\n\n", len(devices))
	for i, d := range devices {
		var tags []string
		if d.MaxInputs > 0 {
			tags = append(tags, fmt.Sprintf("in:%d", d.MaxInputs))
		}
		if d.MaxOutputs > 0 {
			tags = append(tags, fmt.Sprintf("out:%d", d.MaxOutputs))
		}
		if d.DefaultInput {
			tags = append(tags, markStyle.Render("default input"))
		}
		if d.DefaultOutput {
			tags = append(tags, markStyle.Render("default output"))
		}

		fmt.Printf("  %2d. %s %s\n", i+1,
			nameStyle.Render(d.Name),
			dimStyle.Render("("+strings.Join(tags, ", ")+")"))
	}

	return nil
}
