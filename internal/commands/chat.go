package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/voicechat/internal/api"
	"github.com/diogo/voicechat/internal/audio"
	"github.com/diogo/voicechat/internal/config"
	"github.com/diogo/voicechat/internal/history"
	"github.com/diogo/voicechat/internal/render"
	"github.com/diogo/voicechat/internal/session"
	"github.com/diogo/voicechat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive voice chat session",
	Long: `Start an interactive voice chat session.

Press Ctrl+R to start and stop recording, or type a message and press
Enter. The spoken reply plays automatically when an output device is
available. Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, _ := config.LoadConfig()

	if cfg.TUITheme != "" {
		if render.SetTUITheme(cfg.TUITheme) {
			tui.UpdateTheme()
		}
	}

	endpoint := getEndpoint(cfg)

	client, err := api.NewClient(
		api.WithEndpoint(endpoint),
		api.WithTimeout(time.Duration(getTimeoutSeconds(cfg))*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	// Open the microphone with animation
	spin := newSpinner("Opening microphone")
	spin.start()
	recorder, err := audio.NewRecorder(cfg.SampleRate)
	if err != nil {
		spin.stopWithError()
		client.Close()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to open microphone"))
		return fmt.Errorf("failed to open microphone: %w", err)
	}
	spin.stopWithSuccess("Microphone ready")

	sessionOpts := []session.Option{}
	if cfg.Autoplay {
		sessionOpts = append(sessionOpts, session.WithPlayer(audio.NewPlayer(audio.NewOutputEngine())))
	}

	controller := session.NewController(client, recorder, sessionOpts...)
	defer controller.Close()

	if cfg.SaveHistory {
		store, err := history.DefaultStore()
		if err == nil {
			conv, err := store.CreateConversation(endpoint)
			if err == nil {
				return tui.RunWithConversation(controller, endpoint, conv, store)
			}
		}
		// History failures never block the chat itself
		fmt.Fprintln(os.Stderr, "Warning: history is unavailable, the session will not be saved")
	}

	return tui.Run(controller, endpoint)
}
