package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/voicechat/internal/config"
	"github.com/diogo/voicechat/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long:  `Show the active configuration, or change a setting with 'config set'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration setting",
	Long: `Change a configuration setting and save it.

Keys:
  endpoint         Chat endpoint of the voice backend
  timeout          Per-turn request timeout in seconds
  autoplay         Play reply audio automatically (true/false)
  sample-rate      Recording sample rate in Hz
  verbose          Verbose diagnostics (true/false)
  clipboard        Copy replies to the clipboard (true/false)
  theme            TUI color theme (` + strings.Join(render.TUIThemeNames(), ", ") + `)
  save-history     Save conversations to disk (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Warning: %v (showing defaults)\n\n", err)
	}

	fmt.Printf("endpoint:      %s\n", cfg.Endpoint)
	fmt.Printf("timeout:       %ds\n", cfg.RequestTimeout)
	fmt.Printf("autoplay:      %t\n", cfg.Autoplay)
	fmt.Printf("sample-rate:   %d Hz\n", cfg.SampleRate)
	fmt.Printf("verbose:       %t\n", cfg.Verbose)
	fmt.Printf("clipboard:     %t\n", cfg.CopyToClipboard)
	fmt.Printf("theme:         %s\n", cfg.TUITheme)
	fmt.Printf("save-history:  %t\n", cfg.SaveHistory)
	return nil
}

func runConfigSet(key, value string) error {
	cfg, _ := config.LoadConfig()

	switch key {
	case "endpoint":
		cfg.Endpoint = value
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout must be a positive number of seconds")
		}
		cfg.RequestTimeout = n
	case "autoplay":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("autoplay must be true or false")
		}
		cfg.Autoplay = b
	case "sample-rate":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("sample-rate must be a positive number")
		}
		cfg.SampleRate = n
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false")
		}
		cfg.Verbose = b
	case "clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("clipboard must be true or false")
		}
		cfg.CopyToClipboard = b
	case "theme":
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", value, strings.Join(render.TUIThemeNames(), ", "))
		}
		cfg.TUITheme = value
	case "save-history":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("save-history must be true or false")
		}
		cfg.SaveHistory = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Saved %s\n", key)
	return nil
}
