// Package commands provides CLI commands for voicechat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/voicechat/internal/config"
)

var (
	// Global flags
	endpointFlag string
	timeoutFlag  int
	outputFlag   string
	fileFlag     string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "voicechat [message]",
	Short: "Voice chat client for a local speech backend",
	Long: `voicechat is a terminal client for a voice chat backend. It records
from the microphone, sends the audio for recognition and reply
generation, and plays the spoken reply.

Examples:
  voicechat chat                        Start the interactive voice chat
  voicechat "What is Go?"               Send a single typed message
  voicechat -f prompt.md                Read the message from a file
  cat prompt.md | voicechat             Read the message from stdin
  voicechat say recording.wav           Send a recorded WAV file
  voicechat devices                     List audio devices`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("voicechat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), !isStdoutTTY())
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), !isStdoutTTY())
		}

		if len(args) > 0 {
			return runQuery(args[0], !isStdoutTTY())
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Chat endpoint of the voice backend")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Per-turn request timeout in seconds")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the reply text to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the message from file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
}

// getEndpoint returns the endpoint to use (from flag or config)
func getEndpoint(cfg config.Config) string {
	if endpointFlag != "" {
		return endpointFlag
	}
	return cfg.Endpoint
}

// getTimeoutSeconds returns the request timeout to use (from flag or config)
func getTimeoutSeconds(cfg config.Config) int {
	if timeoutFlag > 0 {
		return timeoutFlag
	}
	return cfg.RequestTimeout
}
