package commands

import (
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := rootCmd
	if cmd.Use != "voicechat [message]" {
		t.Errorf("Expected use 'voicechat [message]', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestRootCommand_Args(t *testing.T) {
	if rootCmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	persistentFlags := []string{"endpoint", "timeout"}
	for _, flagName := range persistentFlags {
		t.Run(flagName+" flag (persistent)", func(t *testing.T) {
			if rootCmd.PersistentFlags().Lookup(flagName) == nil {
				t.Errorf("PersistentFlag %s not found", flagName)
			}
		})
	}

	localFlags := []string{"output", "file", "version"}
	for _, flagName := range localFlags {
		t.Run(flagName+" flag", func(t *testing.T) {
			if rootCmd.Flags().Lookup(flagName) == nil {
				t.Errorf("Flag %s not found", flagName)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	expectedSubcommands := []string{"chat", "say", "devices", "config", "history"}

	for _, sub := range expectedSubcommands {
		t.Run("subcommand "+sub, func(t *testing.T) {
			found := false
			for _, cmd := range rootCmd.Commands() {
				if cmd.Name() == sub {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Subcommand %s not found", sub)
			}
		})
	}
}
