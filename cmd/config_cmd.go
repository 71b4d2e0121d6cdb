package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wayfarer/internal/config"
	"wayfarer/internal/tui/theme"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

var configThemeCmd = &cobra.Command{
	Use:   "theme <name>",
	Short: "Set the TUI theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigTheme,
}

func init() {
	configCmd.AddCommand(configInitCmd, configThemeCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("config file: %s", config.Path())
	if !config.Exists() {
		fmt.Print(" (not created; using defaults)")
	}
	fmt.Println()
	fmt.Printf("api base url: %s\n", config.BaseURL(cfg))
	fmt.Printf("theme: %s\n", cfg.Appearance.Theme)
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		return fmt.Errorf("config already exists at %s", config.Path())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", config.Path())
	return nil
}

func runConfigTheme(_ *cobra.Command, args []string) error {
	name := args[0]
	found := false
	for _, t := range theme.All {
		if t.Name == name {
			found = true
			break
		}
	}
	if !found {
		names := make([]string, len(theme.All))
		for i, t := range theme.All {
			names[i] = t.Name
		}
		return fmt.Errorf("unknown theme %q (available: %v)", name, names)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Appearance.Theme = name
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", name)
	return nil
}
