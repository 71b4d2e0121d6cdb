package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"wayfarer/internal/config"
	"wayfarer/internal/tui"
	"wayfarer/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so themes render the same across terminals.
	lipgloss.SetColorProfile(termenv.TrueColor)

	svcs, err := newServices()
	if err != nil {
		return err
	}
	defer svcs.Close()

	if err := svcs.requireAuth(); err != nil {
		return err
	}

	app := tui.NewApp(svcs.trips, svcs.sessions.CurrentUser())
	model, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	if a, ok := model.(tui.App); ok && a.Fatal() != "" {
		return errors.New(a.Fatal())
	}
	return nil
}
