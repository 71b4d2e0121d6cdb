// Package cmd implements the wayfarer CLI commands.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wayfarer/internal/api"
	"wayfarer/internal/auth"
	"wayfarer/internal/config"
	"wayfarer/internal/logging"
	"wayfarer/internal/session"
	"wayfarer/internal/trips"
)

const opTimeout = 30 * time.Second

var (
	flagAPIURL  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wayfarer",
	Short: "Travel planning from your terminal",
	Long:  "Plan trips, city stops, and activities against a wayfarer server,\nand watch the budget add up as you go.",
	RunE:  runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logging.SetupWithLevel(slog.LevelDebug)
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// services bundles the session store and the two service layers every
// command needs.
type services struct {
	sessions *session.Store
	auth     *auth.Service
	trips    *trips.Service
}

func newServices() (*services, error) {
	cfg, _ := config.Load()

	store, err := session.Open(session.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	baseURL := flagAPIURL
	if baseURL == "" {
		baseURL = config.BaseURL(cfg)
	}

	client := api.NewClient(baseURL, store.Token)
	return &services{
		sessions: store,
		auth:     auth.NewService(client, store),
		trips:    trips.NewService(client),
	}, nil
}

func (s *services) Close() {
	_ = s.sessions.Close()
}

// requireAuth fails fast when no usable session is stored, the CLI
// equivalent of the redirect to the login screen.
func (s *services) requireAuth() error {
	if !s.sessions.IsAuthenticated() {
		return errors.New("not logged in — run `wayfarer login`")
	}
	return nil
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// confirm prompts y/N on stdin. Declining is the default.
func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

// friendly rewrites gateway errors for terminal display.
func friendly(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return errors.New("session expired or invalid — run `wayfarer login`")
	case errors.Is(err, api.ErrNotFound):
		return errors.New("not found")
	}
	if detail := api.Detail(err); detail != "" {
		return errors.New(detail)
	}
	return err
}
