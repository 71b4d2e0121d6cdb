package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagEmail    string
	flagPassword string
	flagName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a session token",
	RunE:  runLogin,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE:  runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&flagPassword, "password", "", "Account password (prompted if omitted)")
	signupCmd.Flags().StringVar(&flagName, "name", "", "Display name")
	signupCmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&flagPassword, "password", "", "Account password (prompted if omitted)")
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}

// promptCredentials fills in whatever login/signup fields the flags left
// empty. name is only prompted when withName is set.
func promptCredentials(withName bool) error {
	var fields []huh.Field
	if withName && flagName == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(&flagName).
			Validate(nonEmpty("name")))
	}
	if flagEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&flagEmail).
			Validate(nonEmpty("email")))
	}
	if flagPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").
			EchoMode(huh.EchoModePassword).Value(&flagPassword).
			Validate(nonEmpty("password")))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func runLogin(_ *cobra.Command, _ []string) error {
	if err := promptCredentials(false); err != nil {
		return err
	}

	svcs, err := newServices()
	if err != nil {
		return err
	}
	defer svcs.Close()

	ctx, cancel := opContext()
	defer cancel()

	u, err := svcs.auth.Login(ctx, strings.TrimSpace(flagEmail), flagPassword)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Logged in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func runSignup(_ *cobra.Command, _ []string) error {
	if err := promptCredentials(true); err != nil {
		return err
	}

	svcs, err := newServices()
	if err != nil {
		return err
	}
	defer svcs.Close()

	ctx, cancel := opContext()
	defer cancel()

	u, err := svcs.auth.Signup(ctx, strings.TrimSpace(flagName), strings.TrimSpace(flagEmail), flagPassword)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Account created for %s — run `wayfarer login` to start a session.\n", u.Email)
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	svcs, err := newServices()
	if err != nil {
		return err
	}
	defer svcs.Close()

	if err := svcs.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(_ *cobra.Command, _ []string) error {
	svcs, err := newServices()
	if err != nil {
		return err
	}
	defer svcs.Close()

	if err := svcs.requireAuth(); err != nil {
		return err
	}

	// The cached profile is the source of truth here; fall back to the API
	// only when the token outlived the cached user record.
	u := svcs.sessions.CurrentUser()
	if u == nil {
		ctx, cancel := opContext()
		defer cancel()
		fetched, err := svcs.auth.Profile(ctx)
		if err != nil {
			return friendly(err)
		}
		u = fetched
	}
	fmt.Printf("%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	return nil
}
