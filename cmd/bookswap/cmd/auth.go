package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	apiclient "github.com/NikhilTirunagiri/GMUBookSwap/internal/api/client"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/session"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, log in, and manage the stored session",
	}

	cmd.AddCommand(authSignupCmd())
	cmd.AddCommand(authLoginCmd())
	cmd.AddCommand(authLogoutCmd())
	cmd.AddCommand(authWhoamiCmd())
	cmd.AddCommand(authRefreshCmd())

	return cmd
}

func authSignupCmd() *cobra.Command {
	var (
		email    string
		fullName string
		password string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new BookSwap account",
		Long:  "Registers an account with the identity service. Signup does not log you in; confirm your email and then run bookswap auth login.",
		Example: `  bookswap auth signup --email jdoe@gmu.edu --name "Jane Doe"
  bookswap auth signup --email jdoe@gmu.edu --name "Jane Doe" --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			m := newManager()
			resp, err := m.SignUp(context.Background(), &apiclient.SignupRequest{
				Email:    email,
				Password: password,
				FullName: fullName,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			fmt.Println(resp.Message)
			if !resp.EmailConfirmed {
				fmt.Println("Check your inbox for a confirmation link, then run: bookswap auth login")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&fullName, "name", "", "full name shown on your listings")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")

	return cmd
}

func authLoginCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Example: `  bookswap auth login --email jdoe@gmu.edu
  bookswap auth login --email jdoe@gmu.edu --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			m := newManager()
			resp, err := m.Login(context.Background(), email, password)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if resp.FullName != "" {
				fmt.Printf("Logged in as %s <%s>.\n", resp.FullName, resp.Email)
			} else {
				fmt.Printf("Logged in as %s.\n", resp.Email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")

	return cmd
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager()
			if err := m.Logout(context.Background()); err != nil {
				// The local session is gone either way.
				fmt.Fprintln(os.Stderr, "Local session cleared.")
				return fmt.Errorf("revoking session: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func authWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager()
			u, err := m.CurrentUser(context.Background())
			if err != nil {
				if errors.Is(err, apiclient.ErrUnauthorized) {
					return fmt.Errorf("not logged in, run: bookswap auth login")
				}
				return err
			}

			if jsonOutput() {
				return outputJSON(u)
			}
			return printUserDetail(u)
		},
	}
}

func authRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rotate the stored session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newManager()
			pair, err := m.Refresh(context.Background())
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					return fmt.Errorf("not logged in, run: bookswap auth login")
				}
				return fmt.Errorf("refreshing session: %w", err)
			}

			if jsonOutput() {
				return outputJSON(pair)
			}

			fmt.Printf("Session refreshed, next expiry in %ds.\n", pair.ExpiresIn)
			return nil
		},
	}
}

// promptPassword reads a password from the terminal with echo off.
func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
