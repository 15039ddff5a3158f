package cli

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gqtodo/gqtodo/internal/session"
	"github.com/gqtodo/gqtodo/internal/ui"
)

func newSignupCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if name = prompt("Name", name); name == "" {
				return fmt.Errorf("name is required")
			}
			if email = prompt("Email", email); email == "" {
				return fmt.Errorf("email is required")
			}
			if password = prompt("Password", password); password == "" {
				return fmt.Errorf("password is required")
			}
			token, err := a.client.Signup(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			if err := a.sess.Set(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			ui.OK("signed up and logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if email = prompt("Email", email); email == "" {
				return fmt.Errorf("email is required")
			}
			if password = prompt("Password", password); password == "" {
				return fmt.Errorf("password is required")
			}
			token, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.sess.Set(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			ui.OK("logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if a.sess.EnvSourced() {
				ui.OK("token is provided by " + session.EnvToken + " (nothing to delete)")
				return nil
			}
			if err := a.sess.Set(""); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK("logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show session state and token details",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ti, err := a.sess.Info()
			if err != nil {
				return err
			}
			if ti == nil {
				ui.Muted("not logged in")
				fmt.Println("Run: gqtodo login")
				return nil
			}
			fmt.Printf("source: %s\n", ti.Source)
			if ti.Source == "file" {
				fmt.Printf("created: %s\n", ti.CreatedAt.UTC().Format(time.RFC3339))
			}
			fmt.Println("env override: " + session.EnvToken)

			// tokens are opaque to this client, but a JWT payload can be
			// decoded locally (unsigned, informational only)
			if payload, ok := jwtPayload(ti.Token); ok {
				fmt.Println("JWT payload:")
				fmt.Println(payload)
			} else {
				fmt.Println("Opaque token (cannot introspect locally).")
			}
			return nil
		},
	}
}

func jwtPayload(token string) (string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", false
	}
	p, err := decodeB64URL(parts[1])
	if err != nil {
		return "", false
	}
	return p, true
}

func decodeB64URL(s string) (string, error) {
	dec, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		dec2, err2 := base64.URLEncoding.DecodeString(s)
		if err2 != nil {
			return "", err
		}
		return string(dec2), nil
	}
	return string(dec), nil
}

// stdin is shared so consecutive prompts don't lose buffered lines.
var stdin = bufio.NewReader(os.Stdin)

// prompt returns val when already set (from a flag), otherwise reads one
// line from stdin.
func prompt(label, val string) string {
	if val != "" {
		return val
	}
	fmt.Printf("%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
