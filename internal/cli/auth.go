package cli

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/auth"
	"github.com/idilsaglam/todolist/internal/ui"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API token",
	}
	cmd.AddCommand(newLoginCmd(), newLogoutCmd(), newStatusCmd(), newWhoAmICmd())
	return cmd
}

func newLoginCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a token to ~/.todolist/credentials.json",
		Args:  exactArgs(0, "auth login [--token T]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("token") {
				fmt.Fprint(cmd.OutOrStdout(), "Paste your token: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read token: %w", err)
				}
				token = line
			}
			ti, err := auth.SetToken(token)
			if err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			ui.OK("logged in")
			if ti.Expired(time.Now()) {
				ui.Fail("this token is already expired")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token to save instead of prompting")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the saved token",
		Args:  exactArgs(0, "auth logout"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ti, err := auth.GetToken(); err == nil && ti.Source == auth.SourceEnv {
				ui.OK("token is provided by " + auth.EnvToken + " (nothing to delete)")
				return nil
			}
			if err := auth.DeleteToken(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK("logged out")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the token comes from and when it expires",
		Args:  exactArgs(0, "auth status"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := auth.GetToken()
			if errors.Is(err, auth.ErrNoToken) {
				ui.Println(ui.Current().Muted.Render("not logged in"), "Run: todolist auth login")
				return nil
			}
			if err != nil {
				return err
			}
			lines := []string{"source:  " + ti.Source}
			switch {
			case ti.ExpiresAt == nil:
				lines = append(lines, "expires: (unknown)")
			case ti.Expired(time.Now()):
				lines = append(lines, "expires: "+ui.Current().Error.Render(ti.ExpiresAt.Format(time.RFC3339)+" (expired)"))
			default:
				lines = append(lines, "expires: "+ti.ExpiresAt.Format(time.RFC3339))
			}
			lines = append(lines, "env override: "+auth.EnvToken)
			ui.Println(lines...)
			return nil
		},
	}
}

// whoami reads the JWT payload locally; opaque tokens only show their source.
func newWhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the claims of the current token",
		Args:  exactArgs(0, "auth whoami"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := auth.GetToken()
			if errors.Is(err, auth.ErrNoToken) {
				return usagef("not logged in. Run: todolist auth login")
			}
			if err != nil {
				return err
			}
			c, err := auth.Inspect(ti.Token)
			if err != nil {
				ui.Println("Opaque token (cannot introspect locally).", "source: "+ti.Source)
				return nil
			}
			keys := make([]string, 0, len(c.Raw))
			for k := range c.Raw {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			lines := []string{ui.Current().Title.Render("JWT claims")}
			for _, k := range keys {
				lines = append(lines, fmt.Sprintf("%-6s %v", k+":", c.Raw[k]))
			}
			if c.Subject != "" {
				lines = append(lines, "", "subject: "+c.Subject)
			}
			ui.Println(ui.Panel(lines))
			return nil
		},
	}
}
