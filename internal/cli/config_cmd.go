package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	var paths bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and where each value comes from",
		Args:  exactArgs(0, "config [--paths]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if paths {
				ui.Println(config.SearchPaths()...)
				return nil
			}
			ui.Println(a.cfg.String())
			if len(a.cfg.Files) == 0 {
				ui.Println(ui.Current().Muted.Render("no config files found"))
				return nil
			}
			ui.Println(ui.Current().Muted.Render("files:"))
			ui.Println(a.cfg.Files...)
			return nil
		},
	}
	cmd.Flags().BoolVar(&paths, "paths", false, "list the files that are looked for")
	return cmd
}
