package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/tui"
)

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Interactive list (space toggle, a add, e edit, d delete, r refresh, / filter, q quit)",
		Args:  exactArgs(0, "ui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), a.todos, a.cats)
		},
	}
}
