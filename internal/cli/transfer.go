package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

func snapshotPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return store.DefaultSnapshotFile
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every todo to a JSON file (default " + store.DefaultSnapshotFile + ")",
		Args:  maxArgs(1, "export [file]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := snapshotPath(args)
			if err := a.fetchTodos(cmd.Context()); err != nil {
				return err
			}
			items := a.todos.Items()
			if err := store.SaveSnapshot(path, items); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			ui.OK(fmt.Sprintf("exported %d todos to %s", len(items), path))
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Create todos from a JSON file written by export",
		Long: `Create todos from a JSON file written by export.

Every entry is created anew, so the server assigns fresh ids. Categories are
referenced by id and must already exist.`,
		Args: maxArgs(1, "import [file]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := snapshotPath(args)
			items, err := store.LoadSnapshot[model.Todo](path)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			n, err := a.todos.Import(cmd.Context(), items)
			if err != nil {
				return fmt.Errorf("imported %d of %d: %w", n, len(items), err)
			}
			ui.OK(fmt.Sprintf("imported %d todos from %s", n, path))
			return nil
		},
	}
}
