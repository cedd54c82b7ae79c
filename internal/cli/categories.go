package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/api"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat", "categories"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(
		newCategoryListCmd(a),
		newCategoryAddCmd(a),
		newCategoryShowCmd(a),
		newCategoryEditCmd(a),
		newCategoryRemoveCmd(a),
	)
	return cmd
}

func newCategoryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List categories with their todo counts",
		Args:  exactArgs(0, "category ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.fetchCategories(cmd.Context()); err != nil {
				return err
			}
			if err := a.fetchTodos(cmd.Context()); err != nil {
				return err
			}
			cats := a.cats.Items()
			lines := []string{ui.Current().Title.Render(fmt.Sprintf("Categories (%d)", len(cats))), ""}
			if len(cats) == 0 {
				lines = append(lines, ui.Current().Muted.Render("no categories"))
			}
			for _, c := range cats {
				lines = append(lines, categoryLine(c, len(a.todos.ByCategory(c.ID))))
			}
			ui.Println(ui.Panel(lines))
			return nil
		},
	}
}

func newCategoryAddCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a category",
		Args:  minArgs(1, "category add <name...> [-d description]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return usagef("category add: empty name")
			}
			c, err := a.cats.Create(cmd.Context(), model.CategoryCreate{Name: name, Description: description})
			if err != nil {
				return fmt.Errorf("category add: %w", err)
			}
			ui.OK(fmt.Sprintf("added category #%d", c.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	return cmd
}

func newCategoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a category and its todos",
		Args:  exactArgs(1, "category show <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := api.Categories(a.client).Get(cmd.Context(), id)
			if err != nil {
				return notFound("category", id, err)
			}
			if err := a.fetchTodos(cmd.Context()); err != nil {
				return err
			}
			todos := a.todos.ByCategory(id)
			lines := []string{categoryLine(c, len(todos)), ""}
			lines = append(lines, flatLines(todos)...)
			ui.Println(ui.Panel(lines))
			return nil
		},
	}
}

func newCategoryEditCmd(a *app) *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a category",
		Args:  exactArgs(1, "category edit <id> [--name N] [--description D]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch model.CategoryUpdate
			if cmd.Flags().Changed("name") {
				if strings.TrimSpace(name) == "" {
					return usagef("category edit: empty name")
				}
				patch.Name = model.Ptr(strings.TrimSpace(name))
			}
			if cmd.Flags().Changed("description") {
				patch.Description = model.Ptr(description)
			}
			if patch == (model.CategoryUpdate{}) {
				return usagef("category edit: nothing to change")
			}
			if err := a.fetchCategories(cmd.Context()); err != nil {
				return err
			}
			c, err := a.cats.Update(cmd.Context(), id, patch)
			if err != nil {
				return notFound("category", id, err)
			}
			ui.OK("updated")
			ui.Println(fmt.Sprintf("#%d %s", c.ID, c.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}

func newCategoryRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a category",
		Args:    exactArgs(1, "category rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.cats.Delete(cmd.Context(), id); err != nil {
				return notFound("category", id, err)
			}
			ui.OK(fmt.Sprintf("removed category #%d", id))
			return nil
		},
	}
}
