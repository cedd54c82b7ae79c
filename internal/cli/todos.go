package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/api"
	"github.com/idilsaglam/todolist/internal/apiclient"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

func newListCmd(a *app) *cobra.Command {
	var (
		group    bool
		category int64
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    exactArgs(0, "ls [--group] [--category ID]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("group") {
				group = a.cfg.Group
			}
			if err := a.fetchTodos(cmd.Context()); err != nil {
				return err
			}
			todos := a.todos.Items()
			title := "Todos"
			if category != 0 {
				todos = a.todos.ByCategory(category)
				title = fmt.Sprintf("Todos in category #%d", category)
			}
			ui.Println(ui.Panel(listLines(title, todos, group)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group by pending/done")
	cmd.Flags().Int64Var(&category, "category", 0, "only todos in this category")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var (
		description string
		categories  []int64
		done        bool
	)
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (the title can be several words)",
		Args:  minArgs(1, "add <title...> [-d description] [-c categoryID]... [--done]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usagef("add: empty title")
			}
			payload := model.TodoCreate{
				Title:       title,
				Description: description,
				Categories:  model.Refs(categories...),
			}
			if cmd.Flags().Changed("done") {
				payload.Completed = model.Ptr(done)
			}
			created, err := a.todos.Create(cmd.Context(), payload)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			ui.OK(fmt.Sprintf("added #%d", created.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().Int64SliceVarP(&categories, "category", "c", nil, "category id (repeatable)")
	cmd.Flags().BoolVar(&done, "done", false, "create it already completed")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one todo",
		Args:  exactArgs(1, "show <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			td, err := api.Todos(a.client).Get(cmd.Context(), id)
			if err != nil {
				return notFound("todo", id, err)
			}
			ui.Println(ui.Panel(todoDetail(td)))
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var (
		title, description string
		categories         []int64
		clearCategories    bool
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a todo",
		Args:  exactArgs(1, "edit <id> [--title T] [--description D] [--category ID]... [--clear-categories]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch model.TodoUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				if strings.TrimSpace(title) == "" {
					return usagef("edit: empty title")
				}
				patch.Title = model.Ptr(strings.TrimSpace(title))
			}
			if flags.Changed("description") {
				patch.Description = model.Ptr(description)
			}
			switch {
			case clearCategories && flags.Changed("category"):
				return usagef("edit: --category and --clear-categories are exclusive")
			case clearCategories:
				patch.Categories = model.Ptr([]model.CategoryRef{})
			case flags.Changed("category"):
				patch.Categories = model.Ptr(model.Refs(categories...))
			}
			if patch == (model.TodoUpdate{}) {
				return usagef("edit: nothing to change")
			}

			// The store only replaces items it holds, so load it first.
			if err := a.fetchTodos(cmd.Context()); err != nil {
				return err
			}
			updated, err := a.todos.Update(cmd.Context(), id, patch)
			if err != nil {
				return notFound("todo", id, err)
			}
			ui.OK("updated")
			ui.Println(ui.TodoLine(updated))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().Int64SliceVar(&categories, "category", nil, "replace categories (repeatable)")
	cmd.Flags().BoolVar(&clearCategories, "clear-categories", false, "remove every category")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle completion of a todo",
		Args:    exactArgs(1, "done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.fetchTodos(cmd.Context()); err != nil {
				return err
			}
			td, err := a.todos.Toggle(cmd.Context(), id)
			if errors.Is(err, store.ErrUnknownID) {
				return fmt.Errorf("no todo #%d (run `todolist ls` to see ids)", id)
			}
			if err != nil {
				return notFound("todo", id, err)
			}
			if td.Completed {
				ui.OK(fmt.Sprintf("#%d done", id))
			} else {
				ui.OK(fmt.Sprintf("#%d pending", id))
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a todo",
		Args:    exactArgs(1, "rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.todos.Delete(cmd.Context(), id); err != nil {
				return notFound("todo", id, err)
			}
			ui.OK(fmt.Sprintf("removed #%d", id))
			return nil
		},
	}
}

// notFound rewrites a 404 into a short message; other errors pass through.
func notFound(what string, id int64, err error) error {
	if apiclient.IsNotFound(err) {
		return fmt.Errorf("no %s #%d: %w", what, id, err)
	}
	return err
}
