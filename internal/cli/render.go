package cli

import (
	"fmt"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

const progressWidth = 28

func listLines(title string, todos []model.Todo, group bool) []string {
	t := ui.Current()
	done := 0
	for _, td := range todos {
		if td.Completed {
			done++
		}
	}
	pending := len(todos) - done

	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			t.Title.Render(title),
			t.Success.Render(t.SymOK), done,
			t.Pending.Render("•"), pending,
			t.Accent.Render("Total"), len(todos),
		),
		t.Muted.Render(ui.ProgressBar(done, len(todos), progressWidth)),
		"",
	}
	if group {
		lines = append(lines, groupLines(todos)...)
	} else {
		lines = append(lines, flatLines(todos)...)
	}
	return lines
}

func flatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{ui.Current().Muted.Render("no todos")}
	}
	out := make([]string, 0, len(todos))
	for _, td := range todos {
		out = append(out, ui.TodoLine(td))
	}
	return out
}

func groupLines(todos []model.Todo) []string {
	var pend, done []model.Todo
	for _, td := range todos {
		if td.Completed {
			done = append(done, td)
		} else {
			pend = append(pend, td)
		}
	}
	t := ui.Current()
	section := func(name string, items []model.Todo) []string {
		lines := []string{t.Accent.Render(name)}
		if len(items) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(items)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func todoDetail(td model.Todo) []string {
	t := ui.Current()
	status := t.Pending.Render("pending")
	if td.Completed {
		status = t.Success.Render("done")
	}
	lines := []string{
		t.Title.Render(fmt.Sprintf("#%d %s", td.ID, td.Title)),
		"status:      " + status,
	}
	if td.Description != "" {
		lines = append(lines, "description: "+td.Description)
	}
	if tags := ui.CategoryTags(td.Categories); tags != "" {
		lines = append(lines, "categories:  "+tags)
	}
	return lines
}

func categoryLine(c model.Category, count int) string {
	t := ui.Current()
	line := fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("#%d", c.ID)), t.Accent.Render(c.Name),
		t.Muted.Render(fmt.Sprintf("(%d)", count)))
	if c.Description != "" {
		line += " " + c.Description
	}
	return line
}
