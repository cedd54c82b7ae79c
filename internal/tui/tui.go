// Package tui is the interactive todo list. Every key that reaches the
// server runs the matching store action as a tea.Cmd and re-renders from the
// store once it finishes.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

// listItem adapts a todo to bubbles/list.Item.
type listItem struct{ todo model.Todo }

func (i listItem) Title() string       { return ui.TodoLine(i.todo) }
func (i listItem) Description() string { return i.todo.Description }
func (i listItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders one line per todo.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+it.Title())
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// syncedMsg is sent after a store action finished; the view is rebuilt from
// the stores and verb is shown when the action succeeded.
type syncedMsg struct {
	verb string
	err  error
}

var (
	keyToggle  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	keyAdd     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	keyEdit    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	keyDelete  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	keyRefresh = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	keyQuit    = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// Model is the Bubble Tea model.
type Model struct {
	ctx   context.Context
	todos *store.TodoStore
	cats  *store.CategoryStore

	list     list.Model
	input    textinput.Model
	mode     mode
	editID   int64
	inputErr string
	width    int
	height   int
}

// New builds a model over the given stores. Neither store is fetched until
// Init runs.
func New(ctx context.Context, todos *store.TodoStore, cats *store.CategoryStore) Model {
	t := ui.Current()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	// q is handled here so it can be typed into the filter.
	l.KeyMap.Quit.SetEnabled(false)
	extra := func() []key.Binding {
		return []key.Binding{keyToggle, keyAdd, keyEdit, keyDelete, keyRefresh}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 200

	m := Model{ctx: ctx, todos: todos, cats: cats, list: l, input: in, width: 80, height: 24}
	m.list.Title = m.header()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, todos *store.TodoStore, cats *store.CategoryStore) error {
	p := tea.NewProgram(New(ctx, todos, cats), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.refresh() }

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		m.todos.Fetch(m.ctx)
		m.cats.Fetch(m.ctx)
		return syncedMsg{verb: "refreshed", err: m.todos.Failure()}
	}
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.todo, ok
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case syncedMsg:
		cmd := m.sync()
		m.resize()
		if msg.err != nil {
			return m, cmd
		}
		status := m.list.NewStatusMessage(ui.Current().Success.Render(msg.verb))
		return m, tea.Batch(cmd, status)
	}

	if m.mode != browsing {
		return m.updateInput(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(km, keyQuit):
			return m, tea.Quit
		case key.Matches(km, keyToggle):
			if td, ok := m.selected(); ok {
				return m, m.run("toggled", func(ctx context.Context) error {
					_, err := m.todos.Toggle(ctx, td.ID)
					return err
				})
			}
			return m, nil
		case key.Matches(km, keyDelete):
			if td, ok := m.selected(); ok {
				return m, m.run("deleted", func(ctx context.Context) error {
					return m.todos.Delete(ctx, td.ID)
				})
			}
			return m, nil
		case key.Matches(km, keyRefresh):
			return m, m.refresh()
		case key.Matches(km, keyAdd):
			m.startInput(adding, "", "New todo title...")
			return m, textinput.Blink
		case key.Matches(km, keyEdit):
			if td, ok := m.selected(); ok {
				m.editID = td.ID
				m.startInput(editing, td.Title, "Edit todo title...")
				return m, textinput.Blink
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) startInput(md mode, value, placeholder string) {
	m.mode = md
	m.inputErr = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.resize()
}

func (m *Model) stopInput() {
	m.mode = browsing
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEsc:
			m.stopInput()
			return m, nil
		case tea.KeyEnter:
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			md, id := m.mode, m.editID
			m.stopInput()
			if md == adding {
				return m, m.run("added", func(ctx context.Context) error {
					_, err := m.todos.Create(ctx, model.TodoCreate{Title: title})
					return err
				})
			}
			return m, m.run("updated", func(ctx context.Context) error {
				_, err := m.todos.Update(ctx, id, model.TodoUpdate{Title: &title})
				return err
			})
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// run wraps a store action in a command. Failures stay in the store and are
// rendered from there.
func (m Model) run(verb string, action func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return syncedMsg{verb: verb, err: action(ctx)}
	}
}

// sync rebuilds the list from the todo store, keeping the cursor in range.
func (m *Model) sync() tea.Cmd {
	todos := m.todos.Items()
	items := make([]list.Item, 0, len(todos))
	for _, td := range todos {
		items = append(items, listItem{todo: td})
	}
	idx := m.list.Index()
	cmd := m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = m.header()
	return cmd
}

func (m Model) header() string {
	t := ui.Current()
	done, pending := m.todos.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymOK), done,
		t.Pending.Render("•"), pending,
		t.Accent.Render("Categories"), m.cats.Len(),
	)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != browsing {
		h -= 4
	}
	if msg := m.todos.ErrorMessage(); msg != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()

	if msg := m.todos.ErrorMessage(); msg != "" {
		content += "\n" + t.Error.Render(t.SymFail+" "+msg)
	} else if msg := m.cats.ErrorMessage(); msg != "" {
		content += "\n" + t.Error.Render(t.SymFail+" "+msg)
	}

	if m.mode != browsing {
		title := "Add todo"
		if m.mode == editing {
			title = fmt.Sprintf("Edit todo #%d", m.editID)
		}
		if m.inputErr != "" {
			title += ": " + t.Error.Render(m.inputErr)
		}
		box := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		content += "\n" + box.Render(title+"\n"+m.input.View())
	}
	return ui.Panel([]string{content})
}
