package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
)

var (
	outMu  sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects OK/Println and Fail. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Stdout returns the current standard writer.
func Stdout() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return stdout
}

func OK(msg string) {
	t := Current()
	fmt.Fprintln(Stdout(), t.Success.Render(t.SymOK+" "+msg))
}

func Fail(msg string) {
	t := Current()
	outMu.Lock()
	w := stderr
	outMu.Unlock()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

// Println writes lines to the standard writer.
func Println(lines ...string) {
	w := Stdout()
	for _, ln := range lines {
		fmt.Fprintln(w, ln)
	}
}

// Panel frames lines in the current theme's border.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// ProgressBar renders done/total as a bar of the given width.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%% (%d/%d)", bar, done*100/total, done, total)
}

// TodoLine renders one todo as "☐ #3 Title [Home, Work]".
func TodoLine(td model.Todo) string {
	t := Current()
	box, title := t.Pending.Render(t.BoxUnchecked), td.Title
	if td.Completed {
		box, title = t.Success.Render(t.BoxChecked), t.Done.Render(td.Title)
	}
	line := fmt.Sprintf("%s %s %s", box, t.Muted.Render(fmt.Sprintf("#%d", td.ID)), title)
	if tags := CategoryTags(td.Categories); tags != "" {
		line += " " + t.Accent.Render(tags)
	}
	return line
}

// CategoryTags renders category names as "[A, B]", sorted.
func CategoryTags(cats []model.Category) string {
	if len(cats) == 0 {
		return ""
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}
