package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todolist/internal/model"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr := Stdout(), stderr
	SetOutput(&out, &errOut)
	t.Cleanup(func() { SetOutput(prevOut, prevErr) })
	return &out, &errOut
}

func useTheme(t *testing.T, name string) {
	t.Helper()
	prev := Current().Name
	SetTheme(name)
	t.Cleanup(func() { SetTheme(prev) })
}

func TestSetTheme(t *testing.T) {
	useTheme(t, "NEON")
	assert.Equal(t, "neon", Current().Name)

	SetTheme("nope")
	assert.Equal(t, "classic", Current().Name)
}

func TestOKAndFail(t *testing.T) {
	useTheme(t, "mono")
	out, errOut := capture(t)

	OK("saved")
	Fail("broken")

	assert.Equal(t, "ok saved\n", out.String())
	assert.Equal(t, "error: broken\n", errOut.String())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50% (1/2)", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0% (0/1)", ProgressBar(0, 0, 1))
	assert.Equal(t, "██████████ 100% (3/3)", ProgressBar(3, 3, 10))
}

func TestPanel(t *testing.T) {
	useTheme(t, "mono")
	p := Panel([]string{"one", "three"})
	lines := strings.Split(p, "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "+"))
	assert.Contains(t, lines[1], "one")
	assert.Contains(t, lines[2], "three")
}

func TestTodoLine(t *testing.T) {
	useTheme(t, "mono")

	td := model.Todo{ID: 3, Title: "Buy milk", Categories: []model.Category{{ID: 2, Name: "Work"}, {ID: 1, Name: "Home"}}}
	assert.Equal(t, "[ ] #3 Buy milk [Home, Work]", TodoLine(td))

	td.Completed, td.Categories = true, nil
	assert.Equal(t, "[x] #3 Buy milk", TodoLine(td))
}
