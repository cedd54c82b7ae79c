package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/todolist/internal/model"
)

// TodoStore is the store for todos with its derived views.
type TodoStore struct {
	*Store[model.Todo, model.TodoCreate, model.TodoUpdate]
}

// NewTodoStore creates a todo store calling b.
func NewTodoStore(b Backend[model.Todo, model.TodoCreate, model.TodoUpdate], logger *slog.Logger) *TodoStore {
	return &TodoStore{New(Options[model.Todo, model.TodoCreate, model.TodoUpdate]{
		Backend: b,
		ID:      func(t model.Todo) int64 { return t.ID },
		Messages: Messages{
			Fetch:  "Failed to fetch todos",
			Create: "Failed to create todo",
			Update: "Failed to update todo",
			Delete: "Failed to delete todo",
		},
		Name:   "todos",
		Logger: logger,
	})}
}

// Completed returns the completed todos.
func (s *TodoStore) Completed() []model.Todo {
	return s.Filter(func(t model.Todo) bool { return t.Completed })
}

// Pending returns the todos not yet completed.
func (s *TodoStore) Pending() []model.Todo {
	return s.Filter(func(t model.Todo) bool { return !t.Completed })
}

// ByCategory returns the todos associated with categoryID.
func (s *TodoStore) ByCategory(categoryID int64) []model.Todo {
	return s.Filter(func(t model.Todo) bool { return t.HasCategory(categoryID) })
}

// Stats counts done and pending todos.
func (s *TodoStore) Stats() (done, pending int) {
	for _, t := range s.Items() {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Toggle flips completion through an update and applies the server's answer.
// The local flag is never flipped on its own.
func (s *TodoStore) Toggle(ctx context.Context, id int64) (model.Todo, error) {
	t, ok := s.ByID(id)
	if !ok {
		return model.Todo{}, fmt.Errorf("toggle %d: %w", id, ErrUnknownID)
	}
	return s.Update(ctx, id, model.TodoUpdate{Completed: model.Ptr(!t.Completed)})
}

// Import creates every todo in order, stopping at the first failure. It
// returns how many were created.
func (s *TodoStore) Import(ctx context.Context, todos []model.Todo) (int, error) {
	for i, t := range todos {
		if _, err := s.Create(ctx, t.AsCreate()); err != nil {
			return i, fmt.Errorf("import %q: %w", t.Title, err)
		}
	}
	return len(todos), nil
}
