package store

import (
	"log/slog"

	"github.com/idilsaglam/todolist/internal/model"
)

// CategoryStore is the store for categories.
type CategoryStore struct {
	*Store[model.Category, model.CategoryCreate, model.CategoryUpdate]
}

// NewCategoryStore creates a category store calling b.
func NewCategoryStore(b Backend[model.Category, model.CategoryCreate, model.CategoryUpdate], logger *slog.Logger) *CategoryStore {
	return &CategoryStore{New(Options[model.Category, model.CategoryCreate, model.CategoryUpdate]{
		Backend: b,
		ID:      func(c model.Category) int64 { return c.ID },
		Messages: Messages{
			Fetch:  "Failed to fetch categories",
			Create: "Failed to create category",
			Update: "Failed to update category",
			Delete: "Failed to delete category",
		},
		Name:   "categories",
		Logger: logger,
	})}
}

// Names maps category identifiers to names, for rendering.
func (s *CategoryStore) Names() map[int64]string {
	out := make(map[int64]string, s.Len())
	for _, c := range s.Items() {
		out[c.ID] = c.Name
	}
	return out
}
