package model

// Entities mirror the backend representation. JSON tags are camelCase; the
// API client translates them to snake_case on the wire.

// Category groups todos. Names are unique on the backend.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Todo is a single todo entry with its associated categories as last seen
// from the server.
type Todo struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Categories  []Category `json:"categories"`
}

// HasCategory reports whether the todo is associated with categoryID.
func (t Todo) HasCategory(categoryID int64) bool {
	for _, c := range t.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}

// CategoryRef points at an existing category by identifier.
type CategoryRef struct {
	ID int64 `json:"id"`
}

// Refs turns category ids into references.
func Refs(ids ...int64) []CategoryRef {
	out := make([]CategoryRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, CategoryRef{ID: id})
	}
	return out
}

// TodoCreate is the payload for a new todo. Unset optional fields are not sent.
type TodoCreate struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Completed   *bool         `json:"completed,omitempty"`
	Categories  []CategoryRef `json:"categories,omitempty"`
}

// TodoUpdate is a partial update; only non-nil fields are sent.
type TodoUpdate struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Completed   *bool          `json:"completed,omitempty"`
	Categories  *[]CategoryRef `json:"categories,omitempty"`
}

// CategoryCreate is the payload for a new category.
type CategoryCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryUpdate is a partial update; only non-nil fields are sent.
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Ptr returns a pointer to v, for filling partial updates.
func Ptr[T any](v T) *T { return &v }

// AsCreate returns the payload that re-creates t on a server. The identifier
// is dropped; categories are referenced by identifier.
func (t Todo) AsCreate() TodoCreate {
	ids := make([]int64, 0, len(t.Categories))
	for _, c := range t.Categories {
		ids = append(ids, c.ID)
	}
	tc := TodoCreate{
		Title:       t.Title,
		Description: t.Description,
		Completed:   Ptr(t.Completed),
	}
	if len(ids) > 0 {
		tc.Categories = Refs(ids...)
	}
	return tc
}
