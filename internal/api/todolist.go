package api

import (
	"errors"

	"github.com/idilsaglam/todolist/internal/apiclient"
	"github.com/idilsaglam/todolist/internal/model"
)

const (
	TodosPath      = "/todolist/todos"
	CategoriesPath = "/todolist/categories"
)

var errEmptyBody = errors.New("empty response body")

// TodoAPI is the todos resource.
type TodoAPI = Resource[model.Todo, model.TodoCreate, model.TodoUpdate]

// CategoryAPI is the categories resource.
type CategoryAPI = Resource[model.Category, model.CategoryCreate, model.CategoryUpdate]

// Todos binds the todos resource to c.
func Todos(c *apiclient.Client) *TodoAPI {
	return NewResource[model.Todo, model.TodoCreate, model.TodoUpdate](c, TodosPath)
}

// Categories binds the categories resource to c.
func Categories(c *apiclient.Client) *CategoryAPI {
	return NewResource[model.Category, model.CategoryCreate, model.CategoryUpdate](c, CategoriesPath)
}
