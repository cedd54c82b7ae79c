// Package api binds the todolist REST resources to the HTTP client.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/idilsaglam/todolist/internal/apiclient"
)

// Resource exposes list/get/create/update/delete for one resource family.
// T is the entity, C the create payload and U the partial update payload.
type Resource[T, C, U any] struct {
	client *apiclient.Client
	path   string
}

// NewResource binds path (e.g. "/todolist/todos") to c.
func NewResource[T, C, U any](c *apiclient.Client, path string) *Resource[T, C, U] {
	return &Resource[T, C, U]{client: c, path: path}
}

// Path returns the collection path.
func (r *Resource[T, C, U]) Path() string { return r.path }

func (r *Resource[T, C, U]) item(id int64) string { return fmt.Sprintf("%s/%d", r.path, id) }

// List returns every entity.
func (r *Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	out, err := apiclient.Fetch[[]T](ctx, r.client, r.path, apiclient.Options{})
	if err != nil {
		return nil, err
	}
	if out == nil || *out == nil {
		return []T{}, nil
	}
	return *out, nil
}

// Get returns the entity with id.
func (r *Resource[T, C, U]) Get(ctx context.Context, id int64) (T, error) {
	return r.one(ctx, r.item(id), apiclient.Options{})
}

// Create sends payload and returns the server's representation.
func (r *Resource[T, C, U]) Create(ctx context.Context, payload C) (T, error) {
	return r.one(ctx, r.path, apiclient.Options{Method: http.MethodPost, JSON: payload})
}

// Update sends exactly the fields set in patch.
func (r *Resource[T, C, U]) Update(ctx context.Context, id int64, patch U) (T, error) {
	return r.one(ctx, r.item(id), apiclient.Options{Method: http.MethodPatch, JSON: patch})
}

// Delete removes the entity. An empty response body is expected.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Request(ctx, r.item(id), apiclient.Options{Method: http.MethodDelete})
	return err
}

func (r *Resource[T, C, U]) one(ctx context.Context, endpoint string, opts apiclient.Options) (T, error) {
	var zero T
	out, err := apiclient.Fetch[T](ctx, r.client, endpoint, opts)
	if err != nil {
		return zero, err
	}
	if out == nil {
		method := opts.Method
		if method == "" {
			method = http.MethodGet
		}
		return zero, &apiclient.Error{
			Kind:     apiclient.KindDecode,
			Method:   method,
			Endpoint: endpoint,
			Err:      errEmptyBody,
		}
	}
	return *out, nil
}
