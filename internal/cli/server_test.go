package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// fakeAPI is an in-memory todolist server speaking snake_case JSON.
type fakeAPI struct {
	mu       sync.Mutex
	todos    []map[string]any
	cats     []map[string]any
	nextID   int64
	auth     []string
	requests []string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{nextID: 100}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /todolist/todos", f.list(&f.todos))
	mux.HandleFunc("POST /todolist/todos", f.createTodo)
	mux.HandleFunc("GET /todolist/todos/{id}", f.get(&f.todos, "Todo"))
	mux.HandleFunc("PATCH /todolist/todos/{id}", f.patchTodo)
	mux.HandleFunc("DELETE /todolist/todos/{id}", f.remove(&f.todos, "Todo"))
	mux.HandleFunc("GET /todolist/categories", f.list(&f.cats))
	mux.HandleFunc("POST /todolist/categories", f.createCategory)
	mux.HandleFunc("GET /todolist/categories/{id}", f.get(&f.cats, "Category"))
	mux.HandleFunc("PATCH /todolist/categories/{id}", f.patchCategory)
	mux.HandleFunc("DELETE /todolist/categories/{id}", f.remove(&f.cats, "Category"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) addCategory(id int64, name string) {
	f.cats = append(f.cats, map[string]any{"id": id, "name": name, "description": ""})
}

func (f *fakeAPI) addTodo(id int64, title string, completed bool, catIDs ...int64) {
	cats := []map[string]any{}
	for _, cid := range catIDs {
		if c := find(f.cats, cid); c != nil {
			cats = append(cats, c)
		}
	}
	f.todos = append(f.todos, map[string]any{
		"id": id, "title": title, "description": "", "completed": completed, "categories": cats,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFoundDetail(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, map[string]any{"status_code": 404, "detail": what + " not found"})
}

func find(rows []map[string]any, id int64) map[string]any {
	for _, r := range rows {
		if r["id"].(int64) == id {
			return r
		}
	}
	return nil
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func (f *fakeAPI) list(rows *[]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, *rows)
	}
}

func (f *fakeAPI) get(rows *[]map[string]any, what string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if row := find(*rows, pathID(r)); row != nil {
			writeJSON(w, http.StatusOK, row)
			return
		}
		notFoundDetail(w, what)
	}
}

func (f *fakeAPI) remove(rows *[]map[string]any, what string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := pathID(r)
		for i, row := range *rows {
			if row["id"].(int64) == id {
				*rows = append((*rows)[:i], (*rows)[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]any{"ok": true})
				return
			}
		}
		notFoundDetail(w, what)
	}
}

type todoBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Categories  *[]struct {
		ID int64 `json:"id"`
	} `json:"categories"`
}

func (f *fakeAPI) applyTodo(row map[string]any, b todoBody) {
	if b.Title != nil {
		row["title"] = *b.Title
	}
	if b.Description != nil {
		row["description"] = *b.Description
	}
	if b.Completed != nil {
		row["completed"] = *b.Completed
	}
	if b.Categories != nil {
		cats := []map[string]any{}
		for _, ref := range *b.Categories {
			if c := find(f.cats, ref.ID); c != nil {
				cats = append(cats, c)
			}
		}
		row["categories"] = cats
	}
}

func (f *fakeAPI) createTodo(w http.ResponseWriter, r *http.Request) {
	var b todoBody
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil || b.Title == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"status_code": 422, "detail": "title is required"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	row := map[string]any{"id": f.nextID, "description": "", "completed": false, "categories": []map[string]any{}}
	f.applyTodo(row, b)
	f.todos = append(f.todos, row)
	writeJSON(w, http.StatusOK, row)
}

func (f *fakeAPI) patchTodo(w http.ResponseWriter, r *http.Request) {
	var b todoBody
	_ = json.NewDecoder(r.Body).Decode(&b)
	f.mu.Lock()
	defer f.mu.Unlock()
	row := find(f.todos, pathID(r))
	if row == nil {
		notFoundDetail(w, "Todo")
		return
	}
	f.applyTodo(row, b)
	writeJSON(w, http.StatusOK, row)
}

type categoryBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (f *fakeAPI) createCategory(w http.ResponseWriter, r *http.Request) {
	var b categoryBody
	_ = json.NewDecoder(r.Body).Decode(&b)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	row := map[string]any{"id": f.nextID, "name": "", "description": ""}
	if b.Name != nil {
		row["name"] = *b.Name
	}
	if b.Description != nil {
		row["description"] = *b.Description
	}
	f.cats = append(f.cats, row)
	writeJSON(w, http.StatusOK, row)
}

func (f *fakeAPI) patchCategory(w http.ResponseWriter, r *http.Request) {
	var b categoryBody
	_ = json.NewDecoder(r.Body).Decode(&b)
	f.mu.Lock()
	defer f.mu.Unlock()
	row := find(f.cats, pathID(r))
	if row == nil {
		notFoundDetail(w, "Category")
		return
	}
	if b.Name != nil {
		row["name"] = *b.Name
	}
	if b.Description != nil {
		row["description"] = *b.Description
	}
	writeJSON(w, http.StatusOK, row)
}
