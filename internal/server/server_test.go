package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/repository/memory"
)

func newTestHandler() http.Handler {
	store := memory.New()
	return New(store.Todos(), store.Labels()).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeTodo(t *testing.T, w *httptest.ResponseRecorder) models.Todo {
	t.Helper()
	var todo models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todo); err != nil {
		t.Fatalf("cannot decode todo from body %q: %v", w.Body.String(), err)
	}
	return todo
}

func TestRootReturnsHelloWorld(t *testing.T) {
	h := newTestHandler()
	w := doJSON(t, h, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "hello world" {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
}

func TestCreateTodo(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, http.MethodPost, "/todos", `{"text": "should create todo", "labels": []}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	todo := decodeTodo(t, w)
	if todo.ID != 1 || todo.Text != "should create todo" || todo.Completed {
		t.Errorf("unexpected todo: %+v", todo)
	}
	if todo.Labels == nil || len(todo.Labels) != 0 {
		t.Errorf("labels should serialize as an empty array, got %+v", todo.Labels)
	}
}

func TestCreateTodoValidationFailure(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, http.MethodPost, "/todos", `{"text": "", "labels": []}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	// the message enumerates the violated rule, not a generic parse error
	if !strings.Contains(w.Body.String(), "text can not be empty") {
		t.Errorf("expected the violation in the body, got %q", w.Body.String())
	}
}

func TestCreateTodoMalformedPayload(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, http.MethodPost, "/todos", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "json parse error") {
		t.Errorf("expected a parse error message, got %q", w.Body.String())
	}
}

func TestFindTodo(t *testing.T) {
	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/todos", `{"text": "should find todo", "labels": []}`)

	w := doJSON(t, h, http.MethodGet, "/todos/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	todo := decodeTodo(t, w)
	if todo.Text != "should find todo" {
		t.Errorf("unexpected todo: %+v", todo)
	}
}

func TestFindTodoNotFound(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, http.MethodGet, "/todos/99", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestFindTodoInvalidID(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, http.MethodGet, "/todos/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAllTodos(t *testing.T) {
	h := newTestHandler()
	for i := 1; i <= 2; i++ {
		doJSON(t, h, http.MethodPost, "/todos", fmt.Sprintf(`{"text": "todo %d", "labels": []}`, i))
	}

	w := doJSON(t, h, http.MethodGet, "/todos", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var todos []models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todos); err != nil {
		t.Fatalf("cannot decode todos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].ID != 2 || todos[1].ID != 1 {
		t.Errorf("expected descending id order, got [%d %d]", todos[0].ID, todos[1].ID)
	}
}

func TestUpdateTodo(t *testing.T) {
	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/todos", `{"text": "before update", "labels": []}`)

	w := doJSON(t, h, http.MethodPatch, "/todos/1", `{"completed": true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	todo := decodeTodo(t, w)
	if todo.Text != "before update" || !todo.Completed {
		t.Errorf("partial update misapplied: %+v", todo)
	}
}

func TestDeleteTodo(t *testing.T) {
	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/todos", `{"text": "should delete todo", "labels": []}`)

	w := doJSON(t, h, http.MethodDelete, "/todos/1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(t, h, http.MethodGet, "/todos/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCreateLabel(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, http.MethodPost, "/labels", `{"name": "urgent"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var label models.Label
	if err := json.Unmarshal(w.Body.Bytes(), &label); err != nil {
		t.Fatalf("cannot decode label: %v", err)
	}
	if label.ID != 1 || label.Name != "urgent" {
		t.Errorf("unexpected label: %+v", label)
	}
}

func TestCreateLabelDuplicateConflict(t *testing.T) {
	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/labels", `{"name": "x"}`)

	w := doJSON(t, h, http.MethodPost, "/labels", `{"name": "x"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestAllLabels(t *testing.T) {
	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/labels", `{"name": "a"}`)
	doJSON(t, h, http.MethodPost, "/labels", `{"name": "b"}`)

	w := doJSON(t, h, http.MethodGet, "/labels", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var labels []models.Label
	if err := json.Unmarshal(w.Body.Bytes(), &labels); err != nil {
		t.Fatalf("cannot decode labels: %v", err)
	}
	if len(labels) != 2 || labels[0].ID != 1 || labels[1].ID != 2 {
		t.Errorf("expected labels ascending by id, got %+v", labels)
	}
}

func TestDeleteLabelNotFound(t *testing.T) {
	h := newTestHandler()

	w := doJSON(t, h, http.MethodDelete, "/labels/99", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestTodoWithLabelsEndToEnd(t *testing.T) {
	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/labels", `{"name": "work"}`)

	w := doJSON(t, h, http.MethodPost, "/todos", `{"text": "labeled", "labels": [1]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	todo := decodeTodo(t, w)
	if len(todo.Labels) != 1 || todo.Labels[0].Name != "work" {
		t.Errorf("expected the hydrated label, got %+v", todo.Labels)
	}

	// replace the association set with nothing
	w = doJSON(t, h, http.MethodPatch, "/todos/1", `{"labels": []}`)
	todo = decodeTodo(t, w)
	if len(todo.Labels) != 0 {
		t.Errorf("expected labels cleared, got %+v", todo.Labels)
	}
}
