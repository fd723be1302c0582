// Package server is the thin transport layer over the repository contract.
// It decodes requests through the validation gate, calls the repository, and
// translates the error taxonomy into status codes. It holds no business
// logic of its own.
package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/thenoetrevino/lista/internal/repository"
	"github.com/thenoetrevino/lista/internal/validate"
)

// Server dispatches HTTP requests to the two repositories.
type Server struct {
	todos  repository.TodoRepository
	labels repository.LabelRepository
}

// New creates a Server over the given backends.
func New(todos repository.TodoRepository, labels repository.LabelRepository) *Server {
	return &Server{todos: todos, labels: labels}
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)

	mux.HandleFunc("POST /todos", s.handleCreateTodo)
	mux.HandleFunc("GET /todos", s.handleAllTodos)
	mux.HandleFunc("GET /todos/{id}", s.handleFindTodo)
	mux.HandleFunc("PATCH /todos/{id}", s.handleUpdateTodo)
	mux.HandleFunc("DELETE /todos/{id}", s.handleDeleteTodo)

	mux.HandleFunc("POST /labels", s.handleCreateLabel)
	mux.HandleFunc("GET /labels", s.handleAllLabels)
	mux.HandleFunc("DELETE /labels/{id}", s.handleDeleteLabel)

	return withRequestLog(mux)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "hello world")
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var cmd repository.CreateTodo
	if !decodeCommand(w, r, &cmd) {
		return
	}

	todo, err := s.todos.Create(r.Context(), cmd)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleFindTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	todo, err := s.todos.Find(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleAllTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todos.All(r.Context())
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var cmd repository.UpdateTodo
	if !decodeCommand(w, r, &cmd) {
		return
	}

	todo, err := s.todos.Update(r.Context(), id, cmd)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.todos.Delete(r.Context(), id); err != nil {
		writeRepositoryError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	var cmd repository.CreateLabel
	if !decodeCommand(w, r, &cmd) {
		return
	}

	label, err := s.labels.Create(r.Context(), cmd)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, label)
}

func (s *Server) handleAllLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := s.labels.All(r.Context())
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

func (s *Server) handleDeleteLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.labels.Delete(r.Context(), id); err != nil {
		writeRepositoryError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeCommand reads the body through the validation gate. Both gate failure
// modes map to 400 with the gate's message; constraint violations arrive
// already aggregated.
func decodeCommand(w http.ResponseWriter, r *http.Request, dst validate.Validator) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return false
	}
	if err := validate.Decode(body, dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeRepositoryError maps the repository error taxonomy onto status codes.
// Anything unclassified is a server error and is logged, never swallowed.
func writeRepositoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case repository.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case repository.IsDuplicate(err):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("repository error", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
