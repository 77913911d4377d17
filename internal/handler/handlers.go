package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/listworks/todo-service/internal/logging"
	"github.com/listworks/todo-service/internal/metrics"
	"github.com/listworks/todo-service/internal/todo"
)

// maxLocationLen caps the stored location; longer input is truncated before
// trimming.
const maxLocationLen = 20

type createRequest struct {
	Title    *string `json:"title"`
	Location *string `json:"location"`
}

// Health reports process liveness. It deliberately takes no dependencies so
// it keeps answering while storage is down.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ListTodos returns every todo, most recent first.
func ListTodos(repo todo.Repository, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := repo.ListAll(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("failed to list todos")
			writeError(w, http.StatusInternalServerError, "failed to list todos")
			metrics.TodoListCounter.WithLabelValues("error").Inc()
			return
		}
		metrics.TodoListCounter.WithLabelValues("success").Inc()
		writeJSON(w, http.StatusOK, items)
	}
}

// CreateTodo inserts a new todo. Title is required; location is optional and
// sanitized before it reaches storage.
func CreateTodo(repo todo.Repository, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error().Err(err).Msg("invalid create payload")
			writeError(w, http.StatusBadRequest, "invalid payload")
			metrics.TodoCreateCounter.WithLabelValues("invalid").Inc()
			return
		}
		if req.Title == nil {
			writeError(w, http.StatusBadRequest, "title is required")
			metrics.TodoCreateCounter.WithLabelValues("invalid").Inc()
			return
		}

		item, err := repo.Create(r.Context(), *req.Title, sanitizeLocation(req.Location))
		if err != nil {
			logger.Error().Err(err).Msg("failed to create todo")
			writeError(w, http.StatusInternalServerError, "failed to create todo")
			metrics.TodoCreateCounter.WithLabelValues("error").Inc()
			return
		}

		metrics.TodoCreateCounter.WithLabelValues("success").Inc()
		writeJSON(w, http.StatusCreated, item)
	}
}

// DeleteTodo removes a single todo by id. Unknown ids are a 404.
func DeleteTodo(repo todo.Repository, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid todo id")
			metrics.TodoDeleteCounter.WithLabelValues("invalid").Inc()
			return
		}

		if err := repo.DeleteOne(r.Context(), id); err != nil {
			if errors.Is(err, todo.ErrNotFound) {
				writeError(w, http.StatusNotFound, "todo not found")
				metrics.TodoDeleteCounter.WithLabelValues("not_found").Inc()
				return
			}
			logger.Error().Err(err).Int64("id", id).Msg("failed to delete todo")
			writeError(w, http.StatusInternalServerError, "failed to delete todo")
			metrics.TodoDeleteCounter.WithLabelValues("error").Inc()
			return
		}

		metrics.TodoDeleteCounter.WithLabelValues("success").Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteAllTodos clears the collection. Clearing an empty collection is still
// a 204.
func DeleteAllTodos(repo todo.Repository, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repo.DeleteAll(r.Context()); err != nil {
			logger.Error().Err(err).Msg("failed to delete todos")
			writeError(w, http.StatusInternalServerError, "failed to delete todos")
			metrics.TodoDeleteAllCounter.WithLabelValues("error").Inc()
			return
		}
		metrics.TodoDeleteAllCounter.WithLabelValues("success").Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

// sanitizeLocation truncates to maxLocationLen characters, then trims
// whitespace. Whitespace-only input collapses to absent, never "".
func sanitizeLocation(loc *string) *string {
	if loc == nil {
		return nil
	}
	s := *loc
	if runes := []rune(s); len(runes) > maxLocationLen {
		s = string(runes[:maxLocationLen])
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Writes a structured JSON error
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
