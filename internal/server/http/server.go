// Package httpserver exposes the task service's HTTP/JSON API.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avasilenko/smart-todo/internal/errs"
	"github.com/avasilenko/smart-todo/internal/model"
	"github.com/avasilenko/smart-todo/internal/service"
	"github.com/avasilenko/smart-todo/internal/token"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth   service.AuthService
	tasks  service.TaskService
	tokens *token.Service
	log    *zap.Logger
}

// New constructs a Server with injected services.
func New(auth service.AuthService, tasks service.TaskService, tokens *token.Service, log *zap.Logger) *Server {
	return &Server{auth: auth, tasks: tasks, tokens: tokens, log: log}
}

// Handler builds the route table. Everything under /tasks sits behind the
// auth gate; register and login are the only open endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)

	mux.HandleFunc("GET /tasks", s.requireAuth(s.handleListTasks))
	mux.HandleFunc("POST /tasks", s.requireAuth(s.handleCreateTask))
	mux.HandleFunc("PUT /tasks/{id}", s.requireAuth(s.handleUpdateTask))
	mux.HandleFunc("DELETE /tasks/{id}", s.requireAuth(s.handleDeleteTask))

	return recoverPanics(s.log, logging(s.log, mux))
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	if _, err := s.auth.Register(r.Context(), in.Username, in.Password); err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyExists):
			writeError(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, errs.ErrValidation):
			writeError(w, http.StatusBadRequest, "Username and password required")
		default:
			s.serverError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	tok, err := s.auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		// unknown username and wrong password are the same response
		if errors.Is(err, errs.ErrUnauthorized) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	tasks, err := s.tasks.List(r.Context(), userID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	var in model.NewTask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := s.tasks.Create(r.Context(), userID, in)
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	taskID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		// an unparseable id cannot match any task
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	var patch model.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := s.tasks.Update(r.Context(), userID, taskID, patch)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	taskID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err := s.tasks.Delete(r.Context(), userID, taskID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// serverError logs the cause and answers with a generic 500. Internal error
// text never reaches the client.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("handler error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
