// Package api exposes the JSON HTTP surface: auth, projects, tasks,
// dashboard, and admin user management.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/kidandcat/taskboard/internal/auth"
	"github.com/kidandcat/taskboard/internal/config"
	"github.com/kidandcat/taskboard/internal/model"
	"github.com/kidandcat/taskboard/internal/service"
	"github.com/kidandcat/taskboard/internal/store"
)

type Server struct {
	store    *store.Store
	cfg      *config.Config
	auth     *auth.Service
	projects *service.ProjectService
	tasks    *service.TaskService

	now func() time.Time
}

func NewServer(st *store.Store, cfg *config.Config) *Server {
	return &Server{
		store:    st,
		cfg:      cfg,
		auth:     auth.NewService(st, cfg),
		projects: service.NewProjectService(st),
		tasks:    service.NewTaskService(st),
		now:      time.Now,
	}
}

// Auth exposes the auth service for server wiring (admin sync, tests).
func (s *Server) Auth() *auth.Service { return s.auth }

// Handler builds the route table. Auth routes are public; everything
// under /api runs behind the session middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /auth/approve", s.handleApproveInfo)
	mux.HandleFunc("POST /auth/approve", s.handleApprove)
	mux.HandleFunc("GET /auth/status", s.handleAuthStatus)
	mux.HandleFunc("POST /logout", s.handleLogout)

	app := http.NewServeMux()
	app.HandleFunc("GET /api/me", s.handleMe)
	app.HandleFunc("GET /api/dashboard", s.handleDashboard)
	app.HandleFunc("GET /api/meta/enums", s.handleEnums)

	app.HandleFunc("GET /api/projects", s.handleListProjects)
	app.HandleFunc("POST /api/projects", s.handleCreateProject)
	app.HandleFunc("GET /api/projects/{id}", s.handleShowProject)
	app.HandleFunc("PUT /api/projects/{id}", s.handleUpdateProject)
	app.HandleFunc("DELETE /api/projects/{id}", s.handleDeleteProject)
	app.HandleFunc("GET /api/projects/{id}/stats", s.handleProjectStats)
	app.HandleFunc("GET /api/projects/{id}/tasks", s.handleProjectTasks)

	app.HandleFunc("GET /api/tasks", s.handleListTasks)
	app.HandleFunc("POST /api/tasks", s.handleCreateTask)
	app.HandleFunc("GET /api/tasks/assigned", s.handleAssignedTasks)
	app.HandleFunc("GET /api/tasks/overdue", s.handleOverdueTasks)
	app.HandleFunc("GET /api/tasks/due-soon", s.handleDueSoonTasks)
	app.HandleFunc("GET /api/tasks/high-priority", s.handleHighPriorityTasks)
	app.HandleFunc("GET /api/tasks/search", s.handleSearchTasks)
	app.HandleFunc("GET /api/tasks/{id}", s.handleShowTask)
	app.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	app.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	app.HandleFunc("POST /api/tasks/{id}/assign", s.handleAssignTask)
	app.HandleFunc("POST /api/tasks/{id}/complete", s.handleCompleteTask)

	app.HandleFunc("GET /api/admin/users", auth.RequireAdmin(s.handleAdminListUsers))
	app.HandleFunc("POST /api/admin/users", auth.RequireAdmin(s.handleAdminCreateUser))
	app.HandleFunc("DELETE /api/admin/users/{id}", auth.RequireAdmin(s.handleAdminDeleteUser))

	mux.Handle("/api/", s.auth.Middleware(app))
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

// writeError maps service errors onto the HTTP surface: validation
// failures become a field→message map, ownership failures 403, missing
// resources 404.
func writeError(w http.ResponseWriter, err error) {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verr})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, key, def string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		v = def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// page wraps a list response with pagination metadata.
type page struct {
	Data any      `json:"data"`
	Meta pageMeta `json:"meta"`
}

type pageMeta struct {
	Page     int `json:"page"`
	PerPage  int `json:"per_page"`
	Total    int `json:"total"`
	LastPage int `json:"last_page"`
}

func newPage(data any, pageNum, perPage, total int) page {
	if pageNum < 1 {
		pageNum = 1
	}
	if perPage < 1 {
		perPage = 15
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}
	return page{
		Data: data,
		Meta: pageMeta{Page: pageNum, PerPage: perPage, Total: total, LastPage: last},
	}
}

func (s *Server) handleEnums(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"project_statuses": model.ProjectStatusOptions(),
		"task_statuses":    model.TaskStatusOptions(),
		"task_priorities":  model.TaskPriorityOptions(),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewUserResource(auth.CurrentUser(r), s.now()))
}
