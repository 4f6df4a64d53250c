package api

import (
	"net/http"

	"github.com/kidandcat/taskboard/internal/auth"
	"github.com/kidandcat/taskboard/internal/service"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	pageNum := queryInt(r, "page", "1")
	perPage := queryInt(r, "per_page", "15")

	tasks, total, err := s.tasks.List(u, pageNum, perPage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(NewTaskResources(tasks, s.now()), pageNum, perPage, total))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	var in service.TaskInput
	if !readJSON(w, r, &in) {
		return
	}
	t, err := s.tasks.Create(u, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewTaskResource(t, s.now()))
}

func (s *Server) handleShowTask(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	t, err := s.tasks.Details(u, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTaskResource(t, s.now()))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	var in service.TaskInput
	if !readJSON(w, r, &in) {
		return
	}
	t, err := s.tasks.Update(u, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTaskResource(t, s.now()))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	if err := s.tasks.Delete(u, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	var in struct {
		AssignedTo *int64 `json:"assigned_to"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	t, err := s.tasks.Assign(u, id, in.AssignedTo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTaskResource(t, s.now()))
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	t, err := s.tasks.Complete(u, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTaskResource(t, s.now()))
}

func (s *Server) handleAssignedTasks(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	tasks, err := s.tasks.Assigned(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": NewTaskResources(tasks, s.now())})
}

func (s *Server) handleOverdueTasks(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	tasks, err := s.tasks.Overdue(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": NewTaskResources(tasks, s.now())})
}

func (s *Server) handleDueSoonTasks(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	days := queryInt(r, "days", "7")
	tasks, err := s.tasks.DueSoon(u, days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": NewTaskResources(tasks, s.now())})
}

func (s *Server) handleHighPriorityTasks(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	tasks, err := s.tasks.HighPriority(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": NewTaskResources(tasks, s.now())})
}

func (s *Server) handleSearchTasks(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, map[string]any{"data": []*TaskResource{}})
		return
	}
	tasks, err := s.tasks.Search(u, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": NewTaskResources(tasks, s.now())})
}
