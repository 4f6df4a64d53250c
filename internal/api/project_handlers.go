package api

import (
	"net/http"

	"github.com/kidandcat/taskboard/internal/auth"
	"github.com/kidandcat/taskboard/internal/service"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	pageNum := queryInt(r, "page", "1")
	perPage := queryInt(r, "per_page", "15")

	projects, total, err := s.projects.List(u, pageNum, perPage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(NewProjectResources(projects, s.now()), pageNum, perPage, total))
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	var in service.ProjectInput
	if !readJSON(w, r, &in) {
		return
	}
	p, err := s.projects.Create(u, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewProjectResource(p, s.now()))
}

func (s *Server) handleShowProject(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	p, err := s.projects.Details(u, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewProjectResource(p, s.now()))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	var in service.ProjectInput
	if !readJSON(w, r, &in) {
		return
	}
	p, err := s.projects.Update(u, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewProjectResource(p, s.now()))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	if err := s.projects.Delete(u, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleProjectStats(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	stats, err := s.projects.Stats(u, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleProjectTasks(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id, ok := pathID(r)
	if !ok {
		writeError(w, service.ErrNotFound)
		return
	}
	tasks, err := s.tasks.ForProject(u, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": NewTaskResources(tasks, s.now())})
}
