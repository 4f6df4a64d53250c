package api

import (
	"net/http"

	"github.com/kidandcat/taskboard/internal/auth"
)

const (
	dashboardRecentProjects = 5
	dashboardRecentTasks    = 10
)

// handleDashboard assembles the aggregate view: project and task
// statistics plus recent and attention-needing tasks, all scoped to
// the acting user.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	now := s.now()

	projectStats, err := s.projects.StatusCounts(u)
	if err != nil {
		writeError(w, err)
		return
	}
	taskStats, err := s.tasks.UserStats(u)
	if err != nil {
		writeError(w, err)
		return
	}
	assignedStats, err := s.tasks.AssignedStats(u)
	if err != nil {
		writeError(w, err)
		return
	}

	recentProjects, _, err := s.projects.List(u, 1, dashboardRecentProjects)
	if err != nil {
		writeError(w, err)
		return
	}
	recentTasks, _, err := s.tasks.List(u, 1, dashboardRecentTasks)
	if err != nil {
		writeError(w, err)
		return
	}
	overdue, err := s.tasks.Overdue(u)
	if err != nil {
		writeError(w, err)
		return
	}
	dueSoon, err := s.tasks.DueSoon(u, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"projects":       projectStats,
			"tasks":          taskStats,
			"assigned_tasks": assignedStats,
		},
		"recent_projects": NewProjectResources(recentProjects, now),
		"recent_tasks":    NewTaskResources(recentTasks, now),
		"overdue_tasks":   NewTaskResources(overdue, now),
		"tasks_due_soon":  NewTaskResources(dueSoon, now),
	})
}
