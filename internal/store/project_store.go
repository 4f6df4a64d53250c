package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kidandcat/taskboard/internal/model"
)

const projectColumns = "id, user_id, name, description, status, start_date, end_date, created_at, updated_at"

// CreateProject inserts p and fills in its id and timestamps.
func (s *Store) CreateProject(p *model.Project) error {
	now := s.now()
	if p.Status == "" {
		p.Status = model.ProjectActive
	}
	res, err := s.db.Exec(`
		INSERT INTO projects (user_id, name, description, status, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate, now, now,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (s *Store) GetProject(id int64) (*model.Project, error) {
	var p model.Project
	err := s.db.Get(&p, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return &p, nil
}

// GetProjectWithTasks loads a project together with its tasks (newest
// first, assignees attached) and its owner.
func (s *Store) GetProjectWithTasks(id int64) (*model.Project, error) {
	p, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	owner, err := s.GetUser(p.UserID)
	if err != nil {
		return nil, err
	}
	p.User = owner
	tasks, err := s.ProjectTasks(id)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks
	return p, nil
}

// projectWithCounts flattens aggregate columns next to the project row
// for sqlx scanning.
type projectWithCounts struct {
	model.Project
	model.ProjectTaskCounts
}

// ListProjects returns one page of a user's projects, newest first,
// annotated with task counts. total is the unpaginated count.
func (s *Store) ListProjects(userID int64, page, perPage int) ([]model.Project, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	var total int
	if err := s.db.Get(&total, "SELECT COUNT(*) FROM projects WHERE user_id = ?", userID); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	var rows []projectWithCounts
	err := s.db.Select(&rows, `
		SELECT p.id, p.user_id, p.name, p.description, p.status, p.start_date, p.end_date,
			p.created_at, p.updated_at,
			COUNT(t.id) AS tasks_count,
			COALESCE(SUM(CASE WHEN t.status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_tasks_count,
			COALESCE(SUM(CASE WHEN t.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_tasks_count,
			COALESCE(SUM(CASE WHEN t.status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress_tasks_count
		FROM projects p
		LEFT JOIN tasks t ON t.project_id = p.id
		WHERE p.user_id = ?
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT ? OFFSET ?`,
		userID, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]model.Project, len(rows))
	for i, r := range rows {
		p := r.Project
		counts := r.ProjectTaskCounts
		p.Counts = &counts
		projects[i] = p
	}
	return projects, total, nil
}

func (s *Store) UpdateProject(p *model.Project) error {
	now := s.now()
	res, err := s.db.Exec(`
		UPDATE projects
		SET name = ?, description = ?, status = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Status, p.StartDate, p.EndDate, now, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	p.UpdatedAt = now
	return nil
}

// DeleteProject removes a project; its tasks go with it via the
// foreign-key cascade.
func (s *Store) DeleteProject(id int64) error {
	res, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ProjectStatusCounts summarizes a user's projects by status.
func (s *Store) ProjectStatusCounts(userID int64) (*model.ProjectStatusCounts, error) {
	var c model.ProjectStatusCounts
	err := s.db.Get(&c, `
		SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed
		FROM projects
		WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("project status counts: %w", err)
	}
	return &c, nil
}

// ProjectStats counts a project's tasks by workflow state. today is
// the calendar-date boundary for the overdue bucket (YYYY-MM-DD).
func (s *Store) ProjectStats(projectID int64, today string) (*model.ProjectStats, error) {
	var st model.ProjectStats
	err := s.db.Get(&st, `
		SELECT COUNT(*) AS total_tasks,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_tasks,
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress_tasks,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_tasks,
			COALESCE(SUM(CASE WHEN due_date IS NOT NULL AND due_date < ?
				AND status NOT IN ('completed','cancelled') THEN 1 ELSE 0 END), 0) AS overdue_tasks
		FROM tasks
		WHERE project_id = ?`, today, projectID)
	if err != nil {
		return nil, fmt.Errorf("project stats %d: %w", projectID, err)
	}
	return &st, nil
}
