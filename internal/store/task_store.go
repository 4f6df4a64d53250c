package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kidandcat/taskboard/internal/model"
)

const taskColumns = "id, project_id, assigned_to, title, description, priority, status, due_date, completed_at, created_at, updated_at"

// taskEagerSelect loads tasks with their project and assignee in one
// round trip. Ownership-scoped queries add conditions on p.user_id;
// that join is the single place the ownership predicate lives.
const taskEagerSelect = `
	SELECT t.id, t.project_id, t.assigned_to, t.title, t.description,
		t.priority, t.status, t.due_date, t.completed_at, t.created_at, t.updated_at,
		p.id, p.user_id, p.name, p.description, p.status, p.start_date, p.end_date,
		p.created_at, p.updated_at,
		u.id, u.name, u.email, u.role
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	LEFT JOIN users u ON u.id = t.assigned_to`

func (s *Store) queryTasks(query string, args ...any) ([]model.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var p model.Project
		var uID *int64
		var uName, uEmail, uRole *string
		err := rows.Scan(
			&t.ID, &t.ProjectID, &t.AssignedTo, &t.Title, &t.Description,
			&t.Priority, &t.Status, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
			&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate,
			&p.CreatedAt, &p.UpdatedAt,
			&uID, &uName, &uEmail, &uRole,
		)
		if err != nil {
			return nil, err
		}
		t.Project = &p
		if uID != nil {
			t.AssignedUser = &model.User{
				ID:    *uID,
				Name:  derefString(uName),
				Email: derefString(uEmail),
				Role:  model.UserRole(derefString(uRole)),
			}
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateTask inserts t and fills in its id and timestamps.
func (s *Store) CreateTask(t *model.Task) error {
	now := s.now()
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.Status == "" {
		t.Status = model.TaskPending
	}
	res, err := s.db.Exec(`
		INSERT INTO tasks (project_id, assigned_to, title, description, priority, status,
			due_date, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID, t.AssignedTo, t.Title, t.Description, t.Priority, t.Status,
		t.DueDate, t.CompletedAt, now, now,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

func (s *Store) GetTask(id int64) (*model.Task, error) {
	var t model.Task
	err := s.db.Get(&t, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

// GetTaskWithRelations loads a task with its project and assignee.
func (s *Store) GetTaskWithRelations(id int64) (*model.Task, error) {
	tasks, err := s.queryTasks(taskEagerSelect+" WHERE t.id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	if len(tasks) == 0 {
		return nil, ErrNotFound
	}
	return &tasks[0], nil
}

// UpdateTask writes all mutable columns of t. Callers are responsible
// for having resolved completed_at against the new status beforehand.
func (s *Store) UpdateTask(t *model.Task) error {
	now := s.now()
	res, err := s.db.Exec(`
		UPDATE tasks
		SET assigned_to = ?, title = ?, description = ?, priority = ?, status = ?,
			due_date = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		t.AssignedTo, t.Title, t.Description, t.Priority, t.Status,
		t.DueDate, t.CompletedAt, now, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	t.UpdatedAt = now
	return nil
}

func (s *Store) DeleteTask(id int64) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUserTasks returns one page of tasks under projects owned by
// userID, newest first, with project and assignee attached.
func (s *Store) ListUserTasks(userID int64, page, perPage int) ([]model.Task, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	var total int
	err := s.db.Get(&total, `
		SELECT COUNT(*) FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = ?`, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count user tasks: %w", err)
	}

	tasks, err := s.queryTasks(taskEagerSelect+`
		WHERE p.user_id = ?
		ORDER BY t.created_at DESC, t.id ASC
		LIMIT ? OFFSET ?`,
		userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list user tasks: %w", err)
	}
	return tasks, total, nil
}

// ProjectTasks returns a project's tasks, newest first, with assignees
// attached.
func (s *Store) ProjectTasks(projectID int64) ([]model.Task, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.project_id, t.assigned_to, t.title, t.description,
			t.priority, t.status, t.due_date, t.completed_at, t.created_at, t.updated_at,
			u.id, u.name, u.email, u.role
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE t.project_id = ?
		ORDER BY t.created_at DESC, t.id ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("project tasks %d: %w", projectID, err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var uID *int64
		var uName, uEmail, uRole *string
		err := rows.Scan(
			&t.ID, &t.ProjectID, &t.AssignedTo, &t.Title, &t.Description,
			&t.Priority, &t.Status, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
			&uID, &uName, &uEmail, &uRole,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project task: %w", err)
		}
		if uID != nil {
			t.AssignedUser = &model.User{
				ID:    *uID,
				Name:  derefString(uName),
				Email: derefString(uEmail),
				Role:  model.UserRole(derefString(uRole)),
			}
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// AssignedTasks returns tasks assigned to userID regardless of project
// ownership, newest first.
func (s *Store) AssignedTasks(userID int64) ([]model.Task, error) {
	tasks, err := s.queryTasks(taskEagerSelect+`
		WHERE t.assigned_to = ?
		ORDER BY t.created_at DESC, t.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("assigned tasks: %w", err)
	}
	return tasks, nil
}

// OverdueTasks returns non-final tasks under the user's projects whose
// due date is before today (YYYY-MM-DD), soonest first.
func (s *Store) OverdueTasks(userID int64, today string) ([]model.Task, error) {
	tasks, err := s.queryTasks(taskEagerSelect+`
		WHERE p.user_id = ?
			AND t.due_date IS NOT NULL AND t.due_date < ?
			AND t.status NOT IN ('completed','cancelled')
		ORDER BY t.due_date ASC, t.id ASC`, userID, today)
	if err != nil {
		return nil, fmt.Errorf("overdue tasks: %w", err)
	}
	return tasks, nil
}

// DueSoonTasks returns non-final tasks due between today and until
// inclusive (both YYYY-MM-DD), soonest first.
func (s *Store) DueSoonTasks(userID int64, today, until string) ([]model.Task, error) {
	tasks, err := s.queryTasks(taskEagerSelect+`
		WHERE p.user_id = ?
			AND t.due_date IS NOT NULL AND t.due_date >= ? AND t.due_date <= ?
			AND t.status NOT IN ('completed','cancelled')
		ORDER BY t.due_date ASC, t.id ASC`, userID, today, until)
	if err != nil {
		return nil, fmt.Errorf("due soon tasks: %w", err)
	}
	return tasks, nil
}

// HighPriorityTasks returns non-final high priority tasks under the
// user's projects, newest first.
func (s *Store) HighPriorityTasks(userID int64) ([]model.Task, error) {
	tasks, err := s.queryTasks(taskEagerSelect+`
		WHERE p.user_id = ?
			AND t.priority = 'high'
			AND t.status NOT IN ('completed','cancelled')
		ORDER BY t.created_at DESC, t.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("high priority tasks: %w", err)
	}
	return tasks, nil
}

// SearchTasks matches q as a case-insensitive substring of title or
// description within the user's projects, newest first.
func (s *Store) SearchTasks(userID int64, q string) ([]model.Task, error) {
	pattern := "%" + q + "%"
	tasks, err := s.queryTasks(taskEagerSelect+`
		WHERE p.user_id = ?
			AND (t.title LIKE ? OR t.description LIKE ?)
		ORDER BY t.created_at DESC, t.id ASC`, userID, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, nil
}

// UserTaskStats aggregates all tasks under the user's projects. today
// and dueUntil bound the overdue and due-soon buckets (YYYY-MM-DD).
func (s *Store) UserTaskStats(userID int64, today, dueUntil string) (*model.UserTaskStats, error) {
	var st model.UserTaskStats
	err := s.db.Get(&st, `
		SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN t.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN t.status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN t.status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN t.status = 'cancelled' THEN 1 ELSE 0 END), 0) AS cancelled,
			COALESCE(SUM(CASE WHEN t.due_date IS NOT NULL AND t.due_date < ?
				AND t.status NOT IN ('completed','cancelled') THEN 1 ELSE 0 END), 0) AS overdue,
			COALESCE(SUM(CASE WHEN t.due_date IS NOT NULL AND t.due_date >= ? AND t.due_date <= ?
				AND t.status NOT IN ('completed','cancelled') THEN 1 ELSE 0 END), 0) AS due_soon,
			COALESCE(SUM(CASE WHEN t.priority = 'high'
				AND t.status NOT IN ('completed','cancelled') THEN 1 ELSE 0 END), 0) AS high_priority
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.user_id = ?`,
		today, today, dueUntil, userID)
	if err != nil {
		return nil, fmt.Errorf("user task stats: %w", err)
	}
	return &st, nil
}

// AssignedTaskStats aggregates tasks assigned to the user across all
// projects.
func (s *Store) AssignedTaskStats(userID int64, today string) (*model.AssignedTaskStats, error) {
	var st model.AssignedTaskStats
	err := s.db.Get(&st, `
		SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN due_date IS NOT NULL AND due_date < ?
				AND status NOT IN ('completed','cancelled') THEN 1 ELSE 0 END), 0) AS overdue
		FROM tasks
		WHERE assigned_to = ?`,
		today, userID)
	if err != nil {
		return nil, fmt.Errorf("assigned task stats: %w", err)
	}
	return &st, nil
}
