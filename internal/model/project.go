package model

import (
	"math"
	"time"
)

// Project groups tasks under a single owning user. Deleting a project
// cascades to its tasks.
type Project struct {
	ID          int64         `db:"id"`
	UserID      int64         `db:"user_id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	Status      ProjectStatus `db:"status"`
	StartDate   *string       `db:"start_date"` // YYYY-MM-DD
	EndDate     *string       `db:"end_date"`   // YYYY-MM-DD
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`

	// Loaded relations. Tasks is non-nil (possibly empty) only when the
	// relation was explicitly loaded; callers use that to decide whether
	// derived task data may be computed.
	User  *User  `db:"-"`
	Tasks []Task `db:"-"`

	// Counts is populated by list queries that annotate aggregates.
	Counts *ProjectTaskCounts `db:"-"`
}

// ProjectTaskCounts carries per-project task aggregates for index views.
type ProjectTaskCounts struct {
	Tasks      int `db:"tasks_count"`
	Completed  int `db:"completed_tasks_count"`
	Pending    int `db:"pending_tasks_count"`
	InProgress int `db:"in_progress_tasks_count"`
}

// TasksLoaded reports whether the tasks relation was loaded, as opposed
// to the project simply having no tasks.
func (p *Project) TasksLoaded() bool {
	return p.Tasks != nil
}

// Progress is the completion percentage over the loaded tasks:
// round(100 * completed / total), 0 when the project has no tasks.
func (p *Project) Progress() int {
	total := len(p.Tasks)
	if total == 0 {
		return 0
	}
	completed := 0
	for i := range p.Tasks {
		if p.Tasks[i].Status == TaskCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
