package model

// ProjectStats are the per-project task counts shown on a project page.
type ProjectStats struct {
	TotalTasks      int `db:"total_tasks" json:"total_tasks"`
	PendingTasks    int `db:"pending_tasks" json:"pending_tasks"`
	InProgressTasks int `db:"in_progress_tasks" json:"in_progress_tasks"`
	CompletedTasks  int `db:"completed_tasks" json:"completed_tasks"`
	OverdueTasks    int `db:"overdue_tasks" json:"overdue_tasks"`
}

// UserTaskStats aggregates tasks across all projects a user owns.
// Pending+InProgress+Completed+Cancelled always equals Total for a
// fixed snapshot.
type UserTaskStats struct {
	Total        int `db:"total" json:"total"`
	Pending      int `db:"pending" json:"pending"`
	InProgress   int `db:"in_progress" json:"in_progress"`
	Completed    int `db:"completed" json:"completed"`
	Cancelled    int `db:"cancelled" json:"cancelled"`
	Overdue      int `db:"overdue" json:"overdue"`
	DueSoon      int `db:"due_soon" json:"due_soon"`
	HighPriority int `db:"high_priority" json:"high_priority"`
}

// AssignedTaskStats aggregates tasks assigned to a user regardless of
// who owns the project. The owned and assigned views overlap by design.
type AssignedTaskStats struct {
	Total      int `db:"total" json:"total"`
	Pending    int `db:"pending" json:"pending"`
	InProgress int `db:"in_progress" json:"in_progress"`
	Completed  int `db:"completed" json:"completed"`
	Overdue    int `db:"overdue" json:"overdue"`
}

// ProjectStatusCounts summarizes a user's projects for the dashboard.
type ProjectStatusCounts struct {
	Total     int `db:"total" json:"total"`
	Active    int `db:"active" json:"active"`
	Completed int `db:"completed" json:"completed"`
}
