package api

import (
	"time"

	"github.com/kidandcat/taskboard/internal/model"
)

// Transfer shapes. Enum values never travel alone: they carry their
// label and display metadata so clients don't re-encode the taxonomy.
// Optional fields are emitted only when the underlying data was loaded
// or requested; a partially-loaded entity omits dependent fields
// rather than failing.

type ProjectStatusRef struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type TaskStatusRef struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Color   string `json:"color"`
	IsFinal bool   `json:"is_final"`
}

type TaskPriorityRef struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Weight int    `json:"weight"`
}

type UserRoleRef struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type UserResource struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Role            *UserRoleRef       `json:"role,omitempty"`
	EmailVerifiedAt *string            `json:"email_verified_at,omitempty"`
	CreatedAt       *string            `json:"created_at,omitempty"`
	UpdatedAt       *string            `json:"updated_at,omitempty"`
	Projects        []*ProjectResource `json:"projects,omitempty"`
	AssignedTasks   []*TaskResource    `json:"assigned_tasks,omitempty"`
}

type ProjectResource struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      *ProjectStatusRef `json:"status,omitempty"`
	StartDate   *string           `json:"start_date,omitempty"`
	EndDate     *string           `json:"end_date,omitempty"`
	CreatedAt   *string           `json:"created_at,omitempty"`
	UpdatedAt   *string           `json:"updated_at,omitempty"`

	// Progress is computed only when the tasks relation was loaded.
	Progress *int `json:"progress,omitempty"`

	User  *UserResource   `json:"user,omitempty"`
	Tasks []*TaskResource `json:"tasks,omitempty"`

	TasksCount           *int `json:"tasks_count,omitempty"`
	CompletedTasksCount  *int `json:"completed_tasks_count,omitempty"`
	PendingTasksCount    *int `json:"pending_tasks_count,omitempty"`
	InProgressTasksCount *int `json:"in_progress_tasks_count,omitempty"`
}

type TaskResource struct {
	ID          int64            `json:"id"`
	ProjectID   int64            `json:"project_id"`
	AssignedTo  *int64           `json:"assigned_to"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Priority    *TaskPriorityRef `json:"priority,omitempty"`
	Status      *TaskStatusRef   `json:"status,omitempty"`
	DueDate     *string          `json:"due_date,omitempty"`
	CompletedAt *string          `json:"completed_at,omitempty"`
	CreatedAt   *string          `json:"created_at,omitempty"`
	UpdatedAt   *string          `json:"updated_at,omitempty"`

	IsOverdue    bool `json:"is_overdue"`
	DaysUntilDue *int `json:"days_until_due"`

	Project      *ProjectResource `json:"project,omitempty"`
	AssignedUser *UserResource    `json:"assigned_user,omitempty"`
}

func isoTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func isoTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return isoTime(*t)
}

func NewUserResource(u *model.User, now time.Time) *UserResource {
	if u == nil {
		return nil
	}
	r := &UserResource{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		EmailVerifiedAt: isoTimePtr(u.EmailVerifiedAt),
		CreatedAt:       isoTime(u.CreatedAt),
		UpdatedAt:       isoTime(u.UpdatedAt),
	}
	if u.Role.Valid() {
		r.Role = &UserRoleRef{Value: string(u.Role), Label: u.Role.Label()}
	}
	if u.Projects != nil {
		r.Projects = NewProjectResources(u.Projects, now)
	}
	if u.AssignedTasks != nil {
		r.AssignedTasks = NewTaskResources(u.AssignedTasks, now)
	}
	return r
}

func NewProjectResource(p *model.Project, now time.Time) *ProjectResource {
	if p == nil {
		return nil
	}
	r := &ProjectResource{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   isoTime(p.CreatedAt),
		UpdatedAt:   isoTime(p.UpdatedAt),
		User:        NewUserResource(p.User, now),
	}
	if p.Status.Valid() {
		r.Status = &ProjectStatusRef{
			Value: string(p.Status),
			Label: p.Status.Label(),
			Color: p.Status.Color(),
		}
	}
	if p.TasksLoaded() {
		progress := p.Progress()
		r.Progress = &progress
		r.Tasks = NewTaskResources(p.Tasks, now)
	}
	if p.Counts != nil {
		r.TasksCount = &p.Counts.Tasks
		r.CompletedTasksCount = &p.Counts.Completed
		r.PendingTasksCount = &p.Counts.Pending
		r.InProgressTasksCount = &p.Counts.InProgress
	}
	return r
}

func NewProjectResources(projects []model.Project, now time.Time) []*ProjectResource {
	out := make([]*ProjectResource, len(projects))
	for i := range projects {
		out[i] = NewProjectResource(&projects[i], now)
	}
	return out
}

func NewTaskResource(t *model.Task, now time.Time) *TaskResource {
	if t == nil {
		return nil
	}
	r := &TaskResource{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		AssignedTo:   t.AssignedTo,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate,
		CompletedAt:  isoTimePtr(t.CompletedAt),
		CreatedAt:    isoTime(t.CreatedAt),
		UpdatedAt:    isoTime(t.UpdatedAt),
		IsOverdue:    t.IsOverdue(now),
		Project:      NewProjectResource(t.Project, now),
		AssignedUser: NewUserResource(t.AssignedUser, now),
	}
	if days, ok := t.DaysUntilDue(now); ok {
		r.DaysUntilDue = &days
	}
	if t.Priority.Valid() {
		r.Priority = &TaskPriorityRef{
			Value:  string(t.Priority),
			Label:  t.Priority.Label(),
			Color:  t.Priority.Color(),
			Weight: t.Priority.Weight(),
		}
	}
	if t.Status.Valid() {
		r.Status = &TaskStatusRef{
			Value:   string(t.Status),
			Label:   t.Status.Label(),
			Color:   t.Status.Color(),
			IsFinal: t.Status.IsFinal(),
		}
	}
	return r
}

func NewTaskResources(tasks []model.Task, now time.Time) []*TaskResource {
	out := make([]*TaskResource, len(tasks))
	for i := range tasks {
		out[i] = NewTaskResource(&tasks[i], now)
	}
	return out
}
