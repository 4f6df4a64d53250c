package service

import (
	"errors"
	"strings"
	"time"

	"github.com/kidandcat/taskboard/internal/model"
	"github.com/kidandcat/taskboard/internal/store"
)

// DefaultDueSoonDays is the window used when a caller does not ask for
// a specific horizon.
const DefaultDueSoonDays = 7

// TaskService handles task CRUD, filtering and statistics. Ownership
// of a task follows its project's owner; assignment deliberately does
// not confer ownership.
type TaskService struct {
	store *store.Store

	// Now is the clock used for due-date computations and completion
	// stamps; tests override it.
	Now func() time.Time
}

func NewTaskService(st *store.Store) *TaskService {
	return &TaskService{store: st, Now: time.Now}
}

// TaskInput carries the writable fields of a task. ProjectID is only
// honored on create; a task never moves between projects.
type TaskInput struct {
	ProjectID   int64   `json:"project_id"`
	AssignedTo  *int64  `json:"assigned_to"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
}

func (s *TaskService) today() string {
	return model.Today(s.Now()).Format(model.DateLayout)
}

func (s *TaskService) validateTaskInput(in TaskInput) error {
	errs := ValidationError{}
	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = "title is required"
	}
	if in.Priority != "" && !model.TaskPriority(in.Priority).Valid() {
		errs["priority"] = "invalid priority"
	}
	if in.Status != "" && !model.TaskStatus(in.Status).Valid() {
		errs["status"] = "invalid status"
	}
	if in.DueDate != nil {
		if _, err := time.Parse(model.DateLayout, *in.DueDate); err != nil {
			errs["due_date"] = "invalid date, expected YYYY-MM-DD"
		}
	}
	if in.AssignedTo != nil {
		if _, err := s.store.GetUser(*in.AssignedTo); errors.Is(err, store.ErrNotFound) {
			errs["assigned_to"] = "user does not exist"
		} else if err != nil {
			return err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// authorizeTask resolves a task and applies the ownership rule through
// its project: NotFound when the id does not resolve, Forbidden when
// the actor does not own the project.
func (s *TaskService) authorizeTask(actor *model.User, id int64) (*model.Task, error) {
	t, err := s.store.GetTask(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p, err := s.store.GetProject(t.ProjectID)
	if err != nil {
		return nil, err
	}
	if p.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return t, nil
}

// List returns one page of tasks under the actor's projects, newest
// first, with project and assignee attached.
func (s *TaskService) List(actor *model.User, page, perPage int) ([]model.Task, int, error) {
	return s.store.ListUserTasks(actor.ID, page, perPage)
}

// ForProject returns the tasks of one of the actor's projects.
func (s *TaskService) ForProject(actor *model.User, projectID int64) ([]model.Task, error) {
	p, err := s.store.GetProject(projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return s.store.ProjectTasks(projectID)
}

// Assigned returns tasks assigned to the actor on any project,
// including projects the actor does not own.
func (s *TaskService) Assigned(actor *model.User) ([]model.Task, error) {
	return s.store.AssignedTasks(actor.ID)
}

// Overdue returns the actor's overdue tasks, soonest due first.
func (s *TaskService) Overdue(actor *model.User) ([]model.Task, error) {
	return s.store.OverdueTasks(actor.ID, s.today())
}

// DueSoon returns the actor's non-final tasks due within days of
// today. days <= 0 means the default 7-day window.
func (s *TaskService) DueSoon(actor *model.User, days int) ([]model.Task, error) {
	if days <= 0 {
		days = DefaultDueSoonDays
	}
	today := model.Today(s.Now())
	until := today.AddDate(0, 0, days).Format(model.DateLayout)
	return s.store.DueSoonTasks(actor.ID, today.Format(model.DateLayout), until)
}

// HighPriority returns the actor's open high priority tasks.
func (s *TaskService) HighPriority(actor *model.User) ([]model.Task, error) {
	return s.store.HighPriorityTasks(actor.ID)
}

// Search matches q against title and description within the actor's
// projects.
func (s *TaskService) Search(actor *model.User, q string) ([]model.Task, error) {
	return s.store.SearchTasks(actor.ID, q)
}

// UserStats aggregates tasks across the actor's owned projects.
func (s *TaskService) UserStats(actor *model.User) (*model.UserTaskStats, error) {
	today := model.Today(s.Now())
	until := today.AddDate(0, 0, DefaultDueSoonDays).Format(model.DateLayout)
	return s.store.UserTaskStats(actor.ID, today.Format(model.DateLayout), until)
}

// AssignedStats aggregates tasks assigned to the actor on any project.
func (s *TaskService) AssignedStats(actor *model.User) (*model.AssignedTaskStats, error) {
	return s.store.AssignedTaskStats(actor.ID, s.today())
}

// Create validates in and inserts a task under one of the actor's
// projects. The status/completed_at coupling applies here too: a task
// created directly in completed state gets its completion stamp.
func (s *TaskService) Create(actor *model.User, in TaskInput) (*model.Task, error) {
	if in.ProjectID == 0 {
		return nil, ValidationError{"project_id": "project is required"}
	}
	p, err := s.store.GetProject(in.ProjectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ValidationError{"project_id": "project does not exist"}
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != actor.ID {
		return nil, ErrForbidden
	}
	if err := s.validateTaskInput(in); err != nil {
		return nil, err
	}

	priority := model.PriorityMedium
	if in.Priority != "" {
		priority = model.TaskPriority(in.Priority)
	}
	status := model.TaskPending
	if in.Status != "" {
		status = model.TaskStatus(in.Status)
	}
	t := &model.Task{
		ProjectID:   in.ProjectID,
		AssignedTo:  in.AssignedTo,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     in.DueDate,
		CompletedAt: model.ResolveCompletedAt(status, nil, s.Now()),
	}
	if err := s.store.CreateTask(t); err != nil {
		return nil, err
	}
	return s.store.GetTaskWithRelations(t.ID)
}

// Update validates in and rewrites the task, keeping completed_at
// coupled to the status it ends up in. The refreshed entity is
// returned with relations loaded.
func (s *TaskService) Update(actor *model.User, id int64, in TaskInput) (*model.Task, error) {
	t, err := s.authorizeTask(actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateTaskInput(in); err != nil {
		return nil, err
	}

	t.Title = strings.TrimSpace(in.Title)
	t.Description = in.Description
	t.AssignedTo = in.AssignedTo
	t.DueDate = in.DueDate
	if in.Priority != "" {
		t.Priority = model.TaskPriority(in.Priority)
	}
	if in.Status != "" {
		t.Status = model.TaskStatus(in.Status)
	}
	t.CompletedAt = model.ResolveCompletedAt(t.Status, t.CompletedAt, s.Now())

	if err := s.store.UpdateTask(t); err != nil {
		return nil, err
	}
	return s.store.GetTaskWithRelations(id)
}

// Assign sets or clears the task's assignee. Only the project owner
// may assign, but the assignee can be any user.
func (s *TaskService) Assign(actor *model.User, id int64, userID *int64) (*model.Task, error) {
	t, err := s.authorizeTask(actor, id)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		if _, err := s.store.GetUser(*userID); errors.Is(err, store.ErrNotFound) {
			return nil, ValidationError{"assigned_to": "user does not exist"}
		} else if err != nil {
			return nil, err
		}
	}
	t.AssignedTo = userID
	if err := s.store.UpdateTask(t); err != nil {
		return nil, err
	}
	return s.store.GetTaskWithRelations(id)
}

// Complete marks the task completed through the same coupled write
// path as any other status change.
func (s *TaskService) Complete(actor *model.User, id int64) (*model.Task, error) {
	t, err := s.authorizeTask(actor, id)
	if err != nil {
		return nil, err
	}
	t.Status = model.TaskCompleted
	t.CompletedAt = model.ResolveCompletedAt(t.Status, t.CompletedAt, s.Now())
	if err := s.store.UpdateTask(t); err != nil {
		return nil, err
	}
	return s.store.GetTaskWithRelations(id)
}

// Details returns the task with relations if the actor owns its
// project.
func (s *TaskService) Details(actor *model.User, id int64) (*model.Task, error) {
	if _, err := s.authorizeTask(actor, id); err != nil {
		return nil, err
	}
	return s.store.GetTaskWithRelations(id)
}

// Delete removes the task.
func (s *TaskService) Delete(actor *model.User, id int64) error {
	if _, err := s.authorizeTask(actor, id); err != nil {
		return err
	}
	return s.store.DeleteTask(id)
}
