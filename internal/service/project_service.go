package service

import (
	"errors"
	"strings"
	"time"

	"github.com/kidandcat/taskboard/internal/model"
	"github.com/kidandcat/taskboard/internal/store"
)

// ProjectService handles project CRUD and aggregates. Every operation
// on a specific project verifies the actor owns it before touching
// anything else.
type ProjectService struct {
	store *store.Store

	// Now is the clock used for date computations; tests override it.
	Now func() time.Time
}

func NewProjectService(st *store.Store) *ProjectService {
	return &ProjectService{store: st, Now: time.Now}
}

// ProjectInput carries the writable fields of a project.
type ProjectInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func validateProjectInput(in ProjectInput) error {
	errs := ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if in.Status != "" && !model.ProjectStatus(in.Status).Valid() {
		errs["status"] = "invalid status"
	}
	if in.StartDate != nil {
		if _, err := time.Parse(model.DateLayout, *in.StartDate); err != nil {
			errs["start_date"] = "invalid date, expected YYYY-MM-DD"
		}
	}
	if in.EndDate != nil {
		if _, err := time.Parse(model.DateLayout, *in.EndDate); err != nil {
			errs["end_date"] = "invalid date, expected YYYY-MM-DD"
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// authorizeProject applies the ownership rule: NotFound when the id
// does not resolve, Forbidden when it resolves to someone else's
// project.
func (s *ProjectService) authorizeProject(actor *model.User, id int64) (*model.Project, error) {
	p, err := s.store.GetProject(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return p, nil
}

// List returns one page of the actor's projects, newest first, with
// task count annotations.
func (s *ProjectService) List(actor *model.User, page, perPage int) ([]model.Project, int, error) {
	return s.store.ListProjects(actor.ID, page, perPage)
}

// Details returns the actor's project with its tasks loaded.
func (s *ProjectService) Details(actor *model.User, id int64) (*model.Project, error) {
	if _, err := s.authorizeProject(actor, id); err != nil {
		return nil, err
	}
	return s.store.GetProjectWithTasks(id)
}

// Stats returns the task counts for one of the actor's projects.
func (s *ProjectService) Stats(actor *model.User, id int64) (*model.ProjectStats, error) {
	if _, err := s.authorizeProject(actor, id); err != nil {
		return nil, err
	}
	today := model.Today(s.Now()).Format(model.DateLayout)
	return s.store.ProjectStats(id, today)
}

// StatusCounts summarizes the actor's projects for the dashboard.
func (s *ProjectService) StatusCounts(actor *model.User) (*model.ProjectStatusCounts, error) {
	return s.store.ProjectStatusCounts(actor.ID)
}

// Create validates in and inserts a project owned by the actor.
func (s *ProjectService) Create(actor *model.User, in ProjectInput) (*model.Project, error) {
	if err := validateProjectInput(in); err != nil {
		return nil, err
	}
	status := model.ProjectActive
	if in.Status != "" {
		status = model.ProjectStatus(in.Status)
	}
	p := &model.Project{
		UserID:      actor.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.store.CreateProject(p); err != nil {
		return nil, err
	}
	return s.store.GetProject(p.ID)
}

// Update validates in and rewrites the actor's project, returning the
// refreshed entity.
func (s *ProjectService) Update(actor *model.User, id int64, in ProjectInput) (*model.Project, error) {
	p, err := s.authorizeProject(actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateProjectInput(in); err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	if in.Status != "" {
		p.Status = model.ProjectStatus(in.Status)
	}
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	if err := s.store.UpdateProject(p); err != nil {
		return nil, err
	}
	return s.store.GetProject(id)
}

// Delete removes the actor's project and, through the cascade, its
// tasks.
func (s *ProjectService) Delete(actor *model.User, id int64) error {
	if _, err := s.authorizeProject(actor, id); err != nil {
		return err
	}
	return s.store.DeleteProject(id)
}
