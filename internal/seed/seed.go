// Package seed fills the database with sample data for local
// development.
package seed

import (
	"fmt"
	"log"
	"time"

	"github.com/kidandcat/taskboard/internal/model"
	"github.com/kidandcat/taskboard/internal/store"
)

func date(t time.Time) *string {
	s := t.Format(model.DateLayout)
	return &s
}

// Run creates two users, a project per status for the demo account,
// and tasks spread across priorities and workflow states, including
// overdue and due-soon examples.
func Run(st *store.Store) error {
	admin, err := st.EnsureAdmin("admin@example.com")
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	demo, err := st.GetUserByEmail("demo@example.com")
	if err != nil {
		demo, err = st.CreateUser("Demo User", "demo@example.com", model.RoleUser)
		if err != nil {
			return fmt.Errorf("seed demo user: %w", err)
		}
	}

	now := time.Now().UTC()

	website := &model.Project{
		UserID:      demo.ID,
		Name:        "Website Redesign",
		Description: "Refresh the marketing site and move it to the new CMS.",
		Status:      model.ProjectActive,
		StartDate:   date(now.AddDate(0, 0, -30)),
		EndDate:     date(now.AddDate(0, 0, 60)),
	}
	if err := st.CreateProject(website); err != nil {
		return err
	}

	launch := &model.Project{
		UserID:      demo.ID,
		Name:        "Product Launch",
		Description: "Everything needed for the Q3 launch.",
		Status:      model.ProjectCompleted,
	}
	if err := st.CreateProject(launch); err != nil {
		return err
	}

	archive := &model.Project{
		UserID: demo.ID,
		Name:   "Old Intranet",
		Status: model.ProjectArchived,
	}
	if err := st.CreateProject(archive); err != nil {
		return err
	}

	tasks := []model.Task{
		{
			ProjectID:   website.ID,
			Title:       "Draft new homepage copy",
			Description: "Work with marketing on the hero section.",
			Priority:    model.PriorityHigh,
			Status:      model.TaskPending,
			DueDate:     date(now.AddDate(0, 0, -2)), // overdue
		},
		{
			ProjectID:  website.ID,
			AssignedTo: &admin.ID,
			Title:      "Migrate blog posts",
			Priority:   model.PriorityMedium,
			Status:     model.TaskInProgress,
			DueDate:    date(now.AddDate(0, 0, 3)), // due soon
		},
		{
			ProjectID: website.ID,
			Title:     "Set up staging environment",
			Priority:  model.PriorityLow,
			Status:    model.TaskCompleted,
		},
		{
			ProjectID: website.ID,
			Title:     "Evaluate old analytics vendor",
			Priority:  model.PriorityLow,
			Status:    model.TaskCancelled,
		},
		{
			ProjectID:  launch.ID,
			AssignedTo: &demo.ID,
			Title:      "Send launch announcement",
			Priority:   model.PriorityHigh,
			Status:     model.TaskCompleted,
		},
	}
	for i := range tasks {
		t := &tasks[i]
		t.CompletedAt = model.ResolveCompletedAt(t.Status, nil, now)
		if err := st.CreateTask(t); err != nil {
			return err
		}
	}

	log.Printf("Seeded users admin@example.com and demo@example.com, %d projects, %d tasks", 3, len(tasks))
	return nil
}
