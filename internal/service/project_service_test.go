package service

import (
	"errors"
	"testing"

	"github.com/kidandcat/taskboard/internal/model"
)

func TestProjectCreateValidation(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.projects.Create(e.owner, ProjectInput{Name: "   "})
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := verr["name"]; !ok {
		t.Errorf("expected name error, got %v", verr)
	}

	_, err = e.projects.Create(e.owner, ProjectInput{Name: "P", Status: "bogus"})
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := verr["status"]; !ok {
		t.Errorf("expected status error, got %v", verr)
	}

	bad := "10-06-2026"
	_, err = e.projects.Create(e.owner, ProjectInput{Name: "P", StartDate: &bad})
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := verr["start_date"]; !ok {
		t.Errorf("expected start_date error, got %v", verr)
	}
}

func TestProjectCreateDefaultsActive(t *testing.T) {
	e := newTestEnv(t)
	p := e.createProject(t, e.owner, "Fresh")
	if p.Status != model.ProjectActive {
		t.Errorf("status = %s, want active", p.Status)
	}
	if p.UserID != e.owner.ID {
		t.Errorf("owner = %d, want %d", p.UserID, e.owner.ID)
	}
}

func TestProjectOwnershipRules(t *testing.T) {
	e := newTestEnv(t)
	p := e.createProject(t, e.owner, "Private")

	// Absent id resolves to not found, not forbidden.
	if _, err := e.projects.Details(e.other, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing project err = %v, want ErrNotFound", err)
	}

	// Existing but unowned resolves to forbidden.
	if _, err := e.projects.Details(e.other, p.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("unowned details err = %v, want ErrForbidden", err)
	}
	if _, err := e.projects.Update(e.other, p.ID, ProjectInput{Name: "Hijack"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("unowned update err = %v, want ErrForbidden", err)
	}
	if err := e.projects.Delete(e.other, p.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("unowned delete err = %v, want ErrForbidden", err)
	}

	// The forbidden update wrote nothing.
	got, err := e.projects.Details(e.owner, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Private" {
		t.Errorf("name = %q after forbidden update, want Private", got.Name)
	}
}

func TestProjectUpdate(t *testing.T) {
	e := newTestEnv(t)
	p := e.createProject(t, e.owner, "Before")

	got, err := e.projects.Update(e.owner, p.ID, ProjectInput{
		Name:      "After",
		Status:    "archived",
		StartDate: date(0),
		EndDate:   date(30),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "After" || got.Status != model.ProjectArchived {
		t.Errorf("unexpected project: %+v", got)
	}
	if got.StartDate == nil || got.EndDate == nil {
		t.Error("dates not persisted")
	}
}

func TestProjectDeleteRemovesTasks(t *testing.T) {
	e := newTestEnv(t)
	p := e.createProject(t, e.owner, "Doomed")
	task := e.createTask(t, e.owner, TaskInput{ProjectID: p.ID})

	if err := e.projects.Delete(e.owner, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.tasks.Details(e.owner, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("task err = %v, want ErrNotFound after project delete", err)
	}
}

func TestProjectListScoped(t *testing.T) {
	e := newTestEnv(t)
	e.createProject(t, e.owner, "Mine A")
	e.createProject(t, e.owner, "Mine B")
	e.createProject(t, e.other, "Theirs")

	projects, total, err := e.projects.List(e.owner, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(projects) != 2 {
		t.Fatalf("got %d projects (total %d), want 2", len(projects), total)
	}
	for _, p := range projects {
		if p.UserID != e.owner.ID {
			t.Errorf("leaked project %q", p.Name)
		}
	}
}

func TestProjectStatsAndProgress(t *testing.T) {
	e := newTestEnv(t)
	p := e.createProject(t, e.owner, "Measured")

	// Four tasks, one completed: progress 25.
	e.createTask(t, e.owner, TaskInput{ProjectID: p.ID, Status: "completed"})
	for i := 0; i < 3; i++ {
		e.createTask(t, e.owner, TaskInput{ProjectID: p.ID})
	}

	stats, err := e.projects.Stats(e.owner, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalTasks != 4 || stats.CompletedTasks != 1 || stats.PendingTasks != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	details, err := e.projects.Details(e.owner, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := details.Progress(); got != 25 {
		t.Errorf("progress = %d, want 25", got)
	}

	// Complete two more: 3 of 4 -> 75.
	for _, task := range details.Tasks {
		if task.Status == model.TaskPending {
			if _, err := e.tasks.Complete(e.owner, task.ID); err != nil {
				t.Fatal(err)
			}
			break
		}
	}
	details, _ = e.projects.Details(e.owner, p.ID)
	for _, task := range details.Tasks {
		if task.Status == model.TaskPending {
			if _, err := e.tasks.Complete(e.owner, task.ID); err != nil {
				t.Fatal(err)
			}
			break
		}
	}
	details, _ = e.projects.Details(e.owner, p.ID)
	if got := details.Progress(); got != 75 {
		t.Errorf("progress = %d, want 75", got)
	}
}

func TestProjectStatusCountsForDashboard(t *testing.T) {
	e := newTestEnv(t)
	e.createProject(t, e.owner, "A")
	b := e.createProject(t, e.owner, "B")
	if _, err := e.projects.Update(e.owner, b.ID, ProjectInput{Name: "B", Status: "completed"}); err != nil {
		t.Fatal(err)
	}

	counts, err := e.projects.StatusCounts(e.owner)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Total != 2 || counts.Active != 1 || counts.Completed != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}
