package service

import (
	"testing"
	"time"

	"github.com/kidandcat/taskboard/internal/model"
	"github.com/kidandcat/taskboard/internal/store"
)

// testNow is a fixed mid-day clock so date boundaries never flip while
// a test runs.
var testNow = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store    *store.Store
	projects *ProjectService
	tasks    *TaskService
	owner    *model.User
	other    *model.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	owner, err := st.CreateUser("Owner", "owner@example.com", model.RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	other, err := st.CreateUser("Other", "other@example.com", model.RoleUser)
	if err != nil {
		t.Fatal(err)
	}

	projects := NewProjectService(st)
	projects.Now = func() time.Time { return testNow }
	tasks := NewTaskService(st)
	tasks.Now = func() time.Time { return testNow }

	return &testEnv{store: st, projects: projects, tasks: tasks, owner: owner, other: other}
}

func (e *testEnv) createProject(t *testing.T, actor *model.User, name string) *model.Project {
	t.Helper()
	p, err := e.projects.Create(actor, ProjectInput{Name: name})
	if err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return p
}

func (e *testEnv) createTask(t *testing.T, actor *model.User, in TaskInput) *model.Task {
	t.Helper()
	if in.Title == "" {
		in.Title = "Test Task"
	}
	task, err := e.tasks.Create(actor, in)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// date returns testNow shifted by days, as YYYY-MM-DD.
func date(days int) *string {
	s := model.Today(testNow).AddDate(0, 0, days).Format(model.DateLayout)
	return &s
}
