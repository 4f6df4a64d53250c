package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kidandcat/taskboard/internal/model"
)

func TestCreateTaskDefaults(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	p := createTestProject(t, s, u.ID, "Defaults")

	task := &model.Task{ProjectID: p.ID, Title: "Bare"}
	if err := s.CreateTask(task); err != nil {
		t.Fatal(err)
	}
	if task.ID == 0 {
		t.Fatal("expected non-zero task id")
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("default priority = %s, want medium", task.Priority)
	}
	if task.Status != model.TaskPending {
		t.Errorf("default status = %s, want pending", task.Status)
	}

	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Bare" || got.Priority != model.PriorityMedium || got.Status != model.TaskPending {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.CompletedAt != nil {
		t.Errorf("completed_at = %v, want nil", got.CompletedAt)
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	p := createTestProject(t, s, u.ID, "P")
	task := createTestTask(t, s, p.ID, nil)

	done := time.Now().UTC().Truncate(time.Second)
	task.Title = "Updated"
	task.Status = model.TaskCompleted
	task.CompletedAt = &done
	task.AssignedTo = &u.ID
	if err := s.UpdateTask(task); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetTask(task.ID)
	if got.Title != "Updated" || got.Status != model.TaskCompleted {
		t.Errorf("unexpected task after update: %+v", got)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Errorf("completed_at = %v, want %v", got.CompletedAt, done)
	}
	if got.AssignedTo == nil || *got.AssignedTo != u.ID {
		t.Errorf("assigned_to = %v, want %d", got.AssignedTo, u.ID)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	task := &model.Task{ID: 999, Title: "Ghost", Priority: model.PriorityLow, Status: model.TaskPending}
	if err := s.UpdateTask(task); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	p := createTestProject(t, s, u.ID, "P")
	task := createTestTask(t, s, p.ID, nil)

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTask(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestGetTaskWithRelations(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "owner@example.com")
	assignee := createTestUser(t, s, "worker@example.com")
	p := createTestProject(t, s, owner.ID, "P")
	task := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.AssignedTo = &assignee.ID
	})

	got, err := s.GetTaskWithRelations(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Project == nil || got.Project.ID != p.ID || got.Project.UserID != owner.ID {
		t.Errorf("project not loaded: %+v", got.Project)
	}
	if got.AssignedUser == nil || got.AssignedUser.Email != "worker@example.com" {
		t.Errorf("assignee not loaded: %+v", got.AssignedUser)
	}

	// Unassigned tasks load with a nil assignee.
	bare := createTestTask(t, s, p.ID, nil)
	got, err = s.GetTaskWithRelations(bare.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.AssignedUser != nil {
		t.Errorf("expected nil assignee, got %+v", got.AssignedUser)
	}
}

func TestListUserTasksScopedAndPaginated(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	other := createTestUser(t, s, "other@example.com")
	mine := createTestProject(t, s, u.ID, "Mine")
	theirs := createTestProject(t, s, other.ID, "Theirs")

	for i := 0; i < 3; i++ {
		createTestTask(t, s, mine.ID, func(task *model.Task) {
			task.Title = fmt.Sprintf("Task %d", i)
		})
	}
	createTestTask(t, s, theirs.ID, nil)

	tasks, total, err := s.ListUserTasks(u.ID, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(tasks) != 2 {
		t.Fatalf("page size = %d, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.Project.UserID != u.ID {
			t.Errorf("leaked task %d from project owned by %d", task.ID, task.Project.UserID)
		}
	}
}

func TestProjectTasksOrdering(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	p := createTestProject(t, s, u.ID, "P")

	// Same created_at second: the id breaks the tie ascending.
	first := createTestTask(t, s, p.ID, func(task *model.Task) { task.Title = "first" })
	second := createTestTask(t, s, p.ID, func(task *model.Task) { task.Title = "second" })

	tasks, err := s.ProjectTasks(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	if tasks[0].CreatedAt.Equal(tasks[1].CreatedAt) {
		if tasks[0].ID != first.ID || tasks[1].ID != second.ID {
			t.Errorf("tie-break order: got ids %d, %d", tasks[0].ID, tasks[1].ID)
		}
	}
}

func TestAssignedTasksCrossOwnership(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "owner@example.com")
	worker := createTestUser(t, s, "worker@example.com")
	p := createTestProject(t, s, owner.ID, "Owner's Project")

	assigned := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.AssignedTo = &worker.ID
	})
	createTestTask(t, s, p.ID, nil)

	tasks, err := s.AssignedTasks(worker.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != assigned.ID {
		t.Fatalf("unexpected assigned tasks: %+v", tasks)
	}
	// Assignment reaches across ownership: the worker owns no projects.
	if tasks[0].Project.UserID != owner.ID {
		t.Errorf("project owner = %d, want %d", tasks[0].Project.UserID, owner.ID)
	}
}

func TestOverdueTasks(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	p := createTestProject(t, s, u.ID, "P")

	overdue := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Title = "late"
		task.DueDate = dateOffset(-2)
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Title = "late but done"
		task.DueDate = dateOffset(-2)
		task.Status = model.TaskCompleted
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Title = "late but cancelled"
		task.DueDate = dateOffset(-5)
		task.Status = model.TaskCancelled
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Title = "due today"
		task.DueDate = dateOffset(0)
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Title = "no due date"
	})

	tasks, err := s.OverdueTasks(u.ID, today())
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != overdue.ID {
		t.Fatalf("unexpected overdue set: %+v", tasks)
	}
}

func TestDueSoonTasks(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	p := createTestProject(t, s, u.ID, "P")

	dueToday := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.DueDate = dateOffset(0)
	})
	inWindow := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.DueDate = dateOffset(5)
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.DueDate = dateOffset(10) // beyond the window
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.DueDate = dateOffset(-1) // overdue, not due soon
	})

	until := *dateOffset(7)
	tasks, err := s.DueSoonTasks(u.ID, today(), until)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d due-soon tasks, want 2", len(tasks))
	}
	// Soonest first.
	if tasks[0].ID != dueToday.ID || tasks[1].ID != inWindow.ID {
		t.Errorf("order: got ids %d, %d", tasks[0].ID, tasks[1].ID)
	}
}

func TestHighPriorityTasks(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	p := createTestProject(t, s, u.ID, "P")

	hot := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Priority = model.PriorityHigh
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Priority = model.PriorityHigh
		task.Status = model.TaskCompleted
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Priority = model.PriorityLow
	})

	tasks, err := s.HighPriorityTasks(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != hot.ID {
		t.Fatalf("unexpected high priority set: %+v", tasks)
	}
}

func TestSearchTasks(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	other := createTestUser(t, s, "other@example.com")
	p := createTestProject(t, s, u.ID, "P")
	foreign := createTestProject(t, s, other.ID, "F")

	byTitle := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Title = "Deploy staging"
	})
	byDesc := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Title = "Other"
		task.Description = "deploy to production"
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Title = "Unrelated"
	})
	createTestTask(t, s, foreign.ID, func(task *model.Task) {
		task.Title = "Deploy elsewhere"
	})

	tasks, err := s.SearchTasks(u.ID, "deploy")
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d matches, want 2", len(tasks))
	}
	found := map[int64]bool{}
	for _, task := range tasks {
		found[task.ID] = true
	}
	if !found[byTitle.ID] || !found[byDesc.ID] {
		t.Errorf("missing expected matches: %v", found)
	}
}

func TestUserTaskStats(t *testing.T) {
	s := newTestStore(t)
	u := createTestUser(t, s, "owner@example.com")
	p := createTestProject(t, s, u.ID, "P")

	createTestTask(t, s, p.ID, func(task *model.Task) { task.Status = model.TaskPending })
	createTestTask(t, s, p.ID, func(task *model.Task) { task.Status = model.TaskInProgress })
	createTestTask(t, s, p.ID, func(task *model.Task) { task.Status = model.TaskCompleted })
	createTestTask(t, s, p.ID, func(task *model.Task) { task.Status = model.TaskCancelled })
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Status = model.TaskPending
		task.DueDate = dateOffset(-1)
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Status = model.TaskPending
		task.DueDate = dateOffset(3)
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.Priority = model.PriorityHigh
	})

	st, err := s.UserTaskStats(u.ID, today(), *dateOffset(7))
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 7 {
		t.Errorf("total = %d, want 7", st.Total)
	}
	if st.Pending != 4 || st.InProgress != 1 || st.Completed != 1 || st.Cancelled != 1 {
		t.Errorf("status buckets: %+v", st)
	}
	// The buckets partition the total.
	if st.Pending+st.InProgress+st.Completed+st.Cancelled != st.Total {
		t.Errorf("buckets do not sum to total: %+v", st)
	}
	if st.Overdue != 1 || st.DueSoon != 1 || st.HighPriority != 1 {
		t.Errorf("derived buckets: %+v", st)
	}
}

func TestAssignedTaskStats(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "owner@example.com")
	worker := createTestUser(t, s, "worker@example.com")
	p := createTestProject(t, s, owner.ID, "P")

	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.AssignedTo = &worker.ID
		task.Status = model.TaskPending
		task.DueDate = dateOffset(-2)
	})
	createTestTask(t, s, p.ID, func(task *model.Task) {
		task.AssignedTo = &worker.ID
		task.Status = model.TaskCompleted
	})
	createTestTask(t, s, p.ID, nil) // unassigned, excluded

	st, err := s.AssignedTaskStats(worker.ID, today())
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 2 || st.Pending != 1 || st.Completed != 1 || st.Overdue != 1 {
		t.Errorf("unexpected assigned stats: %+v", st)
	}
}

func TestDeleteUserNullsAssignments(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "owner@example.com")
	worker := createTestUser(t, s, "worker@example.com")
	p := createTestProject(t, s, owner.ID, "P")
	task := createTestTask(t, s, p.ID, func(task *model.Task) {
		task.AssignedTo = &worker.ID
	})

	if err := s.DeleteUser(worker.ID); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.AssignedTo != nil {
		t.Errorf("assigned_to = %v, want nil after assignee deletion", got.AssignedTo)
	}
}
