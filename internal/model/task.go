package model

import "time"

// DateLayout is the persisted format of calendar-date fields
// (due dates, project start/end dates). They carry no time component.
const DateLayout = "2006-01-02"

// Task is a unit of work under a project, optionally assigned to a
// user. Assignment deliberately crosses ownership boundaries: the
// assignee need not own the task's project.
type Task struct {
	ID          int64        `db:"id"`
	ProjectID   int64        `db:"project_id"`
	AssignedTo  *int64       `db:"assigned_to"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Priority    TaskPriority `db:"priority"`
	Status      TaskStatus   `db:"status"`
	DueDate     *string      `db:"due_date"` // YYYY-MM-DD
	CompletedAt *time.Time   `db:"completed_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`

	// Loaded relations (nil when not requested).
	Project      *Project `db:"-"`
	AssignedUser *User    `db:"-"`
}

// Today truncates now to its UTC calendar date. All date-only
// comparisons (overdue, due-soon, days-until-due) use this boundary so
// the Go side agrees with SQL's date('now').
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (t *Task) dueDate() (time.Time, bool) {
	if t.DueDate == nil {
		return time.Time{}, false
	}
	due, err := time.ParseInLocation(DateLayout, *t.DueDate, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// IsOverdue reports whether the task's due date is strictly before
// now's calendar date and the task is not in a final state.
func (t *Task) IsOverdue(now time.Time) bool {
	due, ok := t.dueDate()
	if !ok {
		return false
	}
	return due.Before(Today(now)) && !t.Status.IsFinal()
}

// DaysUntilDue returns the signed whole-day distance from now's
// calendar date to the due date (negative = overdue magnitude).
// ok is false when the task has no due date.
func (t *Task) DaysUntilDue(now time.Time) (days int, ok bool) {
	due, okDue := t.dueDate()
	if !okDue {
		return 0, false
	}
	return int(due.Sub(Today(now)).Hours() / 24), true
}

// ResolveCompletedAt applies the status/completed_at coupling for a
// write that leaves the task in status next: entering completed stamps
// the time once, any non-completed status clears it. Every write path
// that touches status must run its values through this before hitting
// the store.
func ResolveCompletedAt(next TaskStatus, current *time.Time, now time.Time) *time.Time {
	if next == TaskCompleted {
		if current != nil {
			return current
		}
		ts := now.UTC()
		return &ts
	}
	return nil
}
