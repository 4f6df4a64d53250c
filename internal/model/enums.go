package model

// The status and priority vocabularies are persisted as their string
// values; renaming a value is a data migration, not a refactor.

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// variant holds the display metadata attached to an enum value.
type variant struct {
	Label  string
	Color  string
	Weight int // priorities only
}

var projectStatuses = []ProjectStatus{ProjectActive, ProjectCompleted, ProjectArchived}

var projectStatusInfo = map[ProjectStatus]variant{
	ProjectActive:    {Label: "Active", Color: "green"},
	ProjectCompleted: {Label: "Completed", Color: "blue"},
	ProjectArchived:  {Label: "Archived", Color: "gray"},
}

var taskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted, TaskCancelled}

var taskStatusInfo = map[TaskStatus]variant{
	TaskPending:    {Label: "Pending", Color: "yellow"},
	TaskInProgress: {Label: "In Progress", Color: "blue"},
	TaskCompleted:  {Label: "Completed", Color: "green"},
	TaskCancelled:  {Label: "Cancelled", Color: "red"},
}

var taskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

var taskPriorityInfo = map[TaskPriority]variant{
	PriorityLow:    {Label: "Low", Color: "gray", Weight: 1},
	PriorityMedium: {Label: "Medium", Color: "yellow", Weight: 2},
	PriorityHigh:   {Label: "High", Color: "red", Weight: 3},
}

var userRoles = []UserRole{RoleAdmin, RoleUser}

var userRoleInfo = map[UserRole]variant{
	RoleAdmin: {Label: "Administrator"},
	RoleUser:  {Label: "User"},
}

func (s ProjectStatus) Valid() bool   { _, ok := projectStatusInfo[s]; return ok }
func (s ProjectStatus) Label() string { return projectStatusInfo[s].Label }
func (s ProjectStatus) Color() string { return projectStatusInfo[s].Color }

func (s TaskStatus) Valid() bool   { _, ok := taskStatusInfo[s]; return ok }
func (s TaskStatus) Label() string { return taskStatusInfo[s].Label }
func (s TaskStatus) Color() string { return taskStatusInfo[s].Color }

// IsFinal reports whether the status ends the task's workflow.
// Overdue and due-soon computations skip final tasks.
func (s TaskStatus) IsFinal() bool {
	return s == TaskCompleted || s == TaskCancelled
}

func (p TaskPriority) Valid() bool   { _, ok := taskPriorityInfo[p]; return ok }
func (p TaskPriority) Label() string { return taskPriorityInfo[p].Label }
func (p TaskPriority) Color() string { return taskPriorityInfo[p].Color }

// Weight orders priorities by importance (low=1, medium=2, high=3).
func (p TaskPriority) Weight() int { return taskPriorityInfo[p].Weight }

func (r UserRole) Valid() bool   { _, ok := userRoleInfo[r]; return ok }
func (r UserRole) Label() string { return userRoleInfo[r].Label }

func ProjectStatuses() []ProjectStatus { return projectStatuses }
func TaskStatuses() []TaskStatus       { return taskStatuses }
func TaskPriorities() []TaskPriority   { return taskPriorities }
func UserRoles() []UserRole            { return userRoles }

func ProjectStatusValues() []string {
	vals := make([]string, len(projectStatuses))
	for i, s := range projectStatuses {
		vals[i] = string(s)
	}
	return vals
}

func TaskStatusValues() []string {
	vals := make([]string, len(taskStatuses))
	for i, s := range taskStatuses {
		vals[i] = string(s)
	}
	return vals
}

func TaskPriorityValues() []string {
	vals := make([]string, len(taskPriorities))
	for i, p := range taskPriorities {
		vals[i] = string(p)
	}
	return vals
}

// Option is a (value, label) pair handed to clients for select inputs.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func ProjectStatusOptions() []Option {
	opts := make([]Option, len(projectStatuses))
	for i, s := range projectStatuses {
		opts[i] = Option{Value: string(s), Label: s.Label()}
	}
	return opts
}

func TaskStatusOptions() []Option {
	opts := make([]Option, len(taskStatuses))
	for i, s := range taskStatuses {
		opts[i] = Option{Value: string(s), Label: s.Label()}
	}
	return opts
}

func TaskPriorityOptions() []Option {
	opts := make([]Option, len(taskPriorities))
	for i, p := range taskPriorities {
		opts[i] = Option{Value: string(p), Label: p.Label()}
	}
	return opts
}
