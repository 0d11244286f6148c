package models

import "slices"

type TaskCategory string

const (
	TaskCategoryCeremony       TaskCategory = "ceremony"
	TaskCategoryReception      TaskCategory = "reception"
	TaskCategoryAttire         TaskCategory = "attire"
	TaskCategoryBeauty         TaskCategory = "beauty"
	TaskCategoryFlowers        TaskCategory = "flowers"
	TaskCategoryPhotography    TaskCategory = "photography"
	TaskCategoryMusic          TaskCategory = "music"
	TaskCategoryTransportation TaskCategory = "transportation"
	TaskCategoryHoneymoon      TaskCategory = "honeymoon"
	TaskCategoryLegal          TaskCategory = "legal"
	TaskCategoryOther          TaskCategory = "other"
)

// AllTaskCategories returns the task categories in their default display order.
func AllTaskCategories() []TaskCategory {
	return []TaskCategory{
		TaskCategoryCeremony,
		TaskCategoryReception,
		TaskCategoryAttire,
		TaskCategoryBeauty,
		TaskCategoryFlowers,
		TaskCategoryPhotography,
		TaskCategoryMusic,
		TaskCategoryTransportation,
		TaskCategoryHoneymoon,
		TaskCategoryLegal,
		TaskCategoryOther,
	}
}

func (v TaskCategory) Valid() bool { return slices.Contains(AllTaskCategories(), v) }

func ParseTaskCategory(s string) (TaskCategory, error) {
	return parseEnum("task category", s, AllTaskCategories())
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

func AllTaskPriorities() []TaskPriority {
	return []TaskPriority{TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow}
}

func (v TaskPriority) Valid() bool { return slices.Contains(AllTaskPriorities(), v) }

func ParseTaskPriority(s string) (TaskPriority, error) {
	return parseEnum("task priority", s, AllTaskPriorities())
}

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
)

func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue}
}

func (v TaskStatus) Valid() bool { return slices.Contains(AllTaskStatuses(), v) }

func ParseTaskStatus(s string) (TaskStatus, error) {
	return parseEnum("task status", s, AllTaskStatuses())
}

type TimelineTask struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Category      TaskCategory `json:"category"`
	Priority      TaskPriority `json:"priority"`
	Status        TaskStatus   `json:"status"`
	DueDate       string       `json:"dueDate"`                 // YYYY-MM-DD or ISO-8601 timestamp
	CompletedDate string       `json:"completedDate,omitempty"` // set only while Status is completed
	DependsOn     []string     `json:"dependsOn"`               // task IDs, not validated on write
	Notes         string       `json:"notes,omitempty"`
	AssignedTo    []string     `json:"assignedTo"`
	Attachments   []string     `json:"attachments"`
}

type TimelineDetails struct {
	Tasks      []TimelineTask                   `json:"tasks"`
	Categories map[TaskCategory]CategorySetting `json:"categories"`
}

// NewTimelineDetails returns the document written on first access.
func NewTimelineDetails() TimelineDetails {
	return TimelineDetails{
		Tasks:      []TimelineTask{},
		Categories: defaultCategories(AllTaskCategories()),
	}
}

// TaskPatch carries the editable task fields. Status and CompletedDate
// change only through the status update.
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *TaskCategory
	Priority    *TaskPriority
	DueDate     *string
	DependsOn   *[]string
	Notes       *string
	AssignedTo  *[]string
	Attachments *[]string
}

func (p TaskPatch) Apply(task *TimelineTask) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Category != nil {
		task.Category = *p.Category
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.DueDate != nil {
		task.DueDate = *p.DueDate
	}
	if p.DependsOn != nil {
		task.DependsOn = slices.Clone(*p.DependsOn)
	}
	if p.Notes != nil {
		task.Notes = *p.Notes
	}
	if p.AssignedTo != nil {
		task.AssignedTo = slices.Clone(*p.AssignedTo)
	}
	if p.Attachments != nil {
		task.Attachments = slices.Clone(*p.Attachments)
	}
}
