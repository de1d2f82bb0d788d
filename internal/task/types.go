package task

import "time"

// Priority is a task's urgency level
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority maps a free-form string onto a Priority.
// Unrecognized or empty input defaults to Medium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// Task represents one unit of work
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"` // ISO-8601 timestamp
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category"` // category ID; dangling refs tolerated
	Completed   bool       `json:"completed"`
	CreatedAt   string     `json:"createdAt"` // ISO-8601, set once at creation
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Category represents a named label with presentation metadata
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// TaskInput holds the caller-supplied fields for a new task
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    Priority
	Category    string
}

// CategoryInput holds the caller-supplied fields for a new category
type CategoryInput struct {
	Name  string
	Color string
	Icon  string
}

// AllCategories is the sentinel passed to filtered views to mean "no category filter"
const AllCategories = "all"
