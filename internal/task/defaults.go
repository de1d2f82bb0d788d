package task

import "time"

// DefaultCategories returns the built-in category list used when no
// categories file exists yet.
func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#3b82f6", Icon: "briefcase"},
		{ID: "personal", Name: "Personal", Color: "#10b981", Icon: "user"},
		{ID: "study", Name: "Study", Color: "#8b5cf6", Icon: "book"},
	}
}

// DefaultTasks returns the built-in sample tasks used when no tasks file
// exists yet. Due dates are offsets from now.
func DefaultTasks(now time.Time) []Task {
	day := 24 * time.Hour
	created := now.Format(time.RFC3339)
	due := func(d time.Duration) string {
		return now.Add(d).Format(time.RFC3339)
	}

	return []Task{
		{
			ID:          "task-1",
			Title:       "Complete project proposal",
			Description: "Write and submit the project proposal for the new client",
			DueDate:     due(2 * day),
			Priority:    PriorityHigh,
			Category:    "work",
			CreatedAt:   created,
		},
		{
			ID:          "task-2",
			Title:       "Go for a run",
			Description: "30 minute jog in the park",
			DueDate:     due(day),
			Priority:    PriorityMedium,
			Category:    "personal",
			CreatedAt:   created,
		},
		{
			ID:          "task-3",
			Title:       "Read chapter 5",
			Description: "Complete reading chapter 5 of the textbook",
			DueDate:     due(3 * day),
			Priority:    PriorityMedium,
			Category:    "study",
			CreatedAt:   created,
		},
		{
			ID:          "task-4",
			Title:       "Buy groceries",
			Description: "Milk, eggs, bread, fruits",
			DueDate:     due(0),
			Priority:    PriorityLow,
			Category:    "personal",
			CreatedAt:   created,
		},
		{
			ID:          "task-5",
			Title:       "Team meeting",
			Description: "Weekly team sync-up",
			DueDate:     due(day),
			Priority:    PriorityHigh,
			Category:    "work",
			CreatedAt:   created,
		},
	}
}
