package task

import (
	"math"
	"time"
)

// Stats summarizes the task list for the statistics view
type Stats struct {
	Total          int
	Completed      int
	Pending        int
	CompletionRate int // rounded percent, 0 when the list is empty
	ByPriority     map[Priority]int
	ByCategory     map[string]int
	CompletedToday int
}

// ComputeStats derives aggregate statistics from the current list.
// CompletedToday counts tasks whose completion timestamp falls between the
// local midnight boundaries around now.
func (s *Store) ComputeStats(now time.Time) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Total:      len(s.tasks),
		ByPriority: map[Priority]int{PriorityHigh: 0, PriorityMedium: 0, PriorityLow: 0},
		ByCategory: make(map[string]int),
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	for _, t := range s.tasks {
		st.ByPriority[t.Priority]++
		st.ByCategory[t.Category]++
		if t.Completed {
			st.Completed++
			if t.CompletedAt != nil && !t.CompletedAt.Before(dayStart) && t.CompletedAt.Before(dayEnd) {
				st.CompletedToday++
			}
		}
	}
	st.Pending = st.Total - st.Completed

	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}
