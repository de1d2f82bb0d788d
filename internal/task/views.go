package task

// Tasks returns the full ordered list as a copy
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ByCategory returns tasks in the given category, preserving order.
// The AllCategories sentinel (or empty string) returns everything.
func (s *Store) ByCategory(categoryID string) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if categoryID == "" || categoryID == AllCategories {
		out := make([]Task, len(s.tasks))
		copy(out, s.tasks)
		return out
	}

	out := []Task{}
	for _, t := range s.tasks {
		if t.Category == categoryID {
			out = append(out, t)
		}
	}
	return out
}

// Pending returns tasks not yet completed, preserving order
func (s *Store) Pending() []Task {
	return s.filtered(false)
}

// Completed returns completed tasks, preserving order
func (s *Store) Completed() []Task {
	return s.filtered(true)
}

func (s *Store) filtered(completed bool) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Task{}
	for _, t := range s.tasks {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}

// PendingByCategory narrows Pending to one category; this is the subsequence
// the reorder gesture operates on.
func (s *Store) PendingByCategory(categoryID string) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Task{}
	for _, t := range s.tasks {
		if t.Completed {
			continue
		}
		if categoryID != "" && categoryID != AllCategories && t.Category != categoryID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CountByCategory returns the number of tasks per category ID
func (s *Store) CountByCategory() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, t := range s.tasks {
		counts[t.Category]++
	}
	return counts
}
