package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskmaster/internal/logging"
)

const (
	tasksFilename      = "tasks.json"
	categoriesFilename = "categories.json"
)

var (
	ErrEmptyTitle       = errors.New("task title must not be empty")
	ErrEmptyName        = errors.New("category name must not be empty")
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Store owns the canonical ordered task list and the category list.
// Every mutation is followed by a full-snapshot write of the affected file.
type Store struct {
	tasksPath      string
	categoriesPath string

	mu         sync.RWMutex
	tasks      []Task
	categories []Category
	revision   uint64

	cbMu            sync.Mutex
	onTaskAdded     []func(Task)
	onTaskCompleted []func(Task)
}

// NewStore creates a store rooted at the given state directory
func NewStore(statePath string) *Store {
	return &Store{
		tasksPath:      filepath.Join(statePath, tasksFilename),
		categoriesPath: filepath.Join(statePath, categoriesFilename),
		tasks:          []Task{},
		categories:     []Category{},
	}
}

// OnTaskAdded registers a callback fired after a task is added
func (s *Store) OnTaskAdded(fn func(Task)) {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()
	s.onTaskAdded = append(s.onTaskAdded, fn)
}

// OnTaskCompleted registers a callback fired on the pending-to-completed
// transition only, with the task as it was before the flip.
func (s *Store) OnTaskCompleted(fn func(Task)) {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()
	s.onTaskCompleted = append(s.onTaskCompleted, fn)
}

// Load reads both lists from disk. A missing file seeds the built-in
// defaults; a corrupt file is moved aside and the defaults take over.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := loadList[Task](s.tasksPath)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	if tasks == nil {
		tasks = DefaultTasks(time.Now())
	}
	// Hand-edited state files may carry missing or unknown priorities
	for i := range tasks {
		tasks[i].Priority = ParsePriority(string(tasks[i].Priority))
	}
	s.tasks = tasks

	categories, err := loadList[Category](s.categoriesPath)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if categories == nil {
		categories = DefaultCategories()
	}
	s.categories = categories

	return nil
}

// loadList reads a JSON array from path. Returns (nil, nil) when the file is
// absent, so the caller can fall back to defaults. A file that fails to
// decode is renamed to <path>.corrupt and treated as absent.
func loadList[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		corrupt := path + ".corrupt"
		logging.Warn("store", "corrupt state file %s: %v (moved to %s)", filepath.Base(path), err, filepath.Base(corrupt))
		if renameErr := os.Rename(path, corrupt); renameErr != nil {
			return nil, fmt.Errorf("failed to move corrupt file: %w", renameErr)
		}
		return nil, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// save writes both lists to disk. Called with the write lock held.
// Failures are logged, never surfaced: the in-memory state stays canonical.
func (s *Store) save() {
	if err := writeList(s.tasksPath, s.tasks); err != nil {
		logging.Warn("store", "failed to save tasks: %v", err)
	}
	if err := writeList(s.categoriesPath, s.categories); err != nil {
		logging.Warn("store", "failed to save categories: %v", err)
	}
}

func writeList(path string, list any) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Add validates and inserts a new task at the head of the order
func (s *Store) Add(input TaskInput) (Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Task{}, ErrEmptyTitle
	}

	t := Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Category:    input.Category,
		Completed:   false,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}

	s.mu.Lock()
	s.tasks = append([]Task{t}, s.tasks...)
	s.revision++
	s.save()
	s.mu.Unlock()

	s.fireAdded(t)
	return t, nil
}

// Update replaces the stored task with matching ID. Position is preserved.
func (s *Store) Update(updated Task) error {
	if strings.TrimSpace(updated.Title) == "" {
		return ErrEmptyTitle
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == updated.ID {
			s.tasks[i] = updated
			s.revision++
			s.save()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, updated.ID)
}

// Delete removes the task with matching ID. Absent IDs are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.revision++
			s.save()
			return
		}
	}
}

// ToggleCompletion flips the completed flag in place. The completion event
// fires only on the pending-to-completed transition, with the pre-mutation
// task. Absent IDs are a no-op.
func (s *Store) ToggleCompletion(id string) {
	var becameComplete bool
	var before Task

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		before = s.tasks[i]
		s.tasks[i].Completed = !s.tasks[i].Completed
		if s.tasks[i].Completed {
			now := time.Now()
			s.tasks[i].CompletedAt = &now
			becameComplete = true
		} else {
			s.tasks[i].CompletedAt = nil
		}
		s.revision++
		s.save()
		break
	}
	s.mu.Unlock()

	if becameComplete {
		s.fireCompleted(before)
	}
}

// Reorder moves the task identified by fromID to toID's position in the full
// order. Both IDs must belong to the currently displayed pending subsequence:
// pending tasks, narrowed to categoryFilter unless it is AllCategories.
// Anything else is a no-op. Returns whether the order changed.
func (s *Store) Reorder(fromID, toID, categoryFilter string) bool {
	if fromID == toID {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inPendingView(fromID, categoryFilter) || !s.inPendingView(toID, categoryFilter) {
		return false
	}

	from, to := -1, -1
	for i := range s.tasks {
		switch s.tasks[i].ID {
		case fromID:
			from = i
		case toID:
			to = i
		}
	}
	if from == -1 || to == -1 {
		return false
	}

	moved := s.tasks[from]
	s.tasks = append(s.tasks[:from], s.tasks[from+1:]...)
	s.tasks = append(s.tasks[:to], append([]Task{moved}, s.tasks[to:]...)...)
	s.revision++
	s.save()
	return true
}

// inPendingView reports whether the task is part of the visible pending
// subsequence. Called with the lock held.
func (s *Store) inPendingView(id, categoryFilter string) bool {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if s.tasks[i].Completed {
			return false
		}
		if categoryFilter != "" && categoryFilter != AllCategories && s.tasks[i].Category != categoryFilter {
			return false
		}
		return true
	}
	return false
}

// Get returns a task by ID
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i], true
		}
	}
	return Task{}, false
}

// AddCategory validates and appends a new category
func (s *Store) AddCategory(input CategoryInput) (Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Category{}, ErrEmptyName
	}

	c := Category{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Color: input.Color,
		Icon:  input.Icon,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
	s.revision++
	s.save()
	return c, nil
}

// Categories returns all categories as a copy
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoryByID looks up a category. Dangling references from tasks yield
// ok=false; callers render those as uncategorized.
func (s *Store) CategoryByID(id string) (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			return s.categories[i], true
		}
	}
	return Category{}, false
}

// Revision returns the mutation counter. Consumers use it to detect that the
// list changed underneath an in-flight asynchronous request.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) fireAdded(t Task) {
	s.cbMu.Lock()
	cbs := make([]func(Task), len(s.onTaskAdded))
	copy(cbs, s.onTaskAdded)
	s.cbMu.Unlock()

	for _, fn := range cbs {
		fn(t)
	}
}

func (s *Store) fireCompleted(t Task) {
	s.cbMu.Lock()
	cbs := make([]func(Task), len(s.onTaskCompleted))
	copy(cbs, s.onTaskCompleted)
	s.cbMu.Unlock()

	for _, fn := range cbs {
		fn(t)
	}
}
