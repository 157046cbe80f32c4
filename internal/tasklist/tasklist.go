// Package tasklist holds the in-memory task list behind the console app.
package tasklist

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "todoapp/internal/errors"
)

var (
	ErrEmptyDescription = apperrors.NewValidationError("Task description cannot be empty.")
	ErrEmptyKeyword     = apperrors.NewValidationError("Search keyword cannot be empty.")
	ErrIndexNotNumber   = apperrors.NewValidationError("Index must be a number.")
)

// RangeError reports a position outside 1..Count.
type RangeError struct {
	Index int
	Count int
}

func (e *RangeError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("Invalid index %d. Valid range: 1 to 0 (no tasks exist).", e.Index)
	}
	return fmt.Sprintf("Invalid index %d. Valid range: 1 to %d.", e.Index, e.Count)
}

func (e *RangeError) Unwrap() error {
	return apperrors.ErrValidation
}

// Task is a single console task.
type Task struct {
	ID          int
	Description string
	Completed   bool
}

func (t Task) String() string {
	status := "[ ]"
	if t.Completed {
		status = "[x]"
	}
	return fmt.Sprintf("%d. %s %s", t.ID, status, t.Description)
}

// List keeps tasks in insertion order. Positions are 1-based and refer to the
// current order; ids are assigned once and never reused.
type List struct {
	order  []int
	tasks  map[int]*Task
	nextID int
}

func New() *List {
	return &List{tasks: make(map[int]*Task), nextID: 1}
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.order)
}

// All returns a copy of the tasks in insertion order.
func (l *List) All() []Task {
	out := make([]Task, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.tasks[id])
	}
	return out
}

// Add appends a task with the trimmed description.
func (l *List) Add(description string) (Task, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Task{}, ErrEmptyDescription
	}

	task := &Task{ID: l.nextID, Description: desc}
	l.tasks[task.ID] = task
	l.order = append(l.order, task.ID)
	l.nextID++
	return *task, nil
}

// Delete removes the task at position.
func (l *List) Delete(position string) (Task, error) {
	i, err := l.resolve(position)
	if err != nil {
		return Task{}, err
	}

	id := l.order[i]
	task := *l.tasks[id]
	delete(l.tasks, id)
	l.order = append(l.order[:i], l.order[i+1:]...)
	return task, nil
}

// Update replaces the description of the task at position. The position is
// checked before the description.
func (l *List) Update(position, description string) (Task, error) {
	i, err := l.resolve(position)
	if err != nil {
		return Task{}, err
	}
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Task{}, ErrEmptyDescription
	}

	task := l.tasks[l.order[i]]
	task.Description = desc
	return *task, nil
}

// Toggle flips the completion flag of the task at position.
func (l *List) Toggle(position string) (Task, error) {
	i, err := l.resolve(position)
	if err != nil {
		return Task{}, err
	}

	task := l.tasks[l.order[i]]
	task.Completed = !task.Completed
	return *task, nil
}

// Search returns tasks whose description contains keyword, ignoring case.
func (l *List) Search(keyword string) ([]Task, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil, ErrEmptyKeyword
	}

	var matches []Task
	for _, id := range l.order {
		task := l.tasks[id]
		if strings.Contains(strings.ToLower(task.Description), kw) {
			matches = append(matches, *task)
		}
	}
	return matches, nil
}

// resolve turns a 1-based position string into an index into order.
func (l *List) resolve(position string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(position))
	if err != nil {
		return 0, ErrIndexNotNumber
	}
	if n < 1 || n > len(l.order) {
		return 0, &RangeError{Index: n, Count: len(l.order)}
	}
	return n - 1, nil
}
