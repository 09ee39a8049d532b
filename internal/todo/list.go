package todo

import (
	"errors"
	"fmt"
	"iter"
)

// ErrIndexOutOfRange reports a mutation addressed to a position that does
// not exist in the list.
var ErrIndexOutOfRange = errors.New("task index out of range")

// Task represents a single to-do item.
type Task struct {
	Title     string
	DueDate   string
	Priority  string
	Completed bool
}

// NewTask returns a task with the given fields, not yet completed.
func NewTask(title, dueDate, priority string) Task {
	return Task{
		Title:    title,
		DueDate:  dueDate,
		Priority: priority,
	}
}

// DisplayString renders the task as a single display line:
// "{title} - {due date} - {priority} - {status}".
func (t Task) DisplayString() string {
	status := "Not Completed"
	if t.Completed {
		status = "Completed"
	}
	return fmt.Sprintf("%s - %s - %s - %s", t.Title, t.DueDate, t.Priority, status)
}

// List owns an ordered collection of tasks. The zero value is an empty
// list ready for use. List is not safe for concurrent use; the
// application drives it from a single event loop.
type List struct {
	tasks []Task
}

// Len returns the number of tasks in the list.
func (l *List) Len() int {
	return len(l.tasks)
}

// Get returns a copy of the task at index, or false if the index is out
// of range. Mutation goes through the List methods only.
func (l *List) Get(index int) (Task, bool) {
	if index < 0 || index >= len(l.tasks) {
		return Task{}, false
	}
	return l.tasks[index], true
}

// Add creates a task from the given fields and appends it at the end of
// the list. It always succeeds; the list performs no field validation.
func (l *List) Add(title, dueDate, priority string) {
	l.tasks = append(l.tasks, NewTask(title, dueDate, priority))
}

// Remove deletes the task at index, shifting later tasks one position
// earlier. An out-of-range index is ignored.
func (l *List) Remove(index int) {
	if index < 0 || index >= len(l.tasks) {
		return
	}
	l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
}

// Edit overwrites fields of the task at index. An empty argument leaves
// the corresponding field unchanged, so Edit cannot clear a field to
// empty. Returns ErrIndexOutOfRange if index does not address a task.
func (l *List) Edit(index int, title, dueDate, priority string) error {
	if index < 0 || index >= len(l.tasks) {
		return fmt.Errorf("edit task %d: %w", index, ErrIndexOutOfRange)
	}
	task := &l.tasks[index]
	if title != "" {
		task.Title = title
	}
	if dueDate != "" {
		task.DueDate = dueDate
	}
	if priority != "" {
		task.Priority = priority
	}
	return nil
}

// MarkCompleted sets the completion flag of the task at index.
// Returns ErrIndexOutOfRange if index does not address a task.
func (l *List) MarkCompleted(index int) error {
	return l.setCompleted(index, true)
}

// MarkIncomplete clears the completion flag of the task at index.
// Returns ErrIndexOutOfRange if index does not address a task.
func (l *List) MarkIncomplete(index int) error {
	return l.setCompleted(index, false)
}

func (l *List) setCompleted(index int, completed bool) error {
	if index < 0 || index >= len(l.tasks) {
		return fmt.Errorf("mark task %d: %w", index, ErrIndexOutOfRange)
	}
	l.tasks[index].Completed = completed
	return nil
}

// All returns an iterator over (position, task) pairs in storage order.
// The iterator is restartable; each run reflects the list state at the
// time of iteration, not a snapshot.
func (l *List) All() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for i, t := range l.tasks {
			if !yield(i, t) {
				return
			}
		}
	}
}
