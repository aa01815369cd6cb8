// Package reorder keeps an in-memory, priority-ordered task list for one
// project and moves tasks by swapping priorities with an adjacent neighbour.
//
// Moves are optimistic: the list is reordered immediately and the two
// priority updates are handed to a Dispatcher without waiting for them.
package reorder

import (
	"context"
	"errors"
	"sync"

	"taskboard/internal/models"
)

// Directions accepted by MoveTask.
const (
	Up   = -1
	Down = +1
)

// PriorityDispatcher hands a priority update off for asynchronous delivery.
type PriorityDispatcher interface {
	UpdateTaskPriority(taskID string, priority int) *Pending
}

// List is the ordered task list of a single project.
type List struct {
	mu         sync.Mutex
	tasks      []models.Task
	dispatcher PriorityDispatcher
}

// NewList creates a list over tasks, which are expected to already be in
// display order. The slice is copied.
func NewList(d PriorityDispatcher, tasks []models.Task) *List {
	l := &List{dispatcher: d}
	l.Set(tasks)
	return l
}

// Set replaces the list contents.
func (l *List) Set(tasks []models.Task) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tasks = append([]models.Task(nil), tasks...)
}

// Tasks returns a copy of the list in display order.
func (l *List) Tasks() []models.Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]models.Task(nil), l.tasks...)
}

// Len returns the number of tasks in the list.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.tasks)
}

// Move describes the two updates issued by a successful MoveTask.
type Move struct {
	First  *Pending
	Second *Pending
}

// Wait blocks until both updates finish and returns their joined errors.
func (m *Move) Wait(ctx context.Context) error {
	return errors.Join(m.First.Wait(ctx), m.Second.Wait(ctx))
}

// MoveTask swaps the task at index with its neighbour at index+direction.
// The two tasks exchange priority values, an update is issued for each
// (moved task first), and then they exchange positions in the list.
//
// If there is no neighbour in that direction nothing changes, no update is
// issued, and MoveTask returns nil. It never waits for the updates.
func (l *List) MoveTask(index, direction int) *Move {
	l.mu.Lock()
	defer l.mu.Unlock()

	neighbor := index + direction
	if index < 0 || index >= len(l.tasks) || neighbor < 0 || neighbor >= len(l.tasks) || neighbor == index {
		return nil
	}

	current := &l.tasks[index]
	other := &l.tasks[neighbor]
	current.Priority, other.Priority = other.Priority, current.Priority

	move := &Move{
		First:  l.dispatcher.UpdateTaskPriority(current.ID, current.Priority),
		Second: l.dispatcher.UpdateTaskPriority(other.ID, other.Priority),
	}

	l.tasks[index], l.tasks[neighbor] = l.tasks[neighbor], l.tasks[index]

	return move
}
