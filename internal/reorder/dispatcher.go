package reorder

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// DefaultTimeout bounds a single remote priority update.
const DefaultTimeout = 5 * time.Second

// ErrDispatcherClosed is reported by updates enqueued after Close.
var ErrDispatcherClosed = errors.New("dispatcher closed")

// Updater persists a task's new priority to the backend.
type Updater interface {
	UpdateTaskPriority(ctx context.Context, taskID string, priority int) error
}

// UpdaterFunc adapts a plain function to Updater.
type UpdaterFunc func(ctx context.Context, taskID string, priority int) error

// UpdateTaskPriority calls f.
func (f UpdaterFunc) UpdateTaskPriority(ctx context.Context, taskID string, priority int) error {
	return f(ctx, taskID, priority)
}

// Pending is the eventual outcome of one dispatched update.
type Pending struct {
	TaskID   string
	Priority int

	done chan struct{}
	err  error
}

func newPending(taskID string, priority int) *Pending {
	return &Pending{TaskID: taskID, Priority: priority, done: make(chan struct{})}
}

func (p *Pending) resolve(err error) {
	p.err = err
	close(p.done)
}

// Done is closed once the update has been attempted.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the update finishes or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithTimeout sets the per-update timeout.
func WithTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) { disp.timeout = d }
}

// WithLogger sets the logger used to report failed updates.
func WithLogger(l *log.Logger) DispatcherOption {
	return func(disp *Dispatcher) { disp.logger = l }
}

// Dispatcher sends priority updates to an Updater from a single worker
// goroutine, so updates reach the backend in the order they were enqueued.
// The queue is unbounded: enqueueing never waits for the worker.
// Failures are logged and recorded on the Pending; nothing is retried.
type Dispatcher struct {
	updater Updater
	timeout time.Duration
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// wake has room for one token; the worker rechecks the queue after each.
	wake chan struct{}

	mu     sync.Mutex
	queue  []*Pending
	closed bool
}

// NewDispatcher starts a dispatcher that sends updates through u.
// Call Close to drain the queue and stop the worker.
func NewDispatcher(u Updater, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		updater: u,
		timeout: DefaultTimeout,
		logger:  log.Default(),
		wake:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())

	d.wg.Add(1)
	go d.run()

	return d
}

// UpdateTaskPriority enqueues an update and returns without waiting for it.
func (d *Dispatcher) UpdateTaskPriority(taskID string, priority int) *Pending {
	p := newPending(taskID, priority)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		p.resolve(ErrDispatcherClosed)
		return p
	}
	d.queue = append(d.queue, p)
	d.mu.Unlock()

	d.signal()
	return p
}

func (d *Dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		p, ok := d.next()
		if !ok {
			return
		}
		p.resolve(d.send(p))
	}
}

// next pops the oldest queued update, waiting for one if the queue is empty.
// It reports false once the dispatcher is closed and the queue is drained.
func (d *Dispatcher) next() (*Pending, bool) {
	for {
		d.mu.Lock()
		if len(d.queue) > 0 {
			p := d.queue[0]
			d.queue[0] = nil
			d.queue = d.queue[1:]
			d.mu.Unlock()
			return p, true
		}
		closed := d.closed
		d.mu.Unlock()

		if closed {
			return nil, false
		}
		<-d.wake
	}
}

func (d *Dispatcher) send(p *Pending) error {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	err := d.updater.UpdateTaskPriority(ctx, p.TaskID, p.Priority)
	if err != nil {
		d.logger.Printf("failed to update priority of task %s to %d: %v", p.TaskID, p.Priority, err)
	}
	return err
}

// Close stops accepting updates and waits for queued ones to finish.
// If ctx expires first, in-flight and queued updates are cancelled.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.signal()

	drained := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-drained
		return ctx.Err()
	}
}
