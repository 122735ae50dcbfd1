// Package controller forwards control events to a remote peer from a
// dedicated worker goroutine so producers never wait on socket I/O.
package controller

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/frudas24/deskcontrol/internal/event"
	"github.com/frudas24/deskcontrol/internal/metrics"
	"github.com/frudas24/deskcontrol/internal/queue"
	"github.com/rs/zerolog"
)

var (
	// ErrInit reports that a controller could not be initialised.
	ErrInit = errors.New("controller: init failed")
	// ErrStart reports that the worker could not be started from the current state.
	ErrStart = errors.New("controller: cannot start worker")
	// ErrNotJoined reports a Destroy while the worker may still be running.
	ErrNotJoined = errors.New("controller: destroy before join")
	// ErrDestroyed reports use of a destroyed controller.
	ErrDestroyed = errors.New("controller: destroyed")
	// ErrNilEvent reports a nil event passed to Push.
	ErrNilEvent = errors.New("controller: nil event")
)

// State is the lifecycle state of a Controller.
type State int

const (
	// StateInitialized means resources exist and the worker has not started.
	StateInitialized State = iota + 1
	// StateRunning means the worker is accepting and delivering events.
	StateRunning
	// StateStopping means Stop was requested and the worker has not exited yet.
	StateStopping
	// StateStopped means the worker exited, after a stop or a fatal error.
	StateStopped
	// StateDestroyed means Destroy released the controller's resources.
	StateDestroyed
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateDestroyed:
		return "destroyed"
	default:
		return "uninitialized"
	}
}

// Option customises a Controller at construction.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle and failure diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithMetrics sets the collectors updated by the controller.
func WithMetrics(m *metrics.Channel) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// Controller is a monitor around the pending event queue. The queue, the
// stopped flag and the lifecycle state are only touched with mu held, and
// cond is only waited on with mu held.
type Controller struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   *queue.Queue
	socket  io.Writer
	stopped bool
	state   State
	done    chan struct{}
	err     error

	log     zerolog.Logger
	metrics *metrics.Channel
}

// New initialises a controller that writes to socket. The socket is borrowed:
// the controller only writes to it and never reads, closes or reconfigures it.
func New(socket io.Writer, opts ...Option) (*Controller, error) {
	if socket == nil {
		return nil, fmt.Errorf("%w: nil socket", ErrInit)
	}
	c := &Controller{
		queue:  queue.New(),
		socket: socket,
		state:  StateInitialized,
		log:    zerolog.Nop(),
	}
	c.cond = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start launches the worker goroutine. It fails with ErrStart unless the
// controller is freshly initialised, leaving the state unchanged.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInitialized {
		c.log.Error().Str("state", c.state.String()).Msg("could not start controller worker")
		return fmt.Errorf("%w: state %s", ErrStart, c.state)
	}
	c.log.Debug().Msg("starting controller worker")
	c.done = make(chan struct{})
	c.state = StateRunning
	if c.stopped {
		c.state = StateStopping
	}
	go c.run()
	return nil
}

// Push hands ev to the worker. It is safe for concurrent use and never waits
// on the socket. Once the worker has exited, events are accepted and discarded
// without delivery.
func (c *Controller) Push(ev event.Event) error {
	if ev == nil {
		return ErrNilEvent
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDestroyed {
		return ErrDestroyed
	}
	if c.state == StateStopped {
		c.metrics.AddDiscarded(1)
		return nil
	}
	wasEmpty := c.queue.IsEmpty()
	if !c.queue.Push(ev) {
		return ErrDestroyed
	}
	c.metrics.ObservePush(ev.Kind().String(), c.queue.Len())
	if wasEmpty {
		c.cond.Signal()
	}
	return nil
}

// Stop asks the worker to exit without delivering pending events. It does not
// wait; use Join. Calling it more than once, or after the worker exited, is harmless.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.state == StateRunning {
		c.state = StateStopping
	}
	c.cond.Signal()
}

// Join blocks until the worker has exited. It returns immediately if the
// worker was never started and may be called any number of times.
func (c *Controller) Join() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return
	}
	<-done
}

// Done returns a channel closed when the worker exits, or nil before Start.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Err returns the serialize or write error that terminated the worker, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Destroy releases the queue and any events still in it. It fails with
// ErrNotJoined if a started worker has not exited yet.
func (c *Controller) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateDestroyed {
		return nil
	}
	if c.done != nil {
		select {
		case <-c.done:
		default:
			return ErrNotJoined
		}
	}
	c.metrics.AddDiscarded(c.queue.Destroy())
	c.metrics.ObserveDepth(0)
	c.state = StateDestroyed
	return nil
}
