package controller

import (
	"fmt"
	"io"

	"github.com/frudas24/deskcontrol/internal/event"
)

// run is the worker loop. It is the only consumer of the queue and the only
// writer of the socket; mu is released around every socket write.
func (c *Controller) run() {
	defer close(c.done)
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		for !c.stopped && c.queue.IsEmpty() {
			c.cond.Wait()
		}
		if c.stopped {
			// stop immediately, do not process further events
			c.finish(nil)
			return
		}
		// drain the whole queue; stop is only observed at the top of the loop
		for {
			ev, ok := c.queue.Take()
			if !ok {
				break
			}
			c.metrics.ObserveDepth(c.queue.Len())

			c.mu.Unlock()
			err := c.process(ev)
			c.mu.Lock()

			if err != nil {
				c.log.Warn().Err(err).Msg("cannot write event to socket")
				c.finish(err)
				return
			}
		}
	}
}

// finish records the exit cause. Called with mu held.
func (c *Controller) finish(err error) {
	c.err = err
	c.state = StateStopped
	c.log.Debug().
		Bool("failed", err != nil).
		Int("pending", c.queue.Len()).
		Msg("controller worker stopped")
}

// process serializes ev and writes it to the socket in one piece.
func (c *Controller) process(ev event.Event) error {
	kind := ev.Kind().String()
	buf, err := event.Serialize(ev)
	if err != nil {
		c.metrics.IncFailure("serialize")
		return fmt.Errorf("serialize %s event: %w", kind, err)
	}
	if err := writeFull(c.socket, buf); err != nil {
		c.metrics.IncFailure("write")
		return fmt.Errorf("write %s event: %w", kind, err)
	}
	c.metrics.ObserveWrite(kind, len(buf))
	return nil
}

// writeFull writes b with a single call and treats anything short of the
// full length as a failure.
func writeFull(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}
