// Package interrupt implements cooperative cancellation of a long search.
//
// A Controller starts RUNNING and moves to CANCELLED, for good, when its
// context is done (the CLI turns SIGINT and SIGTERM into context
// cancellation) or when a key reader returns q, Q or ESC. Poll never blocks.
package interrupt

import (
	"context"
	"sync/atomic"
)

type State int32

const (
	Running State = iota
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Cancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// KeyReader returns a pending key press without waiting. ok is false when
// nothing is pending.
type KeyReader interface {
	ReadKey() (key byte, ok bool)
}

// KeyReaderFunc adapts a function to KeyReader.
type KeyReaderFunc func() (byte, bool)

func (f KeyReaderFunc) ReadKey() (byte, bool) {
	return f()
}

const keyEsc = 27

// IsCancelKey reports whether the key asks the search to stop.
func IsCancelKey(key byte) bool {
	return key == 'q' || key == 'Q' || key == keyEsc
}

type Controller struct {
	ctx   context.Context
	keys  KeyReader
	state atomic.Int32
}

// New returns a running Controller. keys may be nil, then only the context
// can cancel.
func New(ctx context.Context, keys KeyReader) *Controller {
	return &Controller{ctx: ctx, keys: keys}
}

// Poll checks the cancellation sources once and reports whether the search
// must stop.
func (c *Controller) Poll() bool {
	if c.State() == Cancelled {
		return true
	}
	if c.ctx.Err() != nil {
		c.Cancel()
		return true
	}
	if c.keys != nil {
		if key, ok := c.keys.ReadKey(); ok && IsCancelKey(key) {
			c.Cancel()
			return true
		}
	}
	return false
}

// Cancel moves the controller to CANCELLED.
func (c *Controller) Cancel() {
	c.state.Store(int32(Cancelled))
}

func (c *Controller) State() State {
	return State(c.state.Load())
}
