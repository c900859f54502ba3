// Package socket implements the external I/O contract of a compiled
// circuit: named GPIO pads that drive inputs into the grid and report
// outputs back out, replacing the original "module" concept.
package socket

import "github.com/sarchlab/gridsim/coord"

// Pin is one input/output terminal of a Socket, anchored at a metal cell.
type Pin struct {
	CellCoord coord.Cell

	// SiInputHigh is the value driven into the pin's trace at the start
	// of every clock cycle after the first.
	SiInputHigh bool

	// SiOutputHigh is the trace's resolved value as of the end of the
	// last completed clock cycle.
	SiOutputHigh bool

	// Trigger, when true, marks this pin as one whose output change
	// should flag the owning Socket as having a pending update.
	Trigger bool
}

// UpdateObserver is notified when a socket's output pins change during a
// completed clock cycle. Implementations must not block.
//
//go:generate mockgen -destination=mock_update_observer.go -package=socket github.com/sarchlab/gridsim/socket UpdateObserver
type UpdateObserver interface {
	OnUpdate(socket *Socket)
}

// Socket is a named set of pins, the external interface to one I/O
// component of a compiled circuit.
type Socket struct {
	Name string
	Pins []Pin

	// PendingUpdate is set when a Trigger pin's output changed during the
	// last completed clock cycle, and cleared once an UpdateObserver has
	// been notified.
	PendingUpdate bool

	observer UpdateObserver
}

// New builds a Socket with the given name and pins.
func New(name string, pins []Pin) *Socket {
	return &Socket{Name: name, Pins: pins}
}

// SetObserver installs the callback invoked at the end of a clock cycle,
// after pin states have been refreshed, when a Trigger pin's output
// changed during that cycle.
func (s *Socket) SetObserver(o UpdateObserver) {
	s.observer = o
}

// InvokeUpdate notifies the installed observer, but only if a Trigger
// pin's output actually changed this cycle, then clears PendingUpdate.
func (s *Socket) InvokeUpdate() {
	if s.PendingUpdate && s.observer != nil {
		s.observer.OnUpdate(s)
	}
	s.PendingUpdate = false
}
