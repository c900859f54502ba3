// Package engine runs the tick/clock-driven execution of a compiled
// circuit: relaxing gate states until the grid settles, then latching
// socket outputs and notifying observers.
package engine

import (
	"context"
	"log/slog"

	"github.com/sarchlab/gridsim/compiler"
	"github.com/sarchlab/gridsim/socket"
)

// LevelOscillation is logged when a clock cycle hits its tick budget
// without the trace states settling -- a circuit that never reaches a
// stable state (a ring oscillator, or a design bug) rather than
// converging like a latch or a combinational path would.
const LevelOscillation = slog.LevelWarn + 1

// defaultMaxTicksPerClock bounds how many relaxation passes a single
// clock cycle may run before it's declared oscillating and cut short.
const defaultMaxTicksPerClock = 100_000

// Engine holds one compiled program's runtime state and drives it one
// tick or one full clock cycle at a time.
type Engine struct {
	Program *compiler.CompiledProgram
	Sockets []*socket.Socket

	MaxTicksPerClock int

	tickCount   int
	clockCount  int
	gateStates  []bool
	traceStates []bool

	isMidClockCycle bool
	firstTick       bool

	overlay *Mask
}

// New builds an Engine ready to execute prog, with every gate and trace
// initialized to low (false/open-or-closed per gate polarity is resolved
// on the first completed clock cycle).
func New(prog *compiler.CompiledProgram, sockets []*socket.Socket) *Engine {
	return &Engine{
		Program:          prog,
		Sockets:          sockets,
		MaxTicksPerClock: defaultMaxTicksPerClock,
		gateStates:       make([]bool, len(prog.Gates)),
		traceStates:      make([]bool, len(prog.Traces)),
		firstTick:        true,
		overlay:          NewMask(),
	}
}

// TickCount returns the number of relaxation ticks run so far.
func (e *Engine) TickCount() int { return e.tickCount }

// ClockCount returns the number of completed clock cycles so far.
func (e *Engine) ClockCount() int { return e.clockCount }

// OverlayMask returns the engine's renderer-facing trace-state overlay.
// It reflects whatever UpdateOverlayMask last copied into it.
func (e *Engine) OverlayMask() *Mask { return e.overlay }

// ClockOnce runs a complete clock cycle: latch socket inputs, relax gates
// until the grid settles (or MaxTicksPerClock is exhausted), then latch
// socket outputs and notify observers.
func (e *Engine) ClockOnce() {
	if !e.isMidClockCycle {
		e.beginClockCycle()
	}

	settled := false
	for i := 0; i < e.MaxTicksPerClock; i++ {
		if !e.tickOnce() {
			settled = true
			break
		}
	}

	if !settled {
		slog.Log(context.Background(), LevelOscillation, "clock cycle did not settle within tick budget",
			"maxTicksPerClock", e.MaxTicksPerClock, "clock", e.clockCount)
	}

	e.completeClockCycle()
}

// TickOnce runs a single relaxation tick, completing the clock cycle only
// if that tick produced no further change.
func (e *Engine) TickOnce() {
	if !e.isMidClockCycle {
		e.beginClockCycle()
	}

	if !e.tickOnce() {
		e.completeClockCycle()
	}
}

// UpdateOverlayMask refreshes the engine's Mask from the current trace
// states, using the compiler's per-chunk cell-part index.
func (e *Engine) UpdateOverlayMask() {
	for chunkCoord, indexes := range e.Program.TraceToCellPartIndexByChunk {
		maskChunk := e.overlay.getOrCreateChunk(chunkCoord, len(indexes))
		for _, idx := range indexes {
			i := idx.CellIndexInChunk * maskByteLen
			maskChunk.Cells[i] = boolByte(e.traceStates[idx.MetalTrace])
			maskChunk.Cells[i+1] = boolByte(e.traceStates[idx.SiTrace])
			maskChunk.Cells[i+2] = boolByte(e.traceStates[idx.LeftECTrace])
			maskChunk.Cells[i+3] = boolByte(e.traceStates[idx.RightECTrace])
		}
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// beginClockCycle resets trace states and ORs in every socket pin's
// driven input, skipping the input poll on the very first tick so a
// freshly-compiled circuit starts from a clean reset rather than
// whatever garbage input values its sockets were constructed with.
func (e *Engine) beginClockCycle() {
	for i := range e.traceStates {
		e.traceStates[i] = false
	}

	if !e.firstTick {
		for _, s := range e.Sockets {
			for _, pin := range s.Pins {
				trace := e.Program.TraceLookupByAtom[compiler.Atom{Coord: pin.CellCoord, Part: compiler.PartMetal}]
				e.traceStates[trace] = e.traceStates[trace] || pin.SiInputHigh
			}
		}
	}

	e.firstTick = false
	e.isMidClockCycle = true
}

// tickOnce relaxes every open gate once, shorting its two EC traces
// together, and reports whether doing so changed anything.
func (e *Engine) tickOnce() bool {
	change := false

	for i, gate := range e.Program.Gates {
		if !e.gateStates[i] {
			continue
		}

		left := e.traceStates[gate.LeftECTrace]
		right := e.traceStates[gate.RightECTrace]
		high := left || right

		change = change || left != right

		e.traceStates[gate.LeftECTrace] = high
		e.traceStates[gate.RightECTrace] = high
	}

	e.tickCount++
	return change
}

// completeClockCycle resolves each gate's new open/closed state from its
// base trace, latches socket outputs, and notifies any socket whose
// trigger pin changed.
func (e *Engine) completeClockCycle() {
	for i, gate := range e.Program.Gates {
		base := e.traceStates[gate.BaseTrace]
		if gate.IsNPN {
			e.gateStates[i] = base
		} else {
			e.gateStates[i] = !base
		}
	}

	for _, s := range e.Sockets {
		for i := range s.Pins {
			pin := &s.Pins[i]
			trace := e.Program.TraceLookupByAtom[compiler.Atom{Coord: pin.CellCoord, Part: compiler.PartMetal}]

			if pin.Trigger && pin.SiOutputHigh != e.traceStates[trace] {
				s.PendingUpdate = true
			}

			pin.SiOutputHigh = e.traceStates[trace]
		}

		s.InvokeUpdate()
	}

	e.clockCount++
	e.isMidClockCycle = false
}
