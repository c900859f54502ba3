// Package compiler extracts the conductive traces and MOSFET gates of a
// painted substrate.Buffer into a flat, index-addressed CompiledProgram
// that the engine package can execute without touching the grid again.
package compiler

import (
	"log/slog"

	"github.com/sarchlab/gridsim/cell"
	"github.com/sarchlab/gridsim/coord"
	"github.com/sarchlab/gridsim/socket"
	"github.com/sarchlab/gridsim/substrate"
)

// CellPart distinguishes the up-to-four independently conductive parts a
// single cell can contribute to different traces. A MOSFET's gate and its
// two EC terminals never share a trace with each other, even though they
// share a cell.
type CellPart int

const (
	// PartMetal is the metal layer, including any via.
	PartMetal CellPart = iota

	// PartSi is "anything non-metal a via can attach to": an NP trace or
	// a MOSFET's gate. This is the inverse of how cell.Silicon models a
	// MOSFET versus a plain trace.
	PartSi

	// PartECUpLeft is a MOSFET's up-or-left EC terminal. A MOSFET is never
	// drawn with both an up and a left EC, so one terminal always covers
	// both.
	PartECUpLeft

	// PartECDownRight is a MOSFET's down-or-right EC terminal.
	PartECDownRight
)

// Atom is one conductive part of one cell, the unit traces are built from.
type Atom struct {
	Coord coord.Cell
	Part  CellPart
}

// CellPartToTrace records, for one allocated cell, the trace index each of
// its parts resolved to. Parts the cell doesn't have resolve to trace 0,
// the reserved null trace.
type CellPartToTrace struct {
	CellIndexInChunk int
	MetalTrace       int
	SiTrace          int
	LeftECTrace      int
	RightECTrace     int
}

// Gate is a compiled MOSFET: a base trace that gates whether its two EC
// traces are shorted together.
type Gate struct {
	IsNPN        bool
	BaseTrace    int
	LeftECTrace  int
	RightECTrace int
}

// CompiledProgram is the flattened result of compiling a Buffer: every
// conductive trace (trace 0 is the reserved null trace), every gate, and
// a per-chunk index for refreshing an overlay mask from trace states.
type CompiledProgram struct {
	Traces                      [][]Atom
	TraceLookupByAtom           map[Atom]int
	Gates                       []Gate
	TraceToCellPartIndexByChunk map[coord.Chunk][]CellPartToTrace
}

// Compile extracts every conductive trace and MOSFET gate reachable from
// the given sockets' pins. Traces are numbered in breadth-first order off
// the pins so that every gate's EC traces are already assigned an index
// by the time the gate referencing them is built -- gates only ever hold
// back-references, never forward ones.
func Compile(buffer *substrate.Buffer, sockets []socket.Socket) *CompiledProgram {
	prog := &CompiledProgram{
		Traces:                      [][]Atom{{}},
		TraceLookupByAtom:           make(map[Atom]int),
		TraceToCellPartIndexByChunk: make(map[coord.Chunk][]CellPartToTrace),
	}

	var edgeSet []Atom
	for _, s := range sockets {
		for _, pin := range s.Pins {
			edgeSet = append(edgeSet, Atom{Coord: pin.CellCoord, Part: PartMetal})
		}
	}

	var baseAtoms []Atom

	// siStep returns the atom reached by stepping from a silicon part at
	// from in direction v: a MOSFET whose EC side faces back towards from
	// is entered through that EC terminal, anything else through PartSi.
	siStep := func(from coord.Cell, v [2]int32) Atom {
		to := from.Add(v[0], v[1])
		n := cell.Normalize(buffer.GetCell(to))
		if n.Si.Kind != cell.SiliconMosfet || !n.Si.ECPlacement.HasCardinal(-v[0], -v[1]) {
			return Atom{Coord: to, Part: PartSi}
		}
		if v[0] == 1 || v[1] == 1 {
			return Atom{Coord: to, Part: PartECUpLeft}
		}
		return Atom{Coord: to, Part: PartECDownRight}
	}

	for len(edgeSet) > 0 {
		atom := edgeSet[0]
		edgeSet = edgeSet[1:]

		if _, ok := prog.TraceLookupByAtom[atom]; ok {
			continue
		}

		traceIdx := len(prog.Traces)
		var trace []Atom
		traceEdgeSet := []Atom{atom}

		for len(traceEdgeSet) > 0 {
			a := traceEdgeSet[0]
			traceEdgeSet = traceEdgeSet[1:]

			if _, ok := prog.TraceLookupByAtom[a]; ok {
				continue
			}

			prog.TraceLookupByAtom[a] = traceIdx
			trace = append(trace, a)

			nc := cell.Normalize(buffer.GetCell(a.Coord))

			switch a.Part {
			case PartMetal:
				if nc.Metal.Kind != cell.MetalTrace {
					slog.Debug("compiler: metal atom on a non-metal cell", "atom", a)
					continue
				}

				for _, v := range nc.Metal.Placement.CardinalVectors() {
					traceEdgeSet = append(traceEdgeSet, Atom{Coord: a.Coord.Add(v[0], v[1]), Part: PartMetal})
				}
				if nc.Metal.HasVia {
					traceEdgeSet = append(traceEdgeSet, Atom{Coord: a.Coord, Part: PartSi})
				}

			case PartSi:
				switch nc.Si.Kind {
				case cell.SiliconNP:
					for _, v := range nc.Si.Placement.CardinalVectors() {
						traceEdgeSet = append(traceEdgeSet, siStep(a.Coord, v))
					}
					if nc.Metal.Kind == cell.MetalTrace && nc.Metal.HasVia {
						traceEdgeSet = append(traceEdgeSet, Atom{Coord: a.Coord, Part: PartMetal})
					}

				case cell.SiliconMosfet:
					// This atom is the gate atom; its EC terminals aren't
					// conductively part of this trace, so park them on the
					// outer edge set and record the gate for later.
					baseAtoms = append(baseAtoms, a)

					for _, v := range nc.Si.GatePlacement.CardinalVectors() {
						traceEdgeSet = append(traceEdgeSet, siStep(a.Coord, v))
					}
					if nc.Metal.Kind == cell.MetalTrace && nc.Metal.HasVia {
						traceEdgeSet = append(traceEdgeSet, Atom{Coord: a.Coord, Part: PartMetal})
					}

					edgeSet = append(edgeSet,
						Atom{Coord: a.Coord, Part: PartECUpLeft},
						Atom{Coord: a.Coord, Part: PartECDownRight},
					)

				default:
					slog.Debug("compiler: si atom on an empty cell", "atom", a)
				}

			case PartECUpLeft:
				if nc.Si.Kind != cell.SiliconMosfet {
					slog.Debug("compiler: EC atom on a non-mosfet cell", "atom", a)
					continue
				}

				var neighbor coord.Cell
				if nc.Si.ECPlacement.Left {
					neighbor = a.Coord.Add(-1, 0)
				} else {
					neighbor = a.Coord.Add(0, -1)
				}
				traceEdgeSet = append(traceEdgeSet, siStep(a.Coord, [2]int32{neighbor.X - a.Coord.X, neighbor.Y - a.Coord.Y}))

				// The gate Si isn't conductively connected to this EC
				// trace; it only needs exploring, not merging.
				edgeSet = append(edgeSet, Atom{Coord: a.Coord, Part: PartSi})

			case PartECDownRight:
				if nc.Si.Kind != cell.SiliconMosfet {
					slog.Debug("compiler: EC atom on a non-mosfet cell", "atom", a)
					continue
				}

				var neighbor coord.Cell
				if nc.Si.ECPlacement.Right {
					neighbor = a.Coord.Add(1, 0)
				} else {
					neighbor = a.Coord.Add(0, 1)
				}
				traceEdgeSet = append(traceEdgeSet, siStep(a.Coord, [2]int32{neighbor.X - a.Coord.X, neighbor.Y - a.Coord.Y}))

				edgeSet = append(edgeSet, Atom{Coord: a.Coord, Part: PartSi})
			}
		}

		prog.Traces = append(prog.Traces, trace)
	}

	for _, atom := range baseAtoms {
		nc := cell.Normalize(buffer.GetCell(atom.Coord))
		prog.Gates = append(prog.Gates, Gate{
			IsNPN:        nc.Si.IsNPN,
			BaseTrace:    prog.TraceLookupByAtom[atom],
			LeftECTrace:  prog.TraceLookupByAtom[Atom{Coord: atom.Coord, Part: PartECUpLeft}],
			RightECTrace: prog.TraceLookupByAtom[Atom{Coord: atom.Coord, Part: PartECDownRight}],
		})
	}

	for _, chunkCoord := range buffer.Chunks() {
		var indexes []CellPartToTrace
		i := 0

		for y := uint32(0); y < coord.ChunkSize; y++ {
			for x := uint32(0); x < coord.ChunkSize; x++ {
				c := coord.FromOffset(chunkCoord, x, y)
				if buffer.GetCell(c) == (cell.Packed{}) {
					continue
				}

				indexes = append(indexes, CellPartToTrace{
					CellIndexInChunk: i,
					MetalTrace:       prog.TraceLookupByAtom[Atom{Coord: c, Part: PartMetal}],
					SiTrace:          prog.TraceLookupByAtom[Atom{Coord: c, Part: PartSi}],
					LeftECTrace:      prog.TraceLookupByAtom[Atom{Coord: c, Part: PartECUpLeft}],
					RightECTrace:     prog.TraceLookupByAtom[Atom{Coord: c, Part: PartECDownRight}],
				})
				i++
			}
		}

		prog.TraceToCellPartIndexByChunk[chunkCoord] = indexes
	}

	slog.Debug("compiled program", "traces", len(prog.Traces)-1, "gates", len(prog.Gates))

	return prog
}
