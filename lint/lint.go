// Package lint runs structural checks over a compiled circuit: it never
// mutates anything, only reports defects a careful designer would want
// flagged before running a simulation.
package lint

import (
	"fmt"

	"github.com/sarchlab/gridsim/cell"
	"github.com/sarchlab/gridsim/compiler"
	"github.com/sarchlab/gridsim/coord"
	"github.com/sarchlab/gridsim/socket"
	"github.com/sarchlab/gridsim/substrate"
)

// IssueType categorizes a lint finding.
type IssueType string

const (
	// IssueDanglingVia marks a via bit set on a cell missing its
	// silicon or metal layer. fixCell should make this impossible; if
	// one turns up, something bypassed the normal paint path.
	IssueDanglingVia IssueType = "DANGLING_VIA"

	// IssueUnreachableSocket marks a socket pin whose cell has no
	// metal trace, so the trace the compiler opened for it connects to
	// nothing.
	IssueUnreachableSocket IssueType = "UNREACHABLE_SOCKET"

	// IssueNullTraceGate marks a gate with one or both EC traces still
	// pointing at the reserved null trace (index 0), meaning that side
	// of the transistor was never wired to anything.
	IssueNullTraceGate IssueType = "NULL_TRACE_GATE"
)

// Issue is a single lint finding.
type Issue struct {
	Type    IssueType
	Message string
	Coord   coord.Cell
}

// Report runs every structural check over buf/prog/sockets and returns
// every issue found, in no particular order.
func Report(buf *substrate.Buffer, prog *compiler.CompiledProgram, sockets []socket.Socket) []Issue {
	var issues []Issue

	issues = append(issues, checkDanglingVias(buf)...)
	issues = append(issues, checkUnreachableSockets(buf, prog, sockets)...)
	issues = append(issues, checkNullTraceGates(prog)...)

	return issues
}

func checkDanglingVias(buf *substrate.Buffer) []Issue {
	var issues []Issue

	for _, chunk := range buf.Chunks() {
		for y := uint32(0); y < coord.ChunkSize; y++ {
			for x := uint32(0); x < coord.ChunkSize; x++ {
				c := coord.FromOffset(chunk, x, y)
				p := buf.GetCell(c)

				if !p.HasVia() {
					continue
				}
				nc := cell.Normalize(p)

				if nc.Metal.Kind != cell.MetalTrace || nc.Si.Kind == cell.SiliconNone {
					issues = append(issues, Issue{
						Type:    IssueDanglingVia,
						Message: fmt.Sprintf("via at %v has no matching metal trace and silicon pair", c),
						Coord:   c,
					})
				}
			}
		}
	}

	return issues
}

func checkUnreachableSockets(buf *substrate.Buffer, prog *compiler.CompiledProgram, sockets []socket.Socket) []Issue {
	var issues []Issue

	for _, s := range sockets {
		for _, pin := range s.Pins {
			atom := compiler.Atom{Coord: pin.CellCoord, Part: compiler.PartMetal}
			if _, ok := prog.TraceLookupByAtom[atom]; !ok || !buf.GetCell(pin.CellCoord).HasMetal() {
				issues = append(issues, Issue{
					Type:    IssueUnreachableSocket,
					Message: fmt.Sprintf("socket %q pin at %v has no metal trace compiled under it", s.Name, pin.CellCoord),
					Coord:   pin.CellCoord,
				})
			}
		}
	}

	return issues
}

func checkNullTraceGates(prog *compiler.CompiledProgram) []Issue {
	var issues []Issue

	for i, gate := range prog.Gates {
		if gate.LeftECTrace == 0 || gate.RightECTrace == 0 {
			issues = append(issues, Issue{
				Type:    IssueNullTraceGate,
				Message: fmt.Sprintf("gate %d has an EC terminal still on the null trace (left=%d, right=%d)", i, gate.LeftECTrace, gate.RightECTrace),
			})
		}
	}

	return issues
}
