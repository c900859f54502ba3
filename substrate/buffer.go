// Package substrate implements the chunked, copy-on-write cell grid and
// its invariant-restoring and painting operations.
package substrate

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sarchlab/gridsim/cell"
	"github.com/sarchlab/gridsim/coord"
	"github.com/sarchlab/gridsim/placement"
)

// Socket is a named pad registered at a single metal cell, the unit of
// external I/O a Buffer exposes. One Socket corresponds to one pin; a
// caller assembling a multi-pin socket.Socket groups several of these by
// name prefix.
type Socket struct {
	Name      string
	CellCoord coord.Cell
}

// Buffer is the infinite, sparse grid of packed cells. The zero value is
// an empty buffer ready to use.
type Buffer struct {
	chunks  map[coord.Chunk]*chunk
	sockets []Socket
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{chunks: make(map[coord.Chunk]*chunk)}
}

// Clone returns a Buffer sharing every chunk's backing data with b. The
// clone is cheap: chunk data is only copied the first time either buffer
// writes through a shared chunk.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		chunks:  make(map[coord.Chunk]*chunk, len(b.chunks)),
		sockets: append([]Socket(nil), b.sockets...),
	}
	for chunkCoord, c := range b.chunks {
		out.chunks[chunkCoord] = c.clone()
	}
	return out
}

// GetCell returns the cell at c, or the zero cell if no chunk has been
// allocated there yet.
func (b *Buffer) GetCell(c coord.Cell) cell.Packed {
	ch, ok := b.chunks[c.ToChunk()]
	if !ok {
		return cell.Packed{}
	}
	return ch.getCellAt(c.ToLocal())
}

// SetCell writes p at c, allocating a chunk if needed. Socket and bond-pad
// bits cannot be set through this call; use SetSocket for that.
func (b *Buffer) SetCell(c coord.Cell, p cell.Packed) {
	p = p.SetSocket(false)
	p = p.SetBondPad(false)
	b.setCellUnchecked(c, p, true)
}

func (b *Buffer) setCellUnchecked(c coord.Cell, p cell.Packed, preserveSocket bool) {
	chunkCoord := c.ToChunk()

	if ch, ok := b.chunks[chunkCoord]; ok {
		ch.setCellAt(c.ToLocal(), p, preserveSocket)
		return
	}

	if p == (cell.Packed{}) {
		return
	}

	if b.chunks == nil {
		b.chunks = make(map[coord.Chunk]*chunk)
	}

	ch := newChunk(chunkCoord)
	ch.setCellAt(c.ToLocal(), p, preserveSocket)
	b.chunks[chunkCoord] = ch
}

// SetSocket registers c as a socket pad named name, making the name unique
// among existing sockets if it collides. Passing an empty name clears the
// socket at c.
func (b *Buffer) SetSocket(c coord.Cell, name string) {
	if name == "" {
		b.clearSocket(c)
		return
	}

	name = b.makeNameUnique(name)

	for i := range b.sockets {
		if b.sockets[i].CellCoord == c {
			b.sockets[i].Name = name
			return
		}
	}

	p := b.GetCell(c).SetSocket(true)
	b.setCellUnchecked(c, p, false)
	b.sockets = append(b.sockets, Socket{Name: name, CellCoord: c})
}

func (b *Buffer) clearSocket(c coord.Cell) {
	kept := b.sockets[:0]
	for _, s := range b.sockets {
		if s.CellCoord != c {
			kept = append(kept, s)
		}
	}
	b.sockets = kept

	p := b.GetCell(c).SetSocket(false)
	b.setCellUnchecked(c, p, false)
}

func (b *Buffer) makeNameUnique(name string) string {
	taken := make(map[string]bool, len(b.sockets))
	for _, s := range b.sockets {
		taken[s.Name] = true
	}
	if !taken[name] {
		return name
	}

	base := name
	suffixStart := strings.LastIndexByte(name, '_')
	if suffixStart >= 0 {
		if _, err := strconv.Atoi(name[suffixStart+1:]); err == nil {
			base = name[:suffixStart]
		}
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// Sockets returns every registered socket pad, in registration order.
func (b *Buffer) Sockets() []Socket {
	return append([]Socket(nil), b.sockets...)
}

// CellCount returns the total number of non-default cells across every
// allocated chunk.
func (b *Buffer) CellCount() int {
	total := 0
	for _, ch := range b.chunks {
		total += ch.cellCount
	}
	return total
}

// Chunks returns the coordinates of every allocated chunk.
func (b *Buffer) Chunks() []coord.Chunk {
	out := make([]coord.Chunk, 0, len(b.chunks))
	for c := range b.chunks {
		out = append(out, c)
	}
	return out
}

// CloneSelection returns a new Buffer containing the cells from the
// rectangle [lowerLeft, upperRight), translated so that anchor maps to the
// origin.
func (b *Buffer) CloneSelection(lowerLeft, upperRight, anchor coord.Cell) *Buffer {
	out := NewBuffer()
	for y := lowerLeft.Y; y < upperRight.Y; y++ {
		for x := lowerLeft.X; x < upperRight.X; x++ {
			from := coord.Cell{X: x, Y: y}
			to := coord.Cell{X: x - anchor.X, Y: y - anchor.Y}
			out.SetCell(to, b.GetCell(from))
		}
	}
	return out
}

// PasteAt copies every non-default cell of src into b, offset so src's
// origin lands at c, then restores invariants along the pasted region's
// border.
func (b *Buffer) PasteAt(c coord.Cell, src *Buffer) {
	const maxInt32 = int32(1<<31 - 1)
	ll := coord.Cell{X: maxInt32, Y: maxInt32}
	ur := coord.Cell{X: -maxInt32 - 1, Y: -maxInt32 - 1}
	touched := false

	for chunkCoord, ch := range src.chunks {
		first := chunkCoord.FirstCell()
		for y := uint32(0); y < coord.ChunkSize; y++ {
			for x := uint32(0); x < coord.ChunkSize; x++ {
				p := ch.getCellAt(coord.Local{X: x, Y: y})
				if p == (cell.Packed{}) {
					continue
				}

				target := coord.Cell{X: first.X + int32(x) + c.X, Y: first.Y + int32(y) + c.Y}
				if target.X < ll.X {
					ll.X = target.X
				}
				if target.Y < ll.Y {
					ll.Y = target.Y
				}
				if target.X > ur.X {
					ur.X = target.X
				}
				if target.Y > ur.Y {
					ur.Y = target.Y
				}
				touched = true

				b.SetCell(target, p)
			}
		}
	}

	if !touched {
		return
	}

	for x := ll.X; x <= ur.X; x++ {
		b.fixCell(coord.Cell{X: x, Y: ll.Y})
		b.fixCell(coord.Cell{X: x, Y: ur.Y})
	}
	for y := ll.Y; y <= ur.Y; y++ {
		b.fixCell(coord.Cell{X: ll.X, Y: y})
		b.fixCell(coord.Cell{X: ur.X, Y: y})
	}
}

// RotateToNew returns a new Buffer with every cell rotated 90 degrees
// clockwise around the origin.
func (b *Buffer) RotateToNew() *Buffer {
	out := NewBuffer()
	for chunkCoord, ch := range b.chunks {
		for y := uint32(0); y < coord.ChunkSize; y++ {
			for x := uint32(0); x < coord.ChunkSize; x++ {
				l := coord.Local{X: x, Y: y}
				c := l.ToCell(chunkCoord)
				out.SetCell(coord.Cell{X: -c.Y, Y: c.X}, ch.getCellAt(l).Rotate())
			}
		}
	}
	return out
}

// MirrorToNew returns a new Buffer with every cell mirrored top-to-bottom
// around the origin.
func (b *Buffer) MirrorToNew() *Buffer {
	out := NewBuffer()
	for chunkCoord, ch := range b.chunks {
		for y := uint32(0); y < coord.ChunkSize; y++ {
			for x := uint32(0); x < coord.ChunkSize; x++ {
				l := coord.Local{X: x, Y: y}
				c := l.ToCell(chunkCoord)
				out.SetCell(coord.Cell{X: c.X, Y: -c.Y}, ch.getCellAt(l).Mirror())
			}
		}
	}
	return out
}

// FixAllCells re-validates every allocated cell's connections, useful
// after a bulk mutation that bypassed the painting primitives.
func (b *Buffer) FixAllCells() {
	for chunkCoord := range b.chunks {
		first := chunkCoord.FirstCell()
		for y := int32(0); y < coord.ChunkSize; y++ {
			for x := int32(0); x < coord.ChunkSize; x++ {
				b.fixCell(coord.Cell{X: first.X + x, Y: first.Y + y})
			}
		}
	}
}

// fixCell restores the grid invariant at c: any cardinal connection that
// isn't reciprocated by a compatible neighbor is dropped.
func (b *Buffer) fixCell(c coord.Cell) {
	orig := b.GetCell(c)
	if orig == (cell.Packed{}) {
		return
	}

	nc := cell.Normalize(orig)

	if nc.Metal.Kind == cell.MetalTrace {
		pl := nc.Metal.Placement
		for _, v := range pl.CardinalVectors() {
			n := cell.Normalize(b.GetCell(c.Add(v[0], v[1])))
			if n.Metal.Kind == cell.MetalTrace && n.Metal.Placement.HasCardinal(-v[0], -v[1]) {
				continue
			}
			pl = pl.ClearCardinal(v[0], v[1])
		}
		nc.Metal.Placement = pl
	}

	checkSiPlacement := func(pl placement.Placement, isN bool) placement.Placement {
		fixed := placement.None
		for _, v := range pl.CardinalVectors() {
			n := cell.Normalize(b.GetCell(c.Add(v[0], v[1])))
			var neighborPlacement placement.Placement
			compatible := false

			switch {
			case n.Si.Kind == cell.SiliconNP && n.Si.IsN == isN:
				neighborPlacement, compatible = n.Si.Placement, true
			case n.Si.Kind == cell.SiliconMosfet && n.Si.IsNPN == isN:
				neighborPlacement, compatible = n.Si.ECPlacement, true
			case n.Si.Kind == cell.SiliconMosfet && n.Si.IsNPN != isN:
				neighborPlacement, compatible = n.Si.GatePlacement, true
			}

			if compatible && neighborPlacement.HasCardinal(-v[0], -v[1]) {
				fixed = fixed.SetCardinal(v[0], v[1])
			}
		}
		return fixed
	}

	switch nc.Si.Kind {
	case cell.SiliconNP:
		nc.Si.Placement = checkSiPlacement(nc.Si.Placement, nc.Si.IsN)
	case cell.SiliconMosfet:
		nc.Si.ECPlacement = checkSiPlacement(nc.Si.ECPlacement, nc.Si.IsNPN)
		nc.Si.GatePlacement = checkSiPlacement(nc.Si.GatePlacement, !nc.Si.IsNPN)
	}

	newPacked := cell.Denormalize(nc)
	if newPacked != orig {
		slog.Debug("fixCell pruned a dangling connection", "cell", c)
	}
	b.SetCell(c, newPacked)
}
