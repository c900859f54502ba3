package engine

import "github.com/sarchlab/gridsim/coord"

// maskByteLen is the number of trace-state bytes recorded per cell: metal,
// si, left EC, right EC, in that order.
const maskByteLen = 4

// MaskChunk holds one chunk's worth of per-cell overlay bytes, indexed the
// same way compiler.CellPartToTrace.CellIndexInChunk is.
type MaskChunk struct {
	Cells []byte
}

// Mask is a renderer-facing overlay: for every allocated cell, whether its
// metal, si, left-EC, and right-EC parts are currently driven high. It
// holds no simulation state of its own -- Engine.UpdateOverlayMask()
// refreshes it from the current trace states on demand.
type Mask struct {
	chunks map[coord.Chunk]*MaskChunk
}

// NewMask returns an empty Mask.
func NewMask() *Mask {
	return &Mask{chunks: make(map[coord.Chunk]*MaskChunk)}
}

// Chunk returns the overlay chunk at c, or nil if nothing has been
// recorded there yet.
func (m *Mask) Chunk(c coord.Chunk) *MaskChunk {
	return m.chunks[c]
}

func (m *Mask) getOrCreateChunk(c coord.Chunk, cellCount int) *MaskChunk {
	ch, ok := m.chunks[c]
	if !ok {
		ch = &MaskChunk{Cells: make([]byte, cellCount*maskByteLen)}
		m.chunks[c] = ch
	}
	return ch
}
