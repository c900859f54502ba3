package substrate

import (
	"github.com/sarchlab/gridsim/cell"
	"github.com/sarchlab/gridsim/coord"
)

// chunkData holds one chunk's packed cells in row-major order. Buffers
// share a chunkData pointer across clones; the first write through a
// shared pointer unshares it by copying, giving Buffer.Clone() the same
// cheap copy-on-write semantics as a reference-counted cell array.
type chunkData struct {
	cells [coord.ChunkCellCount * cell.ByteLen]byte
	refs  int
}

func newChunkData() *chunkData {
	return &chunkData{refs: 1}
}

func (d *chunkData) clone() *chunkData {
	return &chunkData{cells: d.cells, refs: 1}
}

type chunk struct {
	coord     coord.Chunk
	cellCount int
	data      *chunkData
}

func newChunk(c coord.Chunk) *chunk {
	return &chunk{coord: c, data: newChunkData()}
}

// clone returns a chunk sharing the same backing data, bumping its
// refcount. The clone's own writes go through setCellAt, which unshares
// the data on first write.
func (c *chunk) clone() *chunk {
	c.data.refs++
	return &chunk{coord: c.coord, cellCount: c.cellCount, data: c.data}
}

// unshare ensures c.data is uniquely owned by c, copying it first if not.
func (c *chunk) unshare() {
	if c.data.refs > 1 {
		c.data.refs--
		c.data = c.data.clone()
	}
}

func (c *chunk) getCellAt(l coord.Local) cell.Packed {
	idx := l.Index() * cell.ByteLen
	var p cell.Packed
	copy(p[:], c.data.cells[idx:idx+cell.ByteLen])
	return p
}

// setCellAt writes p at local coordinate l. When preserveSocket is true,
// the existing cell's socket/bond-pad bits are carried over onto p --
// painting primitives must never be able to clear a socket registration
// by accident.
func (c *chunk) setCellAt(l coord.Local, p cell.Packed, preserveSocket bool) {
	idx := l.Index() * cell.ByteLen
	existing := c.getCellAt(l)

	if preserveSocket {
		p = p.SetSocket(existing.HasSocket())
		p = p.SetBondPad(existing.HasBondPad())
	}

	if existing == p {
		return
	}

	c.unshare()

	if existing == (cell.Packed{}) && p != (cell.Packed{}) {
		c.cellCount++
	} else if existing != (cell.Packed{}) && p == (cell.Packed{}) {
		c.cellCount--
	}

	copy(c.data.cells[idx:idx+cell.ByteLen], p[:])
}
