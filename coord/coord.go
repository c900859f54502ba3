// Package coord implements the three coordinate spaces used to address
// cells on the infinite grid: cell coordinates (global, signed), chunk
// coordinates (which chunk a cell lives in), and local coordinates (a
// cell's offset within its chunk).
package coord

// LogChunkSize is the base-2 log of a chunk's edge length. Chunks are
// square and their size must be a power of two so that chunk/local
// decomposition can use shifts and masks instead of division.
const LogChunkSize = 7

// ChunkSize is the edge length, in cells, of one chunk.
const ChunkSize = 1 << LogChunkSize

// ChunkCellCount is the number of cells held by one chunk.
const ChunkCellCount = ChunkSize * ChunkSize

const upperMask = ^(int32(ChunkSize) - 1)

// Cell addresses a single grid cell in the infinite, signed coordinate
// space. The zero value addresses the origin.
type Cell struct {
	X, Y int32
}

// Chunk addresses one chunk in chunk space.
type Chunk struct {
	X, Y int32
}

// Local addresses a cell within its owning chunk. Both components are in
// [0, ChunkSize).
type Local struct {
	X, Y uint32
}

// ToChunk returns the chunk that owns c. The shift must be arithmetic (Go's
// native behavior for signed integers) so negative coordinates floor
// towards negative infinity instead of truncating towards zero.
func (c Cell) ToChunk() Chunk {
	return Chunk{X: c.X >> LogChunkSize, Y: c.Y >> LogChunkSize}
}

// ToLocal returns c's offset within its owning chunk.
func (c Cell) ToLocal() Local {
	return Local{
		X: uint32(c.X - (c.X & upperMask)),
		Y: uint32(c.Y - (c.Y & upperMask)),
	}
}

// Add returns c shifted by the given delta.
func (c Cell) Add(dx, dy int32) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// FirstCell returns the lowest-coordinate cell owned by chunk ch.
func (ch Chunk) FirstCell() Cell {
	return Cell{X: ch.X << LogChunkSize, Y: ch.Y << LogChunkSize}
}

// LastCell returns the highest-coordinate cell owned by chunk ch.
func (ch Chunk) LastCell() Cell {
	return Cell{
		X: (ch.X << LogChunkSize) + ChunkSize - 1,
		Y: (ch.Y << LogChunkSize) + ChunkSize - 1,
	}
}

// FromOffset builds the cell at the given x,y offset inside chunk ch.
func FromOffset(ch Chunk, x, y uint32) Cell {
	return Cell{X: (ch.X << LogChunkSize) + int32(x), Y: (ch.Y << LogChunkSize) + int32(y)}
}

// ToCell resolves a local coordinate back to a global cell, given the
// chunk it belongs to.
func (l Local) ToCell(ch Chunk) Cell {
	first := ch.FirstCell()
	return Cell{X: first.X + int32(l.X), Y: first.Y + int32(l.Y)}
}

// Index returns l's row-major index within a chunk's cell array.
func (l Local) Index() int {
	return int(l.Y)<<LogChunkSize | int(l.X)
}
