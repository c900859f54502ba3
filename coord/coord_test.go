package coord

import "testing"

func TestToChunkFloorsNegativeCoordinates(t *testing.T) {
	cases := []struct {
		cell Cell
		want Chunk
	}{
		{Cell{X: 0, Y: 0}, Chunk{X: 0, Y: 0}},
		{Cell{X: ChunkSize - 1, Y: ChunkSize - 1}, Chunk{X: 0, Y: 0}},
		{Cell{X: ChunkSize, Y: 0}, Chunk{X: 1, Y: 0}},
		{Cell{X: -1, Y: -1}, Chunk{X: -1, Y: -1}},
		{Cell{X: -ChunkSize, Y: -ChunkSize}, Chunk{X: -1, Y: -1}},
		{Cell{X: -ChunkSize - 1, Y: 0}, Chunk{X: -2, Y: 0}},
	}

	for _, c := range cases {
		got := c.cell.ToChunk()
		if got != c.want {
			t.Errorf("Cell%+v.ToChunk() = %+v, want %+v", c.cell, got, c.want)
		}
	}
}

func TestToLocalStaysInBounds(t *testing.T) {
	cases := []struct {
		cell Cell
		want Local
	}{
		{Cell{X: 0, Y: 0}, Local{X: 0, Y: 0}},
		{Cell{X: ChunkSize - 1, Y: 1}, Local{X: ChunkSize - 1, Y: 1}},
		{Cell{X: -1, Y: -1}, Local{X: ChunkSize - 1, Y: ChunkSize - 1}},
		{Cell{X: -ChunkSize, Y: 0}, Local{X: 0, Y: 0}},
	}

	for _, c := range cases {
		got := c.cell.ToLocal()
		if got != c.want {
			t.Errorf("Cell%+v.ToLocal() = %+v, want %+v", c.cell, got, c.want)
		}
	}
}

func TestFromOffsetRoundTrips(t *testing.T) {
	ch := Chunk{X: -3, Y: 2}
	cell := FromOffset(ch, 5, 9)

	if got := cell.ToChunk(); got != ch {
		t.Fatalf("FromOffset(%v, 5, 9).ToChunk() = %v, want %v", ch, got, ch)
	}
	if got := cell.ToLocal(); got != (Local{X: 5, Y: 9}) {
		t.Fatalf("FromOffset(%v, 5, 9).ToLocal() = %v, want {5 9}", ch, got)
	}
}

func TestChunkFirstAndLastCell(t *testing.T) {
	ch := Chunk{X: 2, Y: -1}
	first := ch.FirstCell()
	last := ch.LastCell()

	if first.ToChunk() != ch {
		t.Errorf("FirstCell not owned by chunk: %+v", first)
	}
	if last.ToChunk() != ch {
		t.Errorf("LastCell not owned by chunk: %+v", last)
	}
	if last.X-first.X != ChunkSize-1 || last.Y-first.Y != ChunkSize-1 {
		t.Errorf("chunk span wrong: first=%+v last=%+v", first, last)
	}
}

func TestLocalIndexIsRowMajor(t *testing.T) {
	l := Local{X: 3, Y: 2}
	want := 2<<LogChunkSize | 3
	if got := l.Index(); got != want {
		t.Errorf("Index() = %d, want %d", got, want)
	}
}
