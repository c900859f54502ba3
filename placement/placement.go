// Package placement implements the 4-cardinal bitset used throughout the
// grid model to say which of a cell's four neighbors (up, right, down,
// left) a trace or silicon gate extends towards.
package placement

import "github.com/sarchlab/gridsim/coord"

// Placement records which cardinal directions are set. The zero value is
// used both to mean "no direction" (an empty cell) and "center" (a cell
// whose layer is present but linked to no neighbor, such as a freshly
// painted single trace cell) -- the two
// meanings are disambiguated by the call site, never by the value itself.
type Placement struct {
	Up, Right, Down, Left bool
}

// None is the empty placement.
var None = Placement{}

// Up, Right, Down, Left are the four single-cardinal placements, useful
// for building up a Placement with Union.
var (
	Up    = Placement{Up: true}
	Right = Placement{Right: true}
	Down  = Placement{Down: true}
	Left  = Placement{Left: true}
)

// Union returns the bitwise-OR of p and other.
func (p Placement) Union(other Placement) Placement {
	return Placement{
		Up:    p.Up || other.Up,
		Right: p.Right || other.Right,
		Down:  p.Down || other.Down,
		Left:  p.Left || other.Left,
	}
}

// Has reports whether p has every cardinal set in other.
func (p Placement) Has(other Placement) bool {
	if other.Up && !p.Up {
		return false
	}
	if other.Right && !p.Right {
		return false
	}
	if other.Down && !p.Down {
		return false
	}
	if other.Left && !p.Left {
		return false
	}
	return true
}

// IsEmpty reports whether no cardinal is set.
func (p Placement) IsEmpty() bool {
	return !p.Up && !p.Right && !p.Down && !p.Left
}

// SetCardinal returns p with the cardinal in direction dx,dy set. dx,dy
// must be one of (0,-1), (1,0), (0,1), (-1,0).
func (p Placement) SetCardinal(dx, dy int32) Placement {
	switch {
	case dx == 0 && dy == -1:
		p.Up = true
	case dx == 1 && dy == 0:
		p.Right = true
	case dx == 0 && dy == 1:
		p.Down = true
	case dx == -1 && dy == 0:
		p.Left = true
	}
	return p
}

// ClearCardinal returns p with the cardinal in direction dx,dy cleared.
func (p Placement) ClearCardinal(dx, dy int32) Placement {
	switch {
	case dx == 0 && dy == -1:
		p.Up = false
	case dx == 1 && dy == 0:
		p.Right = false
	case dx == 0 && dy == 1:
		p.Down = false
	case dx == -1 && dy == 0:
		p.Left = false
	}
	return p
}

// HasCardinal reports whether the cardinal in direction dx,dy is set.
func (p Placement) HasCardinal(dx, dy int32) bool {
	switch {
	case dx == 0 && dy == -1:
		return p.Up
	case dx == 1 && dy == 0:
		return p.Right
	case dx == 0 && dy == 1:
		return p.Down
	case dx == -1 && dy == 0:
		return p.Left
	}
	return false
}

// CardinalVectors returns the (dx, dy) offsets for every cardinal set in p,
// in Up, Right, Down, Left order.
func (p Placement) CardinalVectors() [][2]int32 {
	var out [][2]int32
	if p.Up {
		out = append(out, [2]int32{0, -1})
	}
	if p.Right {
		out = append(out, [2]int32{1, 0})
	}
	if p.Down {
		out = append(out, [2]int32{0, 1})
	}
	if p.Left {
		out = append(out, [2]int32{-1, 0})
	}
	return out
}

// Neighbors returns the grid cells neighboring from in every direction set
// in p.
func (p Placement) Neighbors(from coord.Cell) []coord.Cell {
	vecs := p.CardinalVectors()
	out := make([]coord.Cell, len(vecs))
	for i, v := range vecs {
		out[i] = from.Add(v[0], v[1])
	}
	return out
}

// FromCardinal builds a Placement with only the cardinal towards dx,dy set.
func FromCardinal(dx, dy int32) Placement {
	return None.SetCardinal(dx, dy)
}
