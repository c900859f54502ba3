package substrate

import (
	"github.com/sarchlab/gridsim/cell"
	"github.com/sarchlab/gridsim/coord"
	"github.com/sarchlab/gridsim/placement"
)

// rangeIter returns every integer from start to end inclusive, walking in
// whichever direction reaches end.
func rangeIter(start, end int32) []int32 {
	if start <= end {
		out := make([]int32, 0, end-start+1)
		for v := start; v <= end; v++ {
			out = append(out, v)
		}
		return out
	}
	out := make([]int32, 0, start-end+1)
	for v := start; v >= end; v-- {
		out = append(out, v)
	}
	return out
}

// DrawSi paints a conductive N or P silicon trace along the Manhattan path
// from start to end, drawing the vertical leg first when
// initialImpulseVertical is set.
func (b *Buffer) DrawSi(start, end coord.Cell, initialImpulseVertical, paintN bool) {
	var from *coord.Cell

	if initialImpulseVertical {
		for _, y := range rangeIter(start.Y, end.Y) {
			to := coord.Cell{X: start.X, Y: y}
			b.DrawSiLink(from, to, paintN)
			from = &to
		}
		for _, x := range rangeIter(start.X, end.X) {
			to := coord.Cell{X: x, Y: end.Y}
			b.DrawSiLink(from, to, paintN)
			from = &to
		}
	} else {
		for _, x := range rangeIter(start.X, end.X) {
			to := coord.Cell{X: x, Y: start.Y}
			b.DrawSiLink(from, to, paintN)
			from = &to
		}
		for _, y := range rangeIter(start.Y, end.Y) {
			to := coord.Cell{X: end.X, Y: y}
			b.DrawSiLink(from, to, paintN)
			from = &to
		}
	}

	b.DrawSiLink(from, end, paintN)
}

// DrawMetal paints a metal trace along the Manhattan path from start to
// end.
func (b *Buffer) DrawMetal(start, end coord.Cell, initialImpulseVertical bool) {
	var from *coord.Cell

	if initialImpulseVertical {
		for _, y := range rangeIter(start.Y, end.Y) {
			to := coord.Cell{X: start.X, Y: y}
			b.DrawMetalLink(from, to)
			from = &to
		}
		for _, x := range rangeIter(start.X, end.X) {
			to := coord.Cell{X: x, Y: end.Y}
			b.DrawMetalLink(from, to)
			from = &to
		}
	} else {
		for _, x := range rangeIter(start.X, end.X) {
			to := coord.Cell{X: x, Y: start.Y}
			b.DrawMetalLink(from, to)
			from = &to
		}
		for _, y := range rangeIter(start.Y, end.Y) {
			to := coord.Cell{X: end.X, Y: y}
			b.DrawMetalLink(from, to)
			from = &to
		}
	}

	b.DrawMetalLink(from, end)
}

// ClearSi clears the silicon layer along the Manhattan path from start to
// end.
func (b *Buffer) ClearSi(start, end coord.Cell, initialImpulseVertical bool) {
	if initialImpulseVertical {
		for _, y := range rangeIter(start.Y, end.Y) {
			b.ClearCellSi(coord.Cell{X: start.X, Y: y})
		}
		for _, x := range rangeIter(start.X, end.X) {
			b.ClearCellSi(coord.Cell{X: x, Y: end.Y})
		}
	} else {
		for _, x := range rangeIter(start.X, end.X) {
			b.ClearCellSi(coord.Cell{X: x, Y: start.Y})
		}
		for _, y := range rangeIter(start.Y, end.Y) {
			b.ClearCellSi(coord.Cell{X: end.X, Y: y})
		}
	}
	b.ClearCellSi(end)
}

// ClearMetal clears the metal layer along the Manhattan path from start to
// end.
func (b *Buffer) ClearMetal(start, end coord.Cell, initialImpulseVertical bool) {
	if initialImpulseVertical {
		for _, y := range rangeIter(start.Y, end.Y) {
			b.ClearCellMetal(coord.Cell{X: start.X, Y: y})
		}
		for _, x := range rangeIter(start.X, end.X) {
			b.ClearCellMetal(coord.Cell{X: x, Y: end.Y})
		}
	} else {
		for _, x := range rangeIter(start.X, end.X) {
			b.ClearCellMetal(coord.Cell{X: x, Y: start.Y})
		}
		for _, y := range rangeIter(start.Y, end.Y) {
			b.ClearCellMetal(coord.Cell{X: end.X, Y: y})
		}
	}
	b.ClearCellMetal(end)
}

// DrawVia marks c as having a via, connecting its metal and silicon
// layers, provided it already has a plain NP silicon trace and a metal
// trace. A via cannot attach to a MOSFET.
func (b *Buffer) DrawVia(c coord.Cell) {
	nc := cell.Normalize(b.GetCell(c))

	if nc.Si.Kind == cell.SiliconNP && nc.Metal.Kind == cell.MetalTrace {
		nc.Metal.HasVia = true
	}

	b.SetCell(c, cell.Denormalize(nc))
}

// ClearSelection clears every cell's border invariant-affecting
// connections then blit-clears the interior of the rectangle
// [lowerLeft, upperRight).
func (b *Buffer) ClearSelection(lowerLeft, upperRight coord.Cell) {
	if lowerLeft == upperRight {
		return
	}

	b.ClearSelectionBorder(lowerLeft, upperRight)

	for y := lowerLeft.Y + 1; y < upperRight.Y-1; y++ {
		for x := lowerLeft.X + 1; x < upperRight.X-1; x++ {
			b.SetCell(coord.Cell{X: x, Y: y}, cell.Packed{})
		}
	}
}

// ClearSelectionBorder clears the silicon and metal layers along the
// border of the rectangle [lowerLeft, upperRight), leaving the interior
// untouched.
func (b *Buffer) ClearSelectionBorder(lowerLeft, upperRight coord.Cell) {
	if lowerLeft == upperRight {
		return
	}

	for x := lowerLeft.X; x < upperRight.X; x++ {
		b.ClearCellSi(coord.Cell{X: x, Y: lowerLeft.Y})
		b.ClearCellSi(coord.Cell{X: x, Y: upperRight.Y - 1})
	}
	for y := lowerLeft.Y; y < upperRight.Y; y++ {
		b.ClearCellSi(coord.Cell{X: lowerLeft.X, Y: y})
		b.ClearCellSi(coord.Cell{X: upperRight.X - 1, Y: y})
	}

	for x := lowerLeft.X; x < upperRight.X; x++ {
		b.ClearCellMetal(coord.Cell{X: x, Y: lowerLeft.Y})
		b.ClearCellMetal(coord.Cell{X: x, Y: upperRight.Y - 1})
	}
	for y := lowerLeft.Y; y < upperRight.Y; y++ {
		b.ClearCellMetal(coord.Cell{X: lowerLeft.X, Y: y})
		b.ClearCellMetal(coord.Cell{X: upperRight.X - 1, Y: y})
	}
}

// DrawSiLink extends a silicon trace of polarity paintN onto the cell at
// to, optionally connecting it to an existing trace at from. Connections
// that would bridge incompatible silicon types are rejected rather than
// drawn; fixCell applies the same neighbor-compatibility rules.
func (b *Buffer) DrawSiLink(from *coord.Cell, to coord.Cell, paintN bool) {
	toCell := cell.Normalize(b.GetCell(to))

	if toCell.Si.Kind == cell.SiliconNone {
		toCell.Si = cell.Silicon{Kind: cell.SiliconNP, IsN: paintN}
		b.SetCell(to, cell.Denormalize(toCell))
	}

	if from == nil {
		return
	}

	fromCell := cell.Normalize(b.GetCell(*from))
	dx := to.X - from.X
	dy := to.Y - from.Y

	switch fromCell.Si.Kind {
	case cell.SiliconNP:
		if fromCell.Si.Placement.HasCardinal(dx, dy) {
			return
		}
	case cell.SiliconMosfet:
		if fromCell.Si.GatePlacement.HasCardinal(dx, dy) || fromCell.Si.ECPlacement.HasCardinal(dx, dy) {
			return
		}
	}

	connectedFrom := fromCell
	goingHorizontal := dx != 0

	switch {
	case paintN && connectedFrom.Si.Kind == cell.SiliconNP && connectedFrom.Si.IsN:
		connectedFrom.Si.Placement = connectedFrom.Si.Placement.SetCardinal(dx, dy)
	case !paintN && connectedFrom.Si.Kind == cell.SiliconNP && !connectedFrom.Si.IsN:
		connectedFrom.Si.Placement = connectedFrom.Si.Placement.SetCardinal(dx, dy)
	case paintN && connectedFrom.Si.Kind == cell.SiliconMosfet && connectedFrom.Si.IsNPN && connectedFrom.Si.IsHorizontal != goingHorizontal:
		connectedFrom.Si.ECPlacement = connectedFrom.Si.ECPlacement.SetCardinal(dx, dy)
	case paintN && connectedFrom.Si.Kind == cell.SiliconMosfet && !connectedFrom.Si.IsNPN && connectedFrom.Si.IsHorizontal == goingHorizontal:
		connectedFrom.Si.GatePlacement = connectedFrom.Si.GatePlacement.SetCardinal(dx, dy)
	case !paintN && connectedFrom.Si.Kind == cell.SiliconMosfet && connectedFrom.Si.IsNPN && connectedFrom.Si.IsHorizontal == goingHorizontal:
		connectedFrom.Si.GatePlacement = connectedFrom.Si.GatePlacement.SetCardinal(dx, dy)
	case !paintN && connectedFrom.Si.Kind == cell.SiliconMosfet && !connectedFrom.Si.IsNPN && connectedFrom.Si.IsHorizontal != goingHorizontal:
		connectedFrom.Si.ECPlacement = connectedFrom.Si.ECPlacement.SetCardinal(dx, dy)
	}

	if connectedFrom == fromCell {
		return
	}

	switch {
	case paintN && toCell.Si.Kind == cell.SiliconNP && toCell.Si.IsN:
		toCell.Si.Placement = toCell.Si.Placement.SetCardinal(-dx, -dy)
	case !paintN && toCell.Si.Kind == cell.SiliconNP && !toCell.Si.IsN:
		toCell.Si.Placement = toCell.Si.Placement.SetCardinal(-dx, -dy)
	case paintN && toCell.Si.Kind == cell.SiliconNP && !toCell.Si.IsN && !toCell.Si.Placement.HasCardinal(dx, dy):
		toCell.Si = cell.Silicon{
			Kind:          cell.SiliconMosfet,
			IsNPN:         false,
			IsHorizontal:  goingHorizontal,
			GatePlacement: placement.FromCardinal(-dx, -dy),
			ECPlacement:   toCell.Si.Placement,
		}
	case !paintN && toCell.Si.Kind == cell.SiliconNP && toCell.Si.IsN && !toCell.Si.Placement.HasCardinal(dx, dy):
		toCell.Si = cell.Silicon{
			Kind:          cell.SiliconMosfet,
			IsNPN:         true,
			IsHorizontal:  goingHorizontal,
			GatePlacement: placement.FromCardinal(-dx, -dy),
			ECPlacement:   toCell.Si.Placement,
		}
	case paintN && toCell.Si.Kind == cell.SiliconMosfet && toCell.Si.IsNPN && toCell.Si.IsHorizontal != goingHorizontal:
		toCell.Si.ECPlacement = toCell.Si.ECPlacement.SetCardinal(-dx, -dy)
	case !paintN && toCell.Si.Kind == cell.SiliconMosfet && toCell.Si.IsNPN && toCell.Si.IsHorizontal == goingHorizontal:
		toCell.Si.GatePlacement = toCell.Si.GatePlacement.SetCardinal(-dx, -dy)
	case paintN && toCell.Si.Kind == cell.SiliconMosfet && !toCell.Si.IsNPN && toCell.Si.IsHorizontal == goingHorizontal:
		toCell.Si.GatePlacement = toCell.Si.GatePlacement.SetCardinal(-dx, -dy)
	case !paintN && toCell.Si.Kind == cell.SiliconMosfet && !toCell.Si.IsNPN && toCell.Si.IsHorizontal != goingHorizontal:
		toCell.Si.ECPlacement = toCell.Si.ECPlacement.SetCardinal(-dx, -dy)
	default:
		return
	}

	b.SetCell(*from, cell.Denormalize(connectedFrom))
	b.SetCell(to, cell.Denormalize(toCell))
}

// DrawMetalLink extends a metal trace onto the cell at to, optionally
// connecting it to an existing trace at from.
func (b *Buffer) DrawMetalLink(from *coord.Cell, to coord.Cell) {
	toCell := cell.Normalize(b.GetCell(to))

	if toCell.Metal.Kind == cell.MetalNone {
		toCell.Metal = cell.Metal{Kind: cell.MetalTrace}
	}

	if from != nil {
		fromCell := cell.Normalize(b.GetCell(*from))
		dx := to.X - from.X
		dy := to.Y - from.Y

		if fromCell.Metal.Kind == cell.MetalTrace && toCell.Metal.Kind == cell.MetalTrace {
			fromCell.Metal.Placement = fromCell.Metal.Placement.SetCardinal(dx, dy)
			toCell.Metal.Placement = toCell.Metal.Placement.SetCardinal(-dx, -dy)
		}

		b.SetCell(*from, cell.Denormalize(fromCell))
	}

	b.SetCell(to, cell.Denormalize(toCell))
}

// ClearCellSi removes c's silicon layer (and any via resting on it),
// unlinking every neighbor that was conductively connected to it.
func (b *Buffer) ClearCellSi(c coord.Cell) {
	if b.GetCell(c) == (cell.Packed{}) {
		return
	}

	nc := cell.Normalize(b.GetCell(c))

	var vectors [][2]int32
	switch nc.Si.Kind {
	case cell.SiliconNP:
		vectors = nc.Si.Placement.CardinalVectors()
	case cell.SiliconMosfet:
		vectors = nc.Si.GatePlacement.Union(nc.Si.ECPlacement).CardinalVectors()
	}

	nc.Si = cell.Silicon{}
	if nc.Metal.Kind == cell.MetalTrace {
		nc.Metal.HasVia = false
	}
	b.SetCell(c, cell.Denormalize(nc))

	for _, v := range vectors {
		neighborCoord := c.Add(v[0], v[1])
		neighbor := cell.Normalize(b.GetCell(neighborCoord))

		switch neighbor.Si.Kind {
		case cell.SiliconNP:
			neighbor.Si.Placement = neighbor.Si.Placement.ClearCardinal(-v[0], -v[1])
		case cell.SiliconMosfet:
			neighbor.Si.GatePlacement = neighbor.Si.GatePlacement.ClearCardinal(-v[0], -v[1])
			neighbor.Si.ECPlacement = neighbor.Si.ECPlacement.ClearCardinal(-v[0], -v[1])
		}

		b.SetCell(neighborCoord, cell.Denormalize(neighbor))
	}
}

// ClearCellMetal removes c's metal layer, unlinking every neighbor that
// was connected to it.
func (b *Buffer) ClearCellMetal(c coord.Cell) {
	if b.GetCell(c) == (cell.Packed{}) {
		return
	}

	nc := cell.Normalize(b.GetCell(c))

	var vectors [][2]int32
	if nc.Metal.Kind == cell.MetalTrace {
		vectors = nc.Metal.Placement.CardinalVectors()
	}

	nc.Metal = cell.Metal{}
	b.SetCell(c, cell.Denormalize(nc))

	for _, v := range vectors {
		neighborCoord := c.Add(v[0], v[1])
		neighbor := cell.Normalize(b.GetCell(neighborCoord))

		if neighbor.Metal.Kind == cell.MetalTrace {
			neighbor.Metal.Placement = neighbor.Metal.Placement.ClearCardinal(-v[0], -v[1])
		}

		b.SetCell(neighborCoord, cell.Denormalize(neighbor))
	}
}
