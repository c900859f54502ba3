// Package cell implements the packed wire format for a single grid cell
// and the NormalizedCell scratch view used by painting and compilation.
package cell

import "github.com/sarchlab/gridsim/placement"

// ByteLen is the number of bytes used to store one cell. Cells are
// 4-byte aligned so a chunk's backing array can be blitted directly as a
// texture; only the first two bytes carry drawing semantics today, the
// remaining two are reserved and always zero in this core.
const ByteLen = 4

// Packed is the bit-packed on-grid representation of a cell.
type Packed [ByteLen]byte

// bit positions within Packed[0]
const (
	bitSiN              = 7
	bitSiP              = 6
	bitMosfetHorizontal = 5
	bitMosfetVertical   = 4
	bitSiDirUp          = 3
	bitSiDirRight       = 2
	bitSiDirDown        = 1
	bitSiDirLeft        = 0
)

// bit positions within Packed[1]
const (
	bitMetal         = 7
	bitMetalDirUp    = 6
	bitMetalDirRight = 5
	bitMetalDirDown  = 4
	bitMetalDirLeft  = 3
	bitVia           = 2
	bitSocket        = 1
	bitBondPad       = 0
)

func getBit(b byte, pos uint) bool {
	return b&(1<<pos) != 0
}

func setBit(b *byte, pos uint, v bool) {
	if v {
		*b |= 1 << pos
	} else {
		*b &^= 1 << pos
	}
}

// IsMosfet reports whether p encodes a MOSFET (as opposed to a plain NP
// silicon trace).
func (p Packed) IsMosfet() bool {
	return getBit(p[0], bitMosfetHorizontal) || getBit(p[0], bitMosfetVertical)
}

// HasMetal reports whether p's metal layer is set at all.
func (p Packed) HasMetal() bool {
	return getBit(p[1], bitMetal)
}

// HasVia reports whether p has a via connecting its metal and silicon
// layers.
func (p Packed) HasVia() bool {
	return getBit(p[1], bitVia)
}

// HasSocket reports whether p is registered as a socket pad.
func (p Packed) HasSocket() bool {
	return getBit(p[1], bitSocket)
}

// HasBondPad reports whether p is registered as a bond pad.
func (p Packed) HasBondPad() bool {
	return getBit(p[1], bitBondPad)
}

// SetSocket returns p with its socket bit set to v.
func (p Packed) SetSocket(v bool) Packed {
	setBit(&p[1], bitSocket, v)
	return p
}

// SetBondPad returns p with its bond pad bit set to v.
func (p Packed) SetBondPad(v bool) Packed {
	setBit(&p[1], bitBondPad, v)
	return p
}

// Rotate returns p rotated 90 degrees clockwise in place: each cardinal
// direction bit shifts to the next one around, and the MOSFET axis flips.
func (p Packed) Rotate() Packed {
	out := p

	setBit(&out[0], bitMosfetHorizontal, getBit(p[0], bitMosfetVertical))
	setBit(&out[0], bitMosfetVertical, getBit(p[0], bitMosfetHorizontal))

	setBit(&out[0], bitSiDirUp, getBit(p[0], bitSiDirLeft))
	setBit(&out[0], bitSiDirRight, getBit(p[0], bitSiDirUp))
	setBit(&out[0], bitSiDirDown, getBit(p[0], bitSiDirRight))
	setBit(&out[0], bitSiDirLeft, getBit(p[0], bitSiDirDown))

	setBit(&out[1], bitMetalDirUp, getBit(p[1], bitMetalDirLeft))
	setBit(&out[1], bitMetalDirRight, getBit(p[1], bitMetalDirUp))
	setBit(&out[1], bitMetalDirDown, getBit(p[1], bitMetalDirRight))
	setBit(&out[1], bitMetalDirLeft, getBit(p[1], bitMetalDirDown))

	return out
}

// Mirror returns p mirrored top-to-bottom: up and down swap, left and
// right are untouched.
func (p Packed) Mirror() Packed {
	out := p

	setBit(&out[0], bitSiDirUp, getBit(p[0], bitSiDirDown))
	setBit(&out[0], bitSiDirDown, getBit(p[0], bitSiDirUp))

	setBit(&out[1], bitMetalDirUp, getBit(p[1], bitMetalDirDown))
	setBit(&out[1], bitMetalDirDown, getBit(p[1], bitMetalDirUp))

	return out
}

// MetalKind distinguishes the two states of a cell's metal layer.
type MetalKind int

const (
	MetalNone MetalKind = iota
	MetalTrace
)

// Metal describes a cell's metal layer.
type Metal struct {
	Kind       MetalKind
	HasVia     bool
	HasSocket  bool
	HasBondPad bool
	Placement  placement.Placement
}

// SiliconKind distinguishes the three states of a cell's silicon layer.
type SiliconKind int

const (
	SiliconNone SiliconKind = iota
	SiliconNP
	SiliconMosfet
)

// Silicon describes a cell's silicon layer: either empty, a plain N/P
// conductive trace, or a MOSFET gate.
type Silicon struct {
	Kind SiliconKind

	// NP fields.
	IsN       bool
	Placement placement.Placement

	// Mosfet fields.
	IsNPN         bool
	IsHorizontal  bool
	GatePlacement placement.Placement
	ECPlacement   placement.Placement
}

// Normalized is the transient, tagged-union view of a cell used by
// painting and the compiler. It should never be stored; always read it
// fresh from a Packed cell and discard it.
type Normalized struct {
	Metal Metal
	Si    Silicon
}

// Normalize decodes a Packed cell into its Normalized view.
func Normalize(p Packed) Normalized {
	var nc Normalized

	if getBit(p[1], bitMetal) {
		nc.Metal = Metal{
			Kind:       MetalTrace,
			HasVia:     getBit(p[1], bitVia),
			HasSocket:  getBit(p[1], bitSocket),
			HasBondPad: getBit(p[1], bitBondPad),
			Placement: placement.Placement{
				Up:    getBit(p[1], bitMetalDirUp),
				Right: getBit(p[1], bitMetalDirRight),
				Down:  getBit(p[1], bitMetalDirDown),
				Left:  getBit(p[1], bitMetalDirLeft),
			},
		}
	}

	switch {
	case p.IsMosfet():
		isHorizontal := getBit(p[0], bitMosfetHorizontal)
		nc.Si = Silicon{
			Kind:         SiliconMosfet,
			IsNPN:        getBit(p[0], bitSiN),
			IsHorizontal: isHorizontal,
			GatePlacement: placement.Placement{
				Up:    !isHorizontal && getBit(p[0], bitSiDirUp),
				Right: isHorizontal && getBit(p[0], bitSiDirRight),
				Down:  !isHorizontal && getBit(p[0], bitSiDirDown),
				Left:  isHorizontal && getBit(p[0], bitSiDirLeft),
			},
			ECPlacement: placement.Placement{
				Up:    isHorizontal && getBit(p[0], bitSiDirUp),
				Right: !isHorizontal && getBit(p[0], bitSiDirRight),
				Down:  isHorizontal && getBit(p[0], bitSiDirDown),
				Left:  !isHorizontal && getBit(p[0], bitSiDirLeft),
			},
		}
	case getBit(p[0], bitSiN) || getBit(p[0], bitSiP):
		nc.Si = Silicon{
			Kind: SiliconNP,
			IsN:  getBit(p[0], bitSiN),
			Placement: placement.Placement{
				Up:    getBit(p[0], bitSiDirUp),
				Right: getBit(p[0], bitSiDirRight),
				Down:  getBit(p[0], bitSiDirDown),
				Left:  getBit(p[0], bitSiDirLeft),
			},
		}
	}

	return nc
}

// Denormalize encodes a Normalized view back into a Packed cell.
func Denormalize(nc Normalized) Packed {
	var p Packed

	if nc.Metal.Kind == MetalTrace {
		setBit(&p[1], bitMetal, true)
		setBit(&p[1], bitVia, nc.Metal.HasVia)
		setBit(&p[1], bitSocket, nc.Metal.HasSocket)
		setBit(&p[1], bitBondPad, nc.Metal.HasBondPad)
		setBit(&p[1], bitMetalDirUp, nc.Metal.Placement.Up)
		setBit(&p[1], bitMetalDirRight, nc.Metal.Placement.Right)
		setBit(&p[1], bitMetalDirDown, nc.Metal.Placement.Down)
		setBit(&p[1], bitMetalDirLeft, nc.Metal.Placement.Left)
	}

	switch nc.Si.Kind {
	case SiliconNP:
		setBit(&p[0], bitSiN, nc.Si.IsN)
		setBit(&p[0], bitSiP, !nc.Si.IsN)
		setBit(&p[0], bitSiDirUp, nc.Si.Placement.Up)
		setBit(&p[0], bitSiDirRight, nc.Si.Placement.Right)
		setBit(&p[0], bitSiDirDown, nc.Si.Placement.Down)
		setBit(&p[0], bitSiDirLeft, nc.Si.Placement.Left)
	case SiliconMosfet:
		setBit(&p[0], bitSiN, nc.Si.IsNPN)
		setBit(&p[0], bitSiP, !nc.Si.IsNPN)
		setBit(&p[0], bitMosfetHorizontal, nc.Si.IsHorizontal)
		setBit(&p[0], bitMosfetVertical, !nc.Si.IsHorizontal)
		setBit(&p[0], bitSiDirUp, nc.Si.ECPlacement.Up || nc.Si.GatePlacement.Up)
		setBit(&p[0], bitSiDirRight, nc.Si.ECPlacement.Right || nc.Si.GatePlacement.Right)
		setBit(&p[0], bitSiDirDown, nc.Si.ECPlacement.Down || nc.Si.GatePlacement.Down)
		setBit(&p[0], bitSiDirLeft, nc.Si.ECPlacement.Left || nc.Si.GatePlacement.Left)
	}

	return p
}
