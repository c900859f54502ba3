package cell

import (
	"testing"

	"github.com/sarchlab/gridsim/placement"
)

func TestDefaultEmptyRoundTrips(t *testing.T) {
	var nc Normalized
	p := Denormalize(nc)
	if p != (Packed{}) {
		t.Fatalf("Denormalize(empty) = %v, want zero", p)
	}
	if got := Normalize(p); got != nc {
		t.Fatalf("Normalize(Denormalize(empty)) = %+v, want %+v", got, nc)
	}
}

func TestMetalOnlyRoundTrips(t *testing.T) {
	nc := Normalized{
		Metal: Metal{Kind: MetalTrace, Placement: placement.Up},
	}
	p := Denormalize(nc)
	if got := Normalize(p); got != nc {
		t.Fatalf("round trip = %+v, want %+v", got, nc)
	}
}

func TestSiOnlyRoundTrips(t *testing.T) {
	nc := Normalized{
		Si: Silicon{Kind: SiliconNP, IsN: true, Placement: placement.Right},
	}
	p := Denormalize(nc)
	if got := Normalize(p); got != nc {
		t.Fatalf("round trip = %+v, want %+v", got, nc)
	}
}

func TestMetalAndSiNoViaRoundTrips(t *testing.T) {
	nc := Normalized{
		Metal: Metal{Kind: MetalTrace, Placement: placement.Up},
		Si:    Silicon{Kind: SiliconNP, IsN: true, Placement: placement.Right},
	}
	p := Denormalize(nc)
	if got := Normalize(p); got != nc {
		t.Fatalf("round trip = %+v, want %+v", got, nc)
	}
}

func TestMetalAndSiWithViaRoundTrips(t *testing.T) {
	nc := Normalized{
		Metal: Metal{Kind: MetalTrace, HasVia: true, Placement: placement.Up},
		Si:    Silicon{Kind: SiliconNP, IsN: true, Placement: placement.Right},
	}
	p := Denormalize(nc)
	if got := Normalize(p); got != nc {
		t.Fatalf("round trip = %+v, want %+v", got, nc)
	}
}

func TestMosfetRoundTrips(t *testing.T) {
	nc := Normalized{
		Si: Silicon{
			Kind:          SiliconMosfet,
			IsNPN:         true,
			IsHorizontal:  false,
			GatePlacement: placement.Up.Union(placement.Down),
			ECPlacement:   placement.Left.Union(placement.Right),
		},
	}
	p := Denormalize(nc)
	if got := Normalize(p); got != nc {
		t.Fatalf("round trip = %+v, want %+v", got, nc)
	}
}

func TestMosfetWithMetalRoundTrips(t *testing.T) {
	nc := Normalized{
		Metal: Metal{Kind: MetalTrace, Placement: placement.Up},
		Si: Silicon{
			Kind:          SiliconMosfet,
			IsNPN:         true,
			IsHorizontal:  false,
			GatePlacement: placement.Up.Union(placement.Down),
			ECPlacement:   placement.Left.Union(placement.Right),
		},
	}
	p := Denormalize(nc)
	if got := Normalize(p); got != nc {
		t.Fatalf("round trip = %+v, want %+v", got, nc)
	}
}

func TestRotateIsFourCycle(t *testing.T) {
	p := Denormalize(Normalized{
		Metal: Metal{Kind: MetalTrace, Placement: placement.Up},
	})
	got := p.Rotate().Rotate().Rotate().Rotate()
	if got != p {
		t.Fatalf("four rotations should be identity: got %v, want %v", got, p)
	}
}

func TestMirrorIsInvolution(t *testing.T) {
	p := Denormalize(Normalized{
		Metal: Metal{Kind: MetalTrace, Placement: placement.Up.Union(placement.Left)},
	})
	got := p.Mirror().Mirror()
	if got != p {
		t.Fatalf("mirror twice should be identity: got %v, want %v", got, p)
	}
}

func TestIsMosfet(t *testing.T) {
	p := Denormalize(Normalized{
		Si: Silicon{Kind: SiliconMosfet, IsHorizontal: true},
	})
	if !p.IsMosfet() {
		t.Fatal("expected IsMosfet to be true")
	}
}
