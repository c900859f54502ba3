package compiler_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gridsim/compiler"
	"github.com/sarchlab/gridsim/coord"
	"github.com/sarchlab/gridsim/socket"
	"github.com/sarchlab/gridsim/substrate"
)

var _ = Describe("Compile", func() {
	var buf *substrate.Buffer

	BeforeEach(func() {
		buf = substrate.NewBuffer()
	})

	It("assigns the same non-null trace to both ends of a metal wire", func() {
		a := coord.Cell{X: 0, Y: 0}
		b := coord.Cell{X: 3, Y: 0}
		buf.DrawMetal(a, b, false)

		sockets := []socket.Socket{
			{Name: "in", Pins: []socket.Pin{{CellCoord: a}}},
			{Name: "out", Pins: []socket.Pin{{CellCoord: b}}},
		}

		prog := compiler.Compile(buf, sockets)

		aTrace := prog.TraceLookupByAtom[compiler.Atom{Coord: a, Part: compiler.PartMetal}]
		bTrace := prog.TraceLookupByAtom[compiler.Atom{Coord: b, Part: compiler.PartMetal}]

		Expect(aTrace).NotTo(Equal(0))
		Expect(aTrace).To(Equal(bTrace))
	})

	It("keeps disconnected wires on separate traces", func() {
		a := coord.Cell{X: 0, Y: 0}
		b := coord.Cell{X: 10, Y: 10}
		buf.DrawMetal(a, a, false)
		buf.DrawMetal(b, b, false)

		sockets := []socket.Socket{
			{Name: "in", Pins: []socket.Pin{{CellCoord: a}}},
			{Name: "out", Pins: []socket.Pin{{CellCoord: b}}},
		}

		prog := compiler.Compile(buf, sockets)

		aTrace := prog.TraceLookupByAtom[compiler.Atom{Coord: a, Part: compiler.PartMetal}]
		bTrace := prog.TraceLookupByAtom[compiler.Atom{Coord: b, Part: compiler.PartMetal}]

		Expect(aTrace).NotTo(Equal(0))
		Expect(bTrace).NotTo(Equal(0))
		Expect(aTrace).NotTo(Equal(bTrace))
	})

	It("links a via onto the same trace as the metal and si it joins", func() {
		c := coord.Cell{X: 0, Y: 0}
		buf.DrawSi(c, c, false, true)
		buf.DrawMetalLink(nil, c)
		buf.DrawVia(c)

		sockets := []socket.Socket{
			{Name: "pad", Pins: []socket.Pin{{CellCoord: c}}},
		}

		prog := compiler.Compile(buf, sockets)

		metalTrace := prog.TraceLookupByAtom[compiler.Atom{Coord: c, Part: compiler.PartMetal}]
		siTrace := prog.TraceLookupByAtom[compiler.Atom{Coord: c, Part: compiler.PartSi}]

		Expect(metalTrace).NotTo(Equal(0))
		Expect(siTrace).To(Equal(metalTrace))
	})

	It("compiles a mosfet into a gate referencing its base and EC traces", func() {
		// A vertical P trace runs through gateCell; painting an N link onto
		// it from the side (gatePad) converts gateCell into a PNP mosfet
		// whose gate points at gatePad and whose EC pair points up/down at
		// the two halves of the original P trace.
		ecUp := coord.Cell{X: 0, Y: -1}
		gateCell := coord.Cell{X: 0, Y: 0}
		ecDown := coord.Cell{X: 0, Y: 1}
		gatePad := coord.Cell{X: -1, Y: 0}

		buf.DrawSi(ecUp, ecDown, true, false)
		buf.DrawSiLink(nil, gatePad, true)
		buf.DrawSiLink(&gatePad, gateCell, true)

		buf.DrawMetalLink(nil, gatePad)
		buf.DrawVia(gatePad)

		sockets := []socket.Socket{
			{Name: "gate", Pins: []socket.Pin{{CellCoord: gatePad}}},
		}

		prog := compiler.Compile(buf, sockets)

		Expect(prog.Gates).To(HaveLen(1))

		gate := prog.Gates[0]
		Expect(gate.IsNPN).To(BeFalse())
		Expect(gate.BaseTrace).NotTo(Equal(0))
		Expect(gate.LeftECTrace).NotTo(Equal(0))
		Expect(gate.RightECTrace).NotTo(Equal(0))
		Expect(gate.LeftECTrace).NotTo(Equal(gate.RightECTrace))
		Expect(gate.LeftECTrace).NotTo(Equal(gate.BaseTrace))
	})
})
