package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/golang/mock/gomock"

	"github.com/sarchlab/gridsim/compiler"
	"github.com/sarchlab/gridsim/coord"
	"github.com/sarchlab/gridsim/engine"
	"github.com/sarchlab/gridsim/socket"
	"github.com/sarchlab/gridsim/substrate"
)

func pinSocket(name string, c coord.Cell) *socket.Socket {
	return socket.New(name, []socket.Pin{{CellCoord: c}})
}

// pnpGateProgram hand-builds a CompiledProgram with one PNP gate and three
// traces (base, left EC, right EC), bypassing compiler.Compile so the
// test exercises Engine's tick/clock logic in isolation from how the
// compiler happens to number traces for a given grid layout.
func pnpGateProgram(base, left, right coord.Cell) *compiler.CompiledProgram {
	return &compiler.CompiledProgram{
		Traces: make([][]compiler.Atom, 4),
		TraceLookupByAtom: map[compiler.Atom]int{
			{Coord: base, Part: compiler.PartMetal}:  1,
			{Coord: left, Part: compiler.PartMetal}:  2,
			{Coord: right, Part: compiler.PartMetal}: 3,
		},
		Gates: []compiler.Gate{
			{IsNPN: false, BaseTrace: 1, LeftECTrace: 2, RightECTrace: 3},
		},
		TraceToCellPartIndexByChunk: map[coord.Chunk][]compiler.CellPartToTrace{},
	}
}

var _ = Describe("Engine", func() {
	It("passes a driven input straight through a plain metal wire", func() {
		buf := substrate.NewBuffer()
		in := coord.Cell{X: 0, Y: 0}
		out := coord.Cell{X: 2, Y: 0}
		buf.DrawMetal(in, out, false)

		inSocket := pinSocket("in", in)
		outSocket := pinSocket("out", out)
		prog := compiler.Compile(buf, []socket.Socket{*inSocket, *outSocket})

		eng := engine.New(prog, []*socket.Socket{inSocket, outSocket})

		// The very first clock cycle starts from a hard reset and ignores
		// driven inputs, so a wire needs one warm-up cycle before its
		// input is actually polled.
		eng.ClockOnce()

		inSocket.Pins[0].SiInputHigh = true
		eng.TickOnce()

		Expect(outSocket.Pins[0].SiOutputHigh).To(BeTrue())
		Expect(eng.ClockCount()).To(Equal(2))
	})

	It("opens a PNP pass gate from reset and closes it once its base is driven high", func() {
		base := coord.Cell{X: 0, Y: 0}
		left := coord.Cell{X: 1, Y: 0}
		right := coord.Cell{X: 2, Y: 0}

		baseSocket := pinSocket("base", base)
		leftSocket := pinSocket("left", left)
		rightSocket := pinSocket("right", right)

		prog := pnpGateProgram(base, left, right)
		eng := engine.New(prog, []*socket.Socket{baseSocket, leftSocket, rightSocket})

		baseSocket.Pins[0].SiInputHigh = true
		leftSocket.Pins[0].SiInputHigh = true

		eng.ClockOnce() // cold reset: gate resolves open, nothing has propagated yet
		Expect(rightSocket.Pins[0].SiOutputHigh).To(BeFalse())

		eng.ClockOnce() // gate was open entering this cycle: left propagates to right
		Expect(rightSocket.Pins[0].SiOutputHigh).To(BeTrue())

		eng.ClockOnce() // base has now been driven high for a full cycle: gate closes
		Expect(rightSocket.Pins[0].SiOutputHigh).To(BeFalse())
	})

	It("notifies an observer only when a trigger pin's output changes", func() {
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()

		buf := substrate.NewBuffer()
		in := coord.Cell{X: 0, Y: 0}
		out := coord.Cell{X: 1, Y: 0}
		buf.DrawMetal(in, out, false)

		inSocket := pinSocket("in", in)
		outSocket := pinSocket("out", out)
		outSocket.Pins[0].Trigger = true

		observer := socket.NewMockUpdateObserver(ctrl)
		outSocket.SetObserver(observer)

		prog := compiler.Compile(buf, []socket.Socket{*inSocket, *outSocket})
		eng := engine.New(prog, []*socket.Socket{inSocket, outSocket})

		eng.ClockOnce()

		inSocket.Pins[0].SiInputHigh = true
		observer.EXPECT().OnUpdate(outSocket)
		eng.ClockOnce()

		Expect(outSocket.PendingUpdate).To(BeFalse())
	})
})
