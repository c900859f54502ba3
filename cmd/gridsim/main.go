// Command gridsim builds a small scripted circuit, compiles it, and runs
// it for a number of clock cycles, printing each socket's state along the
// way. It is a demonstration harness, not a general-purpose editor.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/gridsim/compiler"
	"github.com/sarchlab/gridsim/coord"
	"github.com/sarchlab/gridsim/engine"
	"github.com/sarchlab/gridsim/gridcfg"
	"github.com/sarchlab/gridsim/lint"
	"github.com/sarchlab/gridsim/socket"
	"github.com/sarchlab/gridsim/substrate"
)

// demo builds one of the scripted circuits and its driving sockets.
// Only wire and via circuits are offered; this CLI has no MOSFET-based
// demo (NPN/PNP inverters, latches).
type demo struct {
	name        string
	build       func() (*substrate.Buffer, []*socket.Socket)
	description string
}

func buildWireDemo() (*substrate.Buffer, []*socket.Socket) {
	buf := substrate.NewBuffer()
	in := coord.Cell{X: 0, Y: 0}
	out := coord.Cell{X: 3, Y: 0}
	buf.DrawMetal(in, out, false)

	return buf, []*socket.Socket{
		socket.New("in", []socket.Pin{{CellCoord: in}}),
		socket.New("out", []socket.Pin{{CellCoord: out, Trigger: true}}),
	}
}

func buildViaDemo() (*substrate.Buffer, []*socket.Socket) {
	buf := substrate.NewBuffer()
	in := coord.Cell{X: 0, Y: 0}
	out := coord.Cell{X: 0, Y: 3}
	buf.DrawSi(in, out, true, true)

	for _, c := range []coord.Cell{in, out} {
		buf.DrawMetalLink(nil, c)
		buf.DrawVia(c)
	}

	return buf, []*socket.Socket{
		socket.New("in", []socket.Pin{{CellCoord: in}}),
		socket.New("out", []socket.Pin{{CellCoord: out, Trigger: true}}),
	}
}

var demos = []demo{
	{"wire", buildWireDemo, "a single metal wire (S1)"},
	{"via", buildViaDemo, "a silicon trace read back through metal vias (S2)"},
}

func findDemo(name string) *demo {
	for i := range demos {
		if demos[i].name == name {
			return &demos[i]
		}
	}
	return nil
}

func main() {
	demoName := flag.String("demo", "wire", "scripted circuit to run: wire, via")
	clocks := flag.Int("clocks", 4, "number of clock cycles to run (ignored if -config is set)")
	configPath := flag.String("config", "", "optional YAML run config (overrides -clocks)")
	driveHigh := flag.Bool("drive-high", true, "drive the demo's input pin high from clock 0")
	runLint := flag.Bool("lint", false, "run the structural lint pass before simulating")

	flag.Parse()

	d := findDemo(*demoName)
	if d == nil {
		fmt.Fprintf(os.Stderr, "unknown demo %q, available: wire, via\n", *demoName)
		atexit.Exit(1)
		return
	}

	buf, sockets := d.build()

	socketValues := make([]socket.Socket, len(sockets))
	for i, s := range sockets {
		socketValues[i] = *s
	}

	prog := compiler.Compile(buf, socketValues)

	if *runLint {
		issues := lint.Report(buf, prog, socketValues)
		if len(issues) == 0 {
			fmt.Println("lint: no issues found")
		} else {
			for _, issue := range issues {
				slog.Warn("lint issue", "type", issue.Type, "message", issue.Message)
			}
		}
	}

	eng := engine.New(prog, sockets)

	rc, err := loadRunConfig(*configPath, *clocks)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
		return
	}
	eng.MaxTicksPerClock = maxTicksOrDefault(rc, eng.MaxTicksPerClock)

	if *driveHigh && len(sockets) > 0 {
		sockets[0].Pins[0].SiInputHigh = true
	}

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s -- %s", d.name, d.description))
	header := table.Row{"clock"}
	for _, s := range sockets {
		header = append(header, s.Name)
	}
	t.AppendHeader(header)

	for clock := 0; clock < rc.Clocks; clock++ {
		for _, step := range rc.StepsAtClock(clock) {
			applyDriveStep(sockets, step)
		}

		eng.ClockOnce()

		row := table.Row{clock}
		for _, s := range sockets {
			row = append(row, s.Pins[0].SiOutputHigh)
		}
		t.AppendRow(row)
	}

	fmt.Println(t.Render())
	atexit.Exit(0)
}

func loadRunConfig(path string, clocks int) (*gridcfg.RunConfig, error) {
	if path == "" {
		return &gridcfg.RunConfig{Clocks: clocks}, nil
	}
	return gridcfg.Load(path)
}

func maxTicksOrDefault(rc *gridcfg.RunConfig, current int) int {
	if rc.MaxTicksPerClock > 0 {
		return rc.MaxTicksPerClock
	}
	return current
}

func applyDriveStep(sockets []*socket.Socket, step gridcfg.DriveStep) {
	for _, s := range sockets {
		if s.Name != step.Socket {
			continue
		}
		if step.Pin < 0 || step.Pin >= len(s.Pins) {
			continue
		}
		s.Pins[step.Pin].SiInputHigh = step.High
	}
}
