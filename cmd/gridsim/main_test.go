package main

import (
	"testing"

	"github.com/sarchlab/gridsim/gridcfg"
	"github.com/sarchlab/gridsim/socket"
)

func TestFindDemo(t *testing.T) {
	if d := findDemo("wire"); d == nil || d.name != "wire" {
		t.Fatalf("expected to find the wire demo, got %+v", d)
	}
	if d := findDemo("nonexistent"); d != nil {
		t.Fatalf("expected no demo for an unknown name, got %+v", d)
	}
}

func TestMaxTicksOrDefault(t *testing.T) {
	if got := maxTicksOrDefault(&gridcfg.RunConfig{MaxTicksPerClock: 50}, 100); got != 50 {
		t.Fatalf("expected the config's tick budget to win, got %d", got)
	}
	if got := maxTicksOrDefault(&gridcfg.RunConfig{}, 100); got != 100 {
		t.Fatalf("expected the engine default to survive an unset tick budget, got %d", got)
	}
}

func TestApplyDriveStep(t *testing.T) {
	in := socket.New("in", []socket.Pin{{}})
	reset := socket.New("reset", []socket.Pin{{}, {}})
	sockets := []*socket.Socket{in, reset}

	applyDriveStep(sockets, gridcfg.DriveStep{Socket: "in", Pin: 0, High: true})
	if !in.Pins[0].SiInputHigh {
		t.Fatal("expected in's pin 0 to be driven high")
	}
	if reset.Pins[0].SiInputHigh {
		t.Fatal("did not expect reset to be touched by a step naming a different socket")
	}

	applyDriveStep(sockets, gridcfg.DriveStep{Socket: "reset", Pin: 5, High: true})
	for _, p := range reset.Pins {
		if p.SiInputHigh {
			t.Fatal("expected an out-of-range pin index to be ignored")
		}
	}
}
