package gridcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadParsesClocksAndDriveScript(t *testing.T) {
	path := writeConfig(t, `
clocks: 4
max_ticks_per_clock: 500
drive:
  - clock: 0
    socket: in
    pin: 0
    high: true
  - clock: 2
    socket: reset
    pin: 0
    high: false
`)

	rc, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if rc.Clocks != 4 {
		t.Fatalf("expected Clocks=4, got %d", rc.Clocks)
	}
	if rc.MaxTicksPerClock != 500 {
		t.Fatalf("expected MaxTicksPerClock=500, got %d", rc.MaxTicksPerClock)
	}
	if len(rc.Drive) != 2 {
		t.Fatalf("expected 2 drive steps, got %d", len(rc.Drive))
	}
}

func TestStepsAtClockFiltersByClock(t *testing.T) {
	rc := &RunConfig{
		Clocks: 3,
		Drive: []DriveStep{
			{Clock: 0, Socket: "in", Pin: 0, High: true},
			{Clock: 1, Socket: "in", Pin: 0, High: false},
			{Clock: 1, Socket: "reset", Pin: 0, High: true},
		},
	}

	steps := rc.StepsAtClock(1)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps at clock 1, got %d", len(steps))
	}
	if steps[0].Socket != "in" || steps[1].Socket != "reset" {
		t.Fatalf("unexpected step order: %+v", steps)
	}

	if len(rc.StepsAtClock(2)) != 0 {
		t.Fatalf("expected no steps at clock 2")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadRejectsNonPositiveClocks(t *testing.T) {
	path := writeConfig(t, "clocks: 0\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for clocks: 0")
	}
}
