package entropy

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr runs fn with os.Stderr redirected and returns what was
// written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()
	fn()
	w.Close()
	return <-done
}

func TestDebugLogOutput(t *testing.T) {
	e := &Engine{debug: true}
	out := captureStderr(t, func() {
		e.debugLog(debugStats{
			tickStats: tickStats{spawned: 3, culled: 1, alive: 42},
			dt:        1.0 / 60,
			tickTime:  2 * time.Millisecond,
		})
	})
	for _, want := range []string{"[entropy]", "alive: 42", "spawned: 3", "culled: 1", "dt: 0.0167s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestDebugLogDisabled(t *testing.T) {
	e := &Engine{}
	out := captureStderr(t, func() {
		e.debugLog(debugStats{tickStats: tickStats{alive: 1}})
		e.debugf("hidden %d", 1)
	})
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestDebugf(t *testing.T) {
	e := &Engine{debug: true}
	out := captureStderr(t, func() { e.debugf("loaded %d points", 7) })
	if out != "[entropy] loaded 7 points\n" {
		t.Errorf("got %q", out)
	}
}

func TestWarnfAlwaysPrints(t *testing.T) {
	out := captureStderr(t, func() { warnf("persist %s: %v", Targets, "disk full") })
	if out != "[entropy] warning: persist targets: disk full\n" {
		t.Errorf("got %q", out)
	}
}

func TestTickLogsInDebugMode(t *testing.T) {
	e, _ := newTestEngine(t)
	cfg := testConfig()
	cfg.Particles.Quantity = 5
	if err := e.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}
	e.SetDebugMode(true)
	out := captureStderr(t, func() {
		if err := e.Tick(1.0/60, time.Unix(0, 0)); err != nil {
			t.Error(err)
		}
	})
	if !strings.Contains(out, "alive: 5") || !strings.Contains(out, "spawned: 5") {
		t.Errorf("tick log %q", out)
	}
}
