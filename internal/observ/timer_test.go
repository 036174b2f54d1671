package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestTimerMergesPhases(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Begin("compile")("")
		}()
	}
	wg.Wait()
	_ = tm.Measure("emit", func() error { return errors.New("disk full") })

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].Name != "compile" || r.Phases[0].Count != 4 {
		t.Fatalf("compile phase = %+v", r.Phases[0])
	}
	if r.Phases[1].Note != "failed" {
		t.Fatalf("emit phase = %+v", r.Phases[1])
	}
	s := tm.Summary()
	if !strings.Contains(s, "compile ×4") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}

func TestNilTimerIsSafe(t *testing.T) {
	var tm *Timer
	tm.Begin("x")("")
}
