package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(10 * time.Millisecond)

	a := tm.Begin("index.html")
	if d := tm.End(a, "html"); d != 10*time.Millisecond {
		t.Fatalf("unexpected duration %v", d)
	}
	b := tm.Begin("styles/common.css")
	tm.End(b, "")
	tm.End(99, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.TotalMS != 20 {
		t.Errorf("TotalMS = %v, want 20", report.TotalMS)
	}
	if report.Phases[0].Note != "html" {
		t.Errorf("note lost: %+v", report.Phases[0])
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "index.html", "// html", "styles/common.css", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	report := NewTimer().Report()
	if report.TotalMS != 0 || report.Phases != nil {
		t.Errorf("expected zero report, got %+v", report)
	}
}
