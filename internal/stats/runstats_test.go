package stats

import (
	"math"
	"testing"
	"time"
)

func TestUpdate(t *testing.T) {
	s := New()
	for _, p := range []int{10, 25, 5, 0} {
		s.Update(p)
	}

	if s.Generation() != 4 {
		t.Errorf("Generation() = %d, want 4", s.Generation())
	}
	if s.Initial() != 10 {
		t.Errorf("Initial() = %d, want 10", s.Initial())
	}
	if s.Population() != 0 {
		t.Errorf("Population() = %d, want 0", s.Population())
	}
	if s.Peak() != 25 {
		t.Errorf("Peak() = %d, want 25", s.Peak())
	}
	if got := s.History(); len(got) != 4 || got[1] != 25 {
		t.Errorf("History() = %v", got)
	}
}

func TestHistory_IsCopy(t *testing.T) {
	s := New()
	s.Update(3)
	h := s.History()
	h[0] = 99
	if s.History()[0] != 3 {
		t.Error("History() exposed internal slice")
	}
}

func TestAverage(t *testing.T) {
	if got := New().Average(); got != 0 {
		t.Errorf("Average() before updates = %v, want 0", got)
	}

	s := New()
	pops := []int{7, 3, 12, 9, 1, 0, 4}
	sum := 0
	for i, p := range pops {
		s.Update(p)
		sum += p
		want := float64(sum) / float64(i+1)
		if math.Abs(s.Average()-want) > 1e-12 {
			t.Errorf("after %d updates Average() = %v, want %v", i+1, s.Average(), want)
		}
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		pops   []int
		want   float64
		wantOK bool
	}{
		{"empty", nil, 0, false},
		{"single", []int{5}, 0, false},
		{"flat", []int{4, 4, 4}, 0, true},
		{"classic", []int{2, 4, 4, 4, 5, 5, 7, 9}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for _, p := range tt.pops {
				s.Update(p)
			}
			got, ok := s.StdDev()
			if ok != tt.wantOK {
				t.Fatalf("StdDev() ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("StdDev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuntime(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newWithClock(func() time.Time { return now })
	now = now.Add(1500 * time.Millisecond)
	if got := s.Runtime(); got != 1500*time.Millisecond {
		t.Errorf("Runtime() = %v, want 1.5s", got)
	}
}

func TestSetReason_Once(t *testing.T) {
	s := New()
	if s.SetReason("") {
		t.Error("empty reason should be rejected")
	}
	if !s.SetReason("extinction") {
		t.Fatal("first SetReason should succeed")
	}
	if s.SetReason("user-interrupt") {
		t.Error("second SetReason should be ignored")
	}
	if s.Reason() != "extinction" {
		t.Errorf("Reason() = %q, want extinction", s.Reason())
	}
}

func TestTrend_Window(t *testing.T) {
	s := New()
	for i := 0; i < 100; i++ {
		s.Update(i)
	}
	trend := []rune(s.Trend(64))
	if len(trend) != 64 {
		t.Fatalf("len(Trend(64)) = %d, want 64", len(trend))
	}
	if trend[0] != '▁' || trend[63] != '█' {
		t.Errorf("Trend(64) = %q", string(trend))
	}
	if s.Trend(0) != "" {
		t.Error("Trend(0) should be empty")
	}
}
