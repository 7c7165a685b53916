package pacing

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewPacer(t *testing.T) {
	tests := []struct {
		name    string
		fps     float64
		want    time.Duration
		wantErr bool
	}{
		{"12 fps", 12, time.Second / 12, false},
		{"1 fps", 1, time.Second, false},
		{"fractional", 0.5, 2 * time.Second, false},
		{"zero", 0, 0, true},
		{"negative", -3, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPacer(tt.fps)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPacer(%v) err = %v, wantErr %v", tt.fps, err, tt.wantErr)
			}
			if err == nil && p.Interval() != tt.want {
				t.Errorf("Interval() = %v, want %v", p.Interval(), tt.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	p, _ := NewPacer(10) // 100ms
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{"fresh frame", 0, 100 * time.Millisecond},
		{"partial", 30 * time.Millisecond, 70 * time.Millisecond},
		{"exact", 100 * time.Millisecond, 0},
		{"overrun", 250 * time.Millisecond, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.nowFunc = func() time.Time { return start.Add(tt.elapsed) }
			if got := p.Remaining(start); got != tt.want {
				t.Errorf("Remaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWait_SkipsWhenOverrun(t *testing.T) {
	p, _ := NewPacer(1000)
	called := false
	p.timer = func(d time.Duration) *time.Timer {
		called = true
		return time.NewTimer(d)
	}
	start := time.Now().Add(-time.Second)
	if err := p.Wait(context.Background(), start); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if called {
		t.Error("timer armed for an overrun frame")
	}
}

func TestWait_Sleeps(t *testing.T) {
	p, _ := NewPacer(50) // 20ms
	var armed time.Duration
	p.timer = func(d time.Duration) *time.Timer {
		armed = d
		return time.NewTimer(time.Millisecond)
	}
	start := time.Now()
	p.nowFunc = func() time.Time { return start.Add(5 * time.Millisecond) }
	if err := p.Wait(context.Background(), start); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if armed != 15*time.Millisecond {
		t.Errorf("timer armed for %v, want 15ms", armed)
	}
}

func TestWait_Cancelled(t *testing.T) {
	p, _ := NewPacer(0.01) // 100s frames
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- p.Wait(ctx, time.Now()) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

func TestWait_AlreadyCancelled(t *testing.T) {
	p, _ := NewPacer(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx, time.Now()); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
}
