package clock

import (
	"testing"
	"time"
)

func TestFakeAfterFuncFiresOnceAtDeadline(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	calls := 0
	c.AfterFunc(time.Second, func() { calls++ })

	c.Advance(999 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("calls = %d before deadline, want 0", calls)
	}
	c.Advance(time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d at deadline, want 1", calls)
	}
	c.Advance(time.Hour)
	if calls != 1 {
		t.Fatalf("calls = %d after deadline, want 1", calls)
	}
	if c.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", c.Pending())
	}
}

func TestFakeTimerStop(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	called := false
	timer := c.AfterFunc(time.Second, func() { called = true })
	if !timer.Stop() {
		t.Fatal("Stop() = false on a pending timer")
	}
	c.Advance(2 * time.Second)
	if called {
		t.Fatal("stopped timer fired")
	}
	if timer.Stop() {
		t.Fatal("second Stop() = true")
	}
}

func TestFakeTickerDropsWhenFull(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	ticker := c.NewTicker(5 * time.Second)
	defer ticker.Stop()

	c.Advance(15 * time.Second)
	select {
	case <-ticker.C:
	default:
		t.Fatal("expected a buffered tick")
	}
	select {
	case <-ticker.C:
		t.Fatal("ticks beyond the buffer should be dropped")
	default:
	}

	c.Advance(5 * time.Second)
	select {
	case got := <-ticker.C:
		if want := time.Unix(20, 0); !got.Equal(want) {
			t.Fatalf("tick time = %v, want %v", got, want)
		}
	default:
		t.Fatal("expected tick after another interval")
	}
}
