package clock

import (
	"testing"
	"time"
)

func TestManualFiresInOrder(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	var order []string

	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "c") })

	c.Advance(15 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("after 15ms: %v", order)
	}
	c.Advance(5 * time.Millisecond)
	if len(order) != 3 || order[1] != "b" || order[2] != "c" {
		t.Fatalf("after 20ms: %v", order)
	}
}

func TestManualStop(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	fired := false
	tm := c.AfterFunc(time.Millisecond, func() { fired = true })

	if !tm.Stop() {
		t.Error("first Stop should report true")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	c.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d", c.Pending())
	}
}

func TestManualChainedCallbacks(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewManual(start)
	var at []time.Duration

	var tick func()
	tick = func() {
		at = append(at, c.Now().Sub(start))
		if len(at) < 5 {
			c.AfterFunc(10*time.Millisecond, tick)
		}
	}
	c.AfterFunc(0, tick)
	c.Advance(100 * time.Millisecond)

	if len(at) != 5 {
		t.Fatalf("ticks = %v", at)
	}
	for i, d := range at {
		if want := time.Duration(i) * 10 * time.Millisecond; d != want {
			t.Errorf("tick %d at %v, want %v", i, d, want)
		}
	}
	if got := c.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("Now = %v", got)
	}
}

func TestRealAfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer never fired")
	}
}
