package clock

import (
	"reflect"
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeFiresInOrder(t *testing.T) {
	c := NewFake(epoch)
	var got []string
	c.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(20 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("fired %v, want [a b]", got)
	}
	if !c.Now().Equal(epoch.Add(20 * time.Millisecond)) {
		t.Errorf("Now() = %v, want epoch+20ms", c.Now())
	}

	c.Advance(10 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("fired %v, want [a b c]", got)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestFakeNowInsideCallback(t *testing.T) {
	c := NewFake(epoch)
	var at time.Time
	c.AfterFunc(15*time.Millisecond, func() { at = c.Now() })
	c.Advance(time.Second)
	if !at.Equal(epoch.Add(15 * time.Millisecond)) {
		t.Errorf("callback saw %v, want epoch+15ms", at)
	}
}

func TestFakeChainedTimers(t *testing.T) {
	c := NewFake(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			c.AfterFunc(10*time.Millisecond, tick)
		}
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("count = %d after 35ms, want 3", count)
	}
	c.Advance(time.Second)
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}

func TestFakeStop(t *testing.T) {
	c := NewFake(epoch)
	fired := false
	tm := c.AfterFunc(time.Millisecond, func() { fired = true })
	if !tm.Stop() {
		t.Error("first Stop() = false, want true")
	}
	if tm.Stop() {
		t.Error("second Stop() = true, want false")
	}
	c.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestFakeStopAfterFire(t *testing.T) {
	c := NewFake(epoch)
	tm := c.AfterFunc(time.Millisecond, func() {})
	c.Advance(time.Millisecond)
	if tm.Stop() {
		t.Error("Stop() after fire = true, want false")
	}
}

func TestRealAfterFunc(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for real timer")
	}
}
