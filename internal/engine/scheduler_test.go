package engine

import (
	"testing"
)

func TestEventScheduler_FiresInTimeOrder(t *testing.T) {
	var s EventScheduler
	var fired []string

	s.Add(0.3, func() { fired = append(fired, "late") })
	s.Add(0.1, func() { fired = append(fired, "early") })
	s.Add(0.2, func() { fired = append(fired, "middle") })

	if s.Pending() != 3 {
		t.Fatalf("Pending = %d, want 3", s.Pending())
	}

	s.Trigger(0.25)

	want := []string{"early", "middle"}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %q, want %q", i, fired[i], want[i])
		}
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1 after partial trigger", s.Pending())
	}

	s.Trigger(1)
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0 after full trigger", s.Pending())
	}
	if fired[len(fired)-1] != "late" {
		t.Errorf("last fired = %q, want %q", fired[len(fired)-1], "late")
	}
}

func TestEventScheduler_TiesFireInInsertionOrder(t *testing.T) {
	var s EventScheduler
	var fired []int

	s.Add(0.5, func() { fired = append(fired, 1) })
	s.Add(0.5, func() { fired = append(fired, 2) })
	s.Add(0.5, func() { fired = append(fired, 3) })

	s.Trigger(0.5)

	for i, want := range []int{1, 2, 3} {
		if fired[i] != want {
			t.Errorf("fired[%d] = %d, want %d", i, fired[i], want)
		}
	}
}

func TestEventScheduler_ExactTimeFires(t *testing.T) {
	var s EventScheduler
	hit := false
	s.Add(0.5, func() { hit = true })

	s.Trigger(0.49)
	if hit {
		t.Fatal("event fired before its time")
	}
	s.Trigger(0.5)
	if !hit {
		t.Error("event at exactly now did not fire")
	}
}

func TestEventScheduler_FiredEventsDoNotRepeat(t *testing.T) {
	var s EventScheduler
	count := 0
	s.Add(0.1, func() { count++ })

	s.Trigger(0.2)
	s.Trigger(0.3)

	if count != 1 {
		t.Errorf("event fired %d times, want 1", count)
	}
}
