package engine

import "sort"

// EventScheduler fires timed callbacks during a simulation run. It
// covers externally scheduled state changes such as oscillation-driver
// switches or signal onsets that must land at a specific simulated
// time.
type EventScheduler struct {
	events []event
}

type event struct {
	at     float64
	action func()
}

// Add schedules action to run once the clock reaches t. Events stay
// sorted by time; ties fire in insertion order.
func (s *EventScheduler) Add(t float64, action func()) {
	s.events = append(s.events, event{at: t, action: action})
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].at < s.events[j].at
	})
}

// Trigger fires and removes every event scheduled at or before now.
func (s *EventScheduler) Trigger(now float64) {
	for len(s.events) > 0 && s.events[0].at <= now {
		ev := s.events[0]
		s.events = s.events[1:]
		ev.action()
	}
}

// Pending reports how many scheduled events have not fired yet.
func (s *EventScheduler) Pending() int {
	return len(s.events)
}
