package event

import (
	"slices"
	"sort"
	"time"
)

// Queue holds events sorted ascending by date. Events with equal dates keep
// the order in which they were enqueued.
//
// The zero value is an empty queue.
type Queue struct {
	events []Event
}

// Enqueue inserts e before the first event dated strictly after it.
func (q *Queue) Enqueue(e Event) {
	i := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Date.After(e.Date)
	})
	q.events = slices.Insert(q.events, i, e)
}

// DequeueDue removes and returns the earliest event if it is due at now.
func (q *Queue) DequeueDue(now time.Time) (Event, bool) {
	if len(q.events) == 0 || q.events[0].Date.After(now) {
		return Event{}, false
	}
	e := q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]
	return e, true
}

// Peek returns the earliest event without removing it.
func (q *Queue) Peek() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Events returns a copy of the queued events in order.
func (q *Queue) Events() []Event {
	return slices.Clone(q.events)
}

// Clone returns an independent copy of the queue.
func (q *Queue) Clone() Queue {
	out := Queue{events: make([]Event, len(q.events))}
	for i, e := range q.events {
		if e.Detail != nil {
			d := *e.Detail
			e.Detail = &d
		}
		out.events[i] = e
	}
	return out
}
