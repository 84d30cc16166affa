// Package event defines the dated events that drive a simulated season and
// the queue that orders them.
package event

import (
	"fmt"
	"time"
)

// Type identifies what an event does when it fires.
type Type string

const (
	SimRound       Type = "simRound"
	SkillUpdate    Type = "skillUpdate"
	SeasonEnd      Type = "seasonEnd"
	SeasonStart    Type = "seasonStart"
	UpdateContract Type = "updateContract"
)

// Detail carries event-specific data.
type Detail struct {
	Round int
}

// Event is a dated entry in the queue. Events are not modified once queued.
type Event struct {
	Date   time.Time
	Type   Type
	Detail *Detail
}

// Round returns the round number for simRound events.
func (e Event) Round() (int, bool) {
	if e.Detail == nil {
		return 0, false
	}
	return e.Detail.Round, true
}

func (e Event) String() string {
	if r, ok := e.Round(); ok {
		return fmt.Sprintf("%s(%d)@%s", e.Type, r, e.Date.Format(time.DateTime))
	}
	return fmt.Sprintf("%s@%s", e.Type, e.Date.Format(time.DateTime))
}

// NewSimRound returns a simRound event for round k.
func NewSimRound(date time.Time, k int) Event {
	return Event{Date: date, Type: SimRound, Detail: &Detail{Round: k}}
}
