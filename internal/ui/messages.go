package ui

import (
	"fotogrip/internal/correlate"
	"fotogrip/internal/eventbus"
)

// EventMsg wraps a bus event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// TrackMsg carries a loaded GPX track into the update loop, where the
// collection may safely be mutated
type TrackMsg struct {
	Path   string
	Points []correlate.Point
	Err    error
}

// pagerDoneMsg contains the result of a metadata pager command
type pagerDoneMsg struct {
	err error
}
