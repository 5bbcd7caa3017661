package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"fotogrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventScanStarted      = domain.EventScanStarted
	EventPhotosFound      = domain.EventPhotosFound
	EventScanCompleted    = domain.EventScanCompleted
	EventTrackLoaded      = domain.EventTrackLoaded
	EventPhotoFileAdded   = domain.EventPhotoFileAdded
	EventPhotoFileRemoved = domain.EventPhotoFileRemoved
	EventError            = domain.EventError
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
)

// Re-export domain event types
type ScanStartedEvent = domain.ScanStartedEvent
type PhotosFoundEvent = domain.PhotosFoundEvent
type ScanCompletedEvent = domain.ScanCompletedEvent
type TrackLoadedEvent = domain.TrackLoadedEvent
type PhotoFileAddedEvent = domain.PhotoFileAddedEvent
type PhotoFileRemovedEvent = domain.PhotoFileRemovedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// registration ties a handler to an id so Subscribe can hand back a
// working unsubscribe function
type registration struct {
	id      int
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]registration
	nextID    int
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]registration),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventPhotosFound:
		// Batches arrive constantly during a scan, too noisy to log
	default:
		log.Debug("publishing event", "type", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		// Channel full, drop
		log.Warn("event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		regs := b.handlers[eventType]
		for i, r := range regs {
			if r.id == id {
				b.handlers[eventType] = append(regs[:i], regs[i+1:]...)
				break
			}
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			regs := b.handlers[event.Type()]
			// Copy so handlers run without the lock held
			regsCopy := make([]registration, len(regs))
			copy(regsCopy, regs)
			b.mu.RUnlock()

			for _, r := range regsCopy {
				b.invoke(r.handler, event)
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

func (b *bus) invoke(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
