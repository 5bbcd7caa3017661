package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScanStarted      EventType = "ScanStarted"
	EventPhotosFound      EventType = "PhotosFound"
	EventScanCompleted    EventType = "ScanCompleted"
	EventTrackLoaded      EventType = "TrackLoaded"
	EventPhotoFileAdded   EventType = "PhotoFileAdded"
	EventPhotoFileRemoved EventType = "PhotoFileRemoved"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScanStartedEvent is emitted when photo discovery begins
type ScanStartedEvent struct {
	Roots []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// PhotosFoundEvent is emitted for each batch of discovered photos
type PhotosFoundEvent struct {
	Entries []*ImageEntry
}

func (e PhotosFoundEvent) Type() EventType { return EventPhotosFound }

// ScanCompletedEvent is emitted when photo discovery finishes
type ScanCompletedEvent struct {
	PhotosFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// TrackLoadedEvent is emitted when a GPX track has been read
type TrackLoadedEvent struct {
	Path   string
	Points int
}

func (e TrackLoadedEvent) Type() EventType { return EventTrackLoaded }

// PhotoFileAddedEvent is emitted when a new image file appears in a
// watched directory
type PhotoFileAddedEvent struct {
	Entry *ImageEntry
}

func (e PhotoFileAddedEvent) Type() EventType { return EventPhotoFileAdded }

// PhotoFileRemovedEvent is emitted when an image file disappears from a
// watched directory
type PhotoFileRemovedEvent struct {
	Path string
}

func (e PhotoFileRemovedEvent) Type() EventType { return EventPhotoFileRemoved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration has been loaded
type ConfigLoadedEvent struct {
	PhotoDir string
	GPXFile  string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
