package domain

import (
	"fmt"
	"strings"
	"time"
)

// LatLon is a WGS84 coordinate
type LatLon struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinate is inside WGS84 bounds
func (ll LatLon) Valid() bool {
	return ll.Lat >= -90 && ll.Lat <= 90 && ll.Lon >= -180 && ll.Lon <= 180
}

func (ll LatLon) String() string {
	return fmt.Sprintf("%.6f, %.6f", ll.Lat, ll.Lon)
}

// ImageEntry represents one geotagged-image record
type ImageEntry struct {
	Path      string     // file path, identity of the entry
	Pos       *LatLon    // nil when the image has no position
	Direction *float64   // camera bearing in degrees, nil when unknown
	Elevation *float64   // meters above sea level, nil when unknown
	Time      time.Time  // capture time (EXIF, mod-time fallback)
	GPSTime   time.Time  // GPS clock at capture, zero when unknown
	Size      int64      // file size in bytes

	newGPSData bool // unsaved GPS edits
}

// SameFile reports whether both entries refer to the same image file
func (e *ImageEntry) SameFile(other *ImageEntry) bool {
	return other != nil && e.Path == other.Path
}

// Compare orders entries by capture time, then path. It is the natural
// order the photo collection is kept sorted under.
func (e *ImageEntry) Compare(other *ImageEntry) int {
	if c := e.Time.Compare(other.Time); c != 0 {
		return c
	}
	return strings.Compare(e.Path, other.Path)
}

// SetPos sets the position of the image
func (e *ImageEntry) SetPos(pos LatLon) {
	e.Pos = &pos
}

// SetDirection sets the camera bearing of the image in degrees
func (e *ImageEntry) SetDirection(deg float64) {
	e.Direction = &deg
}

// FlagNewGPSData marks the entry as having unsaved GPS edits
func (e *ImageEntry) FlagNewGPSData() {
	e.newGPSData = true
}

// HasNewGPSData reports whether the entry has unsaved GPS edits
func (e *ImageEntry) HasNewGPSData() bool {
	return e.newGPSData
}

// UnflagNewGPSData clears the unsaved-edits flag
func (e *ImageEntry) UnflagNewGPSData() {
	e.newGPSData = false
}
