// Package correlate matches photo capture times against a GPS track and
// writes interpolated positions back through the photo collection, so
// dirty flags and notifications follow the collection's rules.
package correlate

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"fotogrip/internal/domain"
	"fotogrip/internal/photos"
)

// Point is one timestamped position of a GPS track.
type Point struct {
	Time      time.Time
	Pos       domain.LatLon
	Elevation *float64
}

// Options controls how photos are matched against the track.
type Options struct {
	// Tolerance is how far outside the track's time span a photo may
	// fall and still be clamped to the nearest endpoint.
	Tolerance time.Duration
	// InterpolateBearing derives the camera direction from the heading
	// of the matched track segment.
	InterpolateBearing bool
}

// LoadTrack reads a GPX file and flattens it into a time-ordered sequence
// of track points. Points without a timestamp are dropped.
func LoadTrack(path string) ([]Point, error) {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing gpx %s: %w", path, err)
	}

	var points []Point
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				if p.Timestamp.IsZero() {
					continue
				}
				pt := Point{
					Time: p.Timestamp,
					Pos:  domain.LatLon{Lat: p.Latitude, Lon: p.Longitude},
				}
				if p.Elevation.NotNull() {
					ele := p.Elevation.Value()
					pt.Elevation = &ele
				}
				points = append(points, pt)
			}
		}
	}

	slices.SortFunc(points, func(a, b Point) int {
		return a.Time.Compare(b.Time)
	})
	return points, nil
}

// Correlate positions every photo of the collection whose capture time
// falls inside the track (or within the tolerance of its ends) and returns
// how many photos were matched. Positions and bearings are applied via the
// collection's update operations.
func Correlate(c *photos.Collection, track []Point, opts Options) int {
	if len(track) == 0 {
		return 0
	}

	matched := 0
	for _, e := range c.Entries() {
		pos, bearing, ok := locate(track, e.Time, opts)
		if !ok {
			continue
		}
		c.UpdatePosition(e, pos)
		if opts.InterpolateBearing && bearing != nil {
			c.UpdateDirection(e, *bearing)
		}
		matched++
	}
	return matched
}

// locate finds the track position for the given time.
func locate(track []Point, t time.Time, opts Options) (domain.LatLon, *float64, bool) {
	first, last := track[0], track[len(track)-1]

	if t.Before(first.Time) {
		if first.Time.Sub(t) > opts.Tolerance {
			return domain.LatLon{}, nil, false
		}
		return first.Pos, nil, true
	}
	if t.After(last.Time) {
		if t.Sub(last.Time) > opts.Tolerance {
			return domain.LatLon{}, nil, false
		}
		return last.Pos, nil, true
	}

	// First point at or after t
	i, _ := slices.BinarySearchFunc(track, t, func(p Point, t time.Time) int {
		return p.Time.Compare(t)
	})
	if i == 0 {
		return track[0].Pos, nil, true
	}

	a, b := track[i-1], track[i]
	span := b.Time.Sub(a.Time)
	var frac float64
	if span > 0 {
		frac = float64(t.Sub(a.Time)) / float64(span)
	}
	pos := domain.LatLon{
		Lat: a.Pos.Lat + (b.Pos.Lat-a.Pos.Lat)*frac,
		Lon: a.Pos.Lon + (b.Pos.Lon-a.Pos.Lon)*frac,
	}

	var bearing *float64
	if a.Pos != b.Pos {
		deg := Bearing(a.Pos, b.Pos)
		bearing = &deg
	}
	return pos, bearing, true
}

// Bearing returns the initial great-circle bearing from a to b in degrees,
// normalized to [0, 360).
func Bearing(a, b domain.LatLon) float64 {
	const rad = math.Pi / 180

	lat1 := a.Lat * rad
	lat2 := b.Lat * rad
	dLon := (b.Lon - a.Lon) * rad

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Mod(math.Atan2(y, x)/rad+360, 360)
}
