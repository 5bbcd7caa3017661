package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"fotogrip/internal/domain"
)

// readExif fills position, direction, elevation and capture time from the
// file's EXIF block. Fields that cannot be read keep their fallback values.
func readExif(e *domain.ImageEntry) {
	f, err := os.Open(e.Path)
	if err != nil {
		return
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return
	}

	if t, err := x.DateTime(); err == nil {
		e.Time = t
	}
	if lat, lon, err := x.LatLong(); err == nil {
		pos := domain.LatLon{Lat: lat, Lon: lon}
		if pos.Valid() {
			e.Pos = &pos
		}
	}
	if v, ok := ratValue(x, exif.GPSAltitude); ok {
		e.Elevation = &v
	}
	if v, ok := ratValue(x, exif.GPSImgDirection); ok {
		e.Direction = &v
	}
	if t, ok := gpsTime(x); ok {
		e.GPSTime = t
	}
}

// ratValue reads a single-rational tag as a float.
func ratValue(x *exif.Exif, name exif.FieldName) (float64, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// gpsTime combines GPSDateStamp and GPSTimeStamp into a UTC timestamp.
func gpsTime(x *exif.Exif) (time.Time, bool) {
	dateTag, err := x.Get(exif.GPSDateStamp)
	if err != nil {
		return time.Time{}, false
	}
	date, err := dateTag.StringVal()
	if err != nil {
		return time.Time{}, false
	}
	timeTag, err := x.Get(exif.GPSTimeStamp)
	if err != nil {
		return time.Time{}, false
	}

	var hms [3]float64
	for i := range hms {
		num, den, err := timeTag.Rat2(i)
		if err != nil || den == 0 {
			return time.Time{}, false
		}
		hms[i] = float64(num) / float64(den)
	}

	t, err := time.ParseInLocation("2006:01:02", date, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t.Add(time.Duration(hms[0])*time.Hour +
		time.Duration(hms[1])*time.Minute +
		time.Duration(hms[2]*float64(time.Second))), true
}

// metadataWalker collects EXIF fields for display.
type metadataWalker struct {
	lines []string
}

func (w *metadataWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.lines = append(w.lines, fmt.Sprintf("%-28s %s", name, tag.String()))
	return nil
}

// MetadataDump renders every EXIF field of the file as text, for the
// metadata pager.
func MetadataDump(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", path)
	fmt.Fprintf(&b, "%-28s %s\n", "FileSize", humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(&b, "%-28s %s\n", "ModTime", info.ModTime().Format(time.RFC3339))

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		b.WriteString("\nno EXIF data\n")
		return b.String(), nil
	}

	w := &metadataWalker{}
	if err := x.Walk(w); err != nil {
		return "", err
	}
	sort.Strings(w.lines)

	b.WriteString("\n")
	for _, line := range w.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
