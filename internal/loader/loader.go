package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	"fotogrip/internal/domain"
	"fotogrip/internal/eventbus"
)

// batchSize is how many entries are bundled into one PhotosFoundEvent.
const batchSize = 64

// Service finds geotagged images in the filesystem
type Service interface {
	StartScan(ctx context.Context, roots []string) error
	StopScan()
}

// service is the concrete implementation
type service struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewService creates a new photo loader service
func NewService(bus eventbus.EventBus) Service {
	return &service{bus: bus}
}

// StartScan starts scanning the given roots for image files
func (s *service) StartScan(ctx context.Context, roots []string) error {
	s.mu.Lock()
	if s.isScanning {
		s.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	s.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.mu.Unlock()

	s.bus.Publish(eventbus.ScanStartedEvent{Roots: roots})

	photosFound := 0

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.isScanning = false
			s.cancelFunc = nil
			s.mu.Unlock()

			s.bus.Publish(eventbus.ScanCompletedEvent{PhotosFound: photosFound})
		}()

		for _, root := range roots {
			select {
			case <-scanCtx.Done():
				return
			default:
			}

			entries, err := ScanDir(scanCtx, root)
			if err != nil {
				s.bus.Publish(eventbus.ErrorEvent{
					Message: fmt.Sprintf("scanning %s failed", root),
					Err:     err,
				})
				continue
			}
			photosFound += len(entries)

			for _, batch := range lo.Chunk(entries, batchSize) {
				s.bus.Publish(eventbus.PhotosFoundEvent{Entries: batch})
			}
		}
	}()

	return nil
}

// StopScan stops any ongoing scan
func (s *service) StopScan() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// ScanDir walks a directory tree and loads an entry for every image file.
func ScanDir(ctx context.Context, root string) ([]*domain.ImageEntry, error) {
	var entries []*domain.ImageEntry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Debug("walk error, skipping", "path", path, "err", err)
			return nil
		}

		if d.IsDir() {
			// Skip hidden directories, but not a hidden root
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsImage(path) {
			return nil
		}

		entry, err := LoadEntry(path)
		if err != nil {
			log.Debug("could not load image", "path", path, "err", err)
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return entries, err
	}
	return entries, nil
}

// IsImage reports whether the file at path looks like an image.
func IsImage(path string) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mtype.String(), "image/")
}

// LoadEntry builds an image entry for a single file. EXIF data is applied
// best effort; a file without usable EXIF still yields an entry with the
// file's mod time and no position.
func LoadEntry(path string) (*domain.ImageEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	entry := &domain.ImageEntry{
		Path: path,
		Time: info.ModTime(),
		Size: info.Size(),
	}
	readExif(entry)
	return entry, nil
}
