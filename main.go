package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"fotogrip/internal/config"
	"fotogrip/internal/correlate"
	"fotogrip/internal/eventbus"
	"fotogrip/internal/loader"
	"fotogrip/internal/photos"
	"fotogrip/internal/ui"
	"fotogrip/internal/watch"
)

func main() {
	// Parse command line arguments
	var targetDir, gpxFile string
	flag.StringVar(&targetDir, "dir", "", "Directory to scan for photos")
	flag.StringVar(&targetDir, "d", "", "Directory to scan for photos (shorthand)")
	flag.StringVar(&gpxFile, "gpx", "", "GPX track to correlate photos against")
	flag.Parse()

	// If no directory specified, check for remaining args
	if targetDir == "" && flag.NArg() > 0 {
		targetDir = flag.Arg(0)
	}

	// If still no directory, use current directory
	if targetDir == "" {
		var err error
		targetDir, err = os.Getwd()
		if err != nil {
			fmt.Printf("Error getting current directory: %v\n", err)
			os.Exit(1)
		}
	}

	// Resolve to absolute path
	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Log to a file, the terminal belongs to the TUI
	logFile, err := os.OpenFile("fotogrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Warn("could not open log file", "err", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
		log.SetReportTimestamp(true)
		log.SetLevel(log.DebugLevel)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration from the target directory
	configSvc := config.NewServiceWithBus(bus)
	cfg, err := configSvc.LoadFromPath(filepath.Join(absDir, config.FileName))
	if err != nil {
		log.Warn("could not load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	cfg.PhotoDir = absDir
	if gpxFile != "" {
		cfg.GPXFile = gpxFile
	}

	// The collection is owned by the UI; every mutation happens inside
	// the program's update loop
	collection := photos.NewCollection()
	uiModel := ui.NewModel(collection, bus, cfg)

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward bus events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventScanStarted,
		eventbus.EventPhotosFound,
		eventbus.EventScanCompleted,
		eventbus.EventPhotoFileAdded,
		eventbus.EventPhotoFileRemoved,
		eventbus.EventTrackLoaded,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}
	go func() {
		for e := range eventChan {
			p.Send(ui.EventMsg{Event: e})
		}
	}()

	// Correlate against the GPX track once the scan has finished
	if cfg.GPXFile != "" {
		gpxPath := cfg.GPXFile
		bus.Subscribe(eventbus.EventScanCompleted, func(eventbus.DomainEvent) {
			go func() {
				points, err := correlate.LoadTrack(gpxPath)
				p.Send(ui.TrackMsg{Path: gpxPath, Points: points, Err: err})
			}()
		})
	}

	// Start photo discovery
	loaderSvc := loader.NewService(bus)
	if err := loaderSvc.StartScan(ctx, []string{absDir}); err != nil {
		log.Error("could not start scan", "err", err)
	}

	// Watch the directory for photos appearing or disappearing
	if watcher, err := watch.New(bus); err != nil {
		log.Warn("could not create watcher", "err", err)
	} else {
		go func() {
			if err := watcher.Watch(ctx, absDir); err != nil {
				log.Warn("watcher stopped", "err", err)
			}
		}()
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
	cancel()
}
