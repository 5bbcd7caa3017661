package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fotogrip/internal/config"
	"fotogrip/internal/correlate"
	"fotogrip/internal/domain"
	"fotogrip/internal/eventbus"
	"fotogrip/internal/photos"
)

// Model represents the UI state. It owns the photo collection: every
// mutation of the collection happens inside Update, on the program's
// goroutine, as the collection's single-owner contract requires.
type Model struct {
	bus        eventbus.EventBus
	config     *config.Config
	collection *photos.Collection

	width  int
	height int
	offset int // viewport offset into the photo list

	scanning    bool
	statusMsg   string
	statusErr   bool
	confirming  bool // waiting for delete confirmation
	showHelp    bool
	inPagerMode bool

	keys   KeyMap
	help   help.Model
	styles *Styles

	// Program reference for terminal management around the pager
	program *tea.Program
}

// NewModel creates a new UI model backed by the given collection
func NewModel(collection *photos.Collection, bus eventbus.EventBus, cfg *config.Config) *Model {
	m := &Model{
		bus:        bus,
		config:     cfg,
		collection: collection,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		styles:     NewStyles(),
	}
	collection.AddListener(m)
	return m
}

// SetProgram stores the program reference needed to release the terminal
// for the metadata pager
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// PhotoDataUpdated implements photos.UpdateListener
func (m *Model) PhotoDataUpdated(c *photos.Collection) {
	m.clampViewport()
}

// SelectedPhotoChanged implements photos.UpdateListener
func (m *Model) SelectedPhotoChanged(c *photos.Collection) {
	m.ensureVisible()
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampViewport()
		m.ensureVisible()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		m.handleEvent(msg.Event)

	case TrackMsg:
		m.handleTrack(msg)

	case pagerDoneMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("pager failed: %v", msg.err))
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inPagerMode {
		return m, nil
	}

	// Delete confirmation swallows everything except an answer
	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			m.confirming = false
			m.collection.RemoveSelected()
			m.setStatus("photo removed")
		case "n", "N", "esc":
			m.confirming = false
			m.setStatus("")
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.collection.SelectNext()

	case key.Matches(msg, m.keys.Previous):
		m.collection.SelectPrevious()

	case key.Matches(msg, m.keys.First):
		m.collection.SelectFirst()

	case key.Matches(msg, m.keys.Last):
		m.collection.SelectLast()

	case key.Matches(msg, m.keys.ClearSelection):
		m.collection.ClearSelection()

	case key.Matches(msg, m.keys.Remove):
		if m.collection.SelectedEntry() == nil {
			break
		}
		if m.config.UI.ConfirmDelete {
			m.confirming = true
		} else {
			m.collection.RemoveSelected()
			m.setStatus("photo removed")
		}

	case key.Matches(msg, m.keys.Metadata):
		if e := m.collection.SelectedEntry(); e != nil {
			m.inPagerMode = true
			return m, m.showMetadataCmd(e.Path)
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}

	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scanning = true
		m.setStatus("scanning for photos...")

	case eventbus.PhotosFoundEvent:
		m.collection.MergeFrom(photos.NewCollectionFrom(e.Entries))

	case eventbus.ScanCompletedEvent:
		m.scanning = false
		m.setStatus(fmt.Sprintf("%d photos found", e.PhotosFound))
		if m.collection.SelectedEntry() == nil && m.collection.Len() > 0 {
			m.collection.SelectFirst()
		}

	case eventbus.PhotoFileAddedEvent:
		m.collection.MergeFrom(photos.NewCollectionFrom([]*domain.ImageEntry{e.Entry}))
		m.setStatus(fmt.Sprintf("added %s", filepath.Base(e.Entry.Path)))

	case eventbus.PhotoFileRemovedEvent:
		for _, entry := range m.collection.Entries() {
			if entry.Path == e.Path {
				m.collection.Remove(entry)
				m.setStatus(fmt.Sprintf("removed %s", filepath.Base(e.Path)))
				break
			}
		}

	case eventbus.TrackLoadedEvent:
		m.setStatus(fmt.Sprintf("track %s loaded, %d points", filepath.Base(e.Path), e.Points))

	case eventbus.ErrorEvent:
		m.setError(e.Message)
	}
}

func (m *Model) handleTrack(msg TrackMsg) {
	if msg.Err != nil {
		m.setError(fmt.Sprintf("could not load track %s: %v", filepath.Base(msg.Path), msg.Err))
		return
	}

	m.bus.Publish(eventbus.TrackLoadedEvent{Path: msg.Path, Points: len(msg.Points)})

	opts := correlate.Options{
		Tolerance:          time.Duration(m.config.Correlate.ToleranceSeconds) * time.Second,
		InterpolateBearing: m.config.Correlate.InterpolateBearing,
	}
	matched := correlate.Correlate(m.collection, msg.Points, opts)
	m.setStatus(fmt.Sprintf("geotagged %d of %d photos", matched, m.collection.Len()))
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.statusMsg = s
	m.statusErr = true
}

// listHeight is the number of photo rows that fit the terminal
func (m *Model) listHeight() int {
	h := m.height - 12 // chrome: title, detail pane, status, help
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) clampViewport() {
	maxOffset := m.collection.Len() - m.listHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
}

func (m *Model) ensureVisible() {
	sel := m.collection.SelectedIndex()
	if sel < 0 {
		return
	}
	if sel < m.offset {
		m.offset = sel
	} else if sel >= m.offset+m.listHeight() {
		m.offset = sel - m.listHeight() + 1
	}
}
