package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"fotogrip/internal/loader"
)

// showMetadataCmd returns a command that dumps the photo's EXIF block into
// the ov pager
func (m *Model) showMetadataCmd(path string) tea.Cmd {
	return func() tea.Msg {
		content, err := loader.MetadataDump(path)
		if err != nil {
			return pagerDoneMsg{err: err}
		}
		return pagerDoneMsg{err: m.showInPager(content)}
	}
}

// showInPager shows content using the ov pager
func (m *Model) showInPager(content string) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay so ov has fully exited before restoring the screen
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
