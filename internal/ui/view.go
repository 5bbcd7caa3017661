package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"fotogrip/internal/domain"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("fotogrip"))
	if m.scanning {
		b.WriteString("  ")
		b.WriteString(m.styles.Scan.Render("scanning..."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return b.String()
}

func (m *Model) renderList() string {
	entries := m.collection.Entries()
	if len(entries) == 0 {
		if m.scanning {
			return m.styles.Dim.Render("  looking for photos...")
		}
		return m.styles.Dim.Render("  no photos")
	}

	height := m.listHeight()
	end := m.offset + height
	if end > len(entries) {
		end = len(entries)
	}

	selected := m.collection.SelectedIndex()

	var rows []string
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(entries[i], i == selected))
	}

	if end < len(entries) {
		rows = append(rows, m.styles.Dim.Render(fmt.Sprintf("  … %d more", len(entries)-end)))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(e *domain.ImageEntry, selected bool) string {
	marker := " "
	if e.HasNewGPSData() {
		marker = m.styles.Modified.Render("*")
	}

	name := filepath.Base(e.Path)

	pos := ""
	if m.config.UI.ShowCoordinates {
		if e.Pos != nil {
			pos = "  " + e.Pos.String()
		} else {
			pos = "  " + m.styles.Dim.Render("no position")
		}
	}

	row := fmt.Sprintf("%s %s%s", marker, name, pos)
	if selected {
		return m.styles.Selected.Render("▶ " + row)
	}
	return "  " + row
}

func (m *Model) renderDetail() string {
	e := m.collection.SelectedEntry()
	if e == nil {
		return m.styles.DetailBox.Render(m.styles.Dim.Render("no photo selected"))
	}

	var lines []string
	lines = append(lines, m.styles.Highlight.Render(e.Path))
	lines = append(lines, fmt.Sprintf("taken     %s", e.Time.Format(time.RFC1123)))

	if e.Pos != nil {
		lines = append(lines, fmt.Sprintf("position  %s", e.Pos))
	} else {
		lines = append(lines, "position  -")
	}
	if m.config.UI.ShowBearing {
		if e.Direction != nil {
			lines = append(lines, fmt.Sprintf("bearing   %.1f°", *e.Direction))
		} else {
			lines = append(lines, "bearing   -")
		}
	}
	if e.Elevation != nil {
		lines = append(lines, fmt.Sprintf("elevation %.1f m", *e.Elevation))
	}

	size := humanize.Bytes(uint64(e.Size))
	if e.HasNewGPSData() {
		lines = append(lines, fmt.Sprintf("size      %s  %s", size, m.styles.Modified.Render("unsaved GPS edits")))
	} else {
		lines = append(lines, fmt.Sprintf("size      %s", size))
	}

	return m.styles.DetailBox.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatus() string {
	if m.confirming {
		e := m.collection.SelectedEntry()
		name := ""
		if e != nil {
			name = filepath.Base(e.Path)
		}
		return m.styles.Confirm.Render(fmt.Sprintf("remove %s from the collection? (y/n)", name))
	}

	counts := fmt.Sprintf("%d photos", m.collection.Len())
	if n := m.modifiedCount(); n > 0 {
		counts += fmt.Sprintf(" · %d modified", n)
	}
	if sel := m.collection.SelectedIndex(); sel >= 0 {
		counts += fmt.Sprintf(" · %d/%d", sel+1, m.collection.Len())
	}

	status := m.statusMsg
	if status == "" {
		return m.styles.Status.Render(counts)
	}
	if m.statusErr {
		status = m.styles.StatusError.Render(status)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Status.Render(counts), "  ", status)
}

func (m *Model) modifiedCount() int {
	n := 0
	for _, e := range m.collection.Entries() {
		if e.HasNewGPSData() {
			n++
		}
	}
	return n
}
