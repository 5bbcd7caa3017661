// Package photos holds the ordered collection of geotagged images and the
// current selection within it.
//
// A Collection is owned by a single goroutine (the UI update loop); it does
// no locking of its own and must not be mutated concurrently. Listener
// callbacks run synchronously on the calling goroutine and must not mutate
// the collection from within the callback.
package photos

import (
	"slices"

	"fotogrip/internal/domain"
)

// noSelection is the cursor value when no photo is selected.
const noSelection = -1

// Collection is an ordered sequence of image entries plus the current
// selection. Entries are kept sorted under domain.ImageEntry.Compare after
// every structural mutation; duplicate file paths are pruned on merge.
type Collection struct {
	entries   []*domain.ImageEntry
	selected  int
	listeners listenerList
}

// NewCollection creates an empty photo collection with no selection.
func NewCollection() *Collection {
	return NewCollectionFrom(nil)
}

// NewCollectionFrom creates a collection backed by the given entries. The
// slice is sorted in place and adopted as the backing store.
func NewCollectionFrom(entries []*domain.ImageEntry) *Collection {
	slices.SortFunc(entries, (*domain.ImageEntry).Compare)
	return &Collection{entries: entries, selected: noSelection}
}

// Entries returns the backing slice in sorted order. Callers may mutate
// entry fields directly; the collection does not re-sort or notify after
// such edits (use NotifyUpdate to announce them).
func (c *Collection) Entries() []*domain.ImageEntry {
	return c.entries
}

// Len returns the number of photos in the collection.
func (c *Collection) Len() int {
	return len(c.entries)
}

// IsModified reports whether any entry has unsaved GPS edits.
func (c *Collection) IsModified() bool {
	for _, e := range c.entries {
		if e.HasNewGPSData() {
			return true
		}
	}
	return false
}

// SelectedEntry returns the currently selected photo, or nil. Remove can
// leave the cursor past the end of the sequence; that reads as nil rather
// than failing.
func (c *Collection) SelectedEntry() *domain.ImageEntry {
	if c.selected > noSelection && c.selected < len(c.entries) {
		return c.entries[c.selected]
	}
	return nil
}

// SelectedIndex returns the cursor position, or -1 when nothing is selected.
func (c *Collection) SelectedIndex() int {
	return c.selected
}

// HasNext reports whether a photo follows the current selection.
func (c *Collection) HasNext() bool {
	return c.selected != len(c.entries)-1
}

// HasPrevious reports whether a photo precedes the current selection.
// With no selection this is false: previous-navigation stays disabled
// until something is selected.
func (c *Collection) HasPrevious() bool {
	return c.selected-1 > noSelection
}

// SelectFirst selects the first photo of the sequence.
func (c *Collection) SelectFirst() {
	if len(c.entries) > 0 {
		c.setSelected(0, false)
	}
}

// SelectLast selects the last photo of the sequence.
func (c *Collection) SelectLast() {
	c.setSelected(len(c.entries)-1, false)
}

// SelectNext selects the photo after the current selection, if any.
func (c *Collection) SelectNext() {
	if c.HasNext() {
		c.setSelected(c.selected+1, false)
	}
}

// SelectPrevious selects the photo before the current selection.
func (c *Collection) SelectPrevious() {
	if len(c.entries) == 0 {
		return
	}
	c.setSelected(max(0, c.selected-1), false)
}

// Select makes the given photo the current selection. Selecting an entry
// that is not in the collection clears the selection.
func (c *Collection) Select(e *domain.ImageEntry) {
	c.setSelected(c.indexOf(e), false)
}

// ClearSelection clears the current selection.
func (c *Collection) ClearSelection() {
	c.setSelected(noSelection, false)
}

func (c *Collection) setSelected(index int, force bool) {
	if index == c.selected && !force {
		return
	}
	c.selected = index
	c.listeners.fire(func(l UpdateListener) { l.SelectedPhotoChanged(c) })
}

func (c *Collection) indexOf(e *domain.ImageEntry) int {
	if e == nil {
		return noSelection
	}
	for i, cur := range c.entries {
		if cur == e || cur.SameFile(e) {
			return i
		}
	}
	return noSelection
}

// MergeFrom appends all entries of the other collection, re-sorts, and
// prunes entries whose file path duplicates an adjacent one. If the other
// collection had a selection, that photo becomes the selection here and a
// selection-changed notification fires even when the cursor value happens
// to be unchanged.
func (c *Collection) MergeFrom(other *Collection) {
	c.entries = append(c.entries, other.entries...)
	slices.SortFunc(c.entries, (*domain.ImageEntry).Compare)

	selected := other.SelectedEntry()

	// Suppress double photos. Only duplicates that end up adjacent after
	// sorting are caught; the later entry wins.
	if len(c.entries) > 1 {
		prev := c.entries[len(c.entries)-1]
		for i := len(c.entries) - 2; i >= 0; i-- {
			cur := c.entries[i]
			if cur.SameFile(prev) {
				c.entries = slices.Delete(c.entries, i, i+1)
			} else {
				prev = cur
			}
		}
	}
	if selected != nil {
		c.setSelected(c.indexOf(selected), true)
	}
}

// RemoveSelected removes the currently selected photo from the collection.
func (c *Collection) RemoveSelected() {
	if c.SelectedEntry() != nil {
		c.entries = slices.Delete(c.entries, c.selected, c.selected+1)
	}
	if c.selected == len(c.entries) {
		c.setSelected(len(c.entries)-1, false)
	} else {
		// The entry now at the cursor changed identity.
		c.setSelected(c.selected, true)
	}
}

// Remove removes the given photo from the collection and fires a
// data-updated notification. The cursor is not adjusted, so removing an
// entry before the selection shifts which photo is selected.
func (c *Collection) Remove(e *domain.ImageEntry) {
	if i := c.indexOf(e); i > noSelection {
		c.entries = slices.Delete(c.entries, i, i+1)
	}
	c.NotifyUpdate()
}

// UpdatePosition sets the position of the photo, flags it as edited and
// fires a data-updated notification.
func (c *Collection) UpdatePosition(e *domain.ImageEntry, pos domain.LatLon) {
	e.SetPos(pos)
	c.afterUpdate(e)
}

// UpdateDirection sets the camera bearing of the photo in degrees, flags it
// as edited and fires a data-updated notification.
func (c *Collection) UpdateDirection(e *domain.ImageEntry, deg float64) {
	e.SetDirection(deg)
	c.afterUpdate(e)
}

func (c *Collection) afterUpdate(e *domain.ImageEntry) {
	e.FlagNewGPSData()
	c.NotifyUpdate()
}

// NotifyUpdate fires a data-updated notification without changing state.
// It is the escape hatch for callers that edited entries via Entries().
func (c *Collection) NotifyUpdate() {
	c.listeners.fire(func(l UpdateListener) { l.PhotoDataUpdated(c) })
}

// AddListener registers a listener for collection changes.
func (c *Collection) AddListener(l UpdateListener) {
	c.listeners.add(l)
}

// RemoveListener unregisters a previously registered listener.
func (c *Collection) RemoveListener(l UpdateListener) {
	c.listeners.remove(l)
}
