// Package dashboard holds the page session's in-memory state: the
// note list plus its derived, filtered and sorted view. The holder is
// the only writer of the list; mutations happen in response to
// completed create/update/delete calls.
package dashboard

import (
	"sync"

	"voicenotes-backend/domain/notes"
)

// Stats summarizes the loaded notes for the sidebar.
type Stats struct {
	TotalNotes      int `json:"total_notes"`
	TotalWords      int `json:"total_words"`
	RecordedSeconds int `json:"recorded_seconds"`
}

// Dashboard owns the transient read-through copies of notes,
// collections and tags for one page session.
type Dashboard struct {
	mu          sync.RWMutex
	notes       []notes.Note
	collections []notes.Collection
	tags        []notes.Tag
}

// New creates a dashboard seeded with the initial fetch.
func New(initialNotes []notes.Note, collections []notes.Collection, tags []notes.Tag) *Dashboard {
	d := &Dashboard{
		collections: collections,
		tags:        tags,
	}
	d.notes = append(d.notes, initialNotes...)
	return d
}

// Notes returns a copy of the current note list, newest first.
func (d *Dashboard) Notes() []notes.Note {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]notes.Note, len(d.notes))
	copy(out, d.notes)
	return out
}

// Collections returns the loaded collections.
func (d *Dashboard) Collections() []notes.Collection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.collections
}

// Tags returns the loaded tags.
func (d *Dashboard) Tags() []notes.Tag {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tags
}

// ApplyCreated prepends a newly persisted note.
func (d *Dashboard) ApplyCreated(note notes.Note) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notes = append([]notes.Note{note}, d.notes...)
}

// ApplyUpdated replaces the note with the same id. Unknown ids are
// ignored.
func (d *Dashboard) ApplyUpdated(note notes.Note) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.notes {
		if d.notes[i].ID == note.ID {
			d.notes[i] = note
			return
		}
	}
}

// ApplyDeleted removes the note with the given id. Unknown ids are
// ignored.
func (d *Dashboard) ApplyDeleted(noteID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.notes {
		if d.notes[i].ID == noteID {
			d.notes = append(d.notes[:i], d.notes[i+1:]...)
			return
		}
	}
}

// Visible derives the displayed list: filtered by the selection, then
// sorted. Neither step mutates the source.
func (d *Dashboard) Visible(sel Selection, by SortBy, order Order) []notes.Note {
	return Sort(Filter(d.Notes(), sel), by, order)
}

// Stats aggregates totals over all loaded notes (not the filtered
// view).
func (d *Dashboard) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var s Stats
	s.TotalNotes = len(d.notes)
	for i := range d.notes {
		s.TotalWords += d.notes[i].Metadata.WordCount
		s.RecordedSeconds += d.notes[i].Metadata.RecordingDuration
	}
	return s
}
