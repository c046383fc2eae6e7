package dashboard

import (
	"strings"

	"voicenotes-backend/domain/notes"
)

// Selection is the active filter set. Each component is a no-op when
// empty; the three are ANDed.
type Selection struct {
	CollectionID string
	TagIDs       []string
	Query        string
}

// IsZero reports whether no filter is active.
func (s Selection) IsZero() bool {
	return s.CollectionID == "" && len(s.TagIDs) == 0 && s.Query == ""
}

// Filter derives the displayed subset: collection exact-id match AND
// any-of selected tags AND case-insensitive substring match over
// title, content or summary. The source list is never mutated.
func Filter(list []notes.Note, sel Selection) []notes.Note {
	out := make([]notes.Note, 0, len(list))
	for i := range list {
		if matches(&list[i], sel) {
			out = append(out, list[i])
		}
	}
	return out
}

func matches(n *notes.Note, sel Selection) bool {
	if sel.CollectionID != "" && !n.InCollection(sel.CollectionID) {
		return false
	}

	if len(sel.TagIDs) > 0 {
		any := false
		for _, id := range sel.TagIDs {
			if n.HasTag(id) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}

	if sel.Query != "" {
		query := strings.ToLower(sel.Query)
		title := strings.ToLower(n.DisplayTitle())
		content := strings.ToLower(n.Metadata.Content)
		summary := strings.ToLower(n.Metadata.Summary)
		if !strings.Contains(title, query) && !strings.Contains(content, query) && !strings.Contains(summary, query) {
			return false
		}
	}

	return true
}
