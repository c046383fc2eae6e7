package dashboard

import (
	"slices"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"voicenotes-backend/domain/notes"
	"voicenotes-backend/pkg/utils"
)

// SortBy selects the ordering key.
type SortBy string

const (
	SortByDate      SortBy = "date"
	SortByTitle     SortBy = "title"
	SortByWordCount SortBy = "words"
)

// Order is the sort direction. The default view is date descending
// (newest first).
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// titleCollator gives locale-aware, case-insensitive title ordering.
var titleCollator = collate.New(language.English, collate.IgnoreCase)

// Sort returns a new slice ordered by the given key and direction.
// An empty key or direction means date descending. Descending is the
// exact reverse of the ascending order, so tied elements swap relative
// position between the two directions. The source list is never
// mutated.
func Sort(list []notes.Note, by SortBy, order Order) []notes.Note {
	out := make([]notes.Note, len(list))
	copy(out, list)

	sort.SliceStable(out, func(i, j int) bool {
		return compare(&out[i], &out[j], by) < 0
	})
	if order != Ascending {
		slices.Reverse(out)
	}
	return out
}

func compare(a, b *notes.Note, by SortBy) int {
	switch by {
	case SortByTitle:
		return titleCollator.CompareString(a.DisplayTitle(), b.DisplayTitle())
	case SortByWordCount:
		return a.Metadata.WordCount - b.Metadata.WordCount
	default:
		ta, tb := createdAt(a), createdAt(b)
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		default:
			return 0
		}
	}
}

func createdAt(n *notes.Note) time.Time {
	t, err := utils.ParseRFC3339(n.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
