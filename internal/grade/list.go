package grade

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

//
// SubjectList is the caller-owned, ordered list of subjects
// built up while marks are being entered. The grade engine
// never holds on to it; callers pass Entries() in when
// results are needed.
//
type SubjectList struct {
	entries []SubjectEntry
}

//
// appends a subject after checking it the way the entry
// form does: a subject name, non-negative marks no greater
// than the total, and a positive total.
//
func (l *SubjectList) Add(e SubjectEntry) error {
	if err := validate.Struct(e); err != nil {
		return errors.Wrapf(err, "invalid subject entry %q", e.Subject)
	}
	l.entries = append(l.entries, e)
	return nil
}

//
// removes the entries at the given positions, keeping the
// remaining entries in order. out of range positions are ignored.
//
func (l *SubjectList) RemoveSelected(indices ...int) {
	if len(indices) == 0 {
		return
	}
	selected := make(map[int]bool, len(indices))
	for _, i := range indices {
		selected[i] = true
	}
	kept := make([]SubjectEntry, 0, len(l.entries))
	for i, e := range l.entries {
		if !selected[i] {
			kept = append(kept, e)
		}
	}
	l.entries = kept
}

func (l *SubjectList) Clear() {
	l.entries = nil
}

func (l *SubjectList) Len() int {
	return len(l.entries)
}

// a copy of the current entries, in insertion order
func (l *SubjectList) Entries() []SubjectEntry {
	out := make([]SubjectEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
