// Package mutation derives per-sample amino-acid substitutions from a
// multiple sequence alignment.
package mutation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Gap is the alignment gap character.
const Gap = '-'

// Entry is one substitution at an alignment column.
type Entry struct {
	Sample string
	Pos    int  // 1-based alignment column
	Ref    byte // Reference residue
	Alt    byte // Sample residue
}

// String renders the entry as <ref><pos><alt>, e.g. S238H.
func (e Entry) String() string {
	return fmt.Sprintf("%c%d%c", e.Ref, e.Pos, e.Alt)
}

// Diff compares an aligned sample against the aligned reference and returns
// substitutions in column order. Columns with a gap on either side are
// skipped, but still count towards the position.
func Diff(sample, ref, alt string) ([]Entry, error) {
	if len(ref) != len(alt) {
		return nil, &FormatError{
			Sample:  sample,
			Message: fmt.Sprintf("aligned length %d differs from reference length %d", len(alt), len(ref)),
		}
	}

	var entries []Entry
	for i := 0; i < len(ref); i++ {
		r, a := ref[i], alt[i]
		if r == a || r == Gap || a == Gap {
			continue
		}
		entries = append(entries, Entry{Sample: sample, Pos: i + 1, Ref: r, Alt: a})
	}
	return entries, nil
}

// Row holds the substitutions found for one sample.
type Row struct {
	Sample  string
	Entries []Entry
}

// Tokens returns the comma-joined substitution tokens, empty if none.
func (r Row) Tokens() string {
	return strings.Join(lo.Map(r.Entries, func(e Entry, _ int) string {
		return e.String()
	}), ",")
}
