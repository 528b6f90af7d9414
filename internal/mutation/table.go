package mutation

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/inodb/seqdiff/internal/fasta"
)

// DefaultReferenceID is the identifier marking the reference record.
const DefaultReferenceID = "reference"

// FindReference returns the single record whose ID is referenceID.
func FindReference(records []fasta.Record, referenceID string) (fasta.Record, error) {
	refs := lo.Filter(records, func(r fasta.Record, _ int) bool {
		return r.ID == referenceID
	})
	switch len(refs) {
	case 0:
		return fasta.Record{}, &MissingReferenceError{ID: referenceID}
	case 1:
		return refs[0], nil
	default:
		return fasta.Record{}, &FormatError{
			Sample:  referenceID,
			Message: fmt.Sprintf("%d records carry the reference identifier", len(refs)),
		}
	}
}

// BuildTable diffs every non-reference record against the reference, in
// input order. The whole table is built before anything is returned so a
// caller can avoid writing partial output.
func BuildTable(records []fasta.Record, referenceID string) ([]Row, error) {
	ref, err := FindReference(records, referenceID)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for _, r := range records {
		if r.ID == referenceID {
			continue
		}
		entries, err := Diff(r.ID, ref.Seq, r.Seq)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Sample: r.ID, Entries: entries})
	}
	return rows, nil
}

// RowWriter defines the interface for writing mutation rows.
type RowWriter interface {
	WriteHeader() error
	Write(r Row) error
	Flush() error
}

// WriteTable writes the header and all rows, then flushes.
func WriteTable(w RowWriter, rows []Row) error {
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("write row %s: %w", r.Sample, err)
		}
	}
	return w.Flush()
}
