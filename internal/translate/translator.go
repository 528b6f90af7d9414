package translate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inodb/seqdiff/internal/fasta"
)

// DefaultTable is the bacterial, archaeal and plant plastid code.
const DefaultTable = 11

const gapCodon = "---"

// Translator converts nucleotide sequences using an NCBI genetic code table.
type Translator struct {
	table int
}

// New creates a translator for the given NCBI table id.
// Only tables 1 and 11 are supported.
func New(table int) (*Translator, error) {
	switch table {
	case 1, 11:
		return &Translator{table: table}, nil
	default:
		return nil, fmt.Errorf("unsupported genetic code table %d", table)
	}
}

// Table returns the NCBI table id in use.
func (t *Translator) Table() int {
	return t.table
}

// Translate translates a nucleotide sequence codon by codon.
// A trailing partial codon is dropped.
func (t *Translator) Translate(seq string) (string, error) {
	seq = strings.ToUpper(seq)
	seq = strings.ReplaceAll(seq, "U", "T")

	n := (len(seq) / 3) * 3

	var result strings.Builder
	result.Grow(n / 3)

	for i := 0; i < n; i += 3 {
		codon := seq[i : i+3]
		if codon == gapCodon {
			result.WriteByte('-')
			continue
		}
		aa, ok := TranslateCodon(codon)
		if !ok {
			return "", &TranslationError{Codon: codon, Position: i + 1}
		}
		result.WriteByte(aa)
	}

	return result.String(), nil
}

// Result is the outcome of translating one record.
type Result struct {
	Record fasta.Record // Protein record, valid when Err is nil
	Err    error
}

// TranslateAll translates each record independently. A failure is
// reported in that record's Result and does not stop the others.
func (t *Translator) TranslateAll(records []fasta.Record) []Result {
	results := make([]Result, 0, len(records))
	for _, r := range records {
		protein, err := t.Translate(r.Seq)
		if err != nil {
			var te *TranslationError
			if errors.As(err, &te) {
				te.ID = r.ID
			}
			results = append(results, Result{Record: fasta.Record{ID: r.ID}, Err: err})
			continue
		}
		results = append(results, Result{
			Record: fasta.Record{ID: r.ID, Description: r.Description, Seq: protein},
		})
	}
	return results
}

// TranslationError reports a codon that cannot be translated.
type TranslationError struct {
	ID       string // Record identifier, empty outside TranslateAll
	Codon    string
	Position int // 1-based position of the codon's first base
}

func (e *TranslationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("translate %s: invalid codon %q at position %d", e.ID, e.Codon, e.Position)
	}
	return fmt.Sprintf("translate: invalid codon %q at position %d", e.Codon, e.Position)
}
