package mutation

import "fmt"

// FormatError reports an alignment that cannot be diffed.
type FormatError struct {
	Sample  string
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("alignment format error for %s: %s", e.Sample, e.Message)
}

// MissingReferenceError reports an alignment without a reference record.
type MissingReferenceError struct {
	ID string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("no reference sequence with ID %q found in the alignment", e.ID)
}
