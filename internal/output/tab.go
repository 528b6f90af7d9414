// Package output provides tab-delimited result writers.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/seqdiff/internal/insertion"
	"github.com/inodb/seqdiff/internal/mutation"
)

// InsertionColumns is the header of the insertion site table.
var InsertionColumns = []string{
	"File",
	"SEQUENCE",
	"Insertion_type",
	"IS",
	"Insertion_site",
	"GENE_name",
}

// MutationColumns is the header of the mutation table.
var MutationColumns = []string{
	"Sample",
	"Mutation",
}

// tabWriter writes tab-joined rows through a buffer.
type tabWriter struct {
	w       *bufio.Writer
	columns []string
}

func newTabWriter(w io.Writer, columns []string) tabWriter {
	return tabWriter{w: bufio.NewWriter(w), columns: columns}
}

// WriteHeader writes the header line.
func (tw *tabWriter) WriteHeader() error {
	return tw.writeRow(tw.columns)
}

func (tw *tabWriter) writeRow(values []string) error {
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *tabWriter) Flush() error {
	return tw.w.Flush()
}

// InsertionWriter writes insertion calls in tab-delimited format.
type InsertionWriter struct {
	tabWriter
}

// NewInsertionWriter creates a new insertion site table writer.
func NewInsertionWriter(w io.Writer) *InsertionWriter {
	return &InsertionWriter{newTabWriter(w, InsertionColumns)}
}

// Write writes a single call.
func (iw *InsertionWriter) Write(c insertion.Call) error {
	return iw.writeRow([]string{
		c.File,
		c.Sequence,
		c.Type,
		c.Element,
		strconv.Itoa(c.Site),
		c.Gene,
	})
}

// MutationWriter writes per-sample mutation rows in tab-delimited format.
type MutationWriter struct {
	tabWriter
}

// NewMutationWriter creates a new mutation table writer.
func NewMutationWriter(w io.Writer) *MutationWriter {
	return &MutationWriter{newTabWriter(w, MutationColumns)}
}

// Write writes a single sample row.
func (mw *MutationWriter) Write(r mutation.Row) error {
	return mw.writeRow([]string{r.Sample, r.Tokens()})
}

var (
	_ insertion.CallWriter = (*InsertionWriter)(nil)
	_ mutation.RowWriter   = (*MutationWriter)(nil)
)
