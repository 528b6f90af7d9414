package mutation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/seqdiff/internal/fasta"
)

func TestBuildTable(t *testing.T) {
	records, err := fasta.ReadFile("../../testdata/alignment.fa")
	require.NoError(t, err)

	rows, err := BuildTable(records, DefaultReferenceID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "sample_A", rows[0].Sample)
	assert.Equal(t, "A4H", rows[0].Tokens())

	assert.Equal(t, "sample_B", rows[1].Sample)
	assert.Empty(t, rows[1].Entries)
	assert.Equal(t, "", rows[1].Tokens())

	assert.Equal(t, "sample_C", rows[2].Sample)
	assert.Equal(t, "S2R,K7Q", rows[2].Tokens())
}

func TestBuildTable_CustomReference(t *testing.T) {
	records := []fasta.Record{
		{ID: "wt", Seq: "MKV"},
		{ID: "mut", Seq: "MRV"},
	}

	rows, err := BuildTable(records, "wt")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "K2R", rows[0].Tokens())
}

func TestBuildTable_MissingReference(t *testing.T) {
	records := []fasta.Record{
		{ID: "s1", Seq: "MKV"},
		{ID: "Reference", Seq: "MKV"},
	}

	_, err := BuildTable(records, DefaultReferenceID)
	var me *MissingReferenceError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "reference", me.ID)
	assert.Contains(t, err.Error(), `"reference"`)
}

func TestBuildTable_DuplicateReference(t *testing.T) {
	records := []fasta.Record{
		{ID: "reference", Seq: "MKV"},
		{ID: "reference", Seq: "MRV"},
	}

	_, err := BuildTable(records, DefaultReferenceID)
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestBuildTable_LengthMismatch(t *testing.T) {
	records := []fasta.Record{
		{ID: "reference", Seq: "MKV"},
		{ID: "ok", Seq: "MKI"},
		{ID: "short", Seq: "MK"},
	}

	_, err := BuildTable(records, DefaultReferenceID)
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "short", fe.Sample)
}

func TestBuildTable_OnlyReference(t *testing.T) {
	rows, err := BuildTable([]fasta.Record{{ID: "reference", Seq: "MKV"}}, DefaultReferenceID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

type recordingWriter struct {
	header bool
	rows   []Row
	flush  bool
}

func (w *recordingWriter) WriteHeader() error { w.header = true; return nil }
func (w *recordingWriter) Write(r Row) error  { w.rows = append(w.rows, r); return nil }
func (w *recordingWriter) Flush() error       { w.flush = true; return nil }

func TestWriteTable(t *testing.T) {
	w := &recordingWriter{}
	rows := []Row{{Sample: "a"}, {Sample: "b"}}

	require.NoError(t, WriteTable(w, rows))
	assert.True(t, w.header)
	assert.True(t, w.flush)
	assert.Equal(t, rows, w.rows)
}
