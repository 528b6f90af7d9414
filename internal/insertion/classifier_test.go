package insertion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inodb/seqdiff/internal/blast"
	"github.com/inodb/seqdiff/internal/genes"
)

func blaKPC() *genes.Gene {
	return &genes.Gene{
		File:     "sample1.fna",
		Sequence: "contig_1",
		Name:     "blaKPC-2",
		Start:    100,
		End:      500,
		Coverage: "10-490/500",
	}
}

func classifierFor(gs ...*genes.Gene) *Classifier {
	return NewClassifier(genes.NewIndex(gs))
}

func TestClassify_Before(t *testing.T) {
	c := classifierFor(blaKPC())

	// thresholdBefore = 100 - 10 = 90; hitStart past thresholdAfter
	calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Element: "IS26", Start: 600, End: 95})
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, Call{
		File:     "sample1.fna",
		Sequence: "contig_1",
		Type:     TypeBefore,
		Element:  "IS26",
		Site:     10,
		Gene:     "blaKPC-2",
	}, calls[0])
}

func TestClassify_After(t *testing.T) {
	c := classifierFor(blaKPC())

	// thresholdAfter = 500 + (500 - 490) = 510
	calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Element: "IS26", Start: 505, End: 50})
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, TypeAfter, calls[0].Type)
	assert.Equal(t, 490, calls[0].Site)
}

func TestClassify_Neither(t *testing.T) {
	c := classifierFor(blaKPC())

	calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Element: "IS26", Start: 600, End: 50})
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestClassify_ThresholdsAreStrict(t *testing.T) {
	c := classifierFor(blaKPC())

	// hitEnd == thresholdBefore and hitStart == thresholdAfter fire nothing
	calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Element: "IS26", Start: 510, End: 90})
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestClassify_BeforePrecedesAfter(t *testing.T) {
	c := classifierFor(blaKPC())

	calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Element: "IS26", Start: 60, End: 95})
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, TypeBefore, calls[0].Type)
	assert.Equal(t, 10, calls[0].Site)
	assert.Equal(t, TypeAfter, calls[1].Type)
	assert.Equal(t, 490, calls[1].Site)
}

func TestClassify_NoUpstreamFlank(t *testing.T) {
	g := blaKPC()
	g.Coverage = "1-490/500"
	c := classifierFor(g)

	for _, hit := range []*blast.Hit{
		{Sequence: "contig_1", Start: 100000, End: 100000},
		{Sequence: "contig_1", Start: 100000, End: 1},
		{Sequence: "contig_1", Start: 100000, End: -5},
	} {
		calls, err := c.Classify(hit)
		require.NoError(t, err)
		assert.Empty(t, calls)
	}
}

func TestClassify_NoDownstreamFlank(t *testing.T) {
	g := blaKPC()
	g.Coverage = "10-500/500"
	c := classifierFor(g)

	for _, hit := range []*blast.Hit{
		{Sequence: "contig_1", Start: 0, End: 0},
		{Sequence: "contig_1", Start: 1, End: 0},
		{Sequence: "contig_1", Start: -100, End: 0},
	} {
		calls, err := c.Classify(hit)
		require.NoError(t, err)
		assert.Empty(t, calls)
	}
}

func TestClassify_OtherSequence(t *testing.T) {
	c := classifierFor(blaKPC())

	calls, err := c.Classify(&blast.Hit{Sequence: "contig_2", Start: 60, End: 95})
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestClassify_MultipleGenes(t *testing.T) {
	var gs []*genes.Gene
	for _, name := range []string{"geneA", "geneB", "geneC"} {
		g := blaKPC()
		g.Name = name
		gs = append(gs, g)
	}
	c := classifierFor(gs...)

	calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Element: "IS1", Start: 60, End: 95})
	require.NoError(t, err)
	require.Len(t, calls, 2*len(gs))

	for i, g := range gs {
		assert.Equal(t, g.Name, calls[2*i].Gene)
		assert.Equal(t, TypeBefore, calls[2*i].Type)
		assert.Equal(t, g.Name, calls[2*i+1].Gene)
		assert.Equal(t, TypeAfter, calls[2*i+1].Type)
	}

	stats := c.Stats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 6, stats.Calls)
	assert.Equal(t, 3, stats.Before)
	assert.Equal(t, 3, stats.After)
}

func TestClassify_MalformedCoverageStrict(t *testing.T) {
	bad := blaKPC()
	bad.Coverage = "10-490"
	c := classifierFor(bad)

	_, err := c.Classify(&blast.Hit{Sequence: "contig_1", Start: 60, End: 95})
	require.Error(t, err)

	var pe *genes.ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Contains(t, err.Error(), "blaKPC-2")
}

func TestClassify_MalformedCoverageSkip(t *testing.T) {
	bad := blaKPC()
	bad.Name = "broken"
	bad.Coverage = "n/a"
	c := classifierFor(bad, blaKPC())

	core, logs := observer.New(zap.WarnLevel)
	c.SetLogger(zap.New(core))
	c.SetCoveragePolicy(CoverageSkip)

	calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Start: 60, End: 95})
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "blaKPC-2", calls[0].Gene)

	assert.Equal(t, 1, c.Stats().SkippedGenes)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "broken", logs.All()[0].ContextMap()["gene"])
}

func TestClassify_OutOfRangeCoverage(t *testing.T) {
	odd := blaKPC()
	odd.Name = "inverted"
	odd.Coverage = "490-10/500"

	t.Run("strict classifies as parsed", func(t *testing.T) {
		c := classifierFor(odd)
		calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Start: 60, End: 95})
		require.NoError(t, err)
		require.Len(t, calls, 2)
		assert.Equal(t, 490, calls[0].Site)
		assert.Equal(t, 0, c.Stats().SkippedGenes)
	})

	t.Run("skip drops the gene", func(t *testing.T) {
		c := classifierFor(odd, blaKPC())
		core, logs := observer.New(zap.WarnLevel)
		c.SetLogger(zap.New(core))
		c.SetCoveragePolicy(CoverageSkip)

		calls, err := c.Classify(&blast.Hit{Sequence: "contig_1", Start: 60, End: 95})
		require.NoError(t, err)
		require.Len(t, calls, 2)
		assert.Equal(t, "blaKPC-2", calls[0].Gene)
		assert.Equal(t, 1, c.Stats().SkippedGenes)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "inverted", logs.All()[0].ContextMap()["gene"])
	})
}

func TestParseCoveragePolicy(t *testing.T) {
	p, err := ParseCoveragePolicy("")
	require.NoError(t, err)
	assert.Equal(t, CoverageStrict, p)

	p, err = ParseCoveragePolicy("SKIP")
	require.NoError(t, err)
	assert.Equal(t, CoverageSkip, p)
	assert.Equal(t, "skip", p.String())

	_, err = ParseCoveragePolicy("ignore")
	assert.Error(t, err)
}

type recordingWriter struct {
	calls   []Call
	flushed bool
}

func (w *recordingWriter) WriteHeader() error { return nil }

func (w *recordingWriter) Write(c Call) error {
	w.calls = append(w.calls, c)
	return nil
}

func (w *recordingWriter) Flush() error {
	w.flushed = true
	return nil
}

func TestClassifyAll(t *testing.T) {
	idx, err := genes.LoadIndex("../../testdata/genes.tsv")
	require.NoError(t, err)

	p, err := blast.NewParser("../../testdata/hits.tsv")
	require.NoError(t, err)
	defer p.Close()

	c := NewClassifier(idx)
	w := &recordingWriter{}
	require.NoError(t, c.ClassifyAll(p, w))
	assert.True(t, w.flushed)

	require.Len(t, w.calls, 4)
	assert.Equal(t, "ISKpn26", w.calls[0].Element)
	assert.Equal(t, TypeBefore, w.calls[0].Type)
	assert.Equal(t, "ISKpn26", w.calls[1].Element)
	assert.Equal(t, TypeAfter, w.calls[1].Type)
	assert.Equal(t, "IS903B", w.calls[2].Element)
	assert.Equal(t, TypeBefore, w.calls[2].Type)
	assert.Equal(t, "IS903B", w.calls[3].Element)
	assert.Equal(t, TypeAfter, w.calls[3].Type)

	for _, call := range w.calls {
		assert.Equal(t, "blaKPC-2", call.Gene)
		assert.Equal(t, "sample1.fna", call.File)
	}

	assert.Equal(t, 3, c.Stats().Hits)
}
