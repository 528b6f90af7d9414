package genes

import (
	"iter"
	"sort"
)

// Index provides gene lookup by sequence identifier.
type Index struct {
	// bySequence stores genes per sequence in table order
	bySequence map[string][]*Gene
	genes      []*Gene
}

// NewIndex builds an index over genes, keeping their input order.
func NewIndex(genes []*Gene) *Index {
	idx := &Index{
		bySequence: make(map[string][]*Gene),
		genes:      genes,
	}
	for _, g := range genes {
		idx.bySequence[g.Sequence] = append(idx.bySequence[g.Sequence], g)
	}
	return idx
}

// RecordsFor returns the genes annotated on a sequence, in table order.
func (idx *Index) RecordsFor(sequence string) []*Gene {
	return idx.bySequence[sequence]
}

// All iterates over every gene in table order.
func (idx *Index) All() iter.Seq[*Gene] {
	return func(yield func(*Gene) bool) {
		for _, g := range idx.genes {
			if !yield(g) {
				return
			}
		}
	}
}

// Len returns the total number of genes in the index.
func (idx *Index) Len() int {
	return len(idx.genes)
}

// Sequences returns a sorted list of sequences with at least one gene.
func (idx *Index) Sequences() []string {
	seqs := make([]string, 0, len(idx.bySequence))
	for s := range idx.bySequence {
		seqs = append(seqs, s)
	}
	sort.Strings(seqs)
	return seqs
}
