// Package translate converts nucleotide sequences to protein.
package translate

// Standard genetic code: DNA codon to amino acid (single letter).
// NCBI tables 1 and 11 share these assignments; they differ only in
// alternative start codons.
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',

	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',

	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// IUPAC nucleotide codes and the bases they stand for.
var iupac = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T",
	'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT", 'K': "GT", 'M': "AC",
	'B': "CGT", 'D': "AGT", 'H': "ACT", 'V': "ACG",
	'N': "ACGT",
}

// TranslateCodon translates an uppercase DNA codon to its amino acid.
// Codons with ambiguity codes resolve to a residue when every expansion
// agrees, otherwise to 'X'. ok is false if the codon has a base that is not
// an IUPAC nucleotide code.
func TranslateCodon(codon string) (aa byte, ok bool) {
	if len(codon) != 3 {
		return 'X', false
	}
	if aa, found := codonTable[codon]; found {
		return aa, true
	}

	var expansions [3]string
	for i := 0; i < 3; i++ {
		bases, valid := iupac[codon[i]]
		if !valid {
			return 'X', false
		}
		expansions[i] = bases
	}

	aa = 0
	for _, b1 := range []byte(expansions[0]) {
		for _, b2 := range []byte(expansions[1]) {
			for _, b3 := range []byte(expansions[2]) {
				got := codonTable[string([]byte{b1, b2, b3})]
				if aa == 0 {
					aa = got
				} else if aa != got {
					return 'X', true
				}
			}
		}
	}
	return aa, true
}
