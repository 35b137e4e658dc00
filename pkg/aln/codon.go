// 3 Mar 2025

package aln

import (
	"iter"

	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

// Codon is three symbols from one sequence, starting at column Pos.
type Codon struct {
	Pos int
	Sym [3]byte
}

// HasGap is true if any of the three symbols is a gap. Such codons are
// not data for stop codon counting.
func (c Codon) HasGap() bool {
	return IsGap(c.Sym[0]) || IsGap(c.Sym[1]) || IsGap(c.Sym[2])
}

// AllGap is true if the codon is nothing but gaps.
func (c Codon) AllGap() bool {
	return IsGap(c.Sym[0]) && IsGap(c.Sym[1]) && IsGap(c.Sym[2])
}

func (c Codon) String() string { return string(c.Sym[:]) }

// NCodon is the number of complete codons in frame f.
func (al *Alignment) NCodon(f int) int {
	if f >= al.ncol {
		return 0
	}
	return (al.ncol - f) / 3
}

// LastCodon is the start column of the last complete codon in frame f,
// or -1 if there is none.
func (al *Alignment) LastCodon(f int) int {
	n := al.NCodon(f)
	if n == 0 {
		return -1
	}
	return f + 3*(n-1)
}

func (al *Alignment) checkFrame(f int) {
	if f < 0 || f > 2 {
		panic(&OutOfBoundsError{What: "frame", Index: f, Len: 3})
	}
}

// CodonAt returns the codon of sequence iseq starting at column pos.
func (al *Alignment) CodonAt(iseq, pos int) Codon {
	s := al.recs[iseq].aligned
	return Codon{Pos: pos, Sym: [3]byte{s[pos], s[pos+1], s[pos+2]}}
}

// Codons walks the complete codons of sequence iseq in frame f. Nothing
// is stored, and each range over the result starts from the beginning.
// A frame outside 0..2 is a program bug and panics.
func (al *Alignment) Codons(iseq, f int) iter.Seq[Codon] {
	al.checkFrame(f)
	s := al.recs[iseq].aligned
	return func(yield func(Codon) bool) {
		for i := f; i+3 <= len(s); i += 3 {
			if !yield(Codon{Pos: i, Sym: [3]byte{s[i], s[i+1], s[i+2]}}) {
				return
			}
		}
	}
}
