// 3 Mar 2025

package aln

import (
	"github.com/andrew-torda/matrix"

	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

const maxSym = 128
const badMap = 255 // marks a symbol as not seen

// symMap looks at the symbols used and gives each one a row in the
// count matrix. The gap always gets a row, even if there are no gaps.
func (al *Alignment) symMap() (mapping [maxSym]uint8, nsym int) {
	var used [maxSym]bool
	used[GapChar] = true
	for _, r := range al.recs {
		for _, c := range r.aligned {
			used[c] = true
		}
	}
	for i := range mapping {
		if used[i] {
			mapping[i] = uint8(nsym)
			nsym++
		} else {
			mapping[i] = badMap
		}
	}
	return mapping, nsym
}

// usageSite counts how many of each symbol appear at each site.
// counts.Mat looks like [number_of_symbols][length_of_alignment].
func (al *Alignment) usageSite() (*matrix.FMatrix2d, [maxSym]uint8) {
	mapping, nsym := al.symMap()
	counts := matrix.NewFMatrix2d(nsym, al.ncol)
	for _, r := range al.recs {
		for i, c := range r.aligned {
			counts.Mat[mapping[c]][i]++
		}
	}
	return counts, mapping
}

// conservation fills the per column conservation. It is the fraction of
// non-gap sequences that have the most common non-gap symbol. A column of
// only gaps has conservation zero.
func (al *Alignment) conservation() {
	counts, mapping := al.usageSite()
	gaprow := int(mapping[GapChar])
	nseq := float32(len(al.recs))
	al.cons = make([]float32, al.ncol)
	for icol := 0; icol < al.ncol; icol++ {
		var best float32
		for irow := range counts.Mat {
			if irow == gaprow {
				continue
			}
			if n := counts.Mat[irow][icol]; n > best {
				best = n
			}
		}
		if nongap := nseq - counts.Mat[gaprow][icol]; nongap > 0 {
			al.cons[icol] = best / nongap
		}
	}
}

// Conservation returns the conservation of column i. The whole array is
// calculated on the first call.
func (al *Alignment) Conservation(i int) (float32, error) {
	if i < 0 || i >= al.ncol {
		return 0, &OutOfBoundsError{What: "column", Index: i, Len: al.ncol}
	}
	al.consOnce.Do(al.conservation)
	return al.cons[i], nil
}

// GapFrac returns the fraction of gaps in each column.
func (al *Alignment) GapFrac() []float32 {
	frac := make([]float32, al.ncol)
	for _, r := range al.recs {
		for i, c := range r.aligned {
			if IsGap(c) {
				frac[i]++
			}
		}
	}
	n := float32(len(al.recs))
	for i := range frac {
		frac[i] /= n
	}
	return frac
}
