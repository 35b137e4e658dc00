// 3 Mar 2025

package aln

import (
	"fmt"

	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

// GapRun is a maximal stretch of gaps in one sequence, [Start, Start+Len).
type GapRun struct {
	Start int
	Len   int
}

// End is one past the last gap.
func (g GapRun) End() int { return g.Start + g.Len }

// Overlaps is true if two runs share a column.
func (g GapRun) Overlaps(o GapRun) bool {
	return g.Start < o.End() && o.Start < g.End()
}

func (g GapRun) String() string { return fmt.Sprintf("%d+%d", g.Start, g.Len) }

// Signature is the ordered list of gap runs of a sequence.
type Signature []GapRun

// Equal compares position and length exactly.
func (s Signature) Equal(t Signature) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if s[i] != t[i] {
			return false
		}
	}
	return true
}

// findRuns returns the gap runs of a sequence in column order.
func findRuns(s []byte) []GapRun {
	var runs []GapRun
	for i := 0; i < len(s); {
		if !IsGap(s[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(s) && IsGap(s[j]) {
			j++
		}
		runs = append(runs, GapRun{Start: i, Len: j - i})
		i = j
	}
	return runs
}

// GapRuns returns the gap runs of sequence iseq. They are found on the
// first call and kept. Do not write to the result.
func (al *Alignment) GapRuns(iseq int) Signature {
	r := al.recs[iseq]
	r.runOnce.Do(func() { r.runs = findRuns(r.aligned) })
	return r.runs
}

// IsBoundary is true for a run touching the first or last column. These
// are leading and trailing gaps and say more about sequencing coverage
// than about insertions or deletions.
func (al *Alignment) IsBoundary(g GapRun) bool {
	return g.Start == 0 || g.End() == al.ncol
}

// Interior drops boundary runs from a signature. The result is a new
// slice.
func (al *Alignment) Interior(sig Signature) Signature {
	var r Signature
	for _, g := range sig {
		if !al.IsBoundary(g) {
			r = append(r, g)
		}
	}
	return r
}
