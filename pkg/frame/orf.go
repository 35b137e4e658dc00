// 5 Mar 2025

package frame

import (
	"github.com/andrew-torda/clean_genes/pkg/aln"
	"github.com/andrew-torda/clean_genes/pkg/gencode"
)

// ORF is the open reading frame shared by the alignment. Columns count
// from the start of the alignment it was found in.
type ORF struct {
	Start int // first column of the start codon
	Stop  int // first column of the stop codon, -1 if there is none
	End   int // one past the last column, including the stop codon
}

// ORFOptions control the search. The zero value uses the standard code
// and only ATG as a start.
type ORFOptions struct {
	Table     *gencode.Table
	AltStarts bool // accept every start codon of the table, not just ATG
}

// startWeight is the score of the first, second, ... start codon in one
// sequence. The first one found counts most.
var startWeight = []int{8, 4, 2, 1}

// mode returns the most common value, ties going to the smallest.
func mode(vals []int) (int, bool) {
	counts := make(map[int]int)
	for _, v := range vals {
		counts[v]++
	}
	best, nbest := 0, 0
	for v, n := range counts {
		if n > nbest || (n == nbest && v < best) {
			best, nbest = v, n
		}
	}
	return best, nbest > 0
}

// groupStart votes for the start column. Each sequence votes for its
// first few start codons in frame f.
func groupStart(al *aln.Alignment, f int, isStart func([3]byte) bool) (int, bool) {
	scores := make(map[int]int)
	for iseq := 0; iseq < al.NSeq(); iseq++ {
		k := 0
		for c := range al.Codons(iseq, f) {
			if c.HasGap() || !isStart(c.Sym) {
				continue
			}
			if k < len(startWeight) {
				scores[c.Pos] += startWeight[k]
			}
			k++
		}
	}
	best, nbest := 0, -1
	for pos, s := range scores {
		if s > nbest || (s == nbest && pos < best) {
			best, nbest = pos, s
		}
	}
	return best, nbest >= 0
}

// firstStops finds, for each sequence, the first stop codon in frame f at
// or after column start. Sequences without one are skipped.
func firstStops(al *aln.Alignment, f, start int, tbl *gencode.Table) []int {
	var stops []int
	for iseq := 0; iseq < al.NSeq(); iseq++ {
		for c := range al.Codons(iseq, f) {
			if c.Pos < start || c.HasGap() {
				continue
			}
			if tbl.IsStop(c.Sym) {
				stops = append(stops, c.Pos)
				break
			}
		}
	}
	return stops
}

// FindORF finds the start and stop codons most sequences agree on, in
// frame f counted from column 0 of al.
func FindORF(al *aln.Alignment, f int, opts ORFOptions) (ORF, error) {
	if f < 0 || f > 2 {
		return ORF{}, &aln.OutOfBoundsError{What: "frame", Index: f, Len: 3}
	}
	if al.NCodon(f) == 0 {
		return ORF{}, aln.ErrEmptyAlignment
	}
	tbl := opts.Table
	if tbl == nil {
		tbl = gencode.MustNew(gencode.Standard)
	}
	isStart := gencode.StrictStart
	if opts.AltStarts {
		isStart = tbl.IsStart
	}
	orf := ORF{Start: f, Stop: -1, End: al.LastCodon(f) + 3}
	if s, ok := groupStart(al, f, isStart); ok {
		orf.Start = s
	}
	if stop, ok := mode(firstStops(al, f, orf.Start, tbl)); ok {
		orf.Stop = stop
		orf.End = stop + 3
	}
	return orf, nil
}

// TrimORF keeps only the columns of the ORF. The bounds are returned in
// source coordinates.
func TrimORF(al *aln.Alignment, orf ORF) (*aln.Alignment, Bounds, error) {
	b := Bounds{Start: al.Origin() + orf.Start, End: al.Origin() + orf.End}
	if orf.Start == 0 && orf.End == al.Len() {
		return al, b, nil
	}
	trimmed, err := al.Columns(orf.Start, orf.End)
	if err != nil {
		return nil, Bounds{}, err
	}
	return trimmed, b, nil
}
