// 4 Mar 2025

// Package frame decides which of the three reading frames an alignment
// of coding sequences is in, and cuts the alignment down to that frame.
//
// The score of a frame counts stop codons, but only where a stop is the
// consensus. At each codon position we find the most common gap free
// codon. If it is a stop, the position adds the fraction of sequences
// that carry exactly that codon. A frame that really codes should score
// close to zero. The last codon of each frame is left out, since a
// terminal stop is expected and tells us nothing.
package frame

import (
	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	"github.com/andrew-torda/clean_genes/pkg/gencode"
)

// Score is the result for one frame offset.
type Score struct {
	Frame int
	Score float64
	Stops []int // codon positions where a conserved stop contributed
}

// pack turns a codon into a number which sorts the same way as the
// three letters do.
func pack(c [3]byte) uint32 {
	return uint32(c[0])<<16 | uint32(c[1])<<8 | uint32(c[2])
}

func unpack(u uint32) [3]byte {
	return [3]byte{byte(u >> 16), byte(u >> 8), byte(u)}
}

// majority finds the most common gap free codon at column pos. Ties go to
// the codon that sorts first. ok is false if every sequence has a gap.
func majority(al *aln.Alignment, pos int, counts map[uint32]int) (c [3]byte, n int, ok bool) {
	clear(counts)
	for iseq := 0; iseq < al.NSeq(); iseq++ {
		cdn := al.CodonAt(iseq, pos)
		if cdn.HasGap() {
			continue
		}
		counts[pack(cdn.Sym)]++
	}
	var best uint32
	for k, v := range counts {
		if v > n || (v == n && k < best) {
			best, n = k, v
		}
	}
	if n == 0 {
		return c, 0, false
	}
	return unpack(best), n, true
}

// ScoreFrame scores one frame offset, f, counting from the first column
// of al. If tbl is nil, the standard genetic code is used.
func ScoreFrame(al *aln.Alignment, f int, tbl *gencode.Table) (Score, error) {
	if f < 0 || f > 2 {
		return Score{}, &aln.OutOfBoundsError{What: "frame", Index: f, Len: 3}
	}
	if tbl == nil {
		tbl = gencode.MustNew(gencode.Standard)
	}
	score := Score{Frame: f}
	last := al.LastCodon(f)
	nseq := float64(al.NSeq())
	counts := make(map[uint32]int)
	for pos := f; pos < last; pos += 3 {
		c, n, ok := majority(al, pos, counts)
		if !ok || !tbl.IsStop(c) {
			continue
		}
		score.Score += float64(n) / nseq
		score.Stops = append(score.Stops, pos)
	}
	return score, nil
}

// ScoreFrames scores the three offsets, each in its own goroutine.
func ScoreFrames(al *aln.Alignment, tbl *gencode.Table) ([3]Score, error) {
	var scores [3]Score
	if tbl == nil {
		tbl = gencode.MustNew(gencode.Standard)
	}
	var g errgroup.Group
	for f := range scores {
		g.Go(func() error {
			s, err := ScoreFrame(al, f, tbl)
			scores[f] = s // each goroutine has its own slot
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return scores, err
	}
	return scores, nil
}
