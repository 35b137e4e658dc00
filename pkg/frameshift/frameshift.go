// 6 Mar 2025

// Package frameshift looks for sequences whose reading frame is broken.
// There are two kinds of evidence. A gap whose length is not a multiple
// of three, in the middle of a sequence, moves every codon after it.
// Stop codons inside the sequence are the other. Short sequences may
// not have enough codons after a gap to show a stop, and a point
// mutation can make a stop without any gap, so both are checked.
//
// Nothing here changes the alignment. Deciding what to throw away is
// up to the caller.
package frameshift

import (
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	"github.com/andrew-torda/clean_genes/pkg/gencode"
)

// Options for the detector. The zero value is not the default. Use
// DefaultOptions.
type Options struct {
	Table           *gencode.Table
	StopThreshold   int          // flag if there are more internal stops than this
	MinGapLen       int          // shorter gap runs are not looked at
	Tolerance       int          // start tolerance when matching a shared run
	ExcludeBoundary bool         // ignore leading and trailing gaps
	Shared          []aln.GapRun // runs most sequences have; nil means work them out
	Workers         int
}

// DefaultOptions returns the defaults.
func DefaultOptions() Options {
	return Options{
		Table:           gencode.MustNew(gencode.Standard),
		StopThreshold:   0,
		MinGapLen:       1,
		ExcludeBoundary: true,
		Workers:         runtime.GOMAXPROCS(0),
	}
}

// Evidence is what we found for one sequence.
type Evidence struct {
	ID      string
	Flagged bool
	Stops   []int        // start columns of internal stop codons
	BadGaps []aln.GapRun // gap runs whose length is not a multiple of three
}

// Report holds the evidence for every sequence, in input order.
type Report struct {
	Frame    int
	Shared   []aln.GapRun
	Evidence []Evidence
}

// MajorityRuns returns the gap runs found, with exactly the same start and
// length, in more than half the sequences. These come from insertions in
// a few sequences, which leave a gap in everybody else.
func MajorityRuns(al *aln.Alignment) []aln.GapRun {
	counts := make(map[aln.GapRun]int)
	for i := 0; i < al.NSeq(); i++ {
		for _, g := range al.GapRuns(i) {
			counts[g]++
		}
	}
	var runs []aln.GapRun
	for g, n := range counts {
		if 2*n > al.NSeq() {
			runs = append(runs, g)
		}
	}
	slices.SortFunc(runs, func(a, b aln.GapRun) int { return a.Start - b.Start })
	return runs
}

// shared says if g matches one of the shared runs.
func shared(g aln.GapRun, runs []aln.GapRun, tol int) bool {
	for _, s := range runs {
		d := g.Start - s.Start
		if d < 0 {
			d = -d
		}
		if d <= tol && g.Len == s.Len {
			return true
		}
	}
	return false
}

// stopCount finds internal stop codons of sequence iseq in frame f. The
// last gap free codon of the sequence is its end, and a stop there is
// not internal.
func stopCount(al *aln.Alignment, iseq, f int, tbl *gencode.Table) []int {
	var stops []int
	lastData := -1
	for c := range al.Codons(iseq, f) {
		if c.HasGap() {
			continue
		}
		lastData = c.Pos
		if tbl.IsStop(c.Sym) {
			stops = append(stops, c.Pos)
		}
	}
	if n := len(stops); n > 0 && stops[n-1] == lastData {
		stops = stops[:n-1]
	}
	return stops
}

// badGaps returns the gap runs which would shift the frame.
func badGaps(al *aln.Alignment, iseq int, opts *Options, sharedRuns []aln.GapRun) []aln.GapRun {
	var bad []aln.GapRun
	for _, g := range al.GapRuns(iseq) {
		if opts.ExcludeBoundary && al.IsBoundary(g) {
			continue
		}
		if g.Len < opts.MinGapLen || g.Len%3 == 0 {
			continue
		}
		if shared(g, sharedRuns, opts.Tolerance) {
			continue
		}
		bad = append(bad, g)
	}
	return bad
}

// Detect checks every sequence in frame f, counted from column 0 of al.
// Sequences are shared out over workers. Each result goes into its own
// slot, so the order is the input order.
func Detect(al *aln.Alignment, f int, opts Options) (*Report, error) {
	if f < 0 || f > 2 {
		return nil, &aln.OutOfBoundsError{What: "frame", Index: f, Len: 3}
	}
	if opts.Table == nil {
		opts.Table = gencode.MustNew(gencode.Standard)
	}
	if opts.MinGapLen < 1 {
		opts.MinGapLen = 1
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	sharedRuns := opts.Shared
	if sharedRuns == nil {
		sharedRuns = MajorityRuns(al)
	}
	rpt := &Report{Frame: f, Shared: sharedRuns, Evidence: make([]Evidence, al.NSeq())}

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i := 0; i < al.NSeq(); i++ {
		g.Go(func() error {
			ev := Evidence{
				ID:      al.Rec(i).ID(),
				Stops:   stopCount(al, i, f, opts.Table),
				BadGaps: badGaps(al, i, &opts, sharedRuns),
			}
			ev.Flagged = len(ev.Stops) > opts.StopThreshold || len(ev.BadGaps) > 0
			rpt.Evidence[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rpt, nil
}

// Flags returns one flag per sequence.
func (r *Report) Flags() []bool {
	flags := make([]bool, len(r.Evidence))
	for i, ev := range r.Evidence {
		flags[i] = ev.Flagged
	}
	return flags
}

// NFlagged counts flagged sequences.
func (r *Report) NFlagged() int {
	n := 0
	for _, ev := range r.Evidence {
		if ev.Flagged {
			n++
		}
	}
	return n
}

// Annotate writes the flags to the records.
func (r *Report) Annotate(al *aln.Alignment) error {
	return al.SetFrameshifts(r.Flags())
}
