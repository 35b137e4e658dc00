// 10 Mar 2025

// Package cleangenes runs the reading frame, frameshift and gap pattern
// engines over one alignment, in order, and writes what they found.
//
// Frame scoring and gap clustering only read the alignment, so they run
// at the same time. The frame is then picked, the alignment is trimmed
// if asked for, and every sequence is checked for frameshifts in the
// chosen frame. The gap runs of the largest gap group, if it is a
// majority, are the runs that nobody is blamed for. Annotations are only
// written once everything has worked.
package cleangenes

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	"github.com/andrew-torda/clean_genes/pkg/frame"
	"github.com/andrew-torda/clean_genes/pkg/frameshift"
	"github.com/andrew-torda/clean_genes/pkg/gapclust"
	"github.com/andrew-torda/clean_genes/pkg/gencode"
)

// Options is everything a caller can set. Start from DefaultOptions.
type Options struct {
	CodeTable       int     // NCBI genetic code number
	TieEpsilon      float64 // closer frame scores than this are ambiguous
	StopThreshold   int     // more internal stops than this is a frameshift
	MinGapLen       int     // shorter gap runs are not frameshift evidence
	StartTolerance  int     // gap runs may start this far apart and still match
	MinGroupSize    int     // smaller gap groups are outliers
	ExcludeBoundary bool    // ignore leading and trailing gaps
	ForceFrame      int     // 0, 1 or 2 to skip frame selection, -1 to select
	TrimFrame       bool    // cut to whole codons of the frame
	TrimORF         bool    // cut to the start and stop codons most sequences share
	AltStarts       bool    // accept the code's alternative start codons
	Workers         int
	GroupPrefix     string // if set, write one squashed file per gap group
	Vbsty           int
	Time            bool // print out timing information
	DryRun          bool // do not write alignment files
}

// DefaultOptions returns the defaults.
func DefaultOptions() *Options {
	return &Options{
		CodeTable:       gencode.Standard,
		TieEpsilon:      frame.DefaultTieEpsilon,
		StopThreshold:   0,
		MinGapLen:       1,
		StartTolerance:  0,
		MinGroupSize:    2,
		ExcludeBoundary: true,
		ForceFrame:      -1,
		Workers:         runtime.GOMAXPROCS(0),
	}
}

// Result holds what every stage found.
type Result struct {
	Scores    [3]frame.Score
	Frame     int  // counted from column 0 of the input alignment
	Forced    bool // frame came from the caller
	Bounds    frame.Bounds
	ORF       *frame.ORF
	Trimmed   *aln.Alignment // the input itself if nothing was cut
	Shifts    *frameshift.Report
	Clusters  *gapclust.Result
	CodeTable *gencode.Table
}

func (opts *Options) check() error {
	if opts.ForceFrame < -1 || opts.ForceFrame > 2 {
		return &aln.OutOfBoundsError{What: "frame", Index: opts.ForceFrame, Len: 3}
	}
	if opts.TieEpsilon < 0 {
		return fmt.Errorf("frame tie epsilon %g is negative", opts.TieEpsilon)
	}
	if opts.StopThreshold < 0 || opts.MinGapLen < 0 || opts.StartTolerance < 0 || opts.MinGroupSize < 0 {
		return errors.New("stop threshold, gap length, tolerance and group size cannot be negative")
	}
	return nil
}

// Run does all the work on al. Annotations are written to al only after
// every stage has worked, and an alignment which already carries any
// annotation is refused before anything is done. An ambiguous frame is an error, unless a frame
// was forced.
func Run(al *aln.Alignment, opts *Options) (*Result, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	if err := al.Unannotated(); err != nil {
		return nil, err
	}
	tbl, err := gencode.New(opts.CodeTable)
	if err != nil {
		return nil, err
	}
	res := &Result{CodeTable: tbl}
	workers := max(opts.Workers, 1)

	copts := gapclust.Options{
		Tolerance:       opts.StartTolerance,
		MinGroupSize:    opts.MinGroupSize,
		ExcludeBoundary: opts.ExcludeBoundary,
		Workers:         workers,
	}
	var g errgroup.Group
	g.Go(func() (err error) {
		res.Scores, err = frame.ScoreFrames(al, tbl)
		return err
	})
	g.Go(func() (err error) {
		res.Clusters, err = gapclust.Cluster(al, nil, copts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if opts.Vbsty > 1 {
		for _, s := range res.Scores {
			fmt.Fprintln(os.Stderr, "frame", s.Frame, "score", s.Score, "conserved stops at", s.Stops)
		}
	}

	if opts.ForceFrame >= 0 {
		res.Frame, res.Forced = opts.ForceFrame, true
	} else if res.Frame, err = frame.Select(res.Scores, opts.TieEpsilon); err != nil {
		return nil, fmt.Errorf("selecting frame: %w", err)
	}

	if err := res.trim(al, opts); err != nil {
		return nil, err
	}

	fopts := frameshift.Options{
		Table:           tbl,
		StopThreshold:   opts.StopThreshold,
		MinGapLen:       opts.MinGapLen,
		Tolerance:       opts.StartTolerance,
		ExcludeBoundary: opts.ExcludeBoundary,
		Shared:          res.Clusters.SharedRuns(),
		Workers:         workers,
	}
	if res.Shifts, err = frameshift.Detect(al, res.Frame, fopts); err != nil {
		return nil, err
	}

	if err := al.SetFrames(res.Frame); err != nil {
		return nil, err
	}
	if err := res.Clusters.Annotate(al); err != nil {
		return nil, err
	}
	if err := res.Shifts.Annotate(al); err != nil {
		return nil, err
	}
	if opts.Vbsty > 0 {
		res.summary(os.Stderr, opts)
	}
	return res, nil
}

// trim cuts the alignment to the frame or the ORF. Trimming takes the
// frame in the coordinates of whatever al was cut from.
func (res *Result) trim(al *aln.Alignment, opts *Options) error {
	var err error
	switch {
	case opts.TrimORF:
		var orf frame.ORF
		orf, err = frame.FindORF(al, res.Frame, frame.ORFOptions{Table: res.CodeTable, AltStarts: opts.AltStarts})
		if err != nil {
			break
		}
		res.ORF = &orf
		res.Trimmed, res.Bounds, err = frame.TrimORF(al, orf)
	case opts.TrimFrame:
		res.Trimmed, res.Bounds, err = frame.Trim(al, (res.Frame+al.Origin())%3)
	default:
		res.Trimmed = al
		res.Bounds = frame.Bounds{Start: al.Origin(), End: al.Origin() + al.Len()}
	}
	if err != nil {
		return fmt.Errorf("trimming: %w", err)
	}
	return nil
}
