// 10 Mar 2025

package cleangenes

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	"github.com/andrew-torda/clean_genes/pkg/gapclust"
	"github.com/andrew-torda/clean_genes/pkg/seq"
)

// summary says what happened, for a human.
func (res *Result) summary(w io.Writer, opts *Options) {
	how := "selected"
	if res.Forced {
		how = "forced"
	}
	fmt.Fprintln(w, "frame", res.Frame, how, "using genetic code", res.CodeTable.TableIndex())
	fmt.Fprintln(w, "kept columns", res.Bounds.Start+1, "to", res.Bounds.End)
	if res.ORF != nil && res.ORF.Stop == -1 {
		fmt.Fprintln(w, "Warning, no stop codon found")
	}
	fmt.Fprintln(w, res.Shifts.NFlagged(), "of", len(res.Shifts.Evidence), "sequences look frameshifted")
	fmt.Fprintln(w, len(res.Clusters.Groups), "gap groups,", res.Clusters.NOutlier(), "sequences in outlier groups")
	if opts.Vbsty > 1 {
		fmt.Fprintln(w, allGap(res.Trimmed), "columns of the trimmed alignment are only gaps")
		for _, g := range res.Clusters.Groups {
			fmt.Fprintln(w, "group", g.ID, "rep", g.Rep, "size", len(g.Members), "outlier", g.Outlier, "gaps", g.Signature)
		}
	}
}

// allGap counts the columns where every sequence has a gap.
func allGap(al *aln.Alignment) int {
	n := 0
	for _, f := range al.GapFrac() {
		if f == 1 {
			n++
		}
	}
	return n
}

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// joinInts puts columns, counted from 1, in one field.
func joinInts(cols []int) string {
	var sb strings.Builder
	for i, c := range cols {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, c+1)
	}
	return sb.String()
}

func joinRuns(runs []aln.GapRun) string {
	var sb strings.Builder
	for i, g := range runs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d+%d", g.Start+1, g.Len)
	}
	return sb.String()
}

// writeReport writes one line per sequence, in input order. The values
// come from the annotations on the records. Columns are counted from 1.
func writeReport(w io.Writer, al *aln.Alignment, res *Result) error {
	const headings = `"id","frame","frameshift","stops","bad gaps","group","outlier"`
	if _, err := fmt.Fprintln(w, headings); err != nil {
		return err
	}
	for i := 0; i < al.NSeq(); i++ {
		r := al.Rec(i)
		f, _ := r.Frame()
		shifted, _ := r.Frameshift()
		grp, _ := r.Cluster()
		ev := res.Shifts.Evidence[i]
		_, err := fmt.Fprintf(w, "\"%s\",%d,%t,\"%s\",\"%s\",%d,%t\n", r.ID(), f, shifted,
			joinInts(ev.Stops), joinRuns(ev.BadGaps), grp, res.Clusters.Groups[grp].Outlier)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeReportFile(fname string, al *aln.Alignment, res *Result) error {
	if fname == "-" {
		return writeReport(os.Stdout, al, res)
	}
	warnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("report file %v: %w", fname, err)
	}
	if err := writeReport(fp, al, res); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// writeGroups writes the squashed alignment of each gap group to its own
// file, prefix followed by the group number. A group with nothing but
// gaps, such as an all gap sequence on its own, is skipped with a warning.
func writeGroups(prefix string, seqgrp *seq.SeqGrp, al *aln.Alignment, res *Result, s_opts *seq.Options) error {
	for i := range res.Clusters.Groups {
		g := &res.Clusters.Groups[i]
		sub, err := gapclust.SubAlignment(al, g)
		if errors.Is(err, aln.ErrEmptyAlignment) {
			fmt.Fprintln(os.Stderr, "Warning, group", g.ID, "has no columns left, not written")
			continue
		}
		if err != nil {
			return fmt.Errorf("group %d: %w", g.ID, err)
		}
		fname := fmt.Sprintf("%s%d.fa", prefix, g.ID)
		if err := seq.WriteToF(fname, seqgrp.WithSeqs(sub.Output()), s_opts); err != nil {
			return err
		}
	}
	return nil
}

// Mymain reads an alignment from infile, cleans it and writes the
// trimmed alignment to outfile. An empty name means standard input or
// output. If report is set, the per sequence results go there.
func Mymain(opts *Options, infile, outfile, report string) error {
	s_opts := &seq.Options{Vbsty: opts.Vbsty, DryRun: opts.DryRun}
	if opts.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Fprintln(os.Stderr, "finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	seqgrp, err := seq.Readfile(infile, s_opts)
	if err != nil {
		return fmt.Errorf("Fail reading sequences: %w", err)
	}
	al, err := aln.Load(seqgrp.Input())
	if err != nil {
		return err
	}
	res, err := Run(al, opts)
	if err != nil {
		return err
	}
	if outfile != "" && outfile != "-" && !opts.DryRun {
		warnExists(outfile)
	}
	if err := seq.WriteToF(outfile, seqgrp.WithSeqs(res.Trimmed.Output()), s_opts); err != nil {
		return err
	}
	if report != "" {
		if err := writeReportFile(report, al, res); err != nil {
			return err
		}
	}
	if opts.GroupPrefix != "" {
		if err := writeGroups(opts.GroupPrefix, seqgrp, al, res, s_opts); err != nil {
			return err
		}
	}
	return nil
}
