// 11 Mar 2025
// Read a nucleotide alignment, find the reading frame, flag frameshifts
// and group sequences by their gaps.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/clean_genes/pkg/cleangenes"
	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

var (
	opts         = cleangenes.DefaultOptions()
	report       string
	keepBoundary bool
)

func init() {
	f := rootCmd.Flags()
	f.IntVar(&opts.CodeTable, "table", opts.CodeTable, "NCBI genetic code number")
	f.Float64Var(&opts.TieEpsilon, "eps", opts.TieEpsilon, "frame scores closer than this are ambiguous")
	f.IntVar(&opts.StopThreshold, "max-stops", opts.StopThreshold, "internal stops allowed before a sequence is frameshifted")
	f.IntVar(&opts.MinGapLen, "min-gap", opts.MinGapLen, "shortest gap run that counts as frameshift evidence")
	f.IntVar(&opts.StartTolerance, "tolerance", opts.StartTolerance, "gap runs starting this many columns apart still match")
	f.IntVar(&opts.MinGroupSize, "min-group", opts.MinGroupSize, "gap groups smaller than this are outliers")
	f.BoolVar(&keepBoundary, "keep-boundary", false, "treat leading and trailing gaps like any other gap")
	f.IntVar(&opts.ForceFrame, "frame", opts.ForceFrame, "use this frame (0, 1, 2) instead of selecting one")
	f.BoolVar(&opts.TrimFrame, "trim", false, "trim to whole codons of the frame")
	f.BoolVar(&opts.TrimORF, "orf", false, "trim to the shared start and stop codons")
	f.BoolVar(&opts.AltStarts, "alt-starts", false, "accept the alternative start codons of the genetic code")
	f.IntVar(&opts.Workers, "workers", opts.Workers, "number of parallel workers")
	f.StringVarP(&report, "report", "r", "", "write per sequence results as csv to this file")
	f.StringVarP(&opts.GroupPrefix, "groups", "g", "", "write a squashed alignment per gap group, names start with this")
	f.CountVarP(&opts.Vbsty, "verbose", "v", "say more, repeat for even more")
	f.BoolVarP(&opts.Time, "time", "t", false, "print out timing information")
	f.BoolVarP(&opts.DryRun, "dry-run", "n", false, "do not write alignment files")
	f.SortFlags = false
}

var rootCmd = &cobra.Command{
	Use:   "cleangenes [flags] [infile [outfile]]",
	Short: "Find the reading frame of a coding alignment and flag problem sequences",
	Long: `Find the reading frame of a coding alignment and flag problem sequences.

Given no arguments, read and write from stdin / stdout.
Given one argument, read from the given file name, but write to stdout.
Given two arguments, read from the first one, write to the second.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var infile, outfile string
		if len(args) > 0 {
			infile = args[0]
		}
		if len(args) > 1 {
			outfile = args[1]
		}
		opts.ExcludeBoundary = !keepBoundary
		return cleangenes.Mymain(opts, infile, outfile, report)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
