// 31 July 2020
// 8 Mar 2025 coding alignments instead of protein sequences

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/clean_genes/pkg/randaln"
	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

const iseed int64 = 1637

var args randaln.RandAlnArgs

func init() {
	f := rootCmd.Flags()
	f.Int64VarP(&args.Iseed, "seed", "r", iseed, "random number seed")
	f.StringVarP(&args.Cmmt, "comment", "c", "random", "comment after each identifier")
	f.IntVarP(&args.NMut, "mutations", "m", 0, "point changes per sequence")
	f.IntVarP(&args.NGap, "gaps", "g", 0, "number of different codon gap patterns")
	f.IntVarP(&args.NShift, "shifts", "s", 0, "number of sequences with a frameshift")
}

// positive converts a command line argument
func positive(s string) (int, error) {
	const emsg = "Failed converting %s to positive integer"
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf(emsg, s)
	}
	return int(n), nil
}

var rootCmd = &cobra.Command{
	Use:           "randaln [flags] file nseq ncodon",
	Short:         "Write random, related coding sequences, aligned",
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, pos []string) (err error) {
		if args.Nseq, err = positive(pos[1]); err != nil {
			return err
		}
		if args.Ncodon, err = positive(pos[2]); err != nil {
			return err
		}
		fname := pos[0]
		if fname == "-" || fname == "" {
			args.Wrtr = os.Stdout
			return randaln.RandAlnMain(&args)
		}
		ft, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("File for output: %w", err)
		}
		args.Wrtr = ft
		if err := randaln.RandAlnMain(&args); err != nil {
			ft.Close()
			return err
		}
		return ft.Close()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
