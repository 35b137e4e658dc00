// 31 July 2020
// 8 Mar 2025 coding sequences with a frame, gaps and frameshifts

// Package randaln makes random, but related, coding sequences, already
// aligned. They are for testing and benchmarking.
//
// There is one random ancestor. It starts with ATG, ends with TAA and has
// no stop codon in between. Every sequence is a copy with some point
// changes that never make a stop. A few gap patterns of whole codons are
// made up front and each sequence picks one or none, so there are
// groups of sequences with the same indels. The first NShift sequences
// get an extra gap whose length is not a multiple of three.
package randaln

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	"github.com/andrew-torda/clean_genes/pkg/gencode"
	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

const lineWidth = 60

// RandAlnArgs is the set of arguments passed to the main function
type RandAlnArgs struct {
	Iseed  int64     // random number seed
	Wrtr   io.Writer // where we write to
	Cmmt   string    // Comment for the sequences
	Nseq   int       // number of sequences
	Ncodon int       // codons per sequence, including start and stop
	NMut   int       // point changes per sequence
	NGap   int       // number of different codon gap patterns
	NShift int       // number of sequences with a frameshifting gap
}

var errTooShort = errors.New("need at least three codons")

var bases = []byte("ACGT")

// gen holds what is shared by all sequences.
type gen struct {
	rnd      *rand.Rand
	tbl      *gencode.Table
	ancestor []byte
	patterns []aln.GapRun
	args     *RandAlnArgs
	width    int
}

// codon returns a random codon that is not a stop.
func (g *gen) codon() [3]byte {
	for {
		c := [3]byte{bases[g.rnd.Intn(4)], bases[g.rnd.Intn(4)], bases[g.rnd.Intn(4)]}
		if !g.tbl.IsStop(c) {
			return c
		}
	}
}

func newGen(args *RandAlnArgs) (*gen, error) {
	if args.Ncodon < 3 {
		return nil, errTooShort
	}
	if args.Nseq < 1 {
		return nil, aln.ErrEmptyAlignment
	}
	g := &gen{
		rnd:   rand.New(rand.NewSource(args.Iseed)),
		tbl:   gencode.MustNew(gencode.Standard),
		args:  args,
		width: len(fmt.Sprintf("%d", args.Nseq)),
	}
	g.ancestor = append(g.ancestor, "ATG"...)
	for i := 1; i < args.Ncodon-1; i++ {
		c := g.codon()
		g.ancestor = append(g.ancestor, c[:]...)
	}
	g.ancestor = append(g.ancestor, "TAA"...)

	nbody := args.Ncodon - 2 // codons between start and stop
	for i := 0; i < args.NGap; i++ {
		n := 1 + g.rnd.Intn(2)
		if n > nbody {
			n = nbody
		}
		start := 3 * (1 + g.rnd.Intn(nbody-n+1))
		g.patterns = append(g.patterns, aln.GapRun{Start: start, Len: 3 * n})
	}
	return g, nil
}

// mutate changes one base in the body, unless that would make a stop.
func (g *gen) mutate(s []byte) {
	pos := 3 + g.rnd.Intn(len(s)-6)
	old := s[pos]
	s[pos] = bases[g.rnd.Intn(4)]
	c0 := pos - pos%3
	if g.tbl.IsStop([3]byte(s[c0 : c0+3])) {
		s[pos] = old
	}
}

func gapOut(s []byte, r aln.GapRun) {
	for i := r.Start; i < r.End() && i < len(s); i++ {
		s[i] = GapChar
	}
}

// shift puts in a gap of one or two bases where there is no gap yet, so
// it cannot vanish inside a codon gap. If it touches one, the run it
// makes is still not a multiple of three.
func (g *gen) shift(s []byte) {
	const maxTry = 100
	for try := 0; try < maxTry; try++ {
		n := 1 + g.rnd.Intn(2)
		start := 3 + g.rnd.Intn(len(s)-6-n+1)
		free := true
		for _, c := range s[start : start+n] {
			if IsGap(c) {
				free = false
			}
		}
		if free {
			gapOut(s, aln.GapRun{Start: start, Len: n})
			return
		}
	}
}

// next makes sequence i.
func (g *gen) next(i int) aln.Input {
	s := make([]byte, len(g.ancestor))
	copy(s, g.ancestor)
	for j := 0; j < g.args.NMut; j++ {
		g.mutate(s)
	}
	if np := len(g.patterns); np > 0 {
		if k := g.rnd.Intn(np + 1); k < np {
			gapOut(s, g.patterns[k])
		}
	}
	if i < g.args.NShift {
		g.shift(s)
	}
	return aln.Input{ID: fmt.Sprintf("r%0*d", g.width, i+1), Seq: string(s)}
}

// Generate returns the sequences in memory.
func Generate(args *RandAlnArgs) ([]aln.Input, error) {
	g, err := newGen(args)
	if err != nil {
		return nil, err
	}
	ret := make([]aln.Input, args.Nseq)
	for i := range ret {
		ret[i] = g.next(i)
	}
	return ret, nil
}

// writeseq takes sequences off the channel and writes them as fasta.
func writeseq(sChan <-chan aln.Input, args *RandAlnArgs, wg *sync.WaitGroup, errp *error) {
	defer wg.Done()
	for s := range sChan {
		if *errp != nil {
			continue // keep draining so the sender is not stuck
		}
		hdr := fmt.Sprintf("> %s %s\n", s.ID, args.Cmmt)
		if _, err := io.WriteString(args.Wrtr, hdr); err != nil {
			*errp = err
			continue
		}
		for i := 0; i < len(s.Seq); i += lineWidth {
			end := min(i+lineWidth, len(s.Seq))
			if _, err := io.WriteString(args.Wrtr, s.Seq[i:end]+"\n"); err != nil {
				*errp = err
				break
			}
		}
	}
}

// RandAlnMain writes random coding sequences to an io.Writer.
func RandAlnMain(args *RandAlnArgs) error {
	g, err := newGen(args)
	if err != nil {
		return err
	}
	var wg sync.WaitGroup
	var wrtErr error
	sChan := make(chan aln.Input)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &wrtErr)
	for i := 0; i < args.Nseq; i++ {
		sChan <- g.next(i)
	}
	close(sChan)
	wg.Wait()
	if wrtErr != nil {
		return fmt.Errorf("writing random alignment: %w", wrtErr)
	}
	return nil
}
