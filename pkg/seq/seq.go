// 20 Dec 2017
// 9 Mar 2025 cut down to reading and writing alignments

// Package seq reads and writes sequences in fasta format. Files are
// mapped into memory and parsed in place. Sequences are copied out, so
// nothing points into the mapping after reading.
package seq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

// Seq is one sequence and its comment.
type Seq struct {
	cmmt string
	seq  []byte
}

// Options contains all the choices passed in from the caller.
type Options struct {
	Vbsty      int
	DryRun     bool // Do not write any files
	RmvGapsWrt bool // Remove gaps on output
}

// Constants
const cmmtChar byte = '>' // and this introduces comments in fasta format

var errNoSeqs = errors.New("no sequences found")

// SeqGrp is a group of sequences, in the order they were read.
type SeqGrp struct {
	seqs []Seq
}

// NewSeq makes a sequence from a comment (without the ">") and symbols.
func NewSeq(cmmt string, s []byte) Seq { return Seq{cmmt: cmmt, seq: s} }

// GetSeq returns the sequence as the original byte slice
func (s Seq) GetSeq() []byte { return s.seq }

// Cmmt returns the comment, without the leading ">"
func (s Seq) Cmmt() string { return s.cmmt }

// Len is the number of symbols, gaps included.
func (s Seq) Len() int { return len(s.seq) }

// Empty is true if there is nothing in the sequence.
func (s Seq) Empty() bool { return len(s.seq) == 0 }

// ID returns the first word in the comment which is likely to be
// the gene identifier.
func (s Seq) ID() string {
	tmp := strings.Fields(s.cmmt)
	if len(tmp) == 0 {
		return ""
	}
	return tmp[0]
}

// String returns a sequence, with its comment at the start as
// a single string
func (s Seq) String() string {
	return fmt.Sprintf("%c%s\n%s", cmmtChar, s.cmmt, s.seq)
}

// NSeq returns the number of sequences
func (seqgrp *SeqGrp) NSeq() int { return len(seqgrp.seqs) }

// SeqSlc return the slice of sequences
func (seqgrp *SeqGrp) SeqSlc() []Seq { return seqgrp.seqs }

// Input hands the sequences over in the form the alignment loader wants.
func (seqgrp *SeqGrp) Input() []aln.Input {
	in := make([]aln.Input, len(seqgrp.seqs))
	for i, s := range seqgrp.seqs {
		in[i] = aln.Input{ID: s.ID(), Seq: string(s.seq)}
	}
	return in
}

// WithSeqs goes the other way. It takes sequences by identifier and
// puts back the comments we read. An identifier we never saw becomes
// its own comment.
func (seqgrp *SeqGrp) WithSeqs(in []aln.Input) []Seq {
	cmmts := make(map[string]string, len(seqgrp.seqs))
	for _, s := range seqgrp.seqs {
		cmmts[s.ID()] = s.cmmt
	}
	ret := make([]Seq, len(in))
	for i, x := range in {
		c, ok := cmmts[x.ID]
		if !ok {
			c = x.ID
		}
		ret[i] = Seq{cmmt: c, seq: []byte(x.Seq)}
	}
	return ret
}

// Str2SeqGrp takes some strings and returns them as a seqgrp.
// sIn is a slice of strings which are the sequences.
// prefix is an optional argument. Sequences need names/comments. If
// prefix is not given, sequences will be called "> s0", "> s1", ...
func Str2SeqGrp(sIn []string, prefix ...string) *SeqGrp {
	base := "s"
	if prefix != nil {
		base = prefix[0]
	}
	seqgrp := new(SeqGrp)
	for i, s := range sIn {
		f := Seq{cmmt: fmt.Sprint(base, i), seq: []byte(s)}
		seqgrp.seqs = append(seqgrp.seqs, f)
	}
	return seqgrp
}

// Readfile takes a filename and reads sequences from it. An empty name
// or "-" means standard input, which cannot be mapped, so it is read.
func Readfile(fname string, s_opts *Options) (*SeqGrp, error) {
	seqgrp := new(SeqGrp)
	if fname == "" || fname == "-" {
		if err := ReadFasta(os.Stdin, seqgrp, s_opts); err != nil {
			return nil, err
		}
		return seqgrp, nil
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	info, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", fname, errNoSeqs)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()
	if err := parse(mm, seqgrp); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return seqgrp, nil
}

// ReadFasta reads fasta formatted sequences from a reader and adds them
// to seqgrp.
func ReadFasta(rdr io.Reader, seqgrp *SeqGrp, s_opts *Options) error {
	b, err := io.ReadAll(rdr)
	if err != nil {
		return err
	}
	return parse(b, seqgrp)
}

// gapFree copies s without gaps into scratch space t.
func gapFree(s, t []byte) []byte {
	t = t[:0]
	for _, c := range s {
		if !IsGap(c) {
			t = append(t, c)
		}
	}
	return t
}

// WriteToF takes a filename and a slice of sequences.
// It writes the sequences to the file. Empty sequences are skipped.
// An empty filename means standard output.
func WriteToF(outseq_fname string, seq_set []Seq, s_opts *Options) (err error) {
	const c_per_line = 60
	var outfile_fp io.Writer
	switch {
	case s_opts.DryRun:
		outfile_fp = io.Discard
	case outseq_fname == "" || outseq_fname == "-":
		outfile_fp = os.Stdout
	default:
		t, cerr := os.Create(outseq_fname)
		if cerr != nil {
			return fmt.Errorf("creating output sequence file: %w", cerr)
		}
		defer func() {
			if cerr := t.Close(); err == nil {
				err = cerr
			}
		}()
		outfile_fp = t
	}

	w := bufio.NewWriter(outfile_fp)
	var t []byte
	for _, seq := range seq_set {
		if seq.Empty() {
			continue
		}
		fmt.Fprintf(w, "%c%s\n", cmmtChar, seq.Cmmt())
		s := seq.GetSeq()
		if s_opts.RmvGapsWrt { // we have to remove gap characters on output
			t = gapFree(s, t)
			s = t
		}
		for ; len(s) > c_per_line; s = s[c_per_line:] {
			w.Write(s[:c_per_line])
			w.WriteByte('\n')
		}
		w.Write(s)
		w.WriteByte('\n')
	}
	return w.Flush()
}
