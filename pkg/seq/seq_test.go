package seq_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	"github.com/andrew-torda/clean_genes/pkg/brokenio"
	"github.com/andrew-torda/clean_genes/pkg/randaln"
	. "github.com/andrew-torda/clean_genes/pkg/seq"
	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

const (
	big       = 64 * 1024
	bigminus1 = big - 1
	bigplus1  = big + 1
)

var seq_lengths = []int{10, 30, bigminus1, big, bigplus1}

func cmmtHelp(got, want string, t *testing.T) {
	if got != want {
		t.Fatalf("checking comments wanted \"%s\" got \"%s\"", want, got)
	}
}

// TestComment is to check that comments are read exactly, correctly
func TestComment(t *testing.T) {
	c0 := "testcomment no space"
	c1 := " testcomment with space at start"
	s := "aaa\n"
	seqs := ">" + c0 + "\n" + s + ">" + c1 + "\r\n" + s
	var seqgrp SeqGrp
	var s_opts Options

	if err := ReadFasta(strings.NewReader(seqs), &seqgrp, &s_opts); err != nil {
		t.Fatal("bust reading simple seqs in TestComment", err)
	}
	slc := seqgrp.SeqSlc()

	cmmtHelp(slc[1].Cmmt(), c1, t)
	cmmtHelp(slc[0].Cmmt(), c0, t)
	if id := slc[1].ID(); id != "testcomment" {
		t.Fatal("ID got", id)
	}
}

// TestDiffLenLong has different length sequences that should be much longer
// than one line.
func TestDiffLenLong(t *testing.T) {
	ll := []int{10000, 20000, 50000}
	s := ">\n" + strings.Repeat("a", ll[0]) + "\n> s2\n" + strings.Repeat("c", ll[1]) +
		"\n> s3\n" + strings.Repeat("d", ll[2])
	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(s), &seqgrp, &Options{}); err != nil {
		t.Fatal("Reading seqs failed", err)
	}
	if ngot := seqgrp.NSeq(); ngot != 3 {
		t.Fatalf("Seqs of diff length got %d wanted 3 seqs", ngot)
	}
	for i := 0; i < len(ll); i++ {
		l := seqgrp.SeqSlc()[i].Len()
		if l != ll[i] {
			t.Fatalf("long seq wanted %d got %d", ll[i], l)
		}
	}
	if id := seqgrp.SeqSlc()[0].ID(); id != "" {
		t.Fatal("empty comment should give empty ID, got", id)
	}
}

// Put funny characters into the comment lines
var trickyComments = []string{
	">a☺b☻c☹d",
	">>>",
	">",
	">a comment can end in an umlautÜ",
}

// writeTest_with_spaces provides some sequences with different patterns of
// white space and some gap characters mixed in. It sticks it in an io.Writer.
func writeTest_with_spaces(f_tmp io.Writer) {
	const b byte = 'B'
	for i, l := range seq_lengths {
		ndx := i % len(trickyComments)
		s := trickyComments[ndx]
		fmt.Fprintln(f_tmp, s)
		for j := 0; j < l; j++ {
			switch {
			case j%11 == 1:
				fmt.Fprint(f_tmp, " ")
			case j%73 == 1:
				fmt.Fprint(f_tmp, "\n")
			}
			fmt.Fprint(f_tmp, string(b))
		}
		fmt.Fprint(f_tmp, "\n")
	}
}

func TestTricky(t *testing.T) {
	var b strings.Builder
	writeTest_with_spaces(&b)
	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(b.String()), &seqgrp, &Options{}); err != nil {
		t.Fatal("Reading seqs failed", err)
	}
	if seqgrp.NSeq() != len(seq_lengths) {
		t.Fatalf("Wrote %d seqs, but read only %d", len(seq_lengths), seqgrp.NSeq())
	}
	for i, s := range seqgrp.SeqSlc() {
		if s.Len() != seq_lengths[i] {
			t.Fatalf("Seq length expected %d, got %d", seq_lengths[i], s.Len())
		}
		if want := trickyComments[i%len(trickyComments)][1:]; s.Cmmt() != want {
			t.Fatalf("comment got \"%s\" want \"%s\"", s.Cmmt(), want)
		}
	}
}

func TestBroken(t *testing.T) {
	bad := []string{
		"> s1\nabc\n> s2 there is no sequence next",
		"> s1\n\n> s2\nacgt\n",
		"acgt\n> s1\nacgt\n",
		"",
		"  \n\n",
	}
	for i, s := range bad {
		var seqgrp SeqGrp
		if err := ReadFasta(strings.NewReader(s), &seqgrp, &Options{}); err == nil {
			t.Error("case", i, "did not break")
		}
	}
}

// A failing reader must give an error, not a short alignment.
func TestBrokenReader(t *testing.T) {
	var b strings.Builder
	writeTest_with_spaces(&b)
	rdr := brokenio.NewReader(strings.NewReader(b.String()), brokenio.Options{FailAfter: 1000})
	var seqgrp SeqGrp
	err := ReadFasta(rdr, &seqgrp, &Options{})
	if !errors.Is(err, brokenio.ErrBroken) {
		t.Fatal("want broken reader error, got", err)
	}
}

func TestReadfile(t *testing.T) {
	s := "\n> a first\nAC-GT\nAC\n>b\r\nACGTAC-\n"
	fname, err := WrtTemp(s)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	seqgrp, err := Readfile(fname, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []aln.Input{{ID: "a", Seq: "AC-GTAC"}, {ID: "b", Seq: "ACGTAC-"}}
	if diff := cmp.Diff(want, seqgrp.Input()); diff != "" {
		t.Fatal("read (-want +got)\n", diff)
	}

	empty, err := WrtTemp("")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(empty)
	if _, err := Readfile(empty, &Options{}); err == nil {
		t.Error("empty file should fail")
	}
	if _, err := Readfile(filepath.Join(t.TempDir(), "not_there"), &Options{}); err == nil {
		t.Error("missing file should fail")
	}
}

// Write with and without gaps, then read back.
func TestWriteRead(t *testing.T) {
	long := strings.Repeat("AC-GT", 40)
	seqgrp := Str2SeqGrp([]string{long, "A-C"}, "seq")
	dir := t.TempDir()
	for _, rmv := range []bool{false, true} {
		fname := filepath.Join(dir, fmt.Sprint("out", rmv))
		s_opts := &Options{RmvGapsWrt: rmv}
		if err := WriteToF(fname, seqgrp.SeqSlc(), s_opts); err != nil {
			t.Fatal(err)
		}
		back, err := Readfile(fname, s_opts)
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range back.SeqSlc() {
			want := string(seqgrp.SeqSlc()[i].GetSeq())
			if rmv {
				want = strings.ReplaceAll(want, "-", "")
			}
			if string(s.GetSeq()) != want {
				t.Error("gap removal", rmv, "got", string(s.GetSeq()), "want", want)
			}
		}
		if back.SeqSlc()[1].ID() != "seq1" {
			t.Error("comment lost")
		}
	}
	b, err := os.ReadFile(filepath.Join(dir, "outfalse"))
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(string(b), "\n") {
		if len(line) > 60 {
			t.Fatal("line longer than 60", len(line))
		}
	}
	if err := WriteToF(filepath.Join(dir, "dry"), seqgrp.SeqSlc(), &Options{DryRun: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dry")); err == nil {
		t.Error("dry run wrote a file")
	}
}

func TestWithSeqs(t *testing.T) {
	s := "> x1 first one\nACGT\n> x2 second\nAAAA\n"
	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(s), &seqgrp, &Options{}); err != nil {
		t.Fatal(err)
	}
	got := seqgrp.WithSeqs([]aln.Input{{ID: "x2", Seq: "AA"}, {ID: "new", Seq: "CC"}})
	if got[0].Cmmt() != " x2 second" || string(got[0].GetSeq()) != "AA" {
		t.Error("x2 got", got[0])
	}
	if got[1].Cmmt() != "new" {
		t.Error("unknown identifier should be its own comment, got", got[1].Cmmt())
	}
}

func ExampleSeq_String() {
	seqgrp := Str2SeqGrp([]string{"ACGT", "AC-T"})
	for _, s := range seqgrp.SeqSlc() {
		fmt.Println(s)
	}
	// Output:
	// >s0
	// ACGT
	// >s1
	// AC-T
}

func BenchmarkReadfile(b *testing.B) {
	var sb strings.Builder
	args := randaln.RandAlnArgs{Wrtr: &sb, Cmmt: "testing seq", Nseq: 2000, Ncodon: 600, NGap: 4}
	if err := randaln.RandAlnMain(&args); err != nil {
		b.Fatal(err)
	}
	fname, err := WrtTemp(sb.String())
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { os.Remove(fname) })
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seqgrp, err := Readfile(fname, &Options{})
		if err != nil {
			b.Fatal(err)
		}
		if seqgrp.NSeq() != args.Nseq {
			b.Fatal("got", seqgrp.NSeq(), "want", args.Nseq)
		}
	}
}
