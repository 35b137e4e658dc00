// 31 July 2020

package randaln_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	"github.com/andrew-torda/clean_genes/pkg/brokenio"
	"github.com/andrew-torda/clean_genes/pkg/gencode"
	. "github.com/andrew-torda/clean_genes/pkg/randaln"
)

func TestSimple(t *testing.T) {
	var sb strings.Builder
	args := RandAlnArgs{
		Wrtr:   &sb,
		Cmmt:   "testing seq",
		Nseq:   500,
		Ncodon: 50,
		NMut:   5,
		NGap:   3,
		NShift: 4,
	}
	if err := RandAlnMain(&args); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(sb.String(), ">"); n != args.Nseq {
		t.Fatal("count >, got ", n, "expected", args.Nseq)
	}
}

// A writer that fails part way must not hang the generator.
func TestBrokenWriter(t *testing.T) {
	var sb strings.Builder
	args := RandAlnArgs{
		Wrtr:   brokenio.NewWriter(&sb, brokenio.Options{FailAfter: 5000}),
		Nseq:   200,
		Ncodon: 100,
	}
	if err := RandAlnMain(&args); !errors.Is(err, brokenio.ErrBroken) {
		t.Fatal("want broken writer error, got", err)
	}
}

func TestSameAsGenerate(t *testing.T) {
	var sb strings.Builder
	args := RandAlnArgs{Iseed: 3, Wrtr: &sb, Nseq: 7, Ncodon: 40, NMut: 2, NGap: 2}
	in, err := Generate(&args)
	if err != nil {
		t.Fatal(err)
	}
	if err := RandAlnMain(&args); err != nil {
		t.Fatal(err)
	}
	var joined strings.Builder
	for _, line := range strings.Split(sb.String(), "\n") {
		if !strings.HasPrefix(line, ">") {
			joined.WriteString(line)
		}
	}
	var want strings.Builder
	for _, s := range in {
		want.WriteString(s.Seq)
	}
	if joined.String() != want.String() {
		t.Error("written sequences differ from generated ones")
	}
}

// Every sequence starts with ATG, ends with TAA and has no stop in
// between, unless the codon has a gap.
func TestCoding(t *testing.T) {
	args := RandAlnArgs{Iseed: 11, Nseq: 200, Ncodon: 30, NMut: 10, NGap: 4, NShift: 20}
	in, err := Generate(&args)
	if err != nil {
		t.Fatal(err)
	}
	al, err := aln.Load(in)
	if err != nil {
		t.Fatal(err)
	}
	if al.Len() != 90 {
		t.Fatal("length", al.Len(), "want 90")
	}
	tbl := gencode.MustNew(gencode.Standard)
	for i := 0; i < al.NSeq(); i++ {
		s := al.Rec(i).Aligned()
		if string(s[:3]) != "ATG" || string(s[87:]) != "TAA" {
			t.Fatal("bad start or stop", string(s))
		}
		for c := range al.Codons(i, 0) {
			if c.Pos > 0 && c.Pos < 87 && !c.HasGap() && tbl.IsStop(c.Sym) {
				t.Fatal("internal stop at", c.Pos, "in", string(s))
			}
		}
	}
	for i := 0; i < args.NShift; i++ {
		odd := false
		for _, g := range al.GapRuns(i) {
			if g.Len%3 != 0 {
				odd = true
			}
		}
		if !odd {
			t.Error("sequence", i, "should have a frameshifting gap")
		}
	}
}

func TestTooShort(t *testing.T) {
	if _, err := Generate(&RandAlnArgs{Nseq: 3, Ncodon: 2}); err == nil {
		t.Error("two codons should fail")
	}
	if _, err := Generate(&RandAlnArgs{Nseq: 0, Ncodon: 20}); err == nil {
		t.Error("no sequences should fail")
	}
}

func BenchmarkGenerate(b *testing.B) {
	args := RandAlnArgs{Nseq: 1000, Ncodon: 500, NMut: 20, NGap: 5, NShift: 10}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(&args); err != nil {
			b.Fatal(err)
		}
	}
}
