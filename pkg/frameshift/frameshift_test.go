// 6 Mar 2025

package frameshift_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/clean_genes/pkg/aln"
	. "github.com/andrew-torda/clean_genes/pkg/frameshift"
)

// base codes in frame 0 and has only a terminal stop.
const base = "ATGGCTAAAGACAATTACATAACATACTAA"

// gapped puts n gaps into base starting at column pos.
func gapped(pos, n int) string {
	b := []byte(base)
	for i := pos; i < pos+n; i++ {
		b[i] = '-'
	}
	return string(b)
}

func load(t *testing.T, seqs ...string) *aln.Alignment {
	t.Helper()
	in := make([]aln.Input, len(seqs))
	for i, s := range seqs {
		in[i] = aln.Input{ID: fmt.Sprint("s", i), Seq: s}
	}
	al, err := aln.Load(in)
	if err != nil {
		t.Fatal(err)
	}
	return al
}

func detect(t *testing.T, al *aln.Alignment, opts Options) *Report {
	t.Helper()
	rpt, err := Detect(al, 0, opts)
	if err != nil {
		t.Fatal(err)
	}
	return rpt
}

// TestGapLength is the main case. A four base gap shifts the frame even
// though no stop codon follows it. Three and six base gaps do not.
func TestGapLength(t *testing.T) {
	al := load(t, base, base, base, gapped(12, 4), gapped(12, 3), gapped(12, 6), gapped(20, 1))
	rpt := detect(t, al, DefaultOptions())
	want := []bool{false, false, false, true, false, false, true}
	if diff := cmp.Diff(want, rpt.Flags()); diff != "" {
		t.Fatalf("flags (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]aln.GapRun{{Start: 12, Len: 4}}, rpt.Evidence[3].BadGaps); diff != "" {
		t.Fatalf("bad gaps for 4 base gap:\n%s", diff)
	}
	if len(rpt.Evidence[3].Stops) != 0 {
		t.Fatal("no stops expected, got", rpt.Evidence[3].Stops)
	}
	if rpt.NFlagged() != 2 {
		t.Fatal("NFlagged", rpt.NFlagged())
	}
}

func TestMinGapLen(t *testing.T) {
	al := load(t, base, base, gapped(20, 1))
	opts := DefaultOptions()
	opts.MinGapLen = 2
	if rpt := detect(t, al, opts); rpt.NFlagged() != 0 {
		t.Fatal("single gap should be ignored with MinGapLen 2")
	}
}

func TestInternalStop(t *testing.T) {
	stop := []byte(base)
	copy(stop[9:], "TAA")
	al := load(t, base, base, string(stop))
	rpt := detect(t, al, DefaultOptions())
	if diff := cmp.Diff([]int{9}, rpt.Evidence[2].Stops); diff != "" {
		t.Fatalf("stops:\n%s", diff)
	}
	if !rpt.Evidence[2].Flagged || rpt.Evidence[0].Flagged {
		t.Fatal("flags wrong", rpt.Flags())
	}
	opts := DefaultOptions()
	opts.StopThreshold = 1
	if rpt := detect(t, al, opts); rpt.NFlagged() != 0 {
		t.Fatal("one stop is allowed with threshold 1")
	}
}

// TestTerminal has a sequence which stops early, then trailing gaps. The
// stop before the gaps is its end, not an internal stop.
func TestTerminal(t *testing.T) {
	short := base[:12] + "TAA" + "---------------"
	al := load(t, base, base, short)
	rpt := detect(t, al, DefaultOptions())
	if rpt.NFlagged() != 0 {
		t.Fatalf("nothing should be flagged, got %+v", rpt.Evidence)
	}
}

func TestBoundary(t *testing.T) {
	lead := "--" + base[2:]
	trail := base[:26] + "----"
	al := load(t, base, base, lead, trail)
	if rpt := detect(t, al, DefaultOptions()); rpt.NFlagged() != 0 {
		t.Fatalf("boundary gaps should be ignored %+v", rpt.Evidence)
	}
	opts := DefaultOptions()
	opts.ExcludeBoundary = false
	rpt := detect(t, al, opts)
	if diff := cmp.Diff([]bool{false, false, true, true}, rpt.Flags()); diff != "" {
		t.Fatalf("boundary gaps counted (-want +got):\n%s", diff)
	}
}

// TestShared has an insertion in one sequence. Everybody else has a one
// base gap there, which is not their fault.
func TestShared(t *testing.T) {
	peer := base[:15] + "-" + base[15:]
	ins := base[:15] + "G" + base[15:]
	al := load(t, peer, peer, peer, peer, ins)
	rpt := detect(t, al, DefaultOptions())
	if rpt.NFlagged() != 0 {
		t.Fatalf("shared run flagged %+v", rpt.Evidence)
	}
	if diff := cmp.Diff([]aln.GapRun{{Start: 15, Len: 1}}, rpt.Shared); diff != "" {
		t.Fatal("majority runs", diff)
	}
	opts := DefaultOptions()
	opts.Shared = []aln.GapRun{}
	if rpt := detect(t, al, opts); rpt.NFlagged() != 4 {
		t.Fatal("with no shared runs, all four peers should be flagged, got", rpt.Flags())
	}
}

func TestTolerance(t *testing.T) {
	al := load(t, gapped(12, 1), gapped(12, 1), gapped(12, 1), gapped(14, 1))
	if rpt := detect(t, al, DefaultOptions()); !rpt.Evidence[3].Flagged {
		t.Fatal("gap at 14 is not shared with tolerance 0")
	}
	opts := DefaultOptions()
	opts.Tolerance = 2
	if rpt := detect(t, al, opts); rpt.Evidence[3].Flagged {
		t.Fatal("gap at 14 should match 12 with tolerance 2")
	}
}

// TestOrder uses many sequences and workers and checks results come back
// in input order.
func TestOrder(t *testing.T) {
	var seqs []string
	for i := 0; i < 200; i++ {
		if i%7 == 0 {
			seqs = append(seqs, gapped(12, 2))
		} else {
			seqs = append(seqs, base)
		}
	}
	al := load(t, seqs...)
	opts := DefaultOptions()
	opts.Workers = 8
	rpt := detect(t, al, opts)
	for i, ev := range rpt.Evidence {
		if ev.ID != fmt.Sprint("s", i) {
			t.Fatalf("position %d has %s", i, ev.ID)
		}
		if ev.Flagged != (i%7 == 0) {
			t.Fatalf("sequence %d flag %v", i, ev.Flagged)
		}
	}
	if err := rpt.Annotate(al); err != nil {
		t.Fatal(err)
	}
	if fs, ok := al.Rec(7).Frameshift(); !ok || !fs {
		t.Fatal("annotation not written")
	}
}

func TestBadFrame(t *testing.T) {
	if _, err := Detect(load(t, base), -1, DefaultOptions()); err == nil {
		t.Fatal("frame -1 accepted")
	}
}
