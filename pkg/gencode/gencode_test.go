// 3 Mar 2025

package gencode_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/andrew-torda/clean_genes/pkg/gencode"
)

func trip(s string) [3]byte { return [3]byte{s[0], s[1], s[2]} }

func TestIndex(t *testing.T) {
	cases := []struct {
		c    string
		want int
	}{
		{"AAA", 0},
		{"AAC", 1},
		{"TTT", 63},
		{"ttt", 63},
		{"A-A", -1},
		{"ANA", -1},
		{"RTG", -1},
	}
	for _, c := range cases {
		if got := Index(trip(c.c)); got != c.want {
			t.Errorf("Index(%s) got %d wanted %d", c.c, got, c.want)
		}
	}
}

func TestStandardStops(t *testing.T) {
	tbl := MustNew(Standard)
	if diff := cmp.Diff([]string{"TAA", "TAG", "TGA"}, tbl.Stops()); diff != "" {
		t.Fatalf("standard stops (-want +got):\n%s", diff)
	}
	for _, s := range []string{"TAA", "TAG", "TGA", "tag"} {
		if !tbl.IsStop(trip(s)) {
			t.Errorf("%s should be a stop", s)
		}
	}
	for _, s := range []string{"TGG", "T-A", "TAN", "---", "ATG"} {
		if tbl.IsStop(trip(s)) {
			t.Errorf("%s should not be a stop", s)
		}
	}
	if !tbl.IsStart(trip("ATG")) {
		t.Error("ATG must be a start")
	}
	if !StrictStart(trip("ATG")) || StrictStart(trip("GTG")) {
		t.Error("StrictStart only knows ATG")
	}
}

// TestMito uses the vertebrate mitochondrial code where TGA codes
// for tryptophan and AGA / AGG stop.
func TestMito(t *testing.T) {
	tbl, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.IsStop(trip("TGA")) {
		t.Error("TGA is not a stop in table 2")
	}
	if !tbl.IsStop(trip("AGA")) || !tbl.IsStop(trip("AGG")) {
		t.Error("AGA and AGG stop in table 2")
	}
	if tbl.TableIndex() != 2 {
		t.Error("table index lost")
	}
}

func TestBadTable(t *testing.T) {
	for _, n := range []int{999, 99, 0, -1, 7, 8, 15, 32} {
		if _, err := New(n); err == nil {
			t.Error("table", n, "should not exist")
		}
	}
	for _, n := range []int{1, 11, 33} {
		if _, err := New(n); err != nil {
			t.Error("table", n, err)
		}
	}
}
