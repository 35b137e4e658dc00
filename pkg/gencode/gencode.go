// 3 Mar 2025

// Package gencode knows which codons start and stop translation.
// The tables come from poly, which carries the NCBI genetic codes, so
// any table index NCBI uses is accepted here. Lookups are done on
// upper case DNA triplets. Anything with a gap or an ambiguity code is
// neither a start nor a stop.
package gencode

import (
	"fmt"

	"github.com/bebop/poly/synthesis/codon"
)

// Standard is the NCBI index of the standard genetic code.
const Standard = 1

const nCodon = 64

// Table is a genetic code reduced to what we need for reading frames.
type Table struct {
	index int
	stop  [nCodon]bool
	start [nCodon]bool
}

var baseNdx = [256]int8{
	'A': 1, 'C': 2, 'G': 3, 'T': 4,
	'a': 1, 'c': 2, 'g': 3, 't': 4,
}

// Index returns a number from 0 to 63 for a codon made only of A, C, G
// and T. It returns -1 for anything else, including gaps.
func Index(c [3]byte) int {
	n := 0
	for _, b := range c {
		v := baseNdx[b]
		if v == 0 {
			return -1
		}
		n = n*4 + int(v-1)
	}
	return n
}

func toTriplet(s string) ([3]byte, error) {
	var c [3]byte
	if len(s) != 3 {
		return c, fmt.Errorf("codon %q is not three bases", s)
	}
	copy(c[:], s)
	return c, nil
}

// ncbiTables are the genetic codes poly carries. poly does not check
// the index it is given, so we do.
var ncbiTables = map[int]bool{
	1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 9: true,
	10: true, 11: true, 12: true, 13: true, 14: true, 16: true,
	21: true, 22: true, 23: true, 24: true, 25: true, 26: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 33: true,
}

// New builds the table for an NCBI genetic code index.
func New(index int) (*Table, error) {
	if !ncbiTables[index] {
		return nil, fmt.Errorf("genetic code %d: no such table", index)
	}
	tt := codon.NewTranslationTable(index)
	if tt == nil {
		return nil, fmt.Errorf("genetic code %d: no such table", index)
	}
	t := &Table{index: index}
	mark := func(codons []string, dst *[nCodon]bool) error {
		for _, s := range codons {
			c, err := toTriplet(s)
			if err != nil {
				return err
			}
			if i := Index(c); i >= 0 {
				dst[i] = true
			}
		}
		return nil
	}
	if err := mark(tt.StopCodons, &t.stop); err != nil {
		return nil, err
	}
	if err := mark(tt.StartCodons, &t.start); err != nil {
		return nil, err
	}
	return t, nil
}

// MustNew is New for tables we know exist. It panics otherwise.
func MustNew(index int) *Table {
	t, err := New(index)
	if err != nil {
		panic(err)
	}
	return t
}

// TableIndex returns the NCBI number of the table.
func (t *Table) TableIndex() int { return t.index }

// IsStop says if a codon stops translation.
func (t *Table) IsStop(c [3]byte) bool {
	if i := Index(c); i >= 0 {
		return t.stop[i]
	}
	return false
}

// IsStart says if a codon can start translation, alternative starts of
// the table included. StrictStart only accepts ATG.
func (t *Table) IsStart(c [3]byte) bool {
	if i := Index(c); i >= 0 {
		return t.start[i]
	}
	return false
}

// StrictStart is true only for ATG.
func StrictStart(c [3]byte) bool {
	return Index(c) == Index([3]byte{'A', 'T', 'G'})
}

// Stops returns the stop codons of the table in index order.
func (t *Table) Stops() []string {
	const bases = "ACGT"
	var r []string
	for i, isStop := range t.stop {
		if isStop {
			r = append(r, string([]byte{bases[i>>4], bases[(i>>2)&3], bases[i&3]}))
		}
	}
	return r
}
