// 3 Mar 2025

// Package aln holds a multiple sequence alignment of nucleotide coding
// sequences and the quantities derived from it: column conservation,
// codons in each frame and the runs of gaps in each sequence.
//
// An Alignment does not change after Load. Everything derived is
// computed lazily, at most once, and is safe to read from many
// goroutines. The only things written later are the per record
// annotations, and each of those has exactly one writer.
package aln

import (
	"sync"

	"github.com/biogo/biogo/alphabet"

	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

// Input is one sequence as handed over by a loader.
type Input struct {
	ID  string
	Seq string
}

// Alignment is a set of aligned sequences, all of the same length.
type Alignment struct {
	recs   []*Record
	byID   map[string]int
	ncol   int
	origin int // column of the source alignment where our column 0 came from

	consOnce sync.Once
	cons     []float32
}

// Load checks and copies the input. Symbols are upper cased. Any symbol
// which is not a nucleotide, ambiguity code or gap is an AlphabetError,
// and the whole alignment is rejected.
func Load(in []Input) (*Alignment, error) {
	if len(in) == 0 || len(in[0].Seq) == 0 {
		return nil, ErrEmptyAlignment
	}
	ncol := len(in[0].Seq)
	al := &Alignment{
		recs: make([]*Record, len(in)),
		byID: make(map[string]int, len(in)),
		ncol: ncol,
	}
	valid := alphabet.DNAredundant
	for i, s := range in {
		if len(s.Seq) != ncol {
			return nil, &InconsistentLengthError{ID: s.ID, Len: len(s.Seq), Want: ncol}
		}
		if _, dup := al.byID[s.ID]; dup {
			return nil, &DuplicateIDError{ID: s.ID}
		}
		b := make([]byte, ncol)
		for j := 0; j < ncol; j++ {
			c := s.Seq[j]
			if !valid.IsValid(alphabet.Letter(c)) {
				return nil, &AlphabetError{ID: s.ID, Pos: j, Sym: c}
			}
			b[j] = ToUpper(c)
		}
		al.byID[s.ID] = i
		al.recs[i] = newRecord(s.ID, b)
	}
	return al, nil
}

// fromRecords builds an alignment from sequences we have already checked.
// Annotations are not carried over.
func fromRecords(ids []string, seqs [][]byte, origin int) *Alignment {
	al := &Alignment{
		recs:   make([]*Record, len(ids)),
		byID:   make(map[string]int, len(ids)),
		origin: origin,
	}
	if len(seqs) > 0 {
		al.ncol = len(seqs[0])
	}
	for i := range ids {
		al.byID[ids[i]] = i
		al.recs[i] = newRecord(ids[i], seqs[i])
	}
	return al
}

// Len is the number of columns.
func (al *Alignment) Len() int { return al.ncol }

// NSeq is the number of sequences.
func (al *Alignment) NSeq() int { return len(al.recs) }

// Origin is the column in the source alignment that our first column came
// from. It is zero unless the alignment was cut out of a bigger one.
func (al *Alignment) Origin() int { return al.origin }

// Rec returns the i'th record, in input order.
func (al *Alignment) Rec(i int) *Record { return al.recs[i] }

// Index finds a sequence by identifier.
func (al *Alignment) Index(id string) (int, bool) {
	i, ok := al.byID[id]
	return i, ok
}

// IDs returns the identifiers in input order.
func (al *Alignment) IDs() []string {
	ids := make([]string, len(al.recs))
	for i, r := range al.recs {
		ids[i] = r.id
	}
	return ids
}

// Output gives the sequences back in the form a writer wants.
func (al *Alignment) Output() []Input {
	out := make([]Input, len(al.recs))
	for i, r := range al.recs {
		out[i] = Input{ID: r.id, Seq: string(r.aligned)}
	}
	return out
}

// Columns cuts out the half open column range [start, end). Every
// sequence loses the same columns, so columns still correspond.
func (al *Alignment) Columns(start, end int) (*Alignment, error) {
	if start < 0 || start > al.ncol {
		return nil, &OutOfBoundsError{What: "column", Index: start, Len: al.ncol + 1}
	}
	if end < start || end > al.ncol {
		return nil, &OutOfBoundsError{What: "column", Index: end, Len: al.ncol + 1}
	}
	if end == start {
		return nil, ErrEmptyAlignment
	}
	ids := al.IDs()
	seqs := make([][]byte, len(al.recs))
	for i, r := range al.recs {
		seqs[i] = r.aligned[start:end:end]
	}
	return fromRecords(ids, seqs, al.origin+start), nil
}

// Subset makes a new alignment from some of the sequences (by index, in
// the order given) and only the columns where keep is true. If keep is
// nil, all columns are kept. Column numbering of the result starts
// again from zero.
func (al *Alignment) Subset(members []int, keep []bool) (*Alignment, error) {
	if len(members) == 0 {
		return nil, ErrEmptyAlignment
	}
	if keep != nil && len(keep) != al.ncol {
		return nil, &OutOfBoundsError{What: "column", Index: len(keep), Len: al.ncol + 1}
	}
	nkeep := al.ncol
	if keep != nil {
		nkeep = 0
		for _, k := range keep {
			if k {
				nkeep++
			}
		}
	}
	if nkeep == 0 {
		return nil, ErrEmptyAlignment
	}
	ids := make([]string, len(members))
	seqs := make([][]byte, len(members))
	for i, m := range members {
		if m < 0 || m >= len(al.recs) {
			return nil, &OutOfBoundsError{What: "sequence", Index: m, Len: len(al.recs)}
		}
		r := al.recs[m]
		ids[i] = r.id
		if keep == nil {
			seqs[i] = r.aligned
			continue
		}
		b := make([]byte, 0, nkeep)
		for j, c := range r.aligned {
			if keep[j] {
				b = append(b, c)
			}
		}
		seqs[i] = b
	}
	return fromRecords(ids, seqs, 0), nil
}
