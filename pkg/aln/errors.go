// 3 Mar 2025

package aln

import (
	"errors"
	"fmt"
)

// ErrEmptyAlignment is returned for input with no sequences or sequences
// with no columns.
var ErrEmptyAlignment = errors.New("empty alignment: no sequences or no columns")

// ErrAnnotated is returned if an annotation is written a second time.
var ErrAnnotated = errors.New("annotation already written")

// InconsistentLengthError says two aligned sequences differ in length.
type InconsistentLengthError struct {
	ID   string // offending sequence
	Len  int    // its length
	Want int    // length of the first sequence
}

func (e *InconsistentLengthError) Error() string {
	return fmt.Sprintf("sequence lengths are not the same. First sequence length %d, but %q has length %d",
		e.Want, e.ID, e.Len)
}

// AlphabetError reports a symbol that is not a nucleotide, an IUPAC
// ambiguity code or a gap.
type AlphabetError struct {
	ID  string
	Pos int // column, counting from zero
	Sym byte
}

func (e *AlphabetError) Error() string {
	return fmt.Sprintf("bad sym %q at position %d in sequence %q", e.Sym, e.Pos, e.ID)
}

// DuplicateIDError means two sequences have the same identifier.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("sequence identifier %q used more than once", e.ID)
}

// OutOfBoundsError is a column or frame outside the alignment. It is a
// programming error, not something a user can provoke with input.
type OutOfBoundsError struct {
	What  string // "column", "frame", "sequence"
	Index int
	Len   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s %d out of range [0,%d)", e.What, e.Index, e.Len)
}
