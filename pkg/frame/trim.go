// 4 Mar 2025

package frame

import "github.com/andrew-torda/clean_genes/pkg/aln"

// Bounds is a half open column range in the coordinates of the source
// alignment.
type Bounds struct {
	Start, End int
}

// local turns a frame given in source coordinates into one counted from
// column 0 of al.
func local(al *aln.Alignment, f int) int {
	return ((f-al.Origin())%3 + 3) % 3
}

// Trim drops the columns before the first codon of frame f and any
// partial codon at the end. f is counted in the coordinates of the
// source alignment, so trimming an alignment that was already trimmed
// with the same frame gives back the same thing.
func Trim(al *aln.Alignment, f int) (*aln.Alignment, Bounds, error) {
	if f < 0 || f > 2 {
		return nil, Bounds{}, &aln.OutOfBoundsError{What: "frame", Index: f, Len: 3}
	}
	start := local(al, f)
	n := al.NCodon(start)
	if n == 0 {
		return nil, Bounds{}, aln.ErrEmptyAlignment
	}
	end := start + 3*n
	b := Bounds{Start: al.Origin() + start, End: al.Origin() + end}
	if start == 0 && end == al.Len() {
		return al, b, nil
	}
	trimmed, err := al.Columns(start, end)
	if err != nil {
		return nil, Bounds{}, err
	}
	return trimmed, b, nil
}
