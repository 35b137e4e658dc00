// 7 Mar 2025
// Take the sequences of one group and squash out the columns where all
// of them have a gap.

package gapclust

import (
	"github.com/andrew-torda/clean_genes/pkg/aln"
	. "github.com/andrew-torda/clean_genes/pkg/seq/common"
)

// CommonGaps returns a mask which is true for columns where every member
// has a gap.
func CommonGaps(al *aln.Alignment, members []int) []bool {
	mask := make([]bool, al.Len())
	if len(members) == 0 {
		return mask
	}
	for i := range mask { // First, we assume all sites are common gaps
		mask[i] = true
	}
	for _, m := range members { // then knock out any with a residue
		for i, c := range al.Rec(m).Aligned() {
			if !IsGap(c) {
				mask[i] = false
			}
		}
	}
	return mask
}

// SubAlignment is the alignment of just the group's members, with
// columns that are gaps in all of them removed.
func SubAlignment(al *aln.Alignment, g *Group) (*aln.Alignment, error) {
	mask := CommonGaps(al, g.Members)
	for i := range mask {
		mask[i] = !mask[i]
	}
	return al.Subset(g.Members, mask)
}
