// 7 Mar 2025

package gapclust

// Forest is a union-find forest over sequence indices. The root of every
// tree is the member with the smallest identifier, so the final roots do
// not depend on the order of the unions.
//
// A Forest belongs to whoever made it. Cluster resets it, fills it and
// hands it back. It is not safe for concurrent use.
type Forest struct {
	parent []int
	ids    []string
}

// NewForest makes a forest where every sequence is on its own.
func NewForest(ids []string) *Forest {
	f := new(Forest)
	f.Reset(ids)
	return f
}

// Reset puts every sequence back in its own tree, reusing space.
func (f *Forest) Reset(ids []string) {
	if cap(f.parent) < len(ids) {
		f.parent = make([]int, len(ids))
	}
	f.parent = f.parent[:len(ids)]
	for i := range f.parent {
		f.parent[i] = i
	}
	f.ids = ids
}

// Len is the number of sequences.
func (f *Forest) Len() int { return len(f.parent) }

// Find returns the root of i, halving paths on the way.
func (f *Forest) Find(i int) int {
	for f.parent[i] != i {
		f.parent[i] = f.parent[f.parent[i]]
		i = f.parent[i]
	}
	return i
}

// less decides which root survives a union.
func (f *Forest) less(i, j int) bool {
	if f.ids[i] != f.ids[j] {
		return f.ids[i] < f.ids[j]
	}
	return i < j
}

// Union joins the trees of i and j. It returns false if they were
// already together.
func (f *Forest) Union(i, j int) bool {
	ri, rj := f.Find(i), f.Find(j)
	if ri == rj {
		return false
	}
	if f.less(rj, ri) {
		ri, rj = rj, ri
	}
	f.parent[rj] = ri
	return true
}
