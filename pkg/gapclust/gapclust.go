// 7 Mar 2025

// Package gapclust groups sequences by their pattern of insertions and
// deletions.
//
// Each sequence's gap runs make its signature. Leading and trailing gaps
// usually only say where sequencing started and stopped, so they are
// dropped before comparing. Two signatures are compatible if their runs
// pair up one to one, with equal lengths and starts no more than a
// tolerance apart. Compatible sequences are joined in a union-find
// forest and every tree becomes a group. Small groups are outliers.
package gapclust

import (
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/clean_genes/pkg/aln"
)

// Options for clustering. Use DefaultOptions, the zero value is not it.
type Options struct {
	Tolerance       int  // how far apart starts of paired runs may be
	MinGroupSize    int  // smaller groups are outliers
	ExcludeBoundary bool // drop leading and trailing gaps before comparing
	BucketWidth     int  // column range for candidate buckets, at least Tolerance+1
	AllPairs        bool // compare every pair of signatures, no buckets
	Workers         int
}

// DefaultOptions returns the defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:       0,
		MinGroupSize:    2,
		ExcludeBoundary: true,
		Workers:         runtime.GOMAXPROCS(0),
	}
}

// Group is one connected set of compatible sequences.
type Group struct {
	ID        int
	Rep       string        // smallest identifier in the group
	Members   []int         // sequence indices, ascending
	Signature aln.Signature // the runs that were compared, from Rep
	Outlier   bool
}

// Result is the clustering of one alignment.
type Result struct {
	Signatures []aln.Signature // full gap signature of each sequence
	Keys       []aln.Signature // runs used for comparison, per sequence
	Cluster    []int           // group ID of each sequence
	Groups     []Group         // ordered by their first member
	Forest     *Forest
	nseq       int
}

// Compatible says if two comparison signatures pair up. Runs are sorted
// and do not overlap within a signature, so the i'th run of a can only
// pair with the i'th run of b. Paired runs must share a column and start
// at most tol apart.
func Compatible(a, b aln.Signature, tol int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Len != b[i].Len || !a[i].Overlaps(b[i]) {
			return false
		}
		d := a[i].Start - b[i].Start
		if d < 0 {
			d = -d
		}
		if d > tol {
			return false
		}
	}
	return true
}

// sigKey turns a signature into a map key.
func sigKey(s aln.Signature) string {
	var sb strings.Builder
	for _, g := range s {
		sb.WriteString(strconv.Itoa(g.Start))
		sb.WriteByte('+')
		sb.WriteString(strconv.Itoa(g.Len))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// uniq is a distinct comparison signature and the sequences carrying it.
type uniq struct {
	key     aln.Signature
	members []int
}

type bucketKey struct {
	len, bucket int
}

// pair is two entries in the uniq list which should be joined.
type pair struct{ a, b int }

// candidates finds pairs of distinct signatures which are compatible.
// Compatible signatures must have compatible first runs, so signatures
// are put in buckets by the length and start column of their first run,
// and each is only checked against its own and the neighbouring buckets.
// Work is split into shards. Each shard collects its own pairs, nobody
// touches the forest here.
func candidates(uniqs []uniq, opts *Options) ([]pair, error) {
	width := opts.BucketWidth
	if width <= opts.Tolerance {
		width = opts.Tolerance + 1
	}
	buckets := make(map[bucketKey][]int)
	if !opts.AllPairs {
		for i, u := range uniqs {
			if len(u.key) == 0 {
				continue
			}
			first := u.key[0]
			bk := bucketKey{first.Len, first.Start / width}
			buckets[bk] = append(buckets[bk], i)
		}
	}

	nshard := opts.Workers
	if nshard < 1 {
		nshard = 1
	}
	found := make([][]pair, nshard)
	var g errgroup.Group
	for shard := 0; shard < nshard; shard++ {
		g.Go(func() error {
			for i := shard; i < len(uniqs); i += nshard {
				u := uniqs[i].key
				if opts.AllPairs {
					for j := i + 1; j < len(uniqs); j++ {
						if Compatible(u, uniqs[j].key, opts.Tolerance) {
							found[shard] = append(found[shard], pair{i, j})
						}
					}
					continue
				}
				if len(u) == 0 {
					continue
				}
				b := u[0].Start / width
				for nb := b - 1; nb <= b+1; nb++ {
					for _, j := range buckets[bucketKey{u[0].Len, nb}] {
						if j > i && Compatible(u, uniqs[j].key, opts.Tolerance) {
							found[shard] = append(found[shard], pair{i, j})
						}
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all []pair
	for _, p := range found {
		all = append(all, p...)
	}
	return all, nil
}

// Cluster groups the sequences of al. The forest is reset and used for
// the unions. Pass nil to get a new one. Either way, it comes back in
// the result.
func Cluster(al *aln.Alignment, forest *Forest, opts Options) (*Result, error) {
	n := al.NSeq()
	if n == 0 {
		return nil, aln.ErrEmptyAlignment
	}
	if forest == nil {
		forest = new(Forest)
	}
	forest.Reset(al.IDs())
	res := &Result{
		Signatures: make([]aln.Signature, n),
		Keys:       make([]aln.Signature, n),
		Cluster:    make([]int, n),
		Forest:     forest,
		nseq:       n,
	}

	var uniqs []uniq
	seen := make(map[string]int)
	for i := 0; i < n; i++ {
		sig := al.GapRuns(i)
		res.Signatures[i] = sig
		key := sig
		if opts.ExcludeBoundary {
			key = al.Interior(sig)
		}
		res.Keys[i] = key
		k := sigKey(key)
		if iu, ok := seen[k]; ok {
			uniqs[iu].members = append(uniqs[iu].members, i)
			continue
		}
		seen[k] = len(uniqs)
		uniqs = append(uniqs, uniq{key: key, members: []int{i}})
	}

	for _, u := range uniqs { // identical signatures are always compatible
		for _, m := range u.members[1:] {
			forest.Union(u.members[0], m)
		}
	}
	if opts.Tolerance > 0 || opts.AllPairs {
		pairs, err := candidates(uniqs, &opts)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs { // single threaded merge
			forest.Union(uniqs[p.a].members[0], uniqs[p.b].members[0])
		}
	}

	groupOf := make(map[int]int) // root -> group ID
	for i := 0; i < n; i++ {
		root := forest.Find(i)
		gid, ok := groupOf[root]
		if !ok {
			gid = len(res.Groups)
			groupOf[root] = gid
			res.Groups = append(res.Groups, Group{
				ID:        gid,
				Rep:       al.Rec(root).ID(),
				Signature: res.Keys[root],
			})
		}
		res.Groups[gid].Members = append(res.Groups[gid].Members, i)
		res.Cluster[i] = gid
	}
	for i := range res.Groups {
		res.Groups[i].Outlier = len(res.Groups[i].Members) < opts.MinGroupSize
	}
	return res, nil
}

// NOutlier counts the sequences in outlier groups.
func (r *Result) NOutlier() int {
	n := 0
	for _, g := range r.Groups {
		if g.Outlier {
			n += len(g.Members)
		}
	}
	return n
}

// Largest returns the biggest group, the first one on ties.
func (r *Result) Largest() *Group {
	var best *Group
	for i := range r.Groups {
		if best == nil || len(r.Groups[i].Members) > len(best.Members) {
			best = &r.Groups[i]
		}
	}
	return best
}

// SharedRuns returns the runs of the largest group if it holds more than
// half of the sequences. Otherwise there is no majority and it returns
// nil.
func (r *Result) SharedRuns() []aln.GapRun {
	g := r.Largest()
	if g == nil || 2*len(g.Members) <= r.nseq {
		return nil
	}
	runs := make([]aln.GapRun, len(g.Signature))
	copy(runs, g.Signature)
	return runs
}

// Annotate writes the signature and group of every sequence.
func (r *Result) Annotate(al *aln.Alignment) error {
	return al.SetGapGroups(r.Signatures, r.Cluster)
}
