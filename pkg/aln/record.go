// 3 Mar 2025

package aln

import "sync"

// Record is one aligned sequence plus the annotations the engines write.
// Each annotation has one writer and is written once. Until then, the
// getter's second return value is false.
type Record struct {
	id      string
	aligned []byte

	runOnce sync.Once
	runs    []GapRun

	frame      int
	frameSet   bool
	frameshift bool
	shiftSet   bool
	sig        Signature
	sigSet     bool
	cluster    int
	clusterSet bool
}

func newRecord(id string, aligned []byte) *Record {
	return &Record{id: id, aligned: aligned}
}

// ID returns the sequence identifier.
func (r *Record) ID() string { return r.id }

// Aligned returns the aligned sequence. Do not write to it.
func (r *Record) Aligned() []byte { return r.aligned }

// Frame is the selected frame offset.
func (r *Record) Frame() (int, bool) { return r.frame, r.frameSet }

// Frameshift is the frameshift flag.
func (r *Record) Frameshift() (bool, bool) { return r.frameshift, r.shiftSet }

// Signature is the gap signature used for clustering.
func (r *Record) Signature() (Signature, bool) { return r.sig, r.sigSet }

// Cluster is the gap group the sequence landed in.
func (r *Record) Cluster() (int, bool) { return r.cluster, r.clusterSet }

// SetFrames writes the frame offset to every record. All or nothing.
func (al *Alignment) SetFrames(f int) error {
	if f < 0 || f > 2 {
		return &OutOfBoundsError{What: "frame", Index: f, Len: 3}
	}
	for _, r := range al.recs {
		if r.frameSet {
			return ErrAnnotated
		}
	}
	for _, r := range al.recs {
		r.frame, r.frameSet = f, true
	}
	return nil
}

// SetFrameshifts writes one flag per record, in input order.
func (al *Alignment) SetFrameshifts(flags []bool) error {
	if len(flags) != len(al.recs) {
		return &OutOfBoundsError{What: "sequence", Index: len(flags), Len: len(al.recs)}
	}
	for _, r := range al.recs {
		if r.shiftSet {
			return ErrAnnotated
		}
	}
	for i, r := range al.recs {
		r.frameshift, r.shiftSet = flags[i], true
	}
	return nil
}

// SetGapGroups writes the signature and cluster of each record.
func (al *Alignment) SetGapGroups(sigs []Signature, clusters []int) error {
	if len(sigs) != len(al.recs) || len(clusters) != len(al.recs) {
		return &OutOfBoundsError{What: "sequence", Index: len(sigs), Len: len(al.recs)}
	}
	for _, r := range al.recs {
		if r.sigSet || r.clusterSet {
			return ErrAnnotated
		}
	}
	for i, r := range al.recs {
		r.sig, r.sigSet = sigs[i], true
		r.cluster, r.clusterSet = clusters[i], true
	}
	return nil
}

// Unannotated returns ErrAnnotated if any record already carries any
// annotation. Callers writing several annotations check this first so
// that a failure leaves nothing half written.
func (al *Alignment) Unannotated() error {
	for _, r := range al.recs {
		if r.frameSet || r.shiftSet || r.sigSet || r.clusterSet {
			return ErrAnnotated
		}
	}
	return nil
}
