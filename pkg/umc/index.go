package umc

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// MembershipIndex maps cluster IDs to the set of peak IDs they own.
// Cluster IDs are allocated sequentially; a merged-away cluster stays
// allocated with no members.
type MembershipIndex struct {
	clusters []*roaring.Bitmap
}

// NewMembershipIndex creates an empty index.
func NewMembershipIndex() *MembershipIndex {
	return &MembershipIndex{}
}

// NewCluster allocates an empty cluster and returns its ID.
func (x *MembershipIndex) NewCluster() int {
	x.clusters = append(x.clusters, roaring.New())
	return len(x.clusters) - 1
}

// Add records peak as a member of cluster, allocating cluster IDs up to it if needed.
func (x *MembershipIndex) Add(cluster, peak int) {
	for cluster >= len(x.clusters) {
		x.NewCluster()
	}
	x.clusters[cluster].Add(uint32(peak))
}

// Merge moves every member of src into dst and returns the moved peak IDs
// in ascending order.
func (x *MembershipIndex) Merge(src, dst int) []int {
	from := x.clusters[src]
	moved := make([]int, 0, from.GetCardinality())
	it := from.Iterator()
	for it.HasNext() {
		moved = append(moved, int(it.Next()))
	}
	x.clusters[dst].Or(from)
	from.Clear()
	return moved
}

// Len returns the number of allocated cluster IDs, including empty ones.
func (x *MembershipIndex) Len() int {
	return len(x.clusters)
}

// Size returns the number of members of cluster.
func (x *MembershipIndex) Size(cluster int) int {
	if cluster < 0 || cluster >= len(x.clusters) {
		return 0
	}
	return int(x.clusters[cluster].GetCardinality())
}

// NonEmpty returns the number of clusters with at least one member.
func (x *MembershipIndex) NonEmpty() int {
	n := 0
	for _, rb := range x.clusters {
		if !rb.IsEmpty() {
			n++
		}
	}
	return n
}

// Members iterates the peak IDs of cluster in ascending order.
func (x *MembershipIndex) Members(cluster int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if cluster < 0 || cluster >= len(x.clusters) {
			return
		}
		it := x.clusters[cluster].Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// All iterates (cluster, peak) pairs in ascending cluster then peak order.
func (x *MembershipIndex) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for c := range x.clusters {
			for p := range x.Members(c) {
				if !yield(c, p) {
					return
				}
			}
		}
	}
}
