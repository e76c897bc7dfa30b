package umc

import (
	"fmt"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

// KeepFunc decides whether a cluster survives renumbering.
type KeepFunc func(cluster, size int) bool

func keepAll(int, int) bool { return true }

// MinSize keeps clusters with at least minLength members.
func MinSize(minLength int) KeepFunc {
	return func(_, size int) bool { return size >= minLength }
}

// Renumber resets every peak's cluster, then assigns dense IDs, in ascending
// old-ID order, to the non-empty clusters keep accepts. The returned index
// is rebuilt from the peaks in peak-ID order. Members of rejected clusters
// stay unassigned.
func Renumber(store *core.PeakStore, idx *MembershipIndex, keep KeepFunc) (*MembershipIndex, error) {
	store.ResetClusters()

	next := 0
	for c := 0; c < idx.Len(); c++ {
		size := idx.Size(c)
		if size == 0 || !keep(c, size) {
			continue
		}
		for id := range idx.Members(c) {
			p := store.At(id)
			if p == nil {
				return nil, fmt.Errorf("%w: cluster %d references nonexistent peak %d", ErrInvariant, c, id)
			}
			if p.ClusterID != core.Unassigned {
				return nil, fmt.Errorf("%w: peak %d is a member of clusters %d and %d", ErrInvariant, id, p.ClusterID, c)
			}
			p.ClusterID = next
		}
		next++
	}

	out := NewMembershipIndex()
	for next > out.Len() {
		out.NewCluster()
	}
	peaks := store.Peaks()
	for i := range peaks {
		if peaks[i].ClusterID != core.Unassigned {
			out.Add(peaks[i].ClusterID, peaks[i].ID)
		}
	}
	return out, nil
}

// RemoveShort drops clusters with fewer than minLength members and renumbers the rest.
func RemoveShort(store *core.PeakStore, idx *MembershipIndex, minLength int) (*MembershipIndex, error) {
	return Renumber(store, idx, MinSize(minLength))
}
