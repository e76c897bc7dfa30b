package umc

import (
	"fmt"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

// Aggregate builds one UMC summary per cluster of idx, in ascending cluster order.
// Every cluster must have at least minLength members and every member must be
// tagged with its cluster; anything else is reported as an invariant violation.
func Aggregate(store *core.PeakStore, idx *MembershipIndex, minLength int) ([]core.UMC, error) {
	minScan, maxScan := store.ScanRange()
	metric := NewMetric(Options{}, minScan, maxScan)

	umcs := make([]core.UMC, 0, idx.Len())
	var masses []float64
	for c := 0; c < idx.Len(); c++ {
		size := idx.Size(c)
		if size == 0 {
			return nil, fmt.Errorf("%w: cluster %d has no members", ErrInvariant, c)
		}
		if size < minLength {
			return nil, fmt.Errorf("%w: cluster %d below filter threshold found during aggregation (%d < %d)",
				ErrInvariant, c, size, minLength)
		}

		u := core.UMC{Index: c, MemberCount: size}
		masses = masses[:0]
		var sumMass float64
		first := true
		for id := range idx.Members(c) {
			p := store.At(id)
			if p == nil {
				return nil, fmt.Errorf("%w: cluster %d references nonexistent peak %d", ErrInvariant, c, id)
			}
			if p.ClusterID != c {
				return nil, fmt.Errorf("%w: peak %d listed in cluster %d is tagged %d", ErrInvariant, id, c, p.ClusterID)
			}

			if first {
				u.ScanStart, u.ScanStop = p.LCScan, p.LCScan
				u.MinMonoMass, u.MaxMonoMass = p.MonoMass, p.MonoMass
				u.MaxAbundance = p.Abundance
				u.ScanMaxAbundance = p.LCScan
				u.ClassRepMZ = p.MZ
				u.ClassRepCharge = p.Charge
				first = false
			} else {
				u.ScanStart = min(u.ScanStart, p.LCScan)
				u.ScanStop = max(u.ScanStop, p.LCScan)
				u.MinMonoMass = min(u.MinMonoMass, p.MonoMass)
				u.MaxMonoMass = max(u.MaxMonoMass, p.MonoMass)
				if p.Abundance > u.MaxAbundance {
					u.MaxAbundance = p.Abundance
					u.ScanMaxAbundance = p.LCScan
					u.ClassRepMZ = p.MZ
					u.ClassRepCharge = p.Charge
				}
			}
			u.SumAbundance += p.Abundance
			sumMass += p.MonoMass
			masses = append(masses, p.MonoMass)
		}

		u.AverageMonoMass = sumMass / float64(size)
		u.MedianMonoMass = core.Median(masses)
		u.NET = metric.NET(u.ScanMaxAbundance)
		umcs = append(umcs, u)
	}
	return umcs, nil
}
