package umc

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

// cancelCheckInterval is the number of sweep iterations between context checks.
const cancelCheckInterval = 1024

// SortByMonoMass returns the peak IDs of store ordered by ascending
// monoisotopic mass, ties broken by peak ID.
func SortByMonoMass(store *core.PeakStore) []int {
	peaks := store.Peaks()
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(peaks[a].MonoMass, peaks[b].MonoMass)
	})
	return order
}

// Cluster assigns every peak in store to a cluster by single-linkage
// clustering and returns the densely renumbered membership index.
//
// Peaks are swept in ascending mono mass. Each peak is compared with the
// following peaks inside its mass window; a match pulls an unassigned
// candidate into the current cluster, or merges the current cluster into
// the candidate's cluster.
func Cluster(ctx context.Context, store *core.PeakStore, opts Options, logger *slog.Logger) (*MembershipIndex, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store.ResetClusters()
	minScan, maxScan := store.ScanRange()
	metric := NewMetric(opts, minScan, maxScan)
	order := SortByMonoMass(store)
	idx := NewMembershipIndex()

	n := len(order)
	logger.Debug("sweep started", "peaks", n, "scan_span", metric.ScanSpan())
	nextReport := 10
	for i, id := range order {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("clustering canceled at peak %d of %d: %w", i, n, err)
			}
		}
		if pct := 100 * i / n; pct >= nextReport {
			logger.Debug("clustering progress", "percent", pct, "clusters", idx.Len())
			nextReport = pct - pct%10 + 10
		}

		current := store.At(id)
		if current.ClusterID == core.Unassigned {
			current.ClusterID = idx.NewCluster()
			idx.Add(current.ClusterID, id)
		}

		maxMass := current.MonoMass + metric.Window(current.MonoMass)
		for _, candID := range order[i+1:] {
			candidate := store.At(candID)
			if candidate.MonoMass >= maxMass {
				break
			}
			if candidate.ClusterID == current.ClusterID {
				continue
			}
			if opts.UseCharge && candidate.Charge != current.Charge {
				continue
			}
			if metric.Distance(current, candidate) >= opts.MaxDistance {
				continue
			}

			if candidate.ClusterID == core.Unassigned {
				candidate.ClusterID = current.ClusterID
				idx.Add(current.ClusterID, candID)
				continue
			}

			dst := candidate.ClusterID
			for _, moved := range idx.Merge(current.ClusterID, dst) {
				store.At(moved).ClusterID = dst
			}
		}
	}

	logger.Info("sweep complete", "peaks", n, "allocated_clusters", idx.Len(), "clusters", idx.NonEmpty())
	return Renumber(store, idx, keepAll)
}
