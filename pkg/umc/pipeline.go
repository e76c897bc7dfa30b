package umc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

// Result is the outcome of a full clustering run. Store is the input store
// with final cluster tags; Index maps each surviving cluster to its peaks.
type Result struct {
	Store *core.PeakStore
	Index *MembershipIndex
	UMCs  []core.UMC

	ClustersBeforeFilter int
	Elapsed              time.Duration
}

// Run clusters the peaks in store, removes short clusters and computes the
// summaries. The store is modified in place and handed back in the result.
func Run(ctx context.Context, store *core.PeakStore, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid clustering options: %w", err)
	}

	start := time.Now()
	logger.Info("creating UMCs", "peaks", store.Len())

	idx, err := Cluster(ctx, store, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to cluster peaks: %w", err)
	}
	before := idx.Len()
	logger.Info("clusters created", "clusters", before, "elapsed", time.Since(start))

	idx, err = RemoveShort(store, idx, opts.MinLength)
	if err != nil {
		return nil, fmt.Errorf("failed to filter clusters: %w", err)
	}
	logger.Info("short clusters removed", "min_length", opts.MinLength, "remaining", idx.Len())

	umcs, err := Aggregate(store, idx, opts.MinLength)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cluster statistics: %w", err)
	}

	elapsed := time.Since(start)
	logger.Info("UMC creation complete", "umcs", len(umcs), "elapsed", elapsed)

	return &Result{
		Store:                store,
		Index:                idx,
		UMCs:                 umcs,
		ClustersBeforeFilter: before,
		Elapsed:              elapsed,
	}, nil
}
