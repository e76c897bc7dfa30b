// Package umc groups isotope peaks into unique mass classes (UMCs) using
// single-linkage clustering over a sorted mass sweep.
//
// The pipeline is linear: Cluster assigns every peak to a cluster,
// RemoveShort drops clusters below the minimum length and renumbers the
// survivors densely, and Aggregate computes the per-cluster summaries.
// Run chains all three.
package umc

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvariant is wrapped by every error reporting an internal consistency failure.
var ErrInvariant = errors.New("umc invariant violated")

// Options configure the distance metric and the clustering passes.
type Options struct {
	// Per-dimension weights. A zero weight disables the dimension.
	MonoMassWeight     float64
	AvgMassWeight      float64
	LogAbundanceWeight float64
	NETWeight          float64
	ScanWeight         float64
	FitWeight          float64
	DriftTimeWeight    float64

	// Hard tolerance gates
	MonoMassConstraint      float64
	MonoMassConstraintIsPPM bool
	AvgMassConstraint       float64
	AvgMassConstraintIsPPM  bool

	MaxDistance float64 // Pairs at or above this distance never link
	UseNET      bool    // Normalize scan differences by the scan span
	UseCharge   bool    // Only link peaks with identical charge
	MinLength   int     // Minimum members for a cluster to survive filtering
}

// DefaultOptions returns the standard LC-MS clustering settings.
func DefaultOptions() Options {
	return Options{
		MonoMassWeight:          0.01,
		AvgMassWeight:           0.01,
		LogAbundanceWeight:      0.1,
		NETWeight:               0.01,
		ScanWeight:              0,
		FitWeight:               0.01,
		DriftTimeWeight:         0.1,
		MonoMassConstraint:      50,
		MonoMassConstraintIsPPM: true,
		AvgMassConstraint:       10,
		AvgMassConstraintIsPPM:  true,
		MaxDistance:             0.1,
		UseNET:                  true,
		UseCharge:               false,
		MinLength:               2,
	}
}

// Validate reports options the engine cannot run with.
func (o Options) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"mono mass weight", o.MonoMassWeight},
		{"avg mass weight", o.AvgMassWeight},
		{"log abundance weight", o.LogAbundanceWeight},
		{"NET weight", o.NETWeight},
		{"scan weight", o.ScanWeight},
		{"fit weight", o.FitWeight},
		{"drift time weight", o.DriftTimeWeight},
		{"mono mass constraint", o.MonoMassConstraint},
		{"avg mass constraint", o.AvgMassConstraint},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("invalid %s: %v", f.name, f.v)
		}
	}
	if !(o.MaxDistance > 0) {
		return fmt.Errorf("max distance must be positive, got %v", o.MaxDistance)
	}
	if o.MinLength < 1 {
		return fmt.Errorf("minimum feature length must be at least 1, got %d", o.MinLength)
	}
	return nil
}
