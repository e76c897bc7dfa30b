// Package core provides the in-memory data model for isotope peaks and the
// unique mass classes (UMCs) built from them.
package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Unassigned marks a peak that does not belong to any cluster.
const Unassigned = -1

// IsotopePeak represents a single deconvoluted isotopic-envelope detection.
type IsotopePeak struct {
	// Identity
	ID         int // Stable identity: position in the PeakStore, assigned on Add
	LineNumber int // Line (or data row) in the source file
	ClusterID  int // Owning cluster, Unassigned until clustering

	// Separation coordinates
	LCScan    int
	IMSScan   int     // Only meaningful for ion-mobility data
	DriftTime float64 // Only meaningful for ion-mobility data

	// Measurements
	Charge              int
	Abundance           float64
	MZ                  float64
	Fit                 float64 // Isotopic fit score, lower is better
	AverageMass         float64
	MonoMass            float64 // Primary clustering key
	MostAbundantMass    float64
	MonoAbundance       float64
	MonoPlus2Abundance  float64
	OrigIntensity       float64
	TIAOrigIntensity    float64
	CumulativeDriftTime float64
	FWHM                float64
	SignalNoise         float64
}

// ValidationError represents an error found while validating input data.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a peak carries values the clustering engine can use.
func (p *IsotopePeak) Validate() error {
	var errs []string

	for name, v := range map[string]float64{
		"abundance":    p.Abundance,
		"m/z":          p.MZ,
		"fit":          p.Fit,
		"average mass": p.AverageMass,
		"mono mass":    p.MonoMass,
		"drift time":   p.DriftTime,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("%s is not finite", name))
		}
	}
	if p.MonoMass < 0 {
		errs = append(errs, "mono mass must be non-negative")
	}
	if p.Charge < 0 {
		errs = append(errs, "charge must be non-negative")
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return &ValidationError{
			Field:   fmt.Sprintf("Peak(line %d)", p.LineNumber),
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}

// String returns a short tab separated description of the peak.
func (p *IsotopePeak) String() string {
	return fmt.Sprintf("%d\t%d\t%.0f\t%.4f\t%.3f\t%.4f\t%.4f\t%.4f",
		p.LCScan, p.Charge, p.Abundance, p.MZ, p.Fit, p.AverageMass, p.MonoMass, p.MostAbundantMass)
}
