package umc

import (
	"math"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

// NoMatch is the distance returned when a tolerance gate rejects a pair.
var NoMatch = math.Inf(1)

// logAbundancePenalty replaces the log10 abundance residual when either
// abundance is non-positive.
const logAbundancePenalty = 1e3

// Metric computes the weighted distance between two peaks.
type Metric struct {
	opts     Options
	minScan  int
	scanSpan float64
}

// NewMetric creates a metric for peaks observed between minScan and maxScan.
// A degenerate scan range is widened to a span of 1.
func NewMetric(opts Options, minScan, maxScan int) *Metric {
	span := float64(maxScan - minScan)
	if span < 1 {
		span = 1
	}
	return &Metric{opts: opts, minScan: minScan, scanSpan: span}
}

// ScanSpan returns the scan span used for NET normalization.
func (m *Metric) ScanSpan() float64 {
	return m.scanSpan
}

// Window returns the monoisotopic mass tolerance, in Daltons, around mass.
func (m *Metric) Window(mass float64) float64 {
	if m.opts.MonoMassConstraintIsPPM {
		return core.PPMToDa(m.opts.MonoMassConstraint, mass)
	}
	return m.opts.MonoMassConstraint
}

// Distance returns the weighted Euclidean distance between a and b, or
// NoMatch when the mono or average mass gate fails. Gates are measured
// relative to a.
func (m *Metric) Distance(a, b *core.IsotopePeak) float64 {
	o := &m.opts

	dMono := a.MonoMass - b.MonoMass
	if !withinGate(dMono, a.MonoMass, o.MonoMassWeight, o.MonoMassConstraint, o.MonoMassConstraintIsPPM) {
		return NoMatch
	}
	dAvg := a.AverageMass - b.AverageMass
	if !withinGate(dAvg, a.AverageMass, o.AvgMassWeight, o.AvgMassConstraint, o.AvgMassConstraintIsPPM) {
		return NoMatch
	}

	dLogAbundance := logAbundancePenalty
	if a.Abundance > 0 && b.Abundance > 0 {
		dLogAbundance = math.Log10(a.Abundance) - math.Log10(b.Abundance)
	}

	dScan := float64(a.LCScan - b.LCScan)
	var scanTerm float64
	if o.UseNET {
		scanTerm = dScan / m.scanSpan * o.NETWeight
	} else {
		scanTerm = dScan * o.ScanWeight
	}

	var sum float64
	for _, v := range [...]float64{
		dMono * o.MonoMassWeight,
		dAvg * o.AvgMassWeight,
		dLogAbundance * o.LogAbundanceWeight,
		scanTerm,
		(a.Fit - b.Fit) * o.FitWeight,
		(a.DriftTime - b.DriftTime) * o.DriftTimeWeight,
	} {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// NET returns the normalized elution time of scan within the metric's scan range.
func (m *Metric) NET(scan int) float64 {
	return float64(scan-m.minScan) / m.scanSpan
}

// withinGate applies one tolerance gate. In ppm mode the gate is skipped
// when the reference mass is not positive.
func withinGate(delta, reference, weight, constraint float64, ppm bool) bool {
	if ppm {
		if reference <= 0 {
			return true
		}
		return math.Abs(core.DaToPPM(delta*weight, reference)) <= constraint
	}
	return math.Abs(delta)*weight <= constraint
}
