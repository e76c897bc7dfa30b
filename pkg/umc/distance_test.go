package umc

import (
	"math"
	"testing"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testOptions enables only the mono mass dimension with a 10 ppm gate.
func testOptions() Options {
	return Options{
		MonoMassWeight:          1,
		MonoMassConstraint:      10,
		MonoMassConstraintIsPPM: true,
		AvgMassConstraint:       10,
		AvgMassConstraintIsPPM:  true,
		MaxDistance:             0.1,
		MinLength:               1,
	}
}

func pk(mono float64, scan int) core.IsotopePeak {
	return core.IsotopePeak{
		LCScan:      scan,
		Charge:      2,
		Abundance:   1e5,
		MZ:          mono/2 + 1.00727,
		Fit:         0.05,
		AverageMass: mono,
		MonoMass:    mono,
	}
}

func TestDistanceMonoMassGate(t *testing.T) {
	m := NewMetric(testOptions(), 0, 100)
	a, b := pk(1000, 10), pk(1000.02, 10)
	b.AverageMass = a.AverageMass

	// 20 ppm apart: rejected even though every other dimension matches
	assert.True(t, math.IsInf(m.Distance(&a, &b), 1))

	b.MonoMass = 1000.005
	assert.InDelta(t, 0.005, m.Distance(&a, &b), 1e-9)
}

func TestDistanceAverageMassGate(t *testing.T) {
	opts := testOptions()
	opts.AvgMassWeight = 1
	opts.AvgMassConstraint = 0.5
	opts.AvgMassConstraintIsPPM = false
	m := NewMetric(opts, 0, 100)

	a, b := pk(1000, 10), pk(1000, 10)
	b.AverageMass = 1000.6
	assert.Equal(t, NoMatch, m.Distance(&a, &b))

	b.AverageMass = 1000.05
	assert.InDelta(t, 0.05, m.Distance(&a, &b), 1e-9)
}

func TestDistanceAbsoluteMonoGate(t *testing.T) {
	opts := testOptions()
	opts.MonoMassConstraintIsPPM = false
	opts.MonoMassConstraint = 1
	m := NewMetric(opts, 0, 100)

	a, b := pk(1000, 10), pk(1000.5, 10)
	b.AverageMass = a.AverageMass
	assert.InDelta(t, 0.5, m.Distance(&a, &b), 1e-9)

	b.MonoMass = 1001.5
	assert.Equal(t, NoMatch, m.Distance(&a, &b))
}

func TestDistancePPMGateSkippedForZeroMass(t *testing.T) {
	m := NewMetric(testOptions(), 0, 100)

	a, b := pk(0, 10), pk(50, 10)
	a.AverageMass, b.AverageMass = 0, 0
	assert.InDelta(t, 50, m.Distance(&a, &b), 1e-9)
}

func TestDistanceScanTerm(t *testing.T) {
	tests := []struct {
		name   string
		useNET bool
		want   float64
	}{
		{"NET normalized by scan span", true, 0.5},
		{"raw scan difference", false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.MonoMassWeight = 0
			opts.UseNET = tt.useNET
			opts.NETWeight = 1
			opts.ScanWeight = 0.1
			m := NewMetric(opts, 0, 100)

			a, b := pk(1000, 10), pk(1000, 60)
			assert.InDelta(t, tt.want, m.Distance(&a, &b), 1e-9)
		})
	}
}

func TestDistanceEuclideanNorm(t *testing.T) {
	opts := testOptions()
	opts.MonoMassWeight = 0
	opts.FitWeight = 1
	opts.DriftTimeWeight = 1
	m := NewMetric(opts, 0, 100)

	a, b := pk(1000, 10), pk(1000, 10)
	b.Fit = a.Fit + 0.3
	b.DriftTime = a.DriftTime + 0.4
	assert.InDelta(t, 0.5, m.Distance(&a, &b), 1e-9)
}

func TestDistanceLogAbundance(t *testing.T) {
	opts := testOptions()
	opts.MonoMassWeight = 0
	opts.LogAbundanceWeight = 0.1
	m := NewMetric(opts, 0, 100)

	a, b := pk(1000, 10), pk(1000, 10)
	b.Abundance = a.Abundance * 100
	assert.InDelta(t, 0.2, m.Distance(&a, &b), 1e-9)

	b.Abundance = 0
	d := m.Distance(&a, &b)
	assert.False(t, math.IsNaN(d))
	assert.False(t, math.IsInf(d, 0))
	assert.InDelta(t, logAbundancePenalty*0.1, d, 1e-9)
}

func TestDistanceZeroWeightDisablesDimension(t *testing.T) {
	opts := testOptions()
	opts.MonoMassWeight = 0
	m := NewMetric(opts, 0, 100)

	a, b := pk(1000, 10), pk(1000, 90)
	b.Fit = 0.9
	b.DriftTime = 25
	b.Abundance = 1
	assert.Equal(t, 0.0, m.Distance(&a, &b))
}

func TestMetricDegenerateScanSpan(t *testing.T) {
	m := NewMetric(testOptions(), 42, 42)
	require.Equal(t, 1.0, m.ScanSpan())
	assert.Equal(t, 0.0, m.NET(42))

	m = NewMetric(testOptions(), 100, 300)
	assert.InDelta(t, 0.5, m.NET(200), 1e-12)
}

func TestMetricWindow(t *testing.T) {
	opts := testOptions()
	m := NewMetric(opts, 0, 1)
	assert.InDelta(t, 0.01, m.Window(1000), 1e-12)

	opts.MonoMassConstraintIsPPM = false
	opts.MonoMassConstraint = 0.5
	m = NewMetric(opts, 0, 1)
	assert.Equal(t, 0.5, m.Window(1000))
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"negative weight", func(o *Options) { o.FitWeight = -1 }},
		{"NaN constraint", func(o *Options) { o.MonoMassConstraint = math.NaN() }},
		{"zero max distance", func(o *Options) { o.MaxDistance = 0 }},
		{"zero min length", func(o *Options) { o.MinLength = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			assert.Error(t, opts.Validate())
		})
	}
}
