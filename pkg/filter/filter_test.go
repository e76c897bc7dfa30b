package filter

import (
	"testing"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

func TestCheck(t *testing.T) {
	cfg := Config{
		MinIntensity:  500,
		MaxFit:        0.15,
		MonoMassStart: 400,
		MonoMassEnd:   4000,
		LCMinScan:     100,
		LCMaxScan:     900,
		IMSMinScan:    10,
		IMSMaxScan:    200,
	}
	good := core.IsotopePeak{Abundance: 1e4, Fit: 0.05, MonoMass: 1500, LCScan: 300, IMSScan: 50}

	tests := []struct {
		name   string
		mutate func(*core.IsotopePeak)
		ims    bool
		want   Reason
	}{
		{"passes", func(p *core.IsotopePeak) {}, false, Accepted},
		{"passes ims", func(p *core.IsotopePeak) {}, true, Accepted},
		{"zero abundance", func(p *core.IsotopePeak) { p.Abundance = 0 }, false, NonPositiveAbundance},
		{"negative abundance", func(p *core.IsotopePeak) { p.Abundance = -3 }, false, NonPositiveAbundance},
		{"low intensity", func(p *core.IsotopePeak) { p.Abundance = 499 }, false, LowIntensity},
		{"intensity at threshold", func(p *core.IsotopePeak) { p.Abundance = 500 }, false, Accepted},
		{"poor fit", func(p *core.IsotopePeak) { p.Fit = 0.2 }, false, PoorFit},
		{"mass below range", func(p *core.IsotopePeak) { p.MonoMass = 399.9 }, false, OutsideMassRange},
		{"mass above range", func(p *core.IsotopePeak) { p.MonoMass = 4000.1 }, false, OutsideMassRange},
		{"LC scan out of range", func(p *core.IsotopePeak) { p.LCScan = 901 }, false, OutsideLCScanRange},
		{"IMS scan ignored for LC data", func(p *core.IsotopePeak) { p.IMSScan = 500 }, false, Accepted},
		{"IMS scan out of range", func(p *core.IsotopePeak) { p.IMSScan = 500 }, true, OutsideIMSScanRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := good
			tt.mutate(&p)
			if got := cfg.Check(&p, tt.ims); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZeroBoundsAreUnbounded(t *testing.T) {
	var cfg Config
	p := core.IsotopePeak{Abundance: 1, Fit: 0.99, MonoMass: 1e6, LCScan: 1e6, IMSScan: 1e6}
	if r := cfg.Check(&p, true); r != Accepted {
		t.Errorf("Check() with zero config = %v, want accepted", r)
	}

	p.Fit = 1.01
	if r := cfg.Check(&p, true); r != PoorFit {
		t.Errorf("Check() = %v, want %v (max fit defaults to 1)", r, PoorFit)
	}
}

func TestStats(t *testing.T) {
	var stats Stats
	for _, r := range []Reason{Accepted, NonPositiveAbundance, LowIntensity, Accepted} {
		stats.Record(r)
	}

	if stats.Seen != 4 || stats.Kept() != 2 || stats.Rejected() != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByReason[NonPositiveAbundance] != 1 || stats.ByReason[LowIntensity] != 1 {
		t.Errorf("ByReason = %v", stats.ByReason)
	}
}

func TestReasonString(t *testing.T) {
	if got := PoorFit.String(); got != "isotopic fit too high" {
		t.Errorf("String() = %q", got)
	}
	if got := Reason(99).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
}
