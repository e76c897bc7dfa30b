// Package filter provides the data filters applied to isotope peaks as they are loaded
package filter

import (
	"math"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

// Config holds filtering configuration. Upper bounds of zero are unbounded.
type Config struct {
	MinIntensity  float64 // Keep only peaks with at least this abundance
	MaxFit        float64 // Keep only peaks with fit at or below this score (0 = 1)
	MonoMassStart float64
	MonoMassEnd   float64
	LCMinScan     int
	LCMaxScan     int
	IMSMinScan    int // Only applied to ion-mobility data
	IMSMaxScan    int
}

// Reason identifies the first filter a peak failed.
type Reason int

const (
	Accepted Reason = iota
	NonPositiveAbundance
	LowIntensity
	PoorFit
	OutsideMassRange
	OutsideLCScanRange
	OutsideIMSScanRange
)

var reasonNames = [...]string{
	"accepted",
	"non-positive abundance",
	"below minimum intensity",
	"isotopic fit too high",
	"outside mono mass range",
	"outside LC scan range",
	"outside IMS scan range",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// Stats counts the peaks seen by a filter, by outcome.
type Stats struct {
	Seen     int
	ByReason [len(reasonNames)]int
}

// Record adds one outcome.
func (s *Stats) Record(r Reason) {
	s.Seen++
	s.ByReason[r]++
}

// Kept returns the number of accepted peaks.
func (s Stats) Kept() int {
	return s.ByReason[Accepted]
}

// Rejected returns the number of peaks that did not pass.
func (s Stats) Rejected() int {
	return s.Seen - s.Kept()
}

// Check returns the first filter the peak fails, or Accepted.
func (c *Config) Check(p *core.IsotopePeak, ims bool) Reason {
	switch {
	case !(p.Abundance > 0):
		return NonPositiveAbundance
	case p.Abundance < c.MinIntensity:
		return LowIntensity
	case p.Fit > c.maxFit():
		return PoorFit
	case !within(p.MonoMass, c.MonoMassStart, upper(c.MonoMassEnd)):
		return OutsideMassRange
	case !within(float64(p.LCScan), float64(c.LCMinScan), upper(float64(c.LCMaxScan))):
		return OutsideLCScanRange
	case ims && !within(float64(p.IMSScan), float64(c.IMSMinScan), upper(float64(c.IMSMaxScan))):
		return OutsideIMSScanRange
	}
	return Accepted
}

func (c *Config) maxFit() float64 {
	if c.MaxFit == 0 {
		return 1
	}
	return c.MaxFit
}

func upper(bound float64) float64 {
	if bound == 0 {
		return math.Inf(1)
	}
	return bound
}

func within(v, lo, hi float64) bool {
	return lo <= v && v <= hi
}
