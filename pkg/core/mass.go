package core

import (
	"math"
	"sort"
)

// PPM is the parts-per-million scale factor
const PPM = 1e6

// PPMToDa converts a tolerance in ppm at the given mass into Daltons.
func PPMToDa(ppm, mass float64) float64 {
	return ppm * mass / PPM
}

// DaToPPM expresses a mass difference in ppm relative to a reference mass.
// A non-positive reference mass yields 0.
func DaToPPM(delta, reference float64) float64 {
	if reference <= 0 {
		return 0
	}
	return delta / reference * PPM
}

// Median returns the median of values. The slice is sorted in place.
// An even count yields the mean of the two central values; an empty slice yields NaN.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return 0.5 * (values[n/2-1] + values[n/2])
}
