package core

import "math"

// PeakStore is an ordered, mutable collection of isotope peaks. A peak's ID is
// its position in the store and never changes once the peak is added.
type PeakStore struct {
	peaks []IsotopePeak
	IMS   bool // Peaks carry ion-mobility coordinates
}

// NewPeakStore creates an empty store with room for capacity peaks
func NewPeakStore(capacity int) *PeakStore {
	return &PeakStore{
		peaks: make([]IsotopePeak, 0, capacity),
	}
}

// Add appends a copy of p, assigns its ID and resets its cluster. It returns the new ID.
func (s *PeakStore) Add(p IsotopePeak) int {
	p.ID = len(s.peaks)
	p.ClusterID = Unassigned
	s.peaks = append(s.peaks, p)
	return p.ID
}

// Len returns the number of peaks in the store.
func (s *PeakStore) Len() int {
	return len(s.peaks)
}

// At returns the peak with the given ID, or nil if the ID is out of range.
func (s *PeakStore) At(id int) *IsotopePeak {
	if id < 0 || id >= len(s.peaks) {
		return nil
	}
	return &s.peaks[id]
}

// Peaks exposes the underlying slice, indexed by peak ID.
func (s *PeakStore) Peaks() []IsotopePeak {
	return s.peaks
}

// ResetClusters marks every peak as unassigned.
func (s *PeakStore) ResetClusters() {
	for i := range s.peaks {
		s.peaks[i].ClusterID = Unassigned
	}
}

// ScanRange returns the minimum and maximum LC scan over all peaks.
// An empty store yields (0, 0).
func (s *PeakStore) ScanRange() (minScan, maxScan int) {
	if len(s.peaks) == 0 {
		return 0, 0
	}
	minScan, maxScan = math.MaxInt, math.MinInt
	for i := range s.peaks {
		scan := s.peaks[i].LCScan
		if scan < minScan {
			minScan = scan
		}
		if scan > maxScan {
			maxScan = scan
		}
	}
	return minScan, maxScan
}

// MassRange returns the minimum and maximum monoisotopic mass over all peaks.
// An empty store yields (0, 0).
func (s *PeakStore) MassRange() (minMass, maxMass float64) {
	if len(s.peaks) == 0 {
		return 0, 0
	}
	minMass, maxMass = math.Inf(1), math.Inf(-1)
	for i := range s.peaks {
		m := s.peaks[i].MonoMass
		minMass = math.Min(minMass, m)
		maxMass = math.Max(maxMass, m)
	}
	return minMass, maxMass
}
