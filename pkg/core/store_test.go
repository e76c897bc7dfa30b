package core

import (
	"math"
	"testing"
)

func TestPeakStoreAdd(t *testing.T) {
	s := NewPeakStore(2)
	for i, mass := range []float64{1200.5, 800.25, 950} {
		id := s.Add(IsotopePeak{MonoMass: mass, LCScan: 10 * (i + 1), ClusterID: 7})
		if id != i {
			t.Errorf("Add() id = %d, want %d", id, i)
		}
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for i, p := range s.Peaks() {
		if p.ID != i {
			t.Errorf("peak %d has ID %d", i, p.ID)
		}
		if p.ClusterID != Unassigned {
			t.Errorf("peak %d ClusterID = %d, want %d", i, p.ClusterID, Unassigned)
		}
	}
	if s.At(3) != nil || s.At(-1) != nil {
		t.Error("At() out of range should return nil")
	}
}

func TestPeakStoreRanges(t *testing.T) {
	s := NewPeakStore(0)
	if lo, hi := s.ScanRange(); lo != 0 || hi != 0 {
		t.Errorf("ScanRange() on empty store = (%d, %d)", lo, hi)
	}

	s.Add(IsotopePeak{MonoMass: 1200.5, LCScan: 40})
	s.Add(IsotopePeak{MonoMass: 800.25, LCScan: 12})
	s.Add(IsotopePeak{MonoMass: 950, LCScan: 33})

	if lo, hi := s.ScanRange(); lo != 12 || hi != 40 {
		t.Errorf("ScanRange() = (%d, %d), want (12, 40)", lo, hi)
	}
	if lo, hi := s.MassRange(); lo != 800.25 || hi != 1200.5 {
		t.Errorf("MassRange() = (%v, %v), want (800.25, 1200.5)", lo, hi)
	}
}

func TestPeakStoreResetClusters(t *testing.T) {
	s := NewPeakStore(2)
	s.Add(IsotopePeak{})
	s.Add(IsotopePeak{})
	s.At(0).ClusterID = 3
	s.At(1).ClusterID = 4

	s.ResetClusters()
	for _, p := range s.Peaks() {
		if p.ClusterID != Unassigned {
			t.Errorf("ClusterID = %d after reset", p.ClusterID)
		}
	}
}

func TestIsotopePeakValidate(t *testing.T) {
	tests := []struct {
		name    string
		peak    IsotopePeak
		wantErr bool
	}{
		{"valid", IsotopePeak{MonoMass: 1000, AverageMass: 1000.6, Abundance: 5e4, Charge: 2}, false},
		{"negative mass", IsotopePeak{MonoMass: -1}, true},
		{"negative charge", IsotopePeak{MonoMass: 1000, Charge: -2}, true},
		{"infinite abundance", IsotopePeak{MonoMass: 1000, Abundance: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.peak.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*ValidationError); !ok {
					t.Errorf("Validate() error type = %T, want *ValidationError", err)
				}
			}
		})
	}
}
