package core

// UMC (unique mass class) summarizes one cluster of isotope peaks believed to
// represent the same chemical species across scans.
type UMC struct {
	Index       int // Dense cluster index
	MemberCount int

	MinMonoMass     float64
	MaxMonoMass     float64
	AverageMonoMass float64
	MedianMonoMass  float64

	MaxAbundance float64
	SumAbundance float64

	ScanStart        int
	ScanStop         int
	ScanMaxAbundance int
	NET              float64 // Generic NET of ScanMaxAbundance

	// Class representative: the highest-abundance member
	ClassRepMZ     float64
	ClassRepCharge int
}
