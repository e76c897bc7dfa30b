package cmd

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
	"github.com/ChrisMcGann/FeatureFinder/pkg/writer/tsv"
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a feature table",
	Long:  `Print summary statistics about an _LCMSFeatures.txt file including feature count, member counts, mass and scan ranges, and charge states.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open feature file: %w", err)
	}
	defer f.Close()

	umcs, err := tsv.ReadFeatures(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Features: %d\n", len(umcs))
	if len(umcs) == 0 {
		return nil
	}

	s := summarize(umcs)
	fmt.Printf("Member peaks: %d (min %d, max %d, mean %.1f per feature)\n",
		s.members, s.minMembers, s.maxMembers, float64(s.members)/float64(len(umcs)))
	fmt.Printf("Mono mass range: %.4f - %.4f\n", s.minMass, s.maxMass)
	fmt.Printf("Scan range: %d - %d\n", s.minScan, s.maxScan)
	fmt.Printf("Total abundance: %.4g\n", s.abundance)
	fmt.Printf("Charge states:\n")
	for charge := s.minCharge; charge <= s.maxCharge; charge++ {
		if n := s.charges[charge]; n > 0 {
			fmt.Printf("  %d: %d\n", charge, n)
		}
	}
	return nil
}

type featureSummary struct {
	members, minMembers, maxMembers int
	minMass, maxMass                float64
	minScan, maxScan                int
	abundance                       float64
	charges                         map[int]int
	minCharge, maxCharge            int
}

func summarize(umcs []core.UMC) featureSummary {
	first := umcs[0]
	s := featureSummary{
		minMembers: first.MemberCount, maxMembers: first.MemberCount,
		minMass: first.MinMonoMass, maxMass: first.MaxMonoMass,
		minScan: first.ScanStart, maxScan: first.ScanStop,
		minCharge: first.ClassRepCharge, maxCharge: first.ClassRepCharge,
		charges: make(map[int]int),
	}
	for _, u := range umcs {
		s.members += u.MemberCount
		s.minMembers = min(s.minMembers, u.MemberCount)
		s.maxMembers = max(s.maxMembers, u.MemberCount)
		s.minMass = min(s.minMass, u.MinMonoMass)
		s.maxMass = max(s.maxMass, u.MaxMonoMass)
		s.minScan = min(s.minScan, u.ScanStart)
		s.maxScan = max(s.maxScan, u.ScanStop)
		s.minCharge = min(s.minCharge, u.ClassRepCharge)
		s.maxCharge = max(s.maxCharge, u.ClassRepCharge)
		s.abundance += u.SumAbundance
		s.charges[u.ClassRepCharge]++
	}
	return s
}
