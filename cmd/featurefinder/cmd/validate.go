package cmd

import (
	"fmt"

	"github.com/ChrisMcGann/FeatureFinder/pkg/config"
	"github.com/ChrisMcGann/FeatureFinder/pkg/filter"
	"github.com/ChrisMcGann/FeatureFinder/pkg/reader"
	"github.com/spf13/cobra"
)

var validateParamFile string

func init() {
	validateCmd.Flags().StringVarP(&validateParamFile, "param", "p", "", "Apply the data filters of this parameter file")
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate input file format and contents",
	Long: `Validate that an _isos.csv or .pek file is properly formatted and report its
peak count, scan and mass ranges. The first malformed line is reported with its
line number. Without --param only peaks with non-positive abundance or an
isotopic fit above 1 are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	var flt *filter.Config
	if validateParamFile != "" {
		settings, err := config.Load(validateParamFile)
		if err != nil {
			return err
		}
		settings.Normalize()
		flt = settings.Filter()
	}

	ds, err := reader.Load(path, flt)
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Format: %s\n", ds.Format)
	if ds.Format == reader.FormatPek {
		fmt.Printf("WIFF source: %t\n", ds.Wiff)
		fmt.Printf("Labeled (Imono, I+2): %t\n", ds.Labeled)
	}
	fmt.Printf("Ion mobility: %t\n", ds.Store.IMS)
	fmt.Printf("Peaks read: %d\n", ds.Filter.Seen)
	fmt.Printf("Peaks kept: %d\n", ds.Filter.Kept())
	for r := filter.Accepted + 1; int(r) < len(ds.Filter.ByReason); r++ {
		if n := ds.Filter.ByReason[r]; n > 0 {
			fmt.Printf("  Rejected (%s): %d\n", r, n)
		}
	}

	if ds.Store.Len() > 0 {
		minScan, maxScan := ds.Store.ScanRange()
		minMass, maxMass := ds.Store.MassRange()
		fmt.Printf("LC scan range: %d - %d\n", minScan, maxScan)
		fmt.Printf("Mono mass range: %.4f - %.4f\n", minMass, maxMass)
	}
	return nil
}
