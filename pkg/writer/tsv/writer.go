// Package tsv writes UMC features and the feature-to-peak map as tab separated text
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChrisMcGann/FeatureFinder/pkg/umc"
)

const (
	FeaturesSuffix = "_LCMSFeatures.txt"
	MappingSuffix  = "_LCMSFeatureToPeakMap.txt"
	LogSuffix      = "_FeatureFinder_Log.txt"

	isosSuffix = "_isos.csv"
)

// FeaturesHeader lists the feature table columns.
var FeaturesHeader = []string{
	"Feature_Index", "Monoisotopic_Mass", "Average_Mono_Mass", "UMC_MW_Min", "UMC_MW_Max",
	"Scan_Start", "Scan_End", "Scan", "UMC_Member_Count", "Max_Abundance", "Abundance",
	"Class_Rep_MZ", "Class_Rep_Charge",
}

// MappingHeader lists the feature-to-peak map columns.
var MappingHeader = []string{"Feature_Index", "Peak_Index"}

// Options control the written tables.
type Options struct {
	IndexOffset  int  // Added to every feature index
	PrintMembers bool // Append mono mass, scan and abundance of each member
}

// BaseName returns the output path prefix for an input file: the input name
// without its compression and _isos.csv (or other) extension, inside outDir.
func BaseName(input, outDir string) string {
	name := filepath.Base(input)
	for _, ext := range []string{".zst", ".gz", ".lz4"} {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	if strings.HasSuffix(strings.ToLower(name), isosSuffix) {
		name = name[:len(name)-len(isosSuffix)]
	} else {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return filepath.Join(outDir, name)
}

// WriteFeatures writes one row per UMC.
func WriteFeatures(w io.Writer, res *umc.Result, opts Options) error {
	bw := bufio.NewWriter(w)

	header := strings.Join(FeaturesHeader, "\t")
	if opts.PrintMembers {
		header += "\tData"
	}
	fmt.Fprintln(bw, header)

	for _, u := range res.UMCs {
		fmt.Fprintf(bw, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%d\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\t%d",
			u.Index+opts.IndexOffset, u.MedianMonoMass, u.AverageMonoMass, u.MinMonoMass, u.MaxMonoMass,
			u.ScanStart, u.ScanStop, u.ScanMaxAbundance, u.MemberCount,
			u.MaxAbundance, u.SumAbundance, u.ClassRepMZ, u.ClassRepCharge)
		if opts.PrintMembers {
			for id := range res.Index.Members(u.Index) {
				p := res.Store.At(id)
				fmt.Fprintf(bw, "\t%.4f\t%d\t%.4f", p.MonoMass, p.LCScan, p.Abundance)
			}
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// WriteMapping writes one row per clustered peak: the feature index and the
// peak's line number in the input file.
func WriteMapping(w io.Writer, res *umc.Result, opts Options) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(MappingHeader, "\t"))

	for c, id := range res.Index.All() {
		fmt.Fprintf(bw, "%d\t%d\n", c+opts.IndexOffset, res.Store.At(id).LineNumber)
	}
	return bw.Flush()
}

// WriteFiles writes <base>_LCMSFeatures.txt and <base>_LCMSFeatureToPeakMap.txt
// and returns their paths.
func WriteFiles(base string, res *umc.Result, opts Options) (features, mapping string, err error) {
	features = base + FeaturesSuffix
	mapping = base + MappingSuffix

	if err := writeFile(features, func(w io.Writer) error { return WriteFeatures(w, res, opts) }); err != nil {
		return "", "", fmt.Errorf("failed to write features: %w", err)
	}
	if err := writeFile(mapping, func(w io.Writer) error { return WriteMapping(w, res, opts) }); err != nil {
		return "", "", fmt.Errorf("failed to write feature map: %w", err)
	}
	return features, mapping, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
