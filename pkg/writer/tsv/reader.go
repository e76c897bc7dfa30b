package tsv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

// ReadFeatures parses a features table written by WriteFeatures. Feature
// indexes are returned as written, including any offset. Member data
// columns are ignored.
func ReadFeatures(r io.Reader) ([]core.UMC, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("missing header")
	}
	header := strings.Split(strings.TrimSpace(scanner.Text()), "\t")
	if len(header) < len(FeaturesHeader) {
		return nil, fmt.Errorf("line 1: expected %d columns, found %d", len(FeaturesHeader), len(header))
	}
	for i, name := range FeaturesHeader {
		if header[i] != name {
			return nil, fmt.Errorf("line 1: column %d is %q, expected %q", i+1, header[i], name)
		}
	}

	var umcs []core.UMC
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		u, err := parseFeature(strings.Split(line, "\t"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		umcs = append(umcs, u)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return umcs, nil
}

func parseFeature(tokens []string) (core.UMC, error) {
	var u core.UMC
	if len(tokens) < len(FeaturesHeader) {
		return u, fmt.Errorf("expected %d columns, found %d", len(FeaturesHeader), len(tokens))
	}

	ints := []struct {
		col int
		dst *int
	}{
		{0, &u.Index}, {5, &u.ScanStart}, {6, &u.ScanStop}, {7, &u.ScanMaxAbundance},
		{8, &u.MemberCount}, {12, &u.ClassRepCharge},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(tokens[f.col]))
		if err != nil {
			return u, fmt.Errorf("invalid %s: %w", FeaturesHeader[f.col], err)
		}
		*f.dst = v
	}

	floats := []struct {
		col int
		dst *float64
	}{
		{1, &u.MedianMonoMass}, {2, &u.AverageMonoMass}, {3, &u.MinMonoMass}, {4, &u.MaxMonoMass},
		{9, &u.MaxAbundance}, {10, &u.SumAbundance}, {11, &u.ClassRepMZ},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(tokens[f.col]), 64)
		if err != nil {
			return u, fmt.Errorf("invalid %s: %w", FeaturesHeader[f.col], err)
		}
		*f.dst = v
	}
	return u, nil
}
