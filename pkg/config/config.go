// Package config loads FeatureFinder settings from INI or YAML parameter files.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ChrisMcGann/FeatureFinder/pkg/filter"
	"github.com/ChrisMcGann/FeatureFinder/pkg/umc"
)

// Files holds input and output locations.
type Files struct {
	InputFileName   string `yaml:"input_file_name"`
	OutputDirectory string `yaml:"output_directory"`
}

// DataFilters holds the filters applied while loading peaks.
type DataFilters struct {
	MaxIsotopicFit        float64 `yaml:"max_isotopic_fit"`
	MinimumIntensity      float64 `yaml:"minimum_intensity"`
	MonoMassStart         float64 `yaml:"mono_mass_start"`
	MonoMassEnd           float64 `yaml:"mono_mass_end"`
	ProcessDataInChunks   bool    `yaml:"process_data_in_chunks"`
	MaxDataPointsPerChunk int     `yaml:"max_data_points_per_chunk"`
	ChunkSize             float64 `yaml:"chunk_size"`
	IMSMinScan            int     `yaml:"ims_min_scan"`
	IMSMaxScan            int     `yaml:"ims_max_scan"`
	LCMinScan             int     `yaml:"lc_min_scan"`
	LCMaxScan             int     `yaml:"lc_max_scan"`
}

// UMCCreation holds the clustering weights, constraints and thresholds.
type UMCCreation struct {
	MonoMassWeight          float64 `yaml:"mono_mass_weight"`
	MonoMassConstraint      float64 `yaml:"mono_mass_constraint"`
	MonoMassConstraintIsPPM bool    `yaml:"mono_mass_constraint_is_ppm"`
	AvgMassWeight           float64 `yaml:"avg_mass_weight"`
	AvgMassConstraint       float64 `yaml:"avg_mass_constraint"`
	AvgMassConstraintIsPPM  bool    `yaml:"avg_mass_constraint_is_ppm"`
	LogAbundanceWeight      float64 `yaml:"log_abundance_weight"`
	NETWeight               float64 `yaml:"net_weight"`
	ScanWeight              float64 `yaml:"scan_weight"`
	FitWeight               float64 `yaml:"fit_weight"`
	IMSDriftTimeWeight      float64 `yaml:"ims_drift_time_weight"`
	MaxDistance             float64 `yaml:"max_distance"`
	UseGenericNET           bool    `yaml:"use_generic_net"`
	UseCharge               bool    `yaml:"use_charge"`
	MinFeatureLengthPoints  int     `yaml:"min_feature_length_points"`
}

// Settings is the complete FeatureFinder configuration.
type Settings struct {
	Files       Files       `yaml:"files"`
	DataFilters DataFilters `yaml:"data_filters"`
	UMCCreation UMCCreation `yaml:"umc_creation"`
}

// Default returns the settings used when a parameter file omits a key.
func Default() *Settings {
	opts := umc.DefaultOptions()
	return &Settings{
		Files: Files{
			OutputDirectory: ".",
		},
		DataFilters: DataFilters{
			MaxIsotopicFit:   1,
			MinimumIntensity: 500,
			ChunkSize:        3000,
			IMSMaxScan:       50000,
			LCMaxScan:        50000,
		},
		UMCCreation: UMCCreation{
			MonoMassWeight:          opts.MonoMassWeight,
			MonoMassConstraint:      opts.MonoMassConstraint,
			MonoMassConstraintIsPPM: opts.MonoMassConstraintIsPPM,
			AvgMassWeight:           opts.AvgMassWeight,
			AvgMassConstraint:       opts.AvgMassConstraint,
			AvgMassConstraintIsPPM:  opts.AvgMassConstraintIsPPM,
			LogAbundanceWeight:      opts.LogAbundanceWeight,
			NETWeight:               opts.NETWeight,
			ScanWeight:              opts.ScanWeight,
			FitWeight:               opts.FitWeight,
			IMSDriftTimeWeight:      opts.DriftTimeWeight,
			MaxDistance:             opts.MaxDistance,
			UseGenericNET:           opts.UseNET,
			UseCharge:               opts.UseCharge,
			MinFeatureLengthPoints:  opts.MinLength,
		},
	}
}

// Load reads settings from an INI or YAML file, chosen by extension.
func Load(path string) (*Settings, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".ini", ".txt", "":
		return LoadINI(path)
	default:
		return nil, fmt.Errorf("unsupported parameter file type: %s", path)
	}
}

// Normalize replaces zero values that mean "use the default".
func (s *Settings) Normalize() {
	if s.DataFilters.MaxIsotopicFit == 0 {
		s.DataFilters.MaxIsotopicFit = 1
	}
	if s.Files.OutputDirectory == "" {
		s.Files.OutputDirectory = "."
	}
}

// Validate reports settings the pipeline cannot run with.
func (s *Settings) Validate() error {
	if err := s.Options().Validate(); err != nil {
		return err
	}
	df := &s.DataFilters
	if df.MinimumIntensity < 0 {
		return fmt.Errorf("minimum intensity must be non-negative, got %v", df.MinimumIntensity)
	}
	if df.MonoMassEnd != 0 && df.MonoMassEnd < df.MonoMassStart {
		return fmt.Errorf("mono mass end %v is below start %v", df.MonoMassEnd, df.MonoMassStart)
	}
	if df.LCMaxScan != 0 && df.LCMaxScan < df.LCMinScan {
		return fmt.Errorf("LC max scan %d is below min scan %d", df.LCMaxScan, df.LCMinScan)
	}
	if df.IMSMaxScan != 0 && df.IMSMaxScan < df.IMSMinScan {
		return fmt.Errorf("IMS max scan %d is below min scan %d", df.IMSMaxScan, df.IMSMinScan)
	}
	return nil
}

// Options converts the clustering settings for the umc package.
func (s *Settings) Options() umc.Options {
	u := &s.UMCCreation
	return umc.Options{
		MonoMassWeight:          u.MonoMassWeight,
		AvgMassWeight:           u.AvgMassWeight,
		LogAbundanceWeight:      u.LogAbundanceWeight,
		NETWeight:               u.NETWeight,
		ScanWeight:              u.ScanWeight,
		FitWeight:               u.FitWeight,
		DriftTimeWeight:         u.IMSDriftTimeWeight,
		MonoMassConstraint:      u.MonoMassConstraint,
		MonoMassConstraintIsPPM: u.MonoMassConstraintIsPPM,
		AvgMassConstraint:       u.AvgMassConstraint,
		AvgMassConstraintIsPPM:  u.AvgMassConstraintIsPPM,
		MaxDistance:             u.MaxDistance,
		UseNET:                  u.UseGenericNET,
		UseCharge:               u.UseCharge,
		MinLength:               u.MinFeatureLengthPoints,
	}
}

// Filter converts the data filters for the filter package.
func (s *Settings) Filter() *filter.Config {
	df := &s.DataFilters
	return &filter.Config{
		MinIntensity:  df.MinimumIntensity,
		MaxFit:        df.MaxIsotopicFit,
		MonoMassStart: df.MonoMassStart,
		MonoMassEnd:   df.MonoMassEnd,
		LCMinScan:     df.LCMinScan,
		LCMaxScan:     df.LCMaxScan,
		IMSMinScan:    df.IMSMinScan,
		IMSMaxScan:    df.IMSMaxScan,
	}
}

// ApplyWiffPreset switches the clustering settings to the values used for
// PEK reports generated from WIFF files.
func (s *Settings) ApplyWiffPreset() {
	u := &s.UMCCreation
	u.MonoMassWeight = 0.0025
	u.AvgMassWeight = 0.0025
	u.LogAbundanceWeight = 0.1
	u.ScanWeight = 0.01
	u.FitWeight = 0.1
	u.IMSDriftTimeWeight = 0.1
	u.MonoMassConstraint = 25
	u.AvgMassConstraint = 25
	u.MonoMassConstraintIsPPM = true
	u.AvgMassConstraintIsPPM = true
	u.UseGenericNET = true
	u.MaxDistance = 0.1
}
