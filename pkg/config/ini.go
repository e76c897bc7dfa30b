package config

import (
	"fmt"

	"github.com/go-ini/ini"
)

const (
	sectionFiles       = "Files"
	sectionDataFilters = "DataFilters"
	sectionUMCCreation = "UMCCreationOptions"
)

// LoadINI reads an INI parameter file. Section and key names are case
// insensitive; keys that are absent keep their defaults.
func LoadINI(path string) (*Settings, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load parameter file: %w", err)
	}
	return fromINI(f)
}

// ParseINI reads INI parameters from data.
func ParseINI(data []byte) (*Settings, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}
	return fromINI(f)
}

func fromINI(f *ini.File) (*Settings, error) {
	s := Default()
	r := &iniReader{file: f}

	r.readString(sectionFiles, "InputFileName", &s.Files.InputFileName)
	r.readString(sectionFiles, "OutputDirectory", &s.Files.OutputDirectory)

	df := &s.DataFilters
	r.readFloat(sectionDataFilters, "MaxIsotopicFit", &df.MaxIsotopicFit)
	r.readFloat(sectionDataFilters, "MinimumIntensity", &df.MinimumIntensity)
	r.readFloat(sectionDataFilters, "MonoMassStart", &df.MonoMassStart)
	r.readFloat(sectionDataFilters, "MonoMassEnd", &df.MonoMassEnd)
	r.readBool(sectionDataFilters, "ProcessDataInChunks", &df.ProcessDataInChunks)
	r.readInt(sectionDataFilters, "MaxDataPointsPerChunk", &df.MaxDataPointsPerChunk)
	r.readFloat(sectionDataFilters, "ChunkSize", &df.ChunkSize)
	r.readInt(sectionDataFilters, "IMSMinScan", &df.IMSMinScan)
	r.readInt(sectionDataFilters, "IMSMaxScan", &df.IMSMaxScan)
	r.readInt(sectionDataFilters, "LCMinScan", &df.LCMinScan)
	r.readInt(sectionDataFilters, "LCMaxScan", &df.LCMaxScan)

	u := &s.UMCCreation
	r.readFloat(sectionUMCCreation, "MonoMassWeight", &u.MonoMassWeight)
	r.readFloat(sectionUMCCreation, "MonoMassConstraint", &u.MonoMassConstraint)
	r.readBool(sectionUMCCreation, "MonoMassConstraintIsPPM", &u.MonoMassConstraintIsPPM)
	r.readFloat(sectionUMCCreation, "AvgMassWeight", &u.AvgMassWeight)
	r.readFloat(sectionUMCCreation, "AvgMassConstraint", &u.AvgMassConstraint)
	r.readBool(sectionUMCCreation, "AvgMassConstraintIsPPM", &u.AvgMassConstraintIsPPM)
	r.readFloat(sectionUMCCreation, "LogAbundanceWeight", &u.LogAbundanceWeight)
	r.readFloat(sectionUMCCreation, "NETWeight", &u.NETWeight)
	r.readFloat(sectionUMCCreation, "ScanWeight", &u.ScanWeight)
	r.readFloat(sectionUMCCreation, "FitWeight", &u.FitWeight)
	r.readFloat(sectionUMCCreation, "IMSDriftTimeWeight", &u.IMSDriftTimeWeight)
	r.readFloat(sectionUMCCreation, "MaxDistance", &u.MaxDistance)
	r.readBool(sectionUMCCreation, "UseGenericNET", &u.UseGenericNET)
	r.readBool(sectionUMCCreation, "UseCharge", &u.UseCharge)
	r.readInt(sectionUMCCreation, "MinFeatureLengthPoints", &u.MinFeatureLengthPoints)

	if r.err != nil {
		return nil, r.err
	}
	s.Normalize()
	return s, nil
}

// iniReader copies present keys into settings fields, keeping the first error.
type iniReader struct {
	file *ini.File
	err  error
}

func (r *iniReader) key(section, name string) *ini.Key {
	if r.err != nil {
		return nil
	}
	sec, err := r.file.GetSection(section)
	if err != nil {
		return nil
	}
	k, err := sec.GetKey(name)
	if err != nil {
		return nil
	}
	return k
}

func (r *iniReader) fail(section, name string, err error) {
	r.err = fmt.Errorf("[%s] %s: %w", section, name, err)
}

func (r *iniReader) readString(section, name string, dst *string) {
	if k := r.key(section, name); k != nil {
		*dst = k.String()
	}
}

func (r *iniReader) readFloat(section, name string, dst *float64) {
	if k := r.key(section, name); k != nil {
		v, err := k.Float64()
		if err != nil {
			r.fail(section, name, err)
			return
		}
		*dst = v
	}
}

func (r *iniReader) readInt(section, name string, dst *int) {
	if k := r.key(section, name); k != nil {
		v, err := k.Int()
		if err != nil {
			r.fail(section, name, err)
			return
		}
		*dst = v
	}
}

func (r *iniReader) readBool(section, name string, dst *bool) {
	if k := r.key(section, name); k != nil {
		v, err := k.Bool()
		if err != nil {
			r.fail(section, name, err)
			return
		}
		*dst = v
	}
}
