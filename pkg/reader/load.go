package reader

import (
	"fmt"
	"io"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
	"github.com/ChrisMcGann/FeatureFinder/pkg/filter"
	"github.com/ChrisMcGann/FeatureFinder/pkg/reader/isos"
	"github.com/ChrisMcGann/FeatureFinder/pkg/reader/pek"
)

// Dataset is the result of loading one input file.
type Dataset struct {
	Path    string
	Format  Format
	Store   *core.PeakStore
	Filter  filter.Stats
	Wiff    bool // PEK report generated from a WIFF file
	Labeled bool // PEK rows carry Imono and I+2 abundances
}

// peakReader is the streaming API shared by the format readers.
type peakReader interface {
	Next() bool
	Peak() *core.IsotopePeak
	Err() error
}

// Load reads every peak of path into a new store, keeping the peaks that
// pass flt. Peaks are validated as they are read; the first malformed
// peak aborts the load.
func Load(path string, flt *filter.Config) (*Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	ds, err := Read(rc, format, flt)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	ds.Path = path
	return ds, nil
}

// Read loads peaks of the given format from r. A nil filter keeps every
// peak with positive abundance.
func Read(r io.Reader, format Format, flt *filter.Config) (*Dataset, error) {
	if flt == nil {
		flt = &filter.Config{}
	}

	ds := &Dataset{Format: format, Store: core.NewPeakStore(1024)}

	var pr peakReader
	var isosReader *isos.Reader
	var pekReader *pek.Reader
	switch format {
	case FormatIsos:
		isosReader = isos.NewReader(r)
		pr = isosReader
	case FormatPek:
		pekReader = pek.NewReader(r)
		pr = pekReader
	default:
		return nil, fmt.Errorf("unsupported input format: %v", format)
	}

	for pr.Next() {
		peak := pr.Peak()
		if err := peak.Validate(); err != nil {
			return nil, fmt.Errorf("%w (peak: %s)", err, peak)
		}
		ims := isosReader != nil && isosReader.IMS()
		reason := flt.Check(peak, ims)
		ds.Filter.Record(reason)
		if reason == filter.Accepted {
			ds.Store.Add(*peak)
		}
	}
	if err := pr.Err(); err != nil {
		return nil, err
	}

	if isosReader != nil {
		ds.Store.IMS = isosReader.IMS()
	}
	if pekReader != nil {
		ds.Wiff = pekReader.Wiff()
		ds.Labeled = pekReader.Labeled()
	}
	return ds, nil
}
