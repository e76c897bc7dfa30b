package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
	"github.com/ChrisMcGann/FeatureFinder/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIsos(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_isos.csv.gz")
	require.NoError(t, os.WriteFile(path, compress(t, ".gz", []byte(sampleIsos)), 0o644))

	ds, err := Load(path, &filter.Config{MinIntensity: 500})
	require.NoError(t, err)

	assert.Equal(t, FormatIsos, ds.Format)
	assert.Equal(t, path, ds.Path)
	assert.False(t, ds.Store.IMS)
	require.Equal(t, 2, ds.Store.Len())
	assert.Equal(t, 3, ds.Filter.Seen)
	assert.Equal(t, 1, ds.Filter.ByReason[filter.LowIntensity])

	// Store IDs are dense; line numbers keep the source row
	assert.Equal(t, 0, ds.Store.At(0).LineNumber)
	assert.Equal(t, 1, ds.Store.At(1).ID)
	assert.Equal(t, 1, ds.Store.At(1).LineNumber)
}

func TestReadPek(t *testing.T) {
	input := "Filename: run.0003\n" +
		"CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW\n" +
		"2\t15243\t579.8052\t0.0437\t1158.2591\t1157.5958\t1157.5998\n" +
		"2\t0\t579.8052\t0.0437\t1158.2591\t1157.5958\t1157.5998\n"

	ds, err := Read(strings.NewReader(input), FormatPek, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Store.Len())
	assert.Equal(t, 1, ds.Filter.ByReason[filter.NonPositiveAbundance])
	assert.False(t, ds.Wiff)
	assert.False(t, ds.Labeled)
}

func TestReadPekLabeled(t *testing.T) {
	input := "Filename: run.0007\n" +
		"CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW,   Imono,   I+2\n" +
		"2\t1000\t500.25\t0.02\t999.1\t998.5\t999.5\t600\t150\n"

	ds, err := Read(strings.NewReader(input), FormatPek, nil)
	require.NoError(t, err)
	assert.True(t, ds.Labeled)
	require.Equal(t, 1, ds.Store.Len())
	assert.Equal(t, 600.0, ds.Store.At(0).MonoAbundance)
}

func TestReadRejectsMalformed(t *testing.T) {
	input := "scan_num,charge,abundance,mz,fit,average_mw,monoisotopic_mw\n1,2,100,500,0.1,999,-5\n"
	_, err := Read(strings.NewReader(input), FormatIsos, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mono mass must be non-negative")
	assert.Contains(t, err.Error(), "(peak: 1\t2\t100\t500.0000\t0.100\t999.0000\t-5.0000\t0.0000)")

	var verr *core.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestReadUnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader(""), FormatUnknown, nil)
	assert.Error(t, err)
}
