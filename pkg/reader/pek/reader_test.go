package pek

import (
	"strings"
	"testing"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pekFile = `ICR-2LS deisotoping report
Filename: C:\data\QC_Shew_08_01.0012
Number of peaks in spectrum = 3
CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW
2	15243	579.8052	0.0437	1158.2591	1157.5958	1157.5998
1	5000	400.2000	0.1100	399.4000	399.1927	399.1927

Processing stop time: 10:12:01
Filename: C:\data\QC_Shew_08_01.0013
CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW
3	82651	668.6766	0.0216	2003.3160	2002.0079	2003.0112
Filename: C:\data\QC_Shew_08_01.0014
CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW
2	6100	579.8060	0.0500	1158.2601	1157.5966	1157.6001
`

func readAll(t *testing.T, r *Reader) []*core.IsotopePeak {
	t.Helper()
	var peaks []*core.IsotopePeak
	for r.Next() {
		peaks = append(peaks, r.Peak())
	}
	require.NoError(t, r.Err())
	return peaks
}

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(pekFile))
	peaks := readAll(t, r)

	require.Len(t, peaks, 4)
	assert.False(t, r.Wiff())
	assert.False(t, r.Labeled())

	p := peaks[0]
	assert.Equal(t, 12, p.LCScan)
	assert.Equal(t, 2, p.Charge)
	assert.Equal(t, 15243.0, p.Abundance)
	assert.Equal(t, 579.8052, p.MZ)
	assert.Equal(t, 0.0437, p.Fit)
	assert.Equal(t, 1158.2591, p.AverageMass)
	assert.Equal(t, 1157.5958, p.MonoMass)
	assert.Equal(t, 1157.5998, p.MostAbundantMass)

	// Each row is its own peak
	assert.Equal(t, 1, peaks[1].Charge)
	assert.Equal(t, 12, peaks[1].LCScan)
	assert.NotSame(t, peaks[0], peaks[1])

	assert.Equal(t, 13, peaks[2].LCScan)
	// A Filename line directly after the rows starts the next section
	assert.Equal(t, 14, peaks[3].LCScan)

	for i, pk := range peaks {
		assert.Equal(t, i, pk.LineNumber)
	}
}

func TestReaderLabeled(t *testing.T) {
	input := "Filename: run.0007\n" +
		"CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW,   Imono,   I+2\n" +
		"2\t1000\t500.25\t0.02\t999.1\t998.5\t999.5\t600\t150\n"

	r := NewReader(strings.NewReader(input))
	peaks := readAll(t, r)

	require.Len(t, peaks, 1)
	assert.True(t, r.Labeled())
	assert.Equal(t, 7, peaks[0].LCScan)
	assert.Equal(t, 600.0, peaks[0].MonoAbundance)
	assert.Equal(t, 150.0, peaks[0].MonoPlus2Abundance)
}

func TestReaderWiff(t *testing.T) {
	input := "Filename: sample.wiff 42\n" +
		"CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW\n" +
		"1\t2000\t301.1\t0.05\t300.3\t300.1\t300.1\n" +
		"Filename: sample.wiff 43\n" +
		"CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW\n" +
		"1\t2100\t301.1\t0.05\t300.3\t300.1\t300.1\n"

	r := NewReader(strings.NewReader(input))
	peaks := readAll(t, r)

	require.Len(t, peaks, 2)
	assert.True(t, r.Wiff())
	assert.Equal(t, 42, peaks[0].LCScan)
	assert.Equal(t, 43, peaks[1].LCScan)
}

func TestReaderNoSections(t *testing.T) {
	r := NewReader(strings.NewReader("nothing to see here\n"))
	assert.Empty(t, readAll(t, r))
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"bad scan", "Filename: run.abc\n", "line 1: invalid scan number"},
		{
			"bad value",
			"Filename: run.1\nCS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW\n2\tmany\n",
			"line 3: invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input))
			for r.Next() {
			}
			require.Error(t, r.Err())
			assert.Contains(t, r.Err().Error(), tt.wantErr)
		})
	}
}
