// Package isos provides a streaming reader for comma separated _isos.csv
// deisotoping results, in both the LC-MS and the IMS-MS column layouts.
package isos

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

// IMS files start their header with this column
const imsHeaderPrefix = "frame_num"

// Reader provides streaming access to isos CSV files
type Reader struct {
	scanner     *bufio.Scanner
	lineNum     int // 1-based line in the file
	dataRow     int // 0-based data row, counted before filtering
	headerRead  bool
	ims         bool
	currentPeak *core.IsotopePeak
	err         error
}

// NewReader creates a new isos reader
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// IMS reports whether the file uses the ion-mobility layout.
// It is only meaningful after the first call to Next.
func (r *Reader) IMS() bool {
	return r.ims
}

// Next advances to the next peak. Returns false when no more peaks or error.
func (r *Reader) Next() bool {
	r.currentPeak = nil
	if r.err != nil {
		return false
	}

	if !r.headerRead {
		if err := r.readHeader(); err != nil {
			r.err = err
			return false
		}
	}

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())
		row := r.dataRow
		r.dataRow++
		if line == "" {
			continue
		}

		peak, err := r.parsePeak(line)
		if err != nil {
			r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
			return false
		}
		peak.LineNumber = row
		r.currentPeak = peak
		return true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = err
	}
	return false
}

// Peak returns the current peak
func (r *Reader) Peak() *core.IsotopePeak {
	return r.currentPeak
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readHeader() error {
	r.headerRead = true
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return err
		}
		return errors.New("could not read header: file is empty")
	}
	r.lineNum++
	r.ims = strings.HasPrefix(strings.TrimSpace(r.scanner.Text()), imsHeaderPrefix)
	return nil
}

// parsePeak parses one data row. Missing or empty trailing fields stay zero.
func (r *Reader) parsePeak(line string) (*core.IsotopePeak, error) {
	f := &fields{tokens: strings.Split(line, ",")}
	peak := &core.IsotopePeak{}

	peak.LCScan = f.nextInt("scan")
	if r.ims {
		peak.IMSScan = f.nextInt("ims scan")
	}
	peak.Charge = f.nextInt("charge")
	peak.Abundance = f.nextFloat("abundance")
	peak.MZ = f.nextFloat("m/z")
	peak.Fit = f.nextFloat("fit")
	peak.AverageMass = f.nextFloat("average mass")
	peak.MonoMass = f.nextFloat("monoisotopic mass")
	peak.MostAbundantMass = f.nextFloat("most abundant mass")
	peak.FWHM = f.nextFloat("fwhm")
	peak.SignalNoise = f.nextFloat("signal/noise")
	peak.MonoAbundance = f.nextFloat("mono abundance")
	peak.MonoPlus2Abundance = f.nextFloat("mono+2 abundance")
	if r.ims {
		peak.OrigIntensity = f.nextFloat("orig intensity")
		peak.TIAOrigIntensity = f.nextFloat("TIA orig intensity")
		peak.DriftTime = f.nextFloat("drift time")
		peak.CumulativeDriftTime = f.nextFloat("cumulative drift time")
	}

	if f.err != nil {
		return nil, f.err
	}
	return peak, nil
}

// fields walks the tokens of a row in column order, keeping the first error.
type fields struct {
	tokens []string
	pos    int
	err    error
}

func (f *fields) next() (string, bool) {
	i := f.pos
	f.pos++
	if f.err != nil || i >= len(f.tokens) {
		return "", false
	}
	tok := strings.TrimSpace(f.tokens[i])
	return tok, tok != ""
}

func (f *fields) nextInt(name string) int {
	tok, ok := f.next()
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		// Some writers emit integral columns as floats
		fv, ferr := strconv.ParseFloat(tok, 64)
		if ferr != nil || fv != float64(int(fv)) {
			f.err = fmt.Errorf("invalid %s %q: %w", name, tok, err)
			return 0
		}
		v = int(fv)
	}
	return v
}

func (f *fields) nextFloat(name string) float64 {
	tok, ok := f.next()
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		f.err = fmt.Errorf("invalid %s %q: %w", name, tok, err)
		return 0
	}
	return v
}
