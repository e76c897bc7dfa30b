// Package pek provides a streaming reader for PEK fixed-tag ASCII reports.
//
// A PEK file is a series of per-scan sections. Each section starts with a
// "Filename:" line whose text after the last '.' is the scan number, followed
// by a column header line and tab separated peak rows. Rows end at a
// "Processing stop time:" line or at the first line not starting with a digit.
package pek

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/ChrisMcGann/FeatureFinder/pkg/core"
)

const (
	fileNameTag = "Filename:"
	startTag    = "CS,  Abundance,   m/z,   Fit,    Average MW, Monoisotopic MW,    Most abundant MW"
	labeledTag  = startTag + ",   Imono,   I+2"
	stopTag     = "Processing stop time:"

	// WIFF-derived reports carry a "wiff " prefix before the scan number
	wiffPrefix    = "wiff"
	wiffPrefixLen = 5
)

type state int

const (
	seekingSection state = iota
	seekingHeader
	readingRows
)

// Reader provides streaming access to PEK files
type Reader struct {
	scanner     *bufio.Scanner
	lineNum     int
	state       state
	firstScan   bool
	wiff        bool
	labeled     bool
	scan        int
	numPeaks    int
	pending     string // Line that ended a row block, to be examined again
	hasPending  bool
	currentPeak *core.IsotopePeak
	err         error
}

// NewReader creates a new PEK reader
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{
		scanner:   scanner,
		firstScan: true,
	}
}

// Wiff reports whether the report was generated from a WIFF file.
// Determined by the first section.
func (r *Reader) Wiff() bool {
	return r.wiff
}

// Labeled reports whether rows carry the Imono and I+2 columns.
func (r *Reader) Labeled() bool {
	return r.labeled
}

// Next advances to the next peak. Returns false when no more peaks or error.
func (r *Reader) Next() bool {
	r.currentPeak = nil
	if r.err != nil {
		return false
	}

	for {
		line, ok := r.readLine()
		if !ok {
			if err := r.scanner.Err(); err != nil {
				r.err = err
			}
			return false
		}
		trimmed := strings.TrimSpace(line)

		switch r.state {
		case seekingSection:
			if !strings.HasPrefix(trimmed, fileNameTag) {
				continue
			}
			if err := r.parseFileName(line); err != nil {
				r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
				return false
			}
			r.state = seekingHeader

		case seekingHeader:
			if !strings.HasPrefix(trimmed, startTag) {
				continue
			}
			if r.firstScan {
				r.labeled = strings.HasPrefix(trimmed, labeledTag)
				r.firstScan = false
			}
			r.state = readingRows

		case readingRows:
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, stopTag) || !unicode.IsDigit(rune(trimmed[0])) {
				r.state = seekingSection
				r.pending, r.hasPending = line, true
				continue
			}
			peak, err := r.parsePeak(line)
			if err != nil {
				r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
				return false
			}
			r.currentPeak = peak
			return true
		}
	}
}

// Peak returns the current peak
func (r *Reader) Peak() *core.IsotopePeak {
	return r.currentPeak
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readLine() (string, bool) {
	if r.hasPending {
		r.hasPending = false
		return r.pending, true
	}
	if !r.scanner.Scan() {
		return "", false
	}
	r.lineNum++
	return r.scanner.Text(), true
}

// parseFileName extracts the scan number from a "Filename:" line
func (r *Reader) parseFileName(line string) error {
	line = strings.TrimSpace(line)
	rest := line[strings.LastIndex(line, ".")+1:]

	if r.firstScan && strings.HasPrefix(strings.ToLower(rest), wiffPrefix) {
		r.wiff = true
	}
	if r.wiff {
		if len(rest) < wiffPrefixLen {
			return fmt.Errorf("invalid WIFF scan in %q", line)
		}
		rest = rest[wiffPrefixLen:]
	}

	scan, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return fmt.Errorf("invalid scan number in %q: %w", line, err)
	}
	r.scan = scan
	return nil
}

// parsePeak parses one tab separated row
func (r *Reader) parsePeak(line string) (*core.IsotopePeak, error) {
	tokens := strings.Split(line, "\t")

	charge, err := strconv.Atoi(strings.TrimSpace(tokens[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid charge %q: %w", tokens[0], err)
	}

	peak := &core.IsotopePeak{
		LineNumber: r.numPeaks,
		LCScan:     r.scan,
		Charge:     charge,
	}

	columns := []*float64{
		&peak.Abundance,
		&peak.MZ,
		&peak.Fit,
		&peak.AverageMass,
		&peak.MonoMass,
		&peak.MostAbundantMass,
	}
	if r.labeled {
		columns = append(columns, &peak.MonoAbundance, &peak.MonoPlus2Abundance)
	}
	for i, dst := range columns {
		if i+1 >= len(tokens) {
			break
		}
		tok := strings.TrimSpace(tokens[i+1])
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q in column %d: %w", tok, i+2, err)
		}
		*dst = v
	}

	r.numPeaks++
	return peak, nil
}
