// Package reader opens isotope peak files for the format-specific readers in
// its subpackages. Plain files are memory mapped; .zst, .gz and .lz4 files
// are decompressed transparently.
package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies an input file layout.
type Format int

const (
	FormatUnknown Format = iota
	FormatIsos           // Comma separated _isos.csv
	FormatPek            // Fixed-tag ASCII .pek report
)

func (f Format) String() string {
	switch f {
	case FormatIsos:
		return "isos"
	case FormatPek:
		return "pek"
	default:
		return "unknown"
	}
}

// Compression suffixes recognized by Open
var compressionExts = []string{".zst", ".gz", ".lz4"}

// TrimCompression returns path without a recognized compression suffix.
func TrimCompression(path string) string {
	lower := strings.ToLower(path)
	for _, ext := range compressionExts {
		if strings.HasSuffix(lower, ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

// DetectFormat determines the input format from the file extension,
// ignoring any compression suffix.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(TrimCompression(path))) {
	case ".csv":
		return FormatIsos, nil
	case ".pek":
		return FormatPek, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported input format: %s (expected .csv or .pek)", path)
	}
}

// Open returns a reader over the decompressed contents of path.
// The caller must close it.
func Open(path string) (io.ReadCloser, error) {
	mapped, err := mapFile(path)
	if err != nil {
		return nil, err
	}

	var dec io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		zr, err := zstd.NewReader(mapped)
		if err != nil {
			mapped.Close()
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return &stackedCloser{Reader: zr, closers: []func() error{closeZstd(zr), mapped.Close}}, nil
	case ".gz":
		gr, err := gzip.NewReader(mapped)
		if err != nil {
			mapped.Close()
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &stackedCloser{Reader: gr, closers: []func() error{gr.Close, mapped.Close}}, nil
	case ".lz4":
		dec = lz4.NewReader(mapped)
	default:
		return mapped, nil
	}
	return &stackedCloser{Reader: dec, closers: []func() error{mapped.Close}}, nil
}

func closeZstd(d *zstd.Decoder) func() error {
	return func() error {
		d.Close()
		return nil
	}
}

// mappedFile serves reads from a read-only memory map of a file.
type mappedFile struct {
	*bytes.Reader
	data mmap.MMap
	file *os.File
}

func mapFile(path string) (*mappedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat input file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("input path is a directory: %s", path)
	}
	// Zero-length files cannot be mapped
	if info.Size() == 0 {
		return &mappedFile{Reader: bytes.NewReader(nil), file: file}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to mmap input file: %w", err)
	}
	return &mappedFile{Reader: bytes.NewReader(data), data: data, file: file}, nil
}

func (m *mappedFile) Close() error {
	var errs []error
	if m.data != nil {
		errs = append(errs, m.data.Unmap())
		m.data = nil
	}
	if m.file != nil {
		errs = append(errs, m.file.Close())
		m.file = nil
	}
	return errors.Join(errs...)
}

// stackedCloser closes a decompressor and then its source.
type stackedCloser struct {
	io.Reader
	closers []func() error
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	s.closers = nil
	return errors.Join(errs...)
}
