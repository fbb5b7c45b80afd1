// Package dta reads legacy statistical dataset files in the .dta format, revisions
// 113 and 114.
//
// A dataset file stores a fixed header, a block of per-variable descriptors and a
// fixed-stride table of observations. The reader parses the header once and then
// decodes observations on demand, either sequentially or by index.
//
// # Core Features
//
//   - Format 113 and 114 files in either byte order
//   - Schema access: names, storage types, display formats, value-label references, labels
//   - Sequential iteration with iter.Seq2 (ordered records or name-keyed maps)
//   - O(1) random access by observation index without rereading the header
//   - Missing-value detection with configurable suppression or retention
//   - Optional legacy charset conversion of all text fields
//
// # Basic Usage
//
// Opening a file and iterating over its observations:
//
//	import "github.com/arloliu/dta"
//
//	f, err := dta.Open("auto.dta")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	for _, v := range f.Schema() {
//	    fmt.Printf("%-12s %-6s %s\n", v.Name, v.Type, v.Label)
//	}
//
//	for rec, err := range f.Rows() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec...)
//	}
//
// Random access and missing values:
//
//	r, _ := dta.NewReader(bytes.NewReader(data), dta.WithMissingValues(true))
//	rec, _ := r.At(42)
//	if mv, ok := rec[3].(format.MissingValue); ok {
//	    fmt.Println("missing:", mv)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the dataset package.
// The lower layers are usable on their own: section parses the header, encoding
// decodes records and format holds the type and missing-value tables.
package dta

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/dta/dataset"
)

// Reader is the dataset decoder returned by NewReader.
type Reader = dataset.Reader

// Record is one decoded observation.
type Record = dataset.Record

// Variable describes one column of the dataset.
type Variable = dataset.Variable

// Option configures a Reader.
type Option = dataset.ReaderOption

// NewReader parses the dataset header at the current position of rs.
//
// Parameters:
//   - rs: seekable stream positioned at the start of a dataset file
//   - opts: Optional configuration functions
//
// Returns:
//   - *Reader: reader ready to decode observations
//   - error: An error if an option is invalid or the header cannot be parsed
//
// Available options:
//   - dta.WithMissingValues(true|false)
//   - dta.WithCharset(name)
//   - dta.WithLogger(logger)
//
// Example:
//
//	r, err := dta.NewReader(bytes.NewReader(data), dta.WithCharset("windows-1252"))
func NewReader(rs io.ReadSeeker, opts ...Option) (*Reader, error) {
	return dataset.NewReader(rs, opts...)
}

// File is a Reader over a file opened by Open. Close releases the file handle.
type File struct {
	*Reader
	f *os.File
}

// Open opens the named dataset file and parses its header.
//
// The returned File owns the file handle; call Close when done.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := dataset.NewReader(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &File{Reader: r, f: f}, nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.f.Name()
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// WithMissingValues returns out-of-range numeric fields as format.MissingValue
// instead of nil.
func WithMissingValues(enabled bool) Option {
	return dataset.WithMissingValues(enabled)
}

// WithCharset converts text fields from the named legacy charset to UTF-8.
func WithCharset(name string) Option {
	return dataset.WithCharset(name)
}

// WithLogger sets the logger receiving debug events.
func WithLogger(logger *slog.Logger) Option {
	return dataset.WithLogger(logger)
}
