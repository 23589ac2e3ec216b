// Package csv reads uploaded emissions reports into string records.
//
// Uploads arrive as plain CSV, gzip or zstd compressed CSV, or Excel
// workbooks. Read picks the decoder from the object name and always returns
// the rows of the first sheet or the whole CSV as [][]string.
package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrInvalidCSV is returned when the CSV stream cannot be parsed.
	ErrInvalidCSV = errors.New("invalid CSV format")

	// ErrInvalidWorkbook is returned when an .xlsx upload cannot be opened.
	ErrInvalidWorkbook = errors.New("invalid Excel workbook")

	// ErrDecompress is returned when a compressed upload is corrupt.
	ErrDecompress = errors.New("cannot decompress file")

	// ErrTooLarge is returned when an upload expands beyond Options.MaxSize.
	ErrTooLarge = errors.New("decompressed file exceeds maximum size")
)

// Options controls CSV parsing.
type Options struct {
	// Delimiter is the field separator (default: ',').
	Delimiter rune

	// MaxSize bounds the decompressed size of gzip and zstd uploads and the
	// unzipped size of workbooks, in bytes. Zero means no limit.
	MaxSize int64
}

// Read decodes data according to the extension of name.
//
//	report.csv      plain CSV
//	report.csv.gz   gzip compressed CSV
//	report.csv.zst  zstd compressed CSV
//	report.xlsx     first sheet of an Excel workbook
func Read(name string, data []byte, opts Options) ([][]string, error) {
	ext := strings.ToLower(path.Ext(name))

	switch ext {
	case ".gz":
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrDecompress, err)
		}
		defer zr.Close()
		return readInner(strings.TrimSuffix(name, path.Ext(name)), limit(decompressReader{zr}, opts.MaxSize), opts)

	case ".zst", ".zstd":
		var zopts []zstd.DOption
		if opts.MaxSize > 0 {
			zopts = append(zopts, zstd.WithDecoderMaxMemory(uint64(opts.MaxSize)))
		}
		zr, err := zstd.NewReader(bytes.NewReader(data), zopts...)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrDecompress, err)
		}
		defer zr.Close()
		return readInner(strings.TrimSuffix(name, path.Ext(name)), limit(decompressReader{zr}, opts.MaxSize), opts)

	case ".xlsx":
		return readWorkbook(bytes.NewReader(data), opts)

	default:
		return readCSV(bytes.NewReader(data), opts)
	}
}

// readInner reads a decompressed stream, which may itself be a workbook.
func readInner(name string, r io.Reader, opts Options) ([][]string, error) {
	if strings.EqualFold(path.Ext(name), ".xlsx") {
		return readWorkbook(r, opts)
	}
	return readCSV(r, opts)
}

// decompressReader marks read errors of a decompressor with ErrDecompress.
type decompressReader struct {
	r io.Reader
}

func (d decompressReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	switch {
	case err == nil, err == io.EOF:
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		err = fmt.Errorf("%w: %v", ErrTooLarge, err)
	default:
		err = fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	return n, err
}

// limitReader fails with ErrTooLarge once more than max bytes are read.
type limitReader struct {
	r    io.Reader
	max  int64
	read int64
}

// limit bounds r to maxSize bytes; maxSize <= 0 returns r unchanged.
func limit(r io.Reader, maxSize int64) io.Reader {
	if maxSize <= 0 {
		return r
	}
	return &limitReader{r: io.LimitReader(r, maxSize+1), max: maxSize}
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.max {
		return n, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, l.max)
	}
	return n, err
}

func readCSV(r io.Reader, opts Options) ([][]string, error) {
	cr := stdcsv.NewReader(clean(r))
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		var pe *stdcsv.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, pe.Line, pe.Err)
		}
		if errors.Is(err, ErrDecompress) || errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	return records, nil
}

func readWorkbook(r io.Reader, opts Options) ([][]string, error) {
	var xopts []excelize.Options
	if opts.MaxSize > 0 {
		xopts = append(xopts, excelize.Options{UnzipSizeLimit: opts.MaxSize})
	}
	f, err := excelize.OpenReader(r, xopts...)
	if err != nil {
		// excelize has no sentinel for its unzip limit.
		if strings.Contains(err.Error(), "unzip size exceeds") {
			return nil, fmt.Errorf("%w: %v", ErrTooLarge, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidWorkbook)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrInvalidWorkbook, sheet, err)
	}
	return rows, nil
}

// FindHeaderRow returns the index of the first of the leading maxScan records
// accepted by match, or 0 when none is.
func FindHeaderRow(records [][]string, maxScan int, match func([]string) bool) int {
	for i := 0; i < len(records) && i < maxScan; i++ {
		if match(records[i]) {
			return i
		}
	}
	return 0
}
