package csv

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/xuri/excelize/v2"
)

const report = "IMO Number,Name,Reporting Period\n9876543,ASTORIA,2021\n1234567,BOREALIS\n"

var reportRecords = [][]string{
	{"IMO Number", "Name", "Reporting Period"},
	{"9876543", "ASTORIA", "2021"},
	{"1234567", "BOREALIS"},
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func zstded(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func workbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	tests := []struct {
		name string
		key  string
		data func(t *testing.T) []byte
	}{
		{"plain", "report.csv", func(t *testing.T) []byte { return []byte(report) }},
		{"bom", "report.csv", func(t *testing.T) []byte { return append([]byte{0xEF, 0xBB, 0xBF}, report...) }},
		{"crlf", "report.csv", func(t *testing.T) []byte { return []byte(strings.ReplaceAll(report, "\n", "\r\n")) }},
		{"gzip", "report.csv.gz", func(t *testing.T) []byte { return gzipped(t, []byte(report)) }},
		{"zstd", "report.csv.zst", func(t *testing.T) []byte { return zstded(t, []byte(report)) }},
		{"xlsx", "report.xlsx", func(t *testing.T) []byte { return workbook(t, reportRecords) }},
		{"gzipped xlsx", "report.xlsx.gz", func(t *testing.T) []byte { return gzipped(t, workbook(t, reportRecords)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(tt.key, tt.data(t), Options{})
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !reflect.DeepEqual(got, reportRecords) {
				t.Errorf("Read = %q, want %q", got, reportRecords)
			}
		})
	}
}

func TestRead_Delimiter(t *testing.T) {
	got, err := Read("report.csv", []byte("a;b\n1;2\n"), Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := [][]string{{"a", "b"}, {"1", "2"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Read = %q, want %q", got, want)
	}
}

func TestRead_Empty(t *testing.T) {
	got, err := Read("report.csv", nil, Options{})
	if err != nil || len(got) != 0 {
		t.Errorf("Read(empty) = %q, %v; want no records", got, err)
	}
}

func TestRead_InvalidUTF8(t *testing.T) {
	got, err := Read("report.csv", []byte("name\nGÖ\xffTA\n"), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got[1][0] != "GÖ?TA" {
		t.Errorf("cell = %q, want %q", got[1][0], "GÖ?TA")
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		data []byte
		want error
	}{
		{"corrupt gzip", "report.csv.gz", []byte("not gzip"), ErrDecompress},
		{"corrupt zstd", "report.csv.zst", []byte("not zstd at all"), ErrDecompress},
		{"corrupt workbook", "report.xlsx", []byte("not a workbook"), ErrInvalidWorkbook},
		{"bare quote in quoted field", "report.csv", []byte("a,\"b\"x\"\n"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.key, tt.data, Options{})
			if tt.want == nil {
				if err != nil {
					t.Errorf("Read() = %v, want lazy quotes to accept it", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Read() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRead_MaxSize(t *testing.T) {
	// Compresses to a few kilobytes.
	expanded := []byte(strings.Repeat("9876543,ASTORIA,2021\n", 100000))
	size := int64(len(expanded))

	tests := []struct {
		name    string
		key     string
		data    []byte
		maxSize int64
		wantErr error
	}{
		{"gzip over limit", "report.csv.gz", gzipped(t, expanded), 64 << 10, ErrTooLarge},
		{"zstd over limit", "report.csv.zst", zstded(t, expanded), 64 << 10, ErrTooLarge},
		{"gzip at limit", "report.csv.gz", gzipped(t, expanded), size, nil},
		{"zstd under limit", "report.csv.zst", zstded(t, expanded), 4 * size, nil},
		{"gzip unlimited", "report.csv.gz", gzipped(t, expanded), 0, nil},
		{"workbook over limit", "report.xlsx", workbook(t, [][]string{{"IMO Number"}}), 1 << 10, ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(tt.key, tt.data, Options{MaxSize: tt.maxSize})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Read() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(records) != 100000 {
				t.Errorf("len(records) = %d, want 100000", len(records))
			}
		})
	}
}

func TestUTF8Sanitizer_SplitRunes(t *testing.T) {
	input := strings.Repeat("CO₂ ö ", 50) + "\xfe"
	r := clean(iotest.OneByteReader(strings.NewReader(input)))

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if want := strings.Repeat("CO₂ ö ", 50) + "?"; string(got) != want {
		t.Errorf("sanitized = %q, want %q", got, want)
	}
}

func TestFindHeaderRow(t *testing.T) {
	isHeader := func(rec []string) bool { return len(rec) > 0 && rec[0] == "IMO Number" }
	records := [][]string{{"title"}, {""}, {"IMO Number"}, {"1"}}

	tests := []struct {
		name    string
		maxScan int
		want    int
	}{
		{"found", 10, 2},
		{"beyond scan window", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindHeaderRow(records, tt.maxScan, isHeader); got != tt.want {
				t.Errorf("FindHeaderRow() = %d, want %d", got, tt.want)
			}
		})
	}
}
