package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/JonMunkholm/mrv/internal/csv"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"blob not found", fmt.Errorf("fetch s3://b/k: %w", ErrBlobNotFound), "BLOB001"},
		{"no such bucket", errors.New("api error NoSuchBucket: bucket does not exist"), "BLOB001"},
		{"access denied", errors.New("operation error S3: GetObject, AccessDenied"), "BLOB002"},
		{"empty file", fmt.Errorf("parse: %w", ErrEmptyFile), "FILE001"},
		{"invalid csv", fmt.Errorf("parse: %w", csv.ErrInvalidCSV), "FILE002"},
		{"invalid workbook", fmt.Errorf("parse: %w", csv.ErrInvalidWorkbook), "FILE003"},
		{"decompress", fmt.Errorf("parse: %w", csv.ErrDecompress), "FILE004"},
		{"too large", fmt.Errorf("fetch: %w", ErrBlobTooLarge), "FILE005"},
		{"expands too large", fmt.Errorf("parse: %w", csv.ErrTooLarge), "FILE005"},
		{"rules", fmt.Errorf("%w: decode", ErrRulesConfig), "CFG001"},
		{"not found", fmt.Errorf("get: %w", ErrNotFound), "STORE001"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "STORE002"},
		{"redis closed", errors.New("redis: client is closed"), "STORE002"},
		{"busy", ErrTooManyIngests, "ING001"},
		{"deadline", fmt.Errorf("ingest: %w", context.DeadlineExceeded), "ING002"},
		{"timeout text", errors.New("i/o timeout"), "ING002"},
		{"cancelled", context.Canceled, "ING003"},
		{"invalid body", errors.New("invalid request body: EOF"), "REQ001"},
		{"invalid query", errors.New("invalid query: reportingPeriod"), "REQ002"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if tt.err != nil && (got.Message == "" || got.Action == "") {
				t.Errorf("MapError(%v) has empty message or action: %+v", tt.err, got)
			}
		})
	}
}

func TestMapError_SentinelBeatsPattern(t *testing.T) {
	// The wrapped text mentions a timeout but the sentinel decides.
	err := fmt.Errorf("fetch after timeout: %w", ErrBlobNotFound)
	if got := MapError(err).Code; got != "BLOB001" {
		t.Errorf("code = %q, want BLOB001", got)
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q", got)
	}

	got := FormatUserError(ErrEmptyFile)
	if !strings.Contains(got, "(Code: FILE001)") || !strings.HasPrefix(got, "The file is empty") {
		t.Errorf("FormatUserError = %q", got)
	}
}
