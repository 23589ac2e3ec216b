package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBlobNotFound is returned by a BlobSource when the object does not exist.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrNotFound is returned by a RecordStore when no item has the key.
	ErrNotFound = errors.New("vessel item not found")

	// ErrEmptyFile is returned when an uploaded file holds no records.
	ErrEmptyFile = errors.New("file is empty")

	// ErrRulesConfig wraps every rule table load or consistency failure.
	ErrRulesConfig = errors.New("invalid cleaning rule table")
)

// MissingFieldError reports a column the builder needed but the row lacked.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// Identifying reports whether the missing column is part of the item key.
func (e *MissingFieldError) Identifying() bool {
	return e.Field == ColIMONumber || e.Field == ColReportingPeriod
}

// RowError ties a per-row failure to its position in the source file.
// Cause is a *MissingFieldError or a *ValidationFailure.
type RowError struct {
	Line  int
	Cause error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Cause)
}

func (e *RowError) Unwrap() error {
	return e.Cause
}
