// error_messages.go maps technical errors to user-facing messages with codes.
//
// # Error Code Reference
//
// Codes are grouped by the stage that failed. Each code carries a message
// describing what happened and an action telling the caller what to do.
//
// # Blob Errors (BLOB001-BLOB099)
//
//	BLOB001 - Object not found: The referenced upload does not exist
//	BLOB002 - Object not readable: Access to the bucket was denied
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Empty file: The upload holds no records
//	FILE002 - Invalid CSV: The upload could not be parsed as CSV
//	FILE003 - Invalid workbook: The .xlsx upload could not be opened
//	FILE004 - Corrupt archive: A .gz or .zst upload could not be decompressed
//	FILE005 - File too large: The upload or its decompressed contents exceed BLOB_MAX_SIZE
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Rule table invalid: The cleaning rule table failed to load
//
// # Store Errors (STORE001-STORE099)
//
//	STORE001 - Not found: No vessel item has the requested key
//	STORE002 - Store unavailable: The record store could not be reached
//
// # Ingestion Errors (ING001-ING099)
//
//	ING001 - Busy: Every ingestion slot is in use
//	ING002 - Timeout: The ingestion ran past INGEST_TIMEOUT
//	ING003 - Cancelled: The request was cancelled
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid body: The request body is not a recognized event
//	REQ002 - Invalid query: reportingPeriod or imoNumber is missing or malformed
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the server log for the technical
// error, which is always logged with the request id.
//
// # Matching
//
// Sentinel errors are matched first with errors.Is, so wrapped errors keep
// their code. Remaining errors are matched case-insensitively by substring;
// the first match wins.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/mrv/internal/csv"
)

// ErrBlobTooLarge is returned by a BlobSource when an object exceeds the
// configured maximum size.
var ErrBlobTooLarge = errors.New("object exceeds maximum size")

// UserMessage is a user-facing description of an error.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Stable code for support reference
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgBlobNotFound = UserMessage{
		Message: "The uploaded file could not be found",
		Action:  "Check the bucket and key of the upload",
		Code:    "BLOB001",
	}
	msgBlobDenied = UserMessage{
		Message: "The uploaded file could not be read",
		Action:  "Check that the service may read the bucket",
		Code:    "BLOB002",
	}
	msgEmptyFile = UserMessage{
		Message: "The file is empty",
		Action:  "Upload a file with a header row and data",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "The file is not valid CSV",
		Action:  "Export the report again as comma separated values",
		Code:    "FILE002",
	}
	msgInvalidWorkbook = UserMessage{
		Message: "The Excel workbook could not be opened",
		Action:  "Save the workbook as .xlsx or export it as CSV",
		Code:    "FILE003",
	}
	msgDecompress = UserMessage{
		Message: "The compressed file could not be decompressed",
		Action:  "Upload the file again or upload it uncompressed",
		Code:    "FILE004",
	}
	msgTooLarge = UserMessage{
		Message: "The file is too large",
		Action:  "Split the report into smaller files",
		Code:    "FILE005",
	}
	msgRulesConfig = UserMessage{
		Message: "The cleaning rules are misconfigured",
		Action:  "Check INGEST_RULES_PATH and the rule table contents",
		Code:    "CFG001",
	}
	msgNotFound = UserMessage{
		Message: "No emissions record exists for this vessel and reporting period",
		Action:  "Check the IMO number and reporting period",
		Code:    "STORE001",
	}
	msgStoreUnavailable = UserMessage{
		Message: "The record store is unavailable",
		Action:  "Please try again in a few moments",
		Code:    "STORE002",
	}
	msgBusy = UserMessage{
		Message: "Too many files are being ingested",
		Action:  "Please retry shortly",
		Code:    "ING001",
	}
	msgTimeout = UserMessage{
		Message: "The operation timed out",
		Action:  "Retry, or split the report into smaller files",
		Code:    "ING002",
	}
	msgCancelled = UserMessage{
		Message: "The operation was cancelled",
		Action:  "Retry the request",
		Code:    "ING003",
	}
	msgInvalidBody = UserMessage{
		Message: "The request body is not a recognized upload event",
		Action:  "Send an S3 event notification or a {\"bucket\",\"key\"} object",
		Code:    "REQ001",
	}
	msgInvalidQuery = UserMessage{
		Message: "The query parameters are invalid",
		Action:  "Provide a numeric reportingPeriod and an imoNumber",
		Code:    "REQ002",
	}
)

// sentinelMessages are checked in order with errors.Is.
var sentinelMessages = []sentinelMessage{
	{ErrBlobNotFound, msgBlobNotFound},
	{ErrBlobTooLarge, msgTooLarge},
	{csv.ErrTooLarge, msgTooLarge},
	{ErrEmptyFile, msgEmptyFile},
	{csv.ErrDecompress, msgDecompress},
	{csv.ErrInvalidWorkbook, msgInvalidWorkbook},
	{csv.ErrInvalidCSV, msgInvalidCSV},
	{ErrRulesConfig, msgRulesConfig},
	{ErrNotFound, msgNotFound},
	{ErrTooManyIngests, msgBusy},
	{context.DeadlineExceeded, msgTimeout},
	{context.Canceled, msgCancelled},
}

// errorPatterns are matched by substring when no sentinel matches.
var errorPatterns = []errorPattern{
	{"invalid request body", msgInvalidBody},
	{"invalid query", msgInvalidQuery},
	{"access denied", msgBlobDenied},
	{"accessdenied", msgBlobDenied},
	{"nosuchbucket", msgBlobNotFound},
	{"connection refused", msgStoreUnavailable},
	{"connection reset", msgStoreUnavailable},
	{"closed pool", msgStoreUnavailable},
	{"redis: client is closed", msgStoreUnavailable},
	{"timeout", msgTimeout},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError returns the user message for err, or the zero UserMessage when
// err is nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	lower := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(lower, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
