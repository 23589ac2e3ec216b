package core

// process.go runs the per-row pipeline (clean, build, validate) over a file.
//
// Processing is lazy and single pass: rows are pulled from the source
// sequence one at a time and results are yielded in file order. A row that
// fails never stops the batch; it yields a result with a nil Item and a
// *RowError, and a structured log event records why.

import (
	"errors"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/JonMunkholm/mrv/internal/csv"
)

// HeaderScanRows is how many leading records are searched for the header.
const HeaderScanRows = 10

// Record is one data row of a source file with its 1-based line number.
type Record struct {
	Line int
	Row  RawRow
}

// RowResult is the outcome of one row. Exactly one of Item and Err is set.
type RowResult struct {
	Line int
	Item *VesselItem
	Err  error
}

// Records turns parsed CSV records into raw rows keyed by normalized header.
//
// The header is the first of the leading HeaderScanRows records that
// contains an imo_number column, or the first record when none does; title
// rows above it are skipped. Short records leave their trailing columns
// absent, cells beyond the header are dropped and blank records are skipped.
func Records(records [][]string) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if len(records) == 0 {
			return
		}

		headerIdx := FindHeaderRow(records)
		header := NormalizeHeader(records[headerIdx])

		for i := headerIdx + 1; i < len(records); i++ {
			rec := records[i]
			if isBlankRecord(rec) {
				continue
			}

			row := make(RawRow, len(header))
			for j, col := range header {
				if j >= len(rec) {
					break
				}
				if col == "" {
					continue
				}
				row[col] = rec[j]
			}

			if !yield(Record{Line: i + 1, Row: row}) {
				return
			}
		}
	}
}

// FindHeaderRow returns the index of the header record.
func FindHeaderRow(records [][]string) int {
	return csv.FindHeaderRow(records, HeaderScanRows, func(rec []string) bool {
		return slices.Contains(NormalizeHeader(rec), ColIMONumber)
	})
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Processor cleans, builds and validates rows with a fixed rule table.
type Processor struct {
	rules  *ColumnTypeMapping
	logger *slog.Logger
}

// NewProcessor returns a Processor. A nil logger discards row events.
func NewProcessor(rules *ColumnTypeMapping, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{rules: rules, logger: logger}
}

// ProcessRow turns one raw row into a validated VesselItem.
// The error is a *MissingFieldError or a *ValidationFailure.
func (p *Processor) ProcessRow(row RawRow) (*VesselItem, error) {
	raw, err := Build(Clean(row, p.rules))
	if err != nil {
		return nil, err
	}
	return Validate(raw)
}

// Process lazily processes records in order, yielding one result per record.
// Stopping iteration early stops reading the source.
func (p *Processor) Process(records iter.Seq[Record]) iter.Seq[RowResult] {
	return func(yield func(RowResult) bool) {
		for rec := range records {
			item, err := p.ProcessRow(rec.Row)
			if err != nil {
				p.logRowError(rec, err)
				err = &RowError{Line: rec.Line, Cause: err}
			}
			if !yield(RowResult{Line: rec.Line, Item: item, Err: err}) {
				return
			}
		}
	}
}

func (p *Processor) logRowError(rec Record, err error) {
	var missing *MissingFieldError
	var failure *ValidationFailure

	switch {
	case errors.As(err, &missing) && missing.Identifying():
		p.logger.Warn("row missing required identifying fields",
			"field", missing.Field,
			"line", rec.Line,
		)

	case errors.As(err, &missing):
		p.logger.Warn("row missing expected column",
			"field", missing.Field,
			"line", rec.Line,
		)

	case errors.As(err, &failure):
		for _, fe := range failure.Errors {
			p.logger.Warn("row failed schema validation",
				"reporting_period", strings.TrimSpace(rec.Row[ColReportingPeriod]),
				"imo_number", strings.TrimSpace(rec.Row[ColIMONumber]),
				"field", fe.Field,
				"reason", fe.Reason,
				"line", rec.Line,
			)
		}

	default:
		p.logger.Warn("row failed", "line", rec.Line, "error", err)
	}
}
