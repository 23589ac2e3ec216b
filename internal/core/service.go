package core

// service.go ties the pipeline to its collaborators: it fetches an uploaded
// object, parses it, runs every row through the Processor and writes each
// valid item to the RecordStore.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/mrv/internal/csv"
	"github.com/JonMunkholm/mrv/internal/logging"
	"github.com/google/uuid"
)

// ContextCheckInterval is how many rows are processed between cancellation
// checks.
var ContextCheckInterval = 100

// ServiceConfig holds the ingestion settings of a Service.
type ServiceConfig struct {
	Delimiter     rune
	MaxFileSize   int64 // decompressed bound; 0 disables it
	MaxConcurrent int
	MaxWait       time.Duration
	Timeout       time.Duration
}

// Service ingests emissions reports and serves stored vessel items.
type Service struct {
	blobs   BlobSource
	store   RecordStore
	rules   *ColumnTypeMapping
	limiter *IngestLimiter
	cfg     ServiceConfig
}

// NewService wires a Service. The rule table must already be validated.
func NewService(blobs BlobSource, store RecordStore, rules *ColumnTypeMapping, cfg ServiceConfig) (*Service, error) {
	if blobs == nil {
		return nil, errors.New("blob source is required")
	}
	if store == nil {
		return nil, errors.New("record store is required")
	}
	if rules == nil {
		return nil, fmt.Errorf("%w: no rule table", ErrRulesConfig)
	}

	return &Service{
		blobs:   blobs,
		store:   store,
		rules:   rules,
		limiter: NewIngestLimiter(cfg.MaxConcurrent, cfg.MaxWait),
		cfg:     cfg,
	}, nil
}

// IngestResult summarizes one ingested file.
type IngestResult struct {
	RunID        uuid.UUID     `json:"run_id"`
	Bucket       string        `json:"bucket"`
	Key          string        `json:"key"`
	Rows         int           `json:"rows"`
	Stored       int           `json:"stored"`
	Rejected     int           `json:"rejected"`
	NotPersisted int           `json:"not_persisted"`
	Duration     time.Duration `json:"duration_ns"`
}

// Ingest processes one uploaded file.
//
// Failing rows are logged and counted in Rejected; failing store writes are
// logged and counted in NotPersisted. Neither fails the file. An error is
// returned only when the file cannot be fetched or parsed, the ingestion
// slot cannot be acquired, or ctx ends.
func (s *Service) Ingest(ctx context.Context, loc Locator) (*IngestResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	result := &IngestResult{RunID: uuid.New(), Bucket: loc.Bucket, Key: loc.Key}
	logger := logging.WithFields(ctx,
		"run_id", result.RunID,
		"bucket", loc.Bucket,
		"key", loc.Key,
	)
	logger.Info("ingestion started")

	err := s.ingest(ctx, loc, result, NewProcessor(s.rules, logger))
	result.Duration = time.Since(start)
	if err != nil {
		logger.Error("ingestion failed",
			"error", err,
			"rows", result.Rows,
			"stored", result.Stored,
		)
		return result, err
	}

	logger.Info("ingestion finished",
		"rows", result.Rows,
		"stored", result.Stored,
		"rejected", result.Rejected,
		"not_persisted", result.NotPersisted,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

func (s *Service) ingest(ctx context.Context, loc Locator, result *IngestResult, proc *Processor) error {
	data, err := s.blobs.Fetch(ctx, loc)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", loc, err)
	}

	records, err := csv.Read(loc.Key, data, csv.Options{Delimiter: s.cfg.Delimiter, MaxSize: s.cfg.MaxFileSize})
	if err != nil {
		return fmt.Errorf("parse %s: %w", loc, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("parse %s: %w", loc, ErrEmptyFile)
	}

	for res := range proc.Process(Records(records)) {
		result.Rows++
		if result.Rows%ContextCheckInterval == 0 && ctx.Err() != nil {
			return ctx.Err()
		}

		if res.Err != nil {
			result.Rejected++
			continue
		}

		key := KeyFor(res.Item)
		if err := s.store.Put(ctx, key, res.Item); err != nil {
			result.NotPersisted++
			proc.logger.Error("vessel item not persisted",
				"reporting_period", key.ReportingPeriod,
				"imo_number", key.IMONumber,
				"line", res.Line,
				"error", err,
			)
			continue
		}
		result.Stored++
	}
	return ctx.Err()
}

// GetVesselItem returns the stored item for a reporting period and IMO number.
func (s *Service) GetVesselItem(ctx context.Context, reportingPeriod int, imoNumber string) (*VesselItem, error) {
	item, err := s.store.Get(ctx, Key{ReportingPeriod: reportingPeriod, IMONumber: imoNumber})
	if err != nil {
		return nil, fmt.Errorf("get vessel item %d/%s: %w", reportingPeriod, imoNumber, err)
	}
	return item, nil
}

// LimiterStatus reports ingestion slot usage.
func (s *Service) LimiterStatus() IngestLimiterStatus {
	return s.limiter.Status()
}

// WaitForIngests blocks until running ingestions finish or ctx is done.
func (s *Service) WaitForIngests(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
