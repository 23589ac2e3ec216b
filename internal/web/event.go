package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/JonMunkholm/mrv/internal/core"
)

// s3Event is the subset of an S3 event notification naming the objects.
type s3Event struct {
	Records []struct {
		S3 struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

// ingestRequest is either an S3 event notification or a single locator.
type ingestRequest struct {
	s3Event
	core.Locator
}

// parseIngestRequest decodes the objects named by an ingestion request body.
// Keys from event notifications are URL-decoded with '+' read as a space.
func parseIngestRequest(r io.Reader) ([]core.Locator, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty", errInvalidBody)
	}

	var req ingestRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	if len(req.Records) == 0 {
		if req.Bucket == "" || req.Key == "" {
			return nil, fmt.Errorf("%w: no records and no bucket/key", errInvalidBody)
		}
		return []core.Locator{req.Locator}, nil
	}

	locs := make([]core.Locator, 0, len(req.Records))
	for i, rec := range req.Records {
		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d key: %v", errInvalidBody, i, err)
		}
		if rec.S3.Bucket.Name == "" || key == "" {
			return nil, fmt.Errorf("%w: record %d has no bucket or key", errInvalidBody, i)
		}
		locs = append(locs, core.Locator{Bucket: rec.S3.Bucket.Name, Key: key})
	}
	return locs, nil
}
