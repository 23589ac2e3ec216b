package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Locator identifies an uploaded object: a bucket and a key within it.
// The file blob backend treats Bucket as a directory under its root.
type Locator struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

func (l Locator) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// ParseLocator parses "s3://bucket/key" or "bucket/key".
func ParseLocator(s string) (Locator, error) {
	rest := strings.TrimPrefix(strings.TrimSpace(s), "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return Locator{}, fmt.Errorf("invalid object locator %q: want s3://bucket/key", s)
	}
	return Locator{Bucket: bucket, Key: key}, nil
}

// BlobSource fetches uploaded objects.
// Fetch returns an error wrapping ErrBlobNotFound when the object is absent.
type BlobSource interface {
	Fetch(ctx context.Context, loc Locator) ([]byte, error)
}

// PartitionKey is the fixed partition shared by every vessel item.
const PartitionKey = "EU_MRV_EMISSIONS_DATA"

// Key identifies a vessel item: one vessel in one reporting period.
type Key struct {
	ReportingPeriod int
	IMONumber       string
}

// KeyFor returns the storage key of item.
func KeyFor(item *VesselItem) Key {
	return Key{ReportingPeriod: item.ReportingPeriod, IMONumber: item.IMONumber}
}

// PartitionKey returns the partition of k.
func (k Key) PartitionKey() string {
	return PartitionKey
}

// SortKey returns "REPORTING_PERIOD#<period>#IMO_NUMBER#<imo>".
func (k Key) SortKey() string {
	return "REPORTING_PERIOD#" + strconv.Itoa(k.ReportingPeriod) + "#IMO_NUMBER#" + k.IMONumber
}

func (k Key) String() string {
	return k.PartitionKey() + "/" + k.SortKey()
}

// RecordStore persists vessel items keyed by reporting period and IMO number.
//
// Put overwrites any item with the same key and stamps the stored document
// with the write time. Get returns an error wrapping ErrNotFound when no item
// has the key, and validates the stored document before returning it.
type RecordStore interface {
	Put(ctx context.Context, key Key, item *VesselItem) error
	Get(ctx context.Context, key Key) (*VesselItem, error)
}
