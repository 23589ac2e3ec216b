// Package store implements core.RecordStore on PostgreSQL, Redis and memory.
//
// Every backend stores the same JSON document: the vessel item fields plus
// an envelope of partitionKey, sortKey and updatedAt. Reads decode the
// document strictly (unknown fields are rejected) and re-validate the item,
// so a document written by an older schema surfaces as an error instead of
// a half-filled record.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/mrv/internal/core"
)

// ErrCorruptDocument is returned when a stored document fails decoding or
// validation.
var ErrCorruptDocument = errors.New("stored vessel item is invalid")

// document is the stored form of a vessel item.
type document struct {
	PartitionKey string    `json:"partitionKey"`
	SortKey      string    `json:"sortKey"`
	UpdatedAt    time.Time `json:"updatedAt"`
	*core.VesselItem
}

// EncodeDocument renders item with its storage envelope.
func EncodeDocument(key core.Key, item *core.VesselItem, updatedAt time.Time) ([]byte, error) {
	if item == nil {
		return nil, errors.New("encode document: nil vessel item")
	}
	data, err := json.Marshal(document{
		PartitionKey: key.PartitionKey(),
		SortKey:      key.SortKey(),
		UpdatedAt:    updatedAt.UTC(),
		VesselItem:   item,
	})
	if err != nil {
		return nil, fmt.Errorf("encode document %s: %w", key.SortKey(), err)
	}
	return data, nil
}

// DecodeDocument parses a stored document and validates the item.
// It also returns the envelope's updatedAt.
func DecodeDocument(data []byte) (*core.VesselItem, time.Time, error) {
	doc := document{VesselItem: &core.VesselItem{}}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	if err := doc.VesselItem.Validate(); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if want := core.KeyFor(doc.VesselItem).SortKey(); doc.SortKey != want {
		return nil, time.Time{}, fmt.Errorf("%w: sort key %q does not match item %q", ErrCorruptDocument, doc.SortKey, want)
	}
	return doc.VesselItem, doc.UpdatedAt, nil
}
