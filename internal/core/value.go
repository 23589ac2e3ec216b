package core

import (
	"strconv"
)

// Kind identifies the type carried by a cleaned cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindInteger
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Value is a single cleaned cell.
//
// Text holds the string for KindText and the ISO (YYYY-MM-DD) string for
// KindDate. Number and Integer are set only for their own kinds.
type Value struct {
	Kind    Kind
	Text    string
	Number  float64
	Integer int
}

// NullValue returns the absent value.
func NullValue() Value { return Value{Kind: KindNull} }

// TextValue wraps a string.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// NumberValue wraps a decimal.
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// IntegerValue wraps an integer.
func IntegerValue(i int) Value { return Value{Kind: KindInteger, Integer: i} }

// DateValue wraps an ISO date string.
func DateValue(iso string) Value { return Value{Kind: KindDate, Text: iso} }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value for logs and validation messages.
func (v Value) String() string {
	switch v.Kind {
	case KindText, KindDate:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindInteger:
		return strconv.Itoa(v.Integer)
	default:
		return ""
	}
}

// RawRow maps normalized column names to the cell strings of one CSV record.
// Columns missing from a short record are absent from the map.
type RawRow map[string]string

// CleanedRow maps normalized column names to cleaned cells.
type CleanedRow map[string]Value
