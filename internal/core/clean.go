package core

import (
	"math"
)

// Clean applies the rule table to one raw row and returns a new cleaned row.
//
// Groups run in a fixed order (numeric, upper case, date, monitoring flag,
// efficiency, integer) and null normalization runs over every key last.
// Columns absent from the row are skipped; the builder reports them. Clean
// never fails on a single cell.
func Clean(row RawRow, rules *ColumnTypeMapping) CleanedRow {
	out := make(CleanedRow, len(row))
	for col, s := range row {
		out[col] = TextValue(s)
	}

	for _, g := range rules.groups() {
		if g.clean == nil {
			continue
		}
		for _, col := range g.columns {
			if v, ok := out[col]; ok {
				out[col] = g.clean(v)
			}
		}
	}

	for col, v := range out {
		out[col] = cleanNull(v)
	}
	return out
}

func cleanNumeric(v Value) Value {
	switch v.Kind {
	case KindText:
		if f, ok := ParseNumeric(v.Text); ok {
			return NumberValue(f)
		}
		return NullValue()
	case KindNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return NullValue()
		}
		return NumberValue(roundTo2(v.Number))
	case KindInteger:
		return NumberValue(float64(v.Integer))
	default:
		return NullValue()
	}
}

func cleanUpperCase(v Value) Value {
	if v.Kind != KindText {
		return v
	}
	return TextValue(UpperCase(v.Text))
}

func dateCleaner(layout string) Cleaner {
	return func(v Value) Value {
		switch v.Kind {
		case KindDate:
			return v
		case KindText:
			if iso, ok := ParseDateLayout(v.Text, layout); ok {
				return DateValue(iso)
			}
		}
		return NullValue()
	}
}

func cleanMonitoringFlag(v Value) Value {
	if v.Kind == KindNull {
		return TextValue(string(FlagNo))
	}
	return TextValue(NormalizeMonitoringFlag(v.String()))
}

func cleanEfficiency(v Value) Value {
	switch v.Kind {
	case KindText:
		if f, ok := ExtractEfficiencyValue(v.Text); ok {
			return NumberValue(f)
		}
		return NullValue()
	case KindNumber, KindInteger:
		return cleanNumeric(v)
	default:
		return NullValue()
	}
}

// cleanInteger converts whole numbers to integers. Anything else is kept
// as-is so the validator reports it as not an integer rather than missing.
func cleanInteger(v Value) Value {
	switch v.Kind {
	case KindNumber:
		if v.Number == math.Trunc(v.Number) {
			return IntegerValue(int(v.Number))
		}
	case KindText:
		if i, err := ParseInteger(v.Text); err == nil {
			return IntegerValue(i)
		}
	}
	return v
}

// cleanNull turns null placeholders into absent values.
// The comparison is case-insensitive, so upper-cased "N/A" is still caught.
func cleanNull(v Value) Value {
	if v.Kind != KindText {
		return v
	}
	if _, ok := NormalizeNull(v.Text); !ok {
		return NullValue()
	}
	return v
}
