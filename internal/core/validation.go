package core

// validation.go converts a RawVesselItem into a typed VesselItem and enforces
// the record invariants.
//
// Validation collects every failure instead of stopping at the first, so a
// rejected row logs all of its problems at once. Coercions follow the
// published data: numeric cells may be text, text fields may hold numbers
// (verifier numbers are often numeric) and monitoring flags are matched
// without regard to case.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var imoNumberPattern = regexp.MustCompile(`^\d{7}$`)

// Validation failure reasons.
const (
	reasonRequired   = "field required"
	reasonNotInteger = "value is not a valid integer"
	reasonNotNumber  = "value is not a valid number"
	reasonNotDate    = "value is not a valid date"
	reasonNotFlag    = "value is not a valid enumeration member; permitted: 'Yes', 'No'"
	reasonIMONumber  = "IMO Number must be 7 digits long"
	reasonUnit       = "unit is not a permitted unit"
)

// FieldError describes one invalid field of a vessel record.
type FieldError struct {
	Field  string // dotted path, e.g. "verifier_details.verifier_name"
	Value  string // offending value, empty when absent
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationFailure lists every invalid field of a rejected record.
type ValidationFailure struct {
	Errors []FieldError
}

func (f *ValidationFailure) Error() string {
	if len(f.Errors) == 1 {
		return "validation failed: " + f.Errors[0].Error()
	}
	parts := make([]string, len(f.Errors))
	for i, e := range f.Errors {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("validation failed (%d errors): %s", len(f.Errors), strings.Join(parts, "; "))
}

// validator accumulates field errors while converting cells.
type validator struct {
	errs []FieldError
}

func (v *validator) fail(field, value, reason string) {
	v.errs = append(v.errs, FieldError{Field: field, Value: value, Reason: reason})
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationFailure{Errors: v.errs}
}

func (v *validator) requiredText(field string, val Value) string {
	if val.IsNull() {
		v.fail(field, "", reasonRequired)
		return ""
	}
	return val.String()
}

func (v *validator) optionalText(field string, val Value) *string {
	if val.IsNull() {
		return nil
	}
	s := val.String()
	return &s
}

func (v *validator) requiredInteger(field string, val Value) int {
	switch val.Kind {
	case KindInteger:
		return val.Integer
	case KindNumber:
		if val.Number == math.Trunc(val.Number) && !math.IsInf(val.Number, 0) {
			return int(val.Number)
		}
	case KindText:
		if i, err := strconv.Atoi(strings.TrimSpace(val.Text)); err == nil {
			return i
		}
	case KindNull:
		v.fail(field, "", reasonRequired)
		return 0
	}
	v.fail(field, val.String(), reasonNotInteger)
	return 0
}

func (v *validator) optionalNumber(field string, val Value) *float64 {
	var f float64
	switch val.Kind {
	case KindNull:
		return nil
	case KindNumber:
		f = val.Number
	case KindInteger:
		f = float64(val.Integer)
	case KindText:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val.Text), 64)
		if err != nil {
			v.fail(field, val.Text, reasonNotNumber)
			return nil
		}
		f = parsed
	default:
		v.fail(field, val.String(), reasonNotNumber)
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		v.fail(field, val.String(), reasonNotNumber)
		return nil
	}
	return &f
}

func (v *validator) optionalDate(field string, val Value) *Date {
	switch val.Kind {
	case KindNull:
		return nil
	case KindDate, KindText:
		d, err := ParseISODate(strings.TrimSpace(val.Text))
		if err != nil {
			v.fail(field, val.Text, reasonNotDate)
			return nil
		}
		return &d
	}
	v.fail(field, val.String(), reasonNotDate)
	return nil
}

func (v *validator) flag(field string, val Value) Flag {
	if val.IsNull() {
		v.fail(field, "", reasonRequired)
		return ""
	}
	s := strings.TrimSpace(val.String())
	switch {
	case strings.EqualFold(s, string(FlagYes)):
		return FlagYes
	case strings.EqualFold(s, string(FlagNo)):
		return FlagNo
	}
	v.fail(field, val.String(), reasonNotFlag)
	return ""
}

// Validate converts a raw record into a VesselItem.
// On failure the error is a *ValidationFailure naming every invalid field.
func Validate(raw *RawVesselItem) (*VesselItem, error) {
	v := &validator{}

	item := &VesselItem{
		IMONumber:           v.requiredText("imo_number", raw.IMONumber),
		Name:                v.requiredText("name", raw.Name),
		ShipType:            v.requiredText("ship_type", raw.ShipType),
		ReportingPeriod:     v.requiredInteger("reporting_period", raw.ReportingPeriod),
		TechnicalEfficiency: v.optionalNumber("technical_efficiency", raw.TechnicalEfficiency),
		PortOfRegistry:      v.optionalText("port_of_registry", raw.PortOfRegistry),
		HomePort:            v.optionalText("home_port", raw.HomePort),
		IceClass:            v.optionalText("ice_class", raw.IceClass),
		DocIssueDate:        v.optionalDate("doc_issue_date", raw.DocIssueDate),
		DocExpiryDate:       v.optionalDate("doc_expiry_date", raw.DocExpiryDate),
		VerifierDetails: VerifierDetails{
			VerifierNumber:              v.optionalText("verifier_details.verifier_number", raw.VerifierDetails.VerifierNumber),
			VerifierName:                v.requiredText("verifier_details.verifier_name", raw.VerifierDetails.VerifierName),
			VerifierAccreditationBody:   v.requiredText("verifier_details.verifier_accreditation_body", raw.VerifierDetails.VerifierAccreditationBody),
			VerifierAddress:             v.requiredText("verifier_details.verifier_address", raw.VerifierDetails.VerifierAddress),
			VerifierCity:                v.requiredText("verifier_details.verifier_city", raw.VerifierDetails.VerifierCity),
			VerifierAccreditationNumber: v.requiredText("verifier_details.verifier_accreditation_number", raw.VerifierDetails.VerifierAccreditationNumber),
			VerifierCountry:             v.requiredText("verifier_details.verifier_country", raw.VerifierDetails.VerifierCountry),
		},
		AdditionalInformation: v.optionalText("additional_information", raw.AdditionalInformation),
	}

	rawMethods := raw.MonitoringMethods.methods()
	for i, m := range item.MonitoringMethods.methods() {
		src := rawMethods[i].method
		m.method.Value = v.flag("monitoring_methods."+m.letter+".value", src.Value)
		m.method.Description = src.Description
	}

	rawLeaves := raw.MeasurementsOf.Leaves()
	for i, leaf := range item.Measurements.Leaves() {
		src := rawLeaves[i].Metric
		leaf.Metric.Value = v.optionalNumber(leaf.Path+".value", src.Value)
		leaf.Metric.Unit = src.Unit
		leaf.Metric.Description = src.Description
	}

	item.check(v)
	if err := v.err(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the invariants of an already typed record, such as one
// decoded from storage.
func (item *VesselItem) Validate() error {
	v := &validator{}
	for _, f := range []struct {
		path  string
		value string
	}{
		{"imo_number", item.IMONumber},
		{"name", item.Name},
		{"ship_type", item.ShipType},
		{"verifier_details.verifier_name", item.VerifierDetails.VerifierName},
		{"verifier_details.verifier_accreditation_body", item.VerifierDetails.VerifierAccreditationBody},
		{"verifier_details.verifier_address", item.VerifierDetails.VerifierAddress},
		{"verifier_details.verifier_city", item.VerifierDetails.VerifierCity},
		{"verifier_details.verifier_accreditation_number", item.VerifierDetails.VerifierAccreditationNumber},
		{"verifier_details.verifier_country", item.VerifierDetails.VerifierCountry},
	} {
		if f.value == "" {
			v.fail(f.path, "", reasonRequired)
		}
	}

	for _, m := range item.MonitoringMethods.methods() {
		if !m.method.Value.Valid() {
			v.fail("monitoring_methods."+m.letter+".value", string(m.method.Value), reasonNotFlag)
		}
		if m.method.Description == "" {
			v.fail("monitoring_methods."+m.letter+".description", "", reasonRequired)
		}
	}

	item.check(v)
	return v.err()
}

// check enforces the invariants shared by both validation paths.
func (item *VesselItem) check(v *validator) {
	if item.IMONumber != "" && !imoNumberPattern.MatchString(item.IMONumber) {
		v.fail("imo_number", item.IMONumber, reasonIMONumber)
	}

	for _, leaf := range item.Measurements.Leaves() {
		if !leaf.Metric.Unit.Valid() {
			v.fail(leaf.Path+".unit", string(leaf.Metric.Unit), reasonUnit)
		}
	}

	co2 := &item.CO2EmissionsMetrics.AllVoyages
	for _, d := range []struct {
		path   string
		metric *Metric
	}{
		{"co2_emissions_metrics.all_voyages.between_ports", &co2.BetweenPorts},
		{"co2_emissions_metrics.all_voyages.departed_from_ports", &co2.DepartedFromPorts},
		{"co2_emissions_metrics.all_voyages.to_ports", &co2.ToPorts},
		{"co2_emissions_metrics.all_voyages.within_ports_at_berth", &co2.WithinPortsAtBerth},
	} {
		if d.metric.Description == "" {
			v.fail(d.path+".description", "", reasonRequired)
		}
	}
}
