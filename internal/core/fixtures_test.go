package core

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"testing"
)

// astoriaRow is a complete raw row as it appears in a published export.
func astoriaRow() RawRow {
	row := RawRow{
		ColIMONumber:                   "9876543",
		ColName:                        "astoria",
		ColShipType:                    "Passenger ship",
		ColReportingPeriod:             "2021",
		ColTechnicalEfficiency:         "EIV (45.57 gCO₂/t·nm)",
		ColPortOfRegistry:              "valletta",
		ColHomePort:                    "N/A",
		ColIceClass:                    "1A",
		ColDocIssueDate:                "6/7/2021",
		ColDocExpiryDate:               "30/6/2022",
		ColVerifierNumber:              "12345",
		ColVerifierName:                "dnv",
		ColVerifierNAB:                 "ukas",
		ColVerifierAddress:             "1 high street",
		ColVerifierCity:                "london",
		ColVerifierAccreditationNumber: "0001",
		ColVerifierCountry:             "united kingdom",
		ColMonitoringA:                 "Yes",
		ColMonitoringB:                 "",
		ColMonitoringC:                 "",
		ColMonitoringD:                 "",
		ColAdditionalInformation:       "Not Applicable",
	}

	rules := mustDefaultRules(nil)
	for _, col := range rules.Float {
		row[col] = "1.5"
	}
	row[ColTotalFuelConsumption] = "1234.567"
	row[ColCO2BetweenPorts] = "Division by zero!"
	row[ColAverageCargoDensity] = "Not Applicable"
	return row
}

// astoriaCSV renders rows as CSV records under a title row and a header
// row, the way exports are published.
func astoriaCSV(rows ...RawRow) [][]string {
	header := slices.Sorted(maps.Keys(astoriaRow()))
	records := [][]string{
		{"EU MRV emissions report", "generated 2022-06-30"},
		header,
	}
	for _, row := range rows {
		rec := make([]string, len(header))
		for i, col := range header {
			rec[i] = row[col]
		}
		records = append(records, rec)
	}
	return records
}

func mustDefaultRules(t *testing.T) *ColumnTypeMapping {
	rules, err := DefaultColumnTypeMapping()
	if err != nil {
		if t != nil {
			t.Fatalf("DefaultColumnTypeMapping: %v", err)
		}
		panic(err)
	}
	return rules
}

func fptr(f float64) *float64 { return &f }

// fakeBlobs serves objects by key, ignoring the bucket.
type fakeBlobs map[string][]byte

func (f fakeBlobs) Fetch(ctx context.Context, loc Locator) ([]byte, error) {
	data, ok := f[loc.Key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", loc, ErrBlobNotFound)
	}
	return data, nil
}
