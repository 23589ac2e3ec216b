package core

// vessel.go defines the validated vessel emissions record and its nested
// metric groups.
//
// The metric groups are generic over the leaf value type so the builder can
// assemble the same tree from cleaned cells (V = Value) that the validator
// later turns into typed values (V = *float64). Both trees share field names,
// JSON paths and the leaf walk in leaves.go.

import (
	"encoding/json"
	"fmt"
	"time"
)

// Unit is the unit of measure attached to a metric.
type Unit string

const (
	UnitNauticalMile      Unit = "nautical mile"
	UnitMetricTonne       Unit = "metric tonne"
	UnitHour              Unit = "hour"
	UnitDensity           Unit = "metric tonne / meter^3"
	UnitEmissionsMass     Unit = "gram / (metric tonne * nautical mile)"
	UnitEmissionsVolume   Unit = "gram / (meter^3 * nautical mile)"
	UnitEmissionsDistance Unit = "kilogram / nautical mile"
)

// Valid reports whether u is one of the published units.
func (u Unit) Valid() bool {
	switch u {
	case UnitNauticalMile, UnitMetricTonne, UnitHour, UnitDensity,
		UnitEmissionsMass, UnitEmissionsVolume, UnitEmissionsDistance:
		return true
	}
	return false
}

// Flag is a Yes/No monitoring method indicator.
type Flag string

const (
	FlagYes Flag = "Yes"
	FlagNo  Flag = "No"
)

// Valid reports whether f is a canonical flag.
func (f Flag) Valid() bool { return f == FlagYes || f == FlagNo }

// Monitoring method descriptions, fixed per method letter.
const (
	MethodDescriptionA = "BDN and period stock takes of fuel tanks"
	MethodDescriptionB = "Bunker fuel tank monitoring on-board"
	MethodDescriptionC = "Flow meters for applicable combustion processes"
	MethodDescriptionD = "Direct CO2 emissions measurement"
)

// Member State jurisdiction descriptions for CO₂ emission metrics.
const (
	DescriptionBetweenPorts       = "CO2 emissions from all voyages between ports under a Member State jurisdiction"
	DescriptionDepartedFromPorts  = "CO2 emissions from all voyages which departed from ports under a Member State jurisdiction"
	DescriptionToPorts            = "CO2 emissions from all voyages to ports under a Member State jurisdiction"
	DescriptionWithinPortsAtBerth = "CO2 emissions which occurred within ports under a Member State jurisdiction at berth"
)

// MetricOf is a measured quantity with its unit.
// Description is set only for the jurisdiction metrics.
type MetricOf[V any] struct {
	Value       V      `json:"value"`
	Unit        Unit   `json:"unit"`
	Description string `json:"description,omitempty"`
}

// PerTransportWorkOf groups the per-transport-work breakdown.
type PerTransportWorkOf[V any] struct {
	Mass              MetricOf[V] `json:"mass"`
	Volume            MetricOf[V] `json:"volume"`
	DeadweightTonnage MetricOf[V] `json:"deadweight_tonnage"`
	Passengers        MetricOf[V] `json:"passengers"`
	Freight           MetricOf[V] `json:"freight"`
}

// AnnualAverageOf holds the all-voyage annual averages.
type AnnualAverageOf[V any] struct {
	PerDistance      MetricOf[V]           `json:"per_distance"`
	PerTransportWork PerTransportWorkOf[V] `json:"per_transport_work"`
}

// LadenVoyagesOf holds the laden voyage figures of either fuel or CO₂.
type LadenVoyagesOf[V any] struct {
	Total            MetricOf[V]           `json:"total"`
	PerDistance      MetricOf[V]           `json:"per_distance"`
	PerTransportWork PerTransportWorkOf[V] `json:"per_transport_work"`
}

// FuelConsumptionAllVoyagesOf is total fuel consumption and its annual averages.
type FuelConsumptionAllVoyagesOf[V any] struct {
	Total         MetricOf[V]        `json:"total"`
	AnnualAverage AnnualAverageOf[V] `json:"annual_average"`
}

// FuelConsumptionMetricsOf groups fuel consumption over all voyages and laden voyages.
type FuelConsumptionMetricsOf[V any] struct {
	AllVoyages   FuelConsumptionAllVoyagesOf[V] `json:"all_voyages"`
	LadenVoyages LadenVoyagesOf[V]              `json:"laden_voyages"`
}

// CO2EmissionsAllVoyagesOf is total CO₂ emissions, split by jurisdiction and transport type.
type CO2EmissionsAllVoyagesOf[V any] struct {
	Total              MetricOf[V]        `json:"total"`
	BetweenPorts       MetricOf[V]        `json:"between_ports"`
	DepartedFromPorts  MetricOf[V]        `json:"departed_from_ports"`
	ToPorts            MetricOf[V]        `json:"to_ports"`
	WithinPortsAtBerth MetricOf[V]        `json:"within_ports_at_berth"`
	PassengerTransport MetricOf[V]        `json:"passenger_transport"`
	FreightTransport   MetricOf[V]        `json:"freight_transport"`
	AnnualAverage      AnnualAverageOf[V] `json:"annual_average"`
}

// CO2EmissionsMetricsOf groups CO₂ emissions over all voyages and laden voyages.
type CO2EmissionsMetricsOf[V any] struct {
	AllVoyages   CO2EmissionsAllVoyagesOf[V] `json:"all_voyages"`
	LadenVoyages LadenVoyagesOf[V]           `json:"laden_voyages"`
}

// TimeMetricsOf holds the time spent at sea, including through ice.
type TimeMetricsOf[V any] struct {
	AnnualTotalTimeSpentAtSea     MetricOf[V] `json:"annual_total_time_spent_at_sea"`
	TotalTimeSpentAtSea           MetricOf[V] `json:"total_time_spent_at_sea"`
	TotalTimeSpentAtSeaThroughIce MetricOf[V] `json:"total_time_spent_at_sea_through_ice"`
}

// DistanceMetricsOf holds the distance travelled through ice.
type DistanceMetricsOf[V any] struct {
	DistanceTravelledThroughIce MetricOf[V] `json:"distance_travelled_through_ice"`
}

// DensityMetricsOf holds the average cargo density.
type DensityMetricsOf[V any] struct {
	AverageCargoDensity MetricOf[V] `json:"average_cargo_density"`
}

// MeasurementsOf is every metric group of a vessel record.
type MeasurementsOf[V any] struct {
	FuelConsumptionMetrics FuelConsumptionMetricsOf[V] `json:"fuel_consumption_metrics"`
	CO2EmissionsMetrics    CO2EmissionsMetricsOf[V]    `json:"co2_emissions_metrics"`
	TimeMetrics            TimeMetricsOf[V]            `json:"time_metrics"`
	DistanceMetrics        DistanceMetricsOf[V]        `json:"distance_metrics"`
	DensityMetrics         DensityMetricsOf[V]         `json:"density_metrics"`
}

// MethodOf is a monitoring method flag with its fixed description.
type MethodOf[F any] struct {
	Value       F      `json:"value"`
	Description string `json:"description"`
}

// MonitoringMethodsOf holds the four EU MRV monitoring method flags, A to D.
type MonitoringMethodsOf[F any] struct {
	A MethodOf[F] `json:"a"`
	B MethodOf[F] `json:"b"`
	C MethodOf[F] `json:"c"`
	D MethodOf[F] `json:"d"`
}

// Validated instantiations of the metric tree, produced by Validate.
type (
	Metric            = MetricOf[*float64]
	Measurements      = MeasurementsOf[*float64]
	Method            = MethodOf[Flag]
	MonitoringMethods = MonitoringMethodsOf[Flag]
)

// VerifierDetails identifies the accredited verifier of a report.
type VerifierDetails struct {
	VerifierNumber              *string `json:"verifier_number"`
	VerifierName                string  `json:"verifier_name"`
	VerifierAccreditationBody   string  `json:"verifier_accreditation_body"`
	VerifierAddress             string  `json:"verifier_address"`
	VerifierCity                string  `json:"verifier_city"`
	VerifierAccreditationNumber string  `json:"verifier_accreditation_number"`
	VerifierCountry             string  `json:"verifier_country"`
}

// VesselItem is one validated vessel record for one reporting period.
// Its identity is (ReportingPeriod, IMONumber); see KeyFor.
type VesselItem struct {
	IMONumber           string            `json:"imo_number"`
	Name                string            `json:"name"`
	ShipType            string            `json:"ship_type"`
	ReportingPeriod     int               `json:"reporting_period"`
	TechnicalEfficiency *float64          `json:"technical_efficiency"`
	PortOfRegistry      *string           `json:"port_of_registry"`
	HomePort            *string           `json:"home_port"`
	IceClass            *string           `json:"ice_class"`
	DocIssueDate        *Date             `json:"doc_issue_date"`
	DocExpiryDate       *Date             `json:"doc_expiry_date"`
	VerifierDetails     VerifierDetails   `json:"verifier_details"`
	MonitoringMethods   MonitoringMethods `json:"monitoring_methods"`
	Measurements
	AdditionalInformation *string `json:"additional_information"`
}

// Date is a calendar date without time or zone, encoded as YYYY-MM-DD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseISODate parses a YYYY-MM-DD string.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseISODate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
