package core

// builder.go remaps a flat cleaned row onto the nested vessel record shape.
//
// The builder is a pure path remap: it attaches the fixed unit and
// description of each metric and reads exactly one column per leaf. It does
// no type checking; that is the validator's job.

// RawVesselItem is the nested record assembled from cleaned cells before
// validation.
type RawVesselItem struct {
	IMONumber           Value
	Name                Value
	ShipType            Value
	ReportingPeriod     Value
	TechnicalEfficiency Value
	PortOfRegistry      Value
	HomePort            Value
	IceClass            Value
	DocIssueDate        Value
	DocExpiryDate       Value
	VerifierDetails     RawVerifierDetails
	MonitoringMethods   MonitoringMethodsOf[Value]
	MeasurementsOf[Value]
	AdditionalInformation Value
}

// RawVerifierDetails mirrors VerifierDetails with unvalidated cells.
type RawVerifierDetails struct {
	VerifierNumber              Value
	VerifierName                Value
	VerifierAccreditationBody   Value
	VerifierAddress             Value
	VerifierCity                Value
	VerifierAccreditationNumber Value
	VerifierCountry             Value
}

// Build assembles a RawVesselItem from a cleaned row.
//
// It fails with a *MissingFieldError when a column the builder reads is
// absent from the row. A missing identifying column (imo_number,
// reporting_period) is reported in preference to any other.
func Build(row CleanedRow) (*RawVesselItem, error) {
	for _, col := range []string{ColIMONumber, ColReportingPeriod} {
		if _, ok := row[col]; !ok {
			return nil, &MissingFieldError{Field: col}
		}
	}

	r := &rowReader{row: row}
	item := r.build()
	if r.missing != "" {
		return nil, &MissingFieldError{Field: r.missing}
	}
	return item, nil
}

// SourceColumns lists every column Build reads, in read order.
func SourceColumns() []string {
	r := &rowReader{record: true}
	r.build()
	return r.columns
}

// rowReader reads cells for the builder and remembers the first absent one.
// In record mode it only collects column names.
type rowReader struct {
	row     CleanedRow
	missing string

	record  bool
	columns []string
}

func (r *rowReader) get(col string) Value {
	if r.record {
		r.columns = append(r.columns, col)
		return NullValue()
	}

	v, ok := r.row[col]
	if !ok && r.missing == "" {
		r.missing = col
	}
	return v
}

func (r *rowReader) metric(col string, unit Unit) MetricOf[Value] {
	return MetricOf[Value]{Value: r.get(col), Unit: unit}
}

func (r *rowReader) described(col string, unit Unit, description string) MetricOf[Value] {
	return MetricOf[Value]{Value: r.get(col), Unit: unit, Description: description}
}

func (r *rowReader) method(col, description string) MethodOf[Value] {
	return MethodOf[Value]{Value: r.get(col), Description: description}
}

func (r *rowReader) perTransportWork(mass, volume, dwt, pax, freight string) PerTransportWorkOf[Value] {
	return PerTransportWorkOf[Value]{
		Mass:              r.metric(mass, UnitEmissionsMass),
		Volume:            r.metric(volume, UnitEmissionsVolume),
		DeadweightTonnage: r.metric(dwt, UnitEmissionsMass),
		Passengers:        r.metric(pax, UnitEmissionsMass),
		Freight:           r.metric(freight, UnitEmissionsMass),
	}
}

func (r *rowReader) build() *RawVesselItem {
	return &RawVesselItem{
		IMONumber:           r.get(ColIMONumber),
		Name:                r.get(ColName),
		ShipType:            r.get(ColShipType),
		ReportingPeriod:     r.get(ColReportingPeriod),
		TechnicalEfficiency: r.get(ColTechnicalEfficiency),
		PortOfRegistry:      r.get(ColPortOfRegistry),
		HomePort:            r.get(ColHomePort),
		IceClass:            r.get(ColIceClass),
		DocIssueDate:        r.get(ColDocIssueDate),
		DocExpiryDate:       r.get(ColDocExpiryDate),
		VerifierDetails: RawVerifierDetails{
			VerifierNumber:              r.get(ColVerifierNumber),
			VerifierName:                r.get(ColVerifierName),
			VerifierAccreditationBody:   r.get(ColVerifierNAB),
			VerifierAddress:             r.get(ColVerifierAddress),
			VerifierCity:                r.get(ColVerifierCity),
			VerifierAccreditationNumber: r.get(ColVerifierAccreditationNumber),
			VerifierCountry:             r.get(ColVerifierCountry),
		},
		MonitoringMethods: MonitoringMethodsOf[Value]{
			A: r.method(ColMonitoringA, MethodDescriptionA),
			B: r.method(ColMonitoringB, MethodDescriptionB),
			C: r.method(ColMonitoringC, MethodDescriptionC),
			D: r.method(ColMonitoringD, MethodDescriptionD),
		},
		MeasurementsOf: MeasurementsOf[Value]{
			FuelConsumptionMetrics: FuelConsumptionMetricsOf[Value]{
				AllVoyages: FuelConsumptionAllVoyagesOf[Value]{
					Total: r.metric(ColTotalFuelConsumption, UnitMetricTonne),
					AnnualAverage: AnnualAverageOf[Value]{
						PerDistance: r.metric(ColFuelAnnualPerDistance, UnitEmissionsDistance),
						PerTransportWork: r.perTransportWork(
							ColFuelAnnualMass, ColFuelAnnualVolume, ColFuelAnnualDWT,
							ColFuelAnnualPax, ColFuelAnnualFreight),
					},
				},
				LadenVoyages: LadenVoyagesOf[Value]{
					Total:       r.metric(ColLadenFuelConsumption, UnitMetricTonne),
					PerDistance: r.metric(ColFuelLadenPerDistance, UnitEmissionsDistance),
					PerTransportWork: r.perTransportWork(
						ColFuelLadenMass, ColFuelLadenVolume, ColFuelLadenDWT,
						ColFuelLadenPax, ColFuelLadenFreight),
				},
			},
			CO2EmissionsMetrics: CO2EmissionsMetricsOf[Value]{
				AllVoyages: CO2EmissionsAllVoyagesOf[Value]{
					Total:              r.metric(ColTotalCO2Emissions, UnitMetricTonne),
					BetweenPorts:       r.described(ColCO2BetweenPorts, UnitMetricTonne, DescriptionBetweenPorts),
					DepartedFromPorts:  r.described(ColCO2DepartedFromPorts, UnitMetricTonne, DescriptionDepartedFromPorts),
					ToPorts:            r.described(ColCO2ToPorts, UnitMetricTonne, DescriptionToPorts),
					WithinPortsAtBerth: r.described(ColCO2WithinPortsAtBerth, UnitMetricTonne, DescriptionWithinPortsAtBerth),
					PassengerTransport: r.metric(ColCO2PassengerTransport, UnitMetricTonne),
					FreightTransport:   r.metric(ColCO2FreightTransport, UnitMetricTonne),
					AnnualAverage: AnnualAverageOf[Value]{
						PerDistance: r.metric(ColCO2AnnualPerDistance, UnitEmissionsDistance),
						PerTransportWork: r.perTransportWork(
							ColCO2AnnualMass, ColCO2AnnualVolume, ColCO2AnnualDWT,
							ColCO2AnnualPax, ColCO2AnnualFreight),
					},
				},
				LadenVoyages: LadenVoyagesOf[Value]{
					Total:       r.metric(ColLadenCO2Emissions, UnitMetricTonne),
					PerDistance: r.metric(ColCO2LadenPerDistance, UnitEmissionsDistance),
					PerTransportWork: r.perTransportWork(
						ColCO2LadenMass, ColCO2LadenVolume, ColCO2LadenDWT,
						ColCO2LadenPax, ColCO2LadenFreight),
				},
			},
			TimeMetrics: TimeMetricsOf[Value]{
				AnnualTotalTimeSpentAtSea:     r.metric(ColAnnualTotalTimeSpentAtSea, UnitHour),
				TotalTimeSpentAtSea:           r.metric(ColTotalTimeSpentAtSea, UnitHour),
				TotalTimeSpentAtSeaThroughIce: r.metric(ColTotalTimeSpentAtSeaThruIce, UnitHour),
			},
			DistanceMetrics: DistanceMetricsOf[Value]{
				DistanceTravelledThroughIce: r.metric(ColDistanceThroughIce, UnitNauticalMile),
			},
			DensityMetrics: DensityMetricsOf[Value]{
				AverageCargoDensity: r.metric(ColAverageCargoDensity, UnitDensity),
			},
		},
		AdditionalInformation: r.get(ColAdditionalInformation),
	}
}
