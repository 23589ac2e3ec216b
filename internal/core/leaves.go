package core

// MetricLeaf is one metric of a measurement tree together with its JSON path.
type MetricLeaf[V any] struct {
	Path   string
	Metric *MetricOf[V]
}

// Leaves lists every metric of m in document order. The order and paths are
// identical for every instantiation, so the leaves of a raw tree and a
// validated tree pair up by index.
func (m *MeasurementsOf[V]) Leaves() []MetricLeaf[V] {
	var out []MetricLeaf[V]
	add := func(path string, metric *MetricOf[V]) {
		out = append(out, MetricLeaf[V]{Path: path, Metric: metric})
	}

	fuel := &m.FuelConsumptionMetrics
	add("fuel_consumption_metrics.all_voyages.total", &fuel.AllVoyages.Total)
	addAnnualAverage(add, "fuel_consumption_metrics.all_voyages.annual_average", &fuel.AllVoyages.AnnualAverage)
	addLadenVoyages(add, "fuel_consumption_metrics.laden_voyages", &fuel.LadenVoyages)

	co2 := &m.CO2EmissionsMetrics.AllVoyages
	add("co2_emissions_metrics.all_voyages.total", &co2.Total)
	add("co2_emissions_metrics.all_voyages.between_ports", &co2.BetweenPorts)
	add("co2_emissions_metrics.all_voyages.departed_from_ports", &co2.DepartedFromPorts)
	add("co2_emissions_metrics.all_voyages.to_ports", &co2.ToPorts)
	add("co2_emissions_metrics.all_voyages.within_ports_at_berth", &co2.WithinPortsAtBerth)
	add("co2_emissions_metrics.all_voyages.passenger_transport", &co2.PassengerTransport)
	add("co2_emissions_metrics.all_voyages.freight_transport", &co2.FreightTransport)
	addAnnualAverage(add, "co2_emissions_metrics.all_voyages.annual_average", &co2.AnnualAverage)
	addLadenVoyages(add, "co2_emissions_metrics.laden_voyages", &m.CO2EmissionsMetrics.LadenVoyages)

	add("time_metrics.annual_total_time_spent_at_sea", &m.TimeMetrics.AnnualTotalTimeSpentAtSea)
	add("time_metrics.total_time_spent_at_sea", &m.TimeMetrics.TotalTimeSpentAtSea)
	add("time_metrics.total_time_spent_at_sea_through_ice", &m.TimeMetrics.TotalTimeSpentAtSeaThroughIce)
	add("distance_metrics.distance_travelled_through_ice", &m.DistanceMetrics.DistanceTravelledThroughIce)
	add("density_metrics.average_cargo_density", &m.DensityMetrics.AverageCargoDensity)

	return out
}

func addAnnualAverage[V any](add func(string, *MetricOf[V]), path string, a *AnnualAverageOf[V]) {
	add(path+".per_distance", &a.PerDistance)
	addPerTransportWork(add, path+".per_transport_work", &a.PerTransportWork)
}

func addLadenVoyages[V any](add func(string, *MetricOf[V]), path string, l *LadenVoyagesOf[V]) {
	add(path+".total", &l.Total)
	add(path+".per_distance", &l.PerDistance)
	addPerTransportWork(add, path+".per_transport_work", &l.PerTransportWork)
}

func addPerTransportWork[V any](add func(string, *MetricOf[V]), path string, p *PerTransportWorkOf[V]) {
	add(path+".mass", &p.Mass)
	add(path+".volume", &p.Volume)
	add(path+".deadweight_tonnage", &p.DeadweightTonnage)
	add(path+".passengers", &p.Passengers)
	add(path+".freight", &p.Freight)
}

type methodLeaf[F any] struct {
	letter string
	method *MethodOf[F]
}

// methods lists the monitoring methods of m with their letters.
func (m *MonitoringMethodsOf[F]) methods() []methodLeaf[F] {
	return []methodLeaf[F]{
		{"a", &m.A},
		{"b", &m.B},
		{"c", &m.C},
		{"d", &m.D},
	}
}
