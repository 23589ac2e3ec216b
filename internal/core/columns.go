package core

// columns.go names every normalized column of an EU MRV emissions export.
//
// Column names are the output of NormalizeColumn applied to the published
// header row, so "CO₂ emissions assigned to Freight transport [m tonnes]"
// becomes ColCO2FreightTransport. The builder reads only these constants and
// the rule table is checked against the builder at load time.

// Identity, certificate and verifier columns.
const (
	ColIMONumber                   = "imo_number"
	ColName                        = "name"
	ColShipType                    = "ship_type"
	ColReportingPeriod             = "reporting_period"
	ColTechnicalEfficiency         = "technical_efficiency"
	ColPortOfRegistry              = "port_of_registry"
	ColHomePort                    = "home_port"
	ColIceClass                    = "ice_class"
	ColDocIssueDate                = "doc_issue_date"
	ColDocExpiryDate               = "doc_expiry_date"
	ColVerifierNumber              = "verifier_number"
	ColVerifierName                = "verifier_name"
	ColVerifierNAB                 = "verifier_nab"
	ColVerifierAddress             = "verifier_address"
	ColVerifierCity                = "verifier_city"
	ColVerifierAccreditationNumber = "verifier_accreditation_number"
	ColVerifierCountry             = "verifier_country"
	ColAdditionalInformation       = "additional_information_to_facilitate_the_understanding_of_the_reported_average_operational_energy_efficiency_indicators"
)

// Monitoring method flag columns.
const (
	ColMonitoringA = "a"
	ColMonitoringB = "b"
	ColMonitoringC = "c"
	ColMonitoringD = "d"
)

// Totals and Member State jurisdiction columns.
const (
	ColTotalFuelConsumption       = "total_fuel_consumption_m_tonnes"
	ColLadenFuelConsumption       = "fuel_consumptions_assigned_to_on_laden_m_tonnes"
	ColTotalCO2Emissions          = "total_co_emissions_m_tonnes"
	ColCO2BetweenPorts            = "co_emissions_from_all_voyages_between_ports_under_a_ms_jurisdiction_m_tonnes"
	ColCO2DepartedFromPorts       = "co_emissions_from_all_voyages_which_departed_from_ports_under_a_ms_jurisdiction_m_tonnes"
	ColCO2ToPorts                 = "co_emissions_from_all_voyages_to_ports_under_a_ms_jurisdiction_m_tonnes"
	ColCO2WithinPortsAtBerth      = "co_emissions_which_occurred_within_ports_under_a_ms_jurisdiction_at_berth_m_tonnes"
	ColCO2PassengerTransport      = "co_emissions_assigned_to_passenger_transport_m_tonnes"
	ColCO2FreightTransport        = "co_emissions_assigned_to_freight_transport_m_tonnes"
	ColLadenCO2Emissions          = "co_emissions_assigned_to_on_laden_m_tonnes"
	ColAnnualTotalTimeSpentAtSea  = "annual_total_time_spent_at_sea_hours"
	ColDistanceThroughIce         = "through_ice_n_miles"
	ColTotalTimeSpentAtSea        = "total_time_spent_at_sea_hours"
	ColTotalTimeSpentAtSeaThruIce = "total_time_spent_at_sea_through_ice_hours"
	ColAverageCargoDensity        = "average_density_of_the_cargo_transported_m_tonnes_m"
)

// Annual average fuel consumption columns (all voyages).
const (
	ColFuelAnnualPerDistance = "annual_average_fuel_consumption_per_distance_kg_n_mile"
	ColFuelAnnualMass        = "annual_average_fuel_consumption_per_transport_work_mass_g_m_tonnes_n_miles"
	ColFuelAnnualVolume      = "annual_average_fuel_consumption_per_transport_work_volume_g_m_n_miles"
	ColFuelAnnualDWT         = "annual_average_fuel_consumption_per_transport_work_dwt_g_dwt_carried_n_miles"
	ColFuelAnnualPax         = "annual_average_fuel_consumption_per_transport_work_pax_g_pax_n_miles"
	ColFuelAnnualFreight     = "annual_average_fuel_consumption_per_transport_work_freight_g_m_tonnes_n_miles"
)

// Annual average CO₂ emission columns (all voyages).
const (
	ColCO2AnnualPerDistance = "annual_average_co_emissions_per_distance_kg_co_n_mile"
	ColCO2AnnualMass        = "annual_average_co_emissions_per_transport_work_mass_g_co_m_tonnes_n_miles"
	ColCO2AnnualVolume      = "annual_average_co_emissions_per_transport_work_volume_g_co_m_n_miles"
	ColCO2AnnualDWT         = "annual_average_co_emissions_per_transport_work_dwt_g_co_dwt_carried_n_miles"
	ColCO2AnnualPax         = "annual_average_co_emissions_per_transport_work_pax_g_co_pax_n_miles"
	ColCO2AnnualFreight     = "annual_average_co_emissions_per_transport_work_freight_g_co_m_tonnes_n_miles"
)

// Laden voyage fuel consumption columns.
const (
	ColFuelLadenPerDistance = "fuel_consumption_per_distance_on_laden_voyages_kg_n_mile"
	ColFuelLadenMass        = "fuel_consumption_per_transport_work_mass_on_laden_voyages_g_m_tonnes_n_miles"
	ColFuelLadenVolume      = "fuel_consumption_per_transport_work_volume_on_laden_voyages_g_m_n_miles"
	ColFuelLadenDWT         = "fuel_consumption_per_transport_work_dwt_on_laden_voyages_g_dwt_carried_n_miles"
	ColFuelLadenPax         = "fuel_consumption_per_transport_work_pax_on_laden_voyages_g_pax_n_miles"
	ColFuelLadenFreight     = "fuel_consumption_per_transport_work_freight_on_laden_voyages_g_m_tonnes_n_miles"
)

// Laden voyage CO₂ emission columns.
const (
	ColCO2LadenPerDistance = "co_emissions_per_distance_on_laden_voyages_kg_co_n_mile"
	ColCO2LadenMass        = "co_emissions_per_transport_work_mass_on_laden_voyages_g_co_m_tonnes_n_miles"
	ColCO2LadenVolume      = "co_emissions_per_transport_work_volume_on_laden_voyages_g_co_m_n_miles"
	ColCO2LadenDWT         = "co_emissions_per_transport_work_dwt_on_laden_voyages_g_co_dwt_carried_n_miles"
	ColCO2LadenPax         = "co_emissions_per_transport_work_pax_on_laden_voyages_g_co_pax_n_miles"
	ColCO2LadenFreight     = "co_emissions_per_transport_work_freight_on_laden_voyages_g_co_m_tonnes_n_miles"
)
