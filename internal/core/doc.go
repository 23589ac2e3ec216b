// Package core turns EU MRV emissions reports into validated vessel records.
//
// The package holds all domain logic, independent of transport and storage.
// The HTTP server, the ingest CLI and the tests drive it through [Service].
//
// # Pipeline
//
// Every data row of an uploaded report passes through the same stages:
//
//  1. [Records] finds the header row, normalizes it with [NormalizeColumn]
//     and zips each record into a [RawRow].
//  2. [Clean] applies the [ColumnTypeMapping] rule table (numeric, upper
//     case, date, monitoring flag, efficiency and integer cleaners, then
//     null normalization) and returns a [CleanedRow].
//  3. [Build] remaps the flat row onto the nested [RawVesselItem], attaching
//     the fixed unit and description of each metric.
//  4. [Validate] coerces cells to typed values and enforces the record
//     invariants, producing a [VesselItem].
//
// [Processor.Process] runs these stages lazily over a whole file. A failing
// row yields a [RowResult] with a [RowError] and never stops the batch.
//
// # Rule Table
//
// The rule table assigns each source column to exactly one cleaning group.
// It is loaded from YAML (an embedded default, a file, or a blob) and
// checked against [SourceColumns] so drift between the table and the builder
// fails at startup:
//
//	float_columns: [total_fuel_consumption_m_tonnes, ...]
//	upper_case_columns: [name, port_of_registry, ...]
//	date_columns: [doc_issue_date, doc_expiry_date]
//	text_columns: [imo_number, ship_type, ...]
//
// # Storage
//
// Items are stored through a [RecordStore] under the fixed partition
// [PartitionKey] with sort key REPORTING_PERIOD#<period>#IMO_NUMBER#<imo>.
// A later ingestion of the same vessel and period overwrites the earlier one.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]:
//
//   - BLOB001-BLOB002: Upload object errors
//   - FILE001-FILE005: File format errors
//   - CFG001: Rule table errors
//   - STORE001-STORE002: Record store errors
//   - ING001-ING003: Ingestion slot, timeout and cancellation errors
//   - REQ001-REQ002: Malformed requests
package core
