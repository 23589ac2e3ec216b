package core

// rules.go loads the cleaning rule table that assigns every source column to
// a cleaning group.
//
// The table is YAML (JSON documents are valid YAML and load the same way).
// An embedded default ships with the binary; deployments may point
// INGEST_RULES_PATH at a file or an s3:// object instead. A table is only
// accepted when its groups are disjoint and cover exactly the columns the
// item builder reads, so a renamed column fails at startup rather than
// silently producing null metrics.

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed column_type_mappings.yaml
var defaultColumnTypeMapping []byte

// Defaults for the optional groups.
var (
	defaultMonitoringColumns = []string{ColMonitoringA, ColMonitoringB, ColMonitoringC, ColMonitoringD}
	defaultEfficiencyColumns = []string{ColTechnicalEfficiency}
	defaultIntegerColumns    = []string{ColReportingPeriod}
)

// ColumnTypeMapping is the cleaning rule table.
type ColumnTypeMapping struct {
	Float      []string `yaml:"float_columns"`
	UpperCase  []string `yaml:"upper_case_columns"`
	Date       []string `yaml:"date_columns"`
	Text       []string `yaml:"text_columns"`
	Monitoring []string `yaml:"monitoring_method_columns"`
	Efficiency []string `yaml:"efficiency_columns"`
	Integer    []string `yaml:"integer_columns"`

	// DateLayout is the Go layout of date cells (default: DefaultDateLayout).
	DateLayout string `yaml:"date_layout"`
}

// Cleaner transforms one cleaned cell.
type Cleaner func(Value) Value

// ruleGroup is one named group of the table with its cleaner.
// A nil cleaner leaves values untouched.
type ruleGroup struct {
	name    string
	columns []string
	clean   Cleaner
}

// ParseColumnTypeMapping decodes and validates a rule table.
// Unknown keys are rejected.
func ParseColumnTypeMapping(data []byte) (*ColumnTypeMapping, error) {
	var m ColumnTypeMapping

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: decode rule table: %v", ErrRulesConfig, err)
	}

	if m.Monitoring == nil {
		m.Monitoring = slices.Clone(defaultMonitoringColumns)
	}
	if m.Efficiency == nil {
		m.Efficiency = slices.Clone(defaultEfficiencyColumns)
	}
	if m.Integer == nil {
		m.Integer = slices.Clone(defaultIntegerColumns)
	}
	if m.DateLayout == "" {
		m.DateLayout = DefaultDateLayout
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// DefaultColumnTypeMapping returns the embedded rule table.
func DefaultColumnTypeMapping() (*ColumnTypeMapping, error) {
	return ParseColumnTypeMapping(defaultColumnTypeMapping)
}

// LoadColumnTypeMapping reads a rule table from path, or returns the embedded
// default when path is empty.
func LoadColumnTypeMapping(path string) (*ColumnTypeMapping, error) {
	if path == "" {
		return DefaultColumnTypeMapping()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrRulesConfig, path, err)
	}
	return ParseColumnTypeMapping(data)
}

// Validate checks that every group is present, no column is listed twice
// and the groups cover exactly the columns the item builder reads.
func (m *ColumnTypeMapping) Validate() error {
	var errs []string

	required := map[string][]string{
		"float_columns":      m.Float,
		"upper_case_columns": m.UpperCase,
		"date_columns":       m.Date,
		"text_columns":       m.Text,
	}
	for _, name := range []string{"float_columns", "upper_case_columns", "date_columns", "text_columns"} {
		if required[name] == nil {
			errs = append(errs, name+" is required")
		}
	}

	owner := make(map[string]string)
	for _, g := range m.groups() {
		for _, col := range g.columns {
			if prev, ok := owner[col]; ok {
				errs = append(errs, fmt.Sprintf("column %q is listed in both %s and %s", col, prev, g.name))
				continue
			}
			owner[col] = g.name
		}
	}

	read := make(map[string]bool)
	for _, col := range SourceColumns() {
		read[col] = true
		if _, ok := owner[col]; !ok {
			errs = append(errs, fmt.Sprintf("column %q has no cleaning group", col))
		}
	}

	var unknown []string
	for col := range owner {
		if !read[col] {
			unknown = append(unknown, col)
		}
	}
	slices.Sort(unknown)
	for _, col := range unknown {
		errs = append(errs, fmt.Sprintf("column %q in %s is not a known source column", col, owner[col]))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrRulesConfig, strings.Join(errs, "\n  - "))
	}
	return nil
}

// groups returns the rule groups in application order.
func (m *ColumnTypeMapping) groups() []ruleGroup {
	layout := m.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}

	return []ruleGroup{
		{name: "float_columns", columns: m.Float, clean: cleanNumeric},
		{name: "upper_case_columns", columns: m.UpperCase, clean: cleanUpperCase},
		{name: "date_columns", columns: m.Date, clean: dateCleaner(layout)},
		{name: "text_columns", columns: m.Text},
		{name: "monitoring_method_columns", columns: m.Monitoring, clean: cleanMonitoringFlag},
		{name: "efficiency_columns", columns: m.Efficiency, clean: cleanEfficiency},
		{name: "integer_columns", columns: m.Integer, clean: cleanInteger},
	}
}

// ConfigSource supplies the cleaning rule table.
type ConfigSource interface {
	LoadColumnTypeMapping(ctx context.Context) (*ColumnTypeMapping, error)
}

// FileConfigSource loads the rule table from a local file.
// An empty Path selects the embedded default.
type FileConfigSource struct {
	Path string
}

func (s FileConfigSource) LoadColumnTypeMapping(ctx context.Context) (*ColumnTypeMapping, error) {
	return LoadColumnTypeMapping(s.Path)
}

// BlobConfigSource loads the rule table from an object in a blob store.
type BlobConfigSource struct {
	Blobs   BlobSource
	Locator Locator
}

func (s BlobConfigSource) LoadColumnTypeMapping(ctx context.Context) (*ColumnTypeMapping, error) {
	data, err := s.Blobs.Fetch(ctx, s.Locator)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrRulesConfig, s.Locator, err)
	}
	return ParseColumnTypeMapping(data)
}

// RulesSource picks the ConfigSource for a rule table setting: an s3://
// locator is fetched through blobs, anything else is a local path.
func RulesSource(setting string, blobs BlobSource) (ConfigSource, error) {
	if !strings.HasPrefix(setting, "s3://") {
		return FileConfigSource{Path: setting}, nil
	}
	loc, err := ParseLocator(setting)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRulesConfig, err)
	}
	return BlobConfigSource{Blobs: blobs, Locator: loc}, nil
}
