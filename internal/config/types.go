// Package config loads conversion profiles.
//
// A profile names the database to describe and the sqlarrow conversion
// policy to apply. Values come from defaults, a YAML profile file,
// SQLARROW_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/mathias-mike/arrow/pkg/adapter"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"
)

// FieldSpec is the profile form of a column descriptor override.
type FieldSpec struct {
	Type      sqlarrow.NativeType `koanf:"type"`
	TypeName  string              `koanf:"type_name"`
	Precision int32               `koanf:"precision"`
	Scale     int32               `koanf:"scale"`
}

// FieldInfo converts the profile entry to a descriptor.
func (s FieldSpec) FieldInfo() sqlarrow.FieldInfo {
	return sqlarrow.FieldInfo{
		Type:      s.Type,
		TypeName:  s.TypeName,
		Precision: s.Precision,
		Scale:     s.Scale,
	}
}

// OverrideConfig holds overrides keyed by 1-based column index or by label.
type OverrideConfig struct {
	ByIndex map[int]FieldSpec    `koanf:"by_index"`
	ByName  map[string]FieldSpec `koanf:"by_name"`
}

func (o OverrideConfig) byIndex() map[int]sqlarrow.FieldInfo {
	if o.ByIndex == nil {
		return nil
	}
	m := make(map[int]sqlarrow.FieldInfo, len(o.ByIndex))
	for k, v := range o.ByIndex {
		m[k] = v.FieldInfo()
	}
	return m
}

func (o OverrideConfig) byName() map[string]sqlarrow.FieldInfo {
	if o.ByName == nil {
		return nil
	}
	m := make(map[string]sqlarrow.FieldInfo, len(o.ByName))
	for k, v := range o.ByName {
		m[k] = v.FieldInfo()
	}
	return m
}

// Profile holds all options of a describe run.
type Profile struct {
	Adapter string         `koanf:"adapter"`
	DSN     string         `koanf:"dsn"`
	Params  map[string]any `koanf:"params"`
	Queries []string       `koanf:"queries"`
	Output  string         `koanf:"output"`
	Verbose bool           `koanf:"verbose"`

	IncludeMetadata      bool                  `koanf:"include_metadata"`
	ReuseOutputContainer bool                  `koanf:"reuse_output_container"`
	TargetBatchSize      int                   `koanf:"target_batch_size"`
	TimeZone             string                `koanf:"time_zone"`
	RoundingMode         sqlarrow.RoundingMode `koanf:"rounding_mode"`
	ExplicitTypes        OverrideConfig        `koanf:"explicit_types"`
	ArraySubTypes        OverrideConfig        `koanf:"array_sub_types"`
}

// AdapterConfig returns the connection settings of the profile.
func (p *Profile) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:   strings.ToLower(p.Adapter),
		DSN:    p.DSN,
		Params: p.Params,
	}
}

// Validate checks the fields needed to run a describe.
// It uses the adapter registry to determine which adapter types are available.
func (p *Profile) Validate() error {
	if p.Adapter == "" {
		return fmt.Errorf("adapter is required")
	}
	if _, err := adapter.Lookup(p.Adapter); err != nil {
		return err
	}
	if len(p.Queries) == 0 {
		return fmt.Errorf("at least one query is required")
	}
	if !isOutputFormat(p.Output) {
		return fmt.Errorf("unknown output format %q (want one of %s)", p.Output, strings.Join(OutputFormats, ", "))
	}
	return nil
}

func isOutputFormat(s string) bool {
	for _, f := range OutputFormats {
		if f == s {
			return true
		}
	}
	return false
}
