package config

import "github.com/mathias-mike/arrow/pkg/sqlarrow"

// Default configuration values.
const (
	DefaultOutput  = "auto"
	DefaultAdapter = "sqlite"
	EnvPrefix      = "SQLARROW_"
)

// OutputFormats lists the accepted values of the output option.
var OutputFormats = []string{"auto", "table", "json", "yaml"}

func defaults() map[string]any {
	return map[string]any{
		"adapter":                DefaultAdapter,
		"output":                 DefaultOutput,
		"verbose":                false,
		"include_metadata":       false,
		"reuse_output_container": false,
		"target_batch_size":      sqlarrow.DefaultTargetBatchSize,
	}
}
