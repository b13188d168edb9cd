package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"
	"github.com/spf13/pflag"
)

// ProfileFileName is the profile picked up from the working directory when
// no --profile is given.
const ProfileFileName = "sqlarrow.yaml"

// flagKeys maps flag names to profile keys where they differ.
var flagKeys = map[string]string{
	"batch-size": "target_batch_size",
	"query":      "queries",
	"param":      "params",
}

// BindFlags registers the profile flags on fs. Only flags the user sets
// override the profile.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("profile", "", "Path to a profile YAML file (default ./"+ProfileFileName+")")
	fs.String("adapter", DefaultAdapter, "Database adapter (sqlite, postgres, duckdb)")
	fs.String("dsn", "", "Data source name passed to the driver")
	fs.StringToString("param", nil, "Adapter parameter as key=value (repeatable)")
	fs.StringArrayP("query", "q", nil, "Query to describe (repeatable)")
	fs.StringP("output", "o", DefaultOutput, "Output format: "+strings.Join(OutputFormats, ", "))
	fs.Bool("include-metadata", false, "Attach column metadata to schema fields")
	fs.Int("batch-size", sqlarrow.DefaultTargetBatchSize, "Target rows per record batch")
	fs.String("time-zone", "", "IANA zone for TIMESTAMP columns")
	fs.String("rounding-mode", "", "Decimal rounding mode (up, down, ceiling, floor, half_up, half_down, half_even, unnecessary)")
}

// Load builds a profile from defaults, the profile file, environment
// variables and flags.
// Precedence (highest to lowest): flags > env vars > profile file > defaults
func Load(profilePath string, flags *pflag.FlagSet) (*Profile, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load the profile file
	path := findProfile(profilePath)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading profile %s: %w", path, err)
		}
	}

	// 3. Load environment variables (SQLARROW_ prefix)
	// Transform: SQLARROW_TARGET_BATCH_SIZE -> target_batch_size,
	// SQLARROW_EXPLICIT_TYPES__BY_NAME__ID__TYPE -> explicit_types.by_name.id.type
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagValue(flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var p Profile
	if err := k.UnmarshalWithConf("", &p, koanf.UnmarshalConf{DecoderConfig: decoderConfig(&p)}); err != nil {
		return nil, fmt.Errorf("unable to decode profile: %w", err)
	}
	return &p, nil
}

// findProfile returns the explicit path, or ProfileFileName when it exists
// in the working directory.
func findProfile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ProfileFileName); err == nil {
		return ProfileFileName
	}
	return ""
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func flagValue(flags *pflag.FlagSet) func(f *pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		// Only load flags that were explicitly set
		if !f.Changed || f.Name == "profile" {
			return "", nil
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}

		switch f.Name {
		case "query":
			queries, _ := flags.GetStringArray(f.Name)
			return key, queries
		case "param":
			params, _ := flags.GetStringToString(f.Name)
			m := make(map[string]any, len(params))
			for name, v := range params {
				m[name] = v
			}
			return key, m
		}
		return key, posflag.FlagVal(flags, f)
	}
}
