package config

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"
)

var (
	nativeTypeType   = reflect.TypeOf(sqlarrow.NativeType(0))
	roundingModeType = reflect.TypeOf(sqlarrow.RoundingMode(0))
)

// nativeTypeHook accepts type names ("DECIMAL") and numeric codes (3 or
// "3") for sqlarrow.NativeType fields. Codes must name a known type.
func nativeTypeHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != nativeTypeType {
			return data, nil
		}
		var s string
		switch from.Kind() {
		case reflect.String:
			s = data.(string)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			s = fmt.Sprint(data)
		default:
			return data, nil
		}
		t, ok := sqlarrow.ParseNativeType(s)
		if !ok {
			return nil, fmt.Errorf("unknown sql type %q", s)
		}
		return t, nil
	}
}

// roundingModeHook accepts mode names ("half_even", "HALF-UP").
func roundingModeHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != roundingModeType || from.Kind() != reflect.String {
			return data, nil
		}
		m, ok := sqlarrow.ParseRoundingMode(data.(string))
		if !ok {
			return nil, fmt.Errorf("unknown rounding mode %q", data)
		}
		return m, nil
	}
}

func decoderConfig(out any) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			nativeTypeHook(),
			roundingModeHook(),
		),
		Result:           out,
		TagName:          "koanf",
		WeaklyTypedInput: true,
	}
}
