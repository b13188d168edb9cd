package adapter

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeParams decodes adapter-specific settings from Config.Params into
// out, which must be a pointer to a struct with mapstructure tags. Scalars
// are converted weakly so values from env or flags ("2") fit numeric fields.
func DecodeParams(params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid adapter params: %w", err)
	}
	return nil
}
