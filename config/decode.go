package config

import (
	"github.com/mitchellh/mapstructure"
)

// A DecoderConfigOption can be passed to Decode to configure
// mapstructure.DecoderConfig options
type DecoderConfigOption func(*mapstructure.DecoderConfig)

// DecodeHook returns a DecoderConfigOption which overrides the default
// DecoderConfig.DecodeHook value, the default is:
//
//	mapstructure.ComposeDecodeHookFunc(
//		mapstructure.StringToTimeDurationHookFunc(),
//		mapstructure.StringToSliceHookFunc(","),
//	)
func DecodeHook(hook mapstructure.DecodeHookFunc) DecoderConfigOption {
	return func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = hook
	}
}

// ErrorUnused makes Decode fail on keys with no matching field.
func ErrorUnused() DecoderConfigOption {
	return func(c *mapstructure.DecoderConfig) {
		c.ErrorUnused = true
	}
}

// defaultDecoderConfig returns default mapsstructure.DecoderConfig with support
// of time.Duration values & string slices
func defaultDecoderConfig(output interface{}, opts ...DecoderConfigOption) *mapstructure.DecoderConfig {
	c := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           output,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode fills the struct pointed to by out from the snapshot. Field names
// match keys case insensitively, or use a `mapstructure:"key"` tag.
// Values are converted weakly, so "8080" fits an int field and "10s" a
// time.Duration.
func (s *Snapshot) Decode(out interface{}, opts ...DecoderConfigOption) error {
	decoder, err := mapstructure.NewDecoder(defaultDecoderConfig(out, opts...))
	if err != nil {
		return err
	}
	return decoder.Decode(s.Map())
}
