package scriptcfg

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/go-viper/mapstructure/v2"
)

// Settings are the editor preferences a script may override.
type Settings struct {
	TabWidth    int     `mapstructure:"tab_width" json:"tab_width" yaml:"tab_width"`
	Theme       string  `mapstructure:"theme" json:"theme" yaml:"theme"`
	LineNumbers bool    `mapstructure:"line_numbers" json:"line_numbers" yaml:"line_numbers"`
	SoftWrap    bool    `mapstructure:"soft_wrap" json:"soft_wrap" yaml:"soft_wrap"`
	FontSize    float64 `mapstructure:"font_size" json:"font_size" yaml:"font_size"`
}

// Tab width bounds.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// DefaultSettings returns the built-in preferences.
func DefaultSettings() Settings {
	return Settings{
		TabWidth:    4,
		Theme:       "default",
		LineNumbers: true,
		SoftWrap:    false,
		FontSize:    14,
	}
}

// decodeSettings applies raw onto the defaults one field at a time. A field
// that fails to decode or validate keeps its default and is logged.
func decodeSettings(raw map[string]any, logger *slog.Logger) Settings {
	s := DefaultSettings()

	for _, name := range slices.Sorted(maps.Keys(raw)) {
		candidate := s
		if err := decodeField(name, raw[name], &candidate); err != nil {
			logger.Warn("ignoring setting", "setting", name, "error", err)
			continue
		}
		if err := candidate.validate(); err != nil {
			logger.Warn("ignoring setting", "setting", name, "error", err)
			continue
		}
		s = candidate
	}
	return s
}

func decodeField(name string, value any, out *Settings) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		DecodeHook:  mapstructure.DecodeHookFuncType(integralFloat),
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any{name: value})
}

// integralFloat rejects floats with a fractional part bound for an integer
// field, which mapstructure would otherwise truncate.
func integralFloat(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}

	f := reflect.ValueOf(data).Float()
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return int64(f), nil
}

func (s Settings) validate() error {
	if s.TabWidth < MinTabWidth || s.TabWidth > MaxTabWidth {
		return fmt.Errorf("tab_width must be between %d and %d, got %d", MinTabWidth, MaxTabWidth, s.TabWidth)
	}
	if s.Theme == "" {
		return fmt.Errorf("theme must not be empty")
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %v", s.FontSize)
	}
	return nil
}
