package screens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tanema/gween/ease"
)

// Config holds the stage settings, usually loaded from a TOML file:
//
//	title = "Screens"
//	width = 640
//	height = 480
//	transition_seconds = 0.3
//	easing = "outCubic"
//
//	[log]
//	level = "debug"
//	file = "logs/screens.log"
type Config struct {
	Title             string    `toml:"title"`
	Width             int       `toml:"width"`
	Height            int       `toml:"height"`
	TransitionSeconds float32   `toml:"transition_seconds"`
	SlideFraction     float64   `toml:"slide_fraction"`
	Easing            string    `toml:"easing"`
	Debug             bool      `toml:"debug"`
	Log               LogConfig `toml:"log"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:             "Screens",
		Width:             640,
		Height:            480,
		TransitionSeconds: 0.3,
		SlideFraction:     0.25,
		Easing:            "outCubic",
		Log:               LogConfig{Level: "warn"},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Unknown keys are an
// error so typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting, joined.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.TransitionSeconds < 0 {
		errs = append(errs, fmt.Errorf("transition_seconds %v must not be negative", c.TransitionSeconds))
	}
	if c.SlideFraction < 0 || c.SlideFraction > 1 {
		errs = append(errs, fmt.Errorf("slide_fraction %v must be within [0, 1]", c.SlideFraction))
	}
	if _, err := c.EaseFunc(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"outBack":      ease.OutBack,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"outBounce":    ease.OutBounce,
	"outElastic":   ease.OutElastic,
	"inOutQuart":   ease.InOutQuart,
	"outQuart":     ease.OutQuart,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inOutBack":    ease.InOutBack,
	"inOutBounce":  ease.InOutBounce,
	"inOutElastic": ease.InOutElastic,
}

// EaseFunc resolves Easing against the gween easing set. Empty means
// outCubic.
func (c Config) EaseFunc() (ease.TweenFunc, error) {
	if c.Easing == "" {
		return ease.OutCubic, nil
	}
	fn, ok := easings[c.Easing]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", c.Easing)
	}
	return fn, nil
}
