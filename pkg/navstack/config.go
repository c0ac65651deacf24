package navstack

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	naverrors "github.com/BrandonKowalski/navstack/pkg/navstack/errors"
	"github.com/BrandonKowalski/navstack/pkg/navstack/flatten"
	"github.com/BrandonKowalski/navstack/pkg/navstack/gesture"
	"github.com/BrandonKowalski/navstack/pkg/navstack/motion"
	"github.com/BrandonKowalski/navstack/pkg/navstack/wrapper"
)

// Duration is a time.Duration written as a string in TOML, e.g. "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the TOML configuration of a navstack scene.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Gesture   GestureConfig   `toml:"gesture"`
	Animation AnimationConfig `toml:"animation"`
	Layout    LayoutConfig    `toml:"layout"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
	Path  string `toml:"path"`  // log file, stdout only when empty
}

type GestureConfig struct {
	MaxProgress    float64  `toml:"max_progress"`
	CommitDuration Duration `toml:"commit_duration"`
	CancelDuration Duration `toml:"cancel_duration"`
	Edge           string   `toml:"edge"` // left or right
	Width          float64  `toml:"width"`
	MinScale       float64  `toml:"min_scale"`
}

type AnimationConfig struct {
	Push      Duration `toml:"push"`
	Pop       Duration `toml:"pop"`
	TabSwitch Duration `toml:"tab_switch"`
	CrossFade Duration `toml:"cross_fade"`
}

type LayoutConfig struct {
	PaneMode wrapper.PaneMode `toml:"pane_mode"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Gesture: GestureConfig{
			MaxProgress:    constants.DefaultMaxBackProgress,
			CommitDuration: Duration{constants.DefaultCommitDuration},
			CancelDuration: Duration{constants.DefaultCancelDuration},
			Edge:           motion.EdgeLeft.String(),
			Width:          constants.DefaultBackWidth,
			MinScale:       constants.DefaultBackMinScale,
		},
		Animation: AnimationConfig{
			Push:      Duration{constants.DefaultPushDuration},
			Pop:       Duration{constants.DefaultPopDuration},
			TabSwitch: Duration{constants.DefaultTabSwitchDuration},
			CrossFade: Duration{constants.DefaultCrossFadeDuration},
		},
		Layout: LayoutConfig{
			PaneMode: wrapper.PaneExpanded,
		},
	}
}

// LoadConfig reads a TOML file. Keys it leaves out keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return DecodeConfig(string(data))
}

// DecodeConfig decodes TOML text over DefaultConfig, applies environment
// overrides and validates the result. Unknown keys are rejected.
func DecodeConfig(data string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", naverrors.ErrConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", naverrors.ErrConfig, strings.Join(keys, ", "))
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if level := os.Getenv(constants.LogLevelEnvVar); level != "" {
		c.Log.Level = level
	}
	if raw := os.Getenv(constants.MaxProgressEnvVar); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", naverrors.ErrConfig, constants.MaxProgressEnvVar, err)
		}
		c.Gesture.MaxProgress = p
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	invalid := func(key string, value any) error {
		return fmt.Errorf("%w: %s = %v", naverrors.ErrConfig, key, value)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level", c.Log.Level)
	}

	g := c.Gesture
	if !(g.MaxProgress > 0 && g.MaxProgress <= 1) {
		return invalid("gesture.max_progress", g.MaxProgress)
	}
	if g.Width <= 0 {
		return invalid("gesture.width", g.Width)
	}
	if !(g.MinScale > 0 && g.MinScale <= 1) {
		return invalid("gesture.min_scale", g.MinScale)
	}
	if _, err := parseEdge(g.Edge); err != nil {
		return err
	}

	durations := []struct {
		key string
		d   Duration
	}{
		{"gesture.commit_duration", g.CommitDuration},
		{"gesture.cancel_duration", g.CancelDuration},
		{"animation.push", c.Animation.Push},
		{"animation.pop", c.Animation.Pop},
		{"animation.tab_switch", c.Animation.TabSwitch},
		{"animation.cross_fade", c.Animation.CrossFade},
	}
	for _, d := range durations {
		if d.d.Duration < 0 {
			return invalid(d.key, d.d.Duration)
		}
	}
	return nil
}

func parseEdge(raw string) (motion.Edge, error) {
	switch strings.ToLower(raw) {
	case "left":
		return motion.EdgeLeft, nil
	case "right":
		return motion.EdgeRight, nil
	default:
		return 0, fmt.Errorf("%w: gesture.edge = %q", naverrors.ErrConfig, raw)
	}
}

// GestureConfig converts the [gesture] section for the back controller.
// The configuration must have passed Validate.
func (c Config) GestureConfig() gesture.Config {
	edge, _ := parseEdge(c.Gesture.Edge)
	return gesture.Config{
		MaxProgress:    c.Gesture.MaxProgress,
		CommitDuration: c.Gesture.CommitDuration.Duration,
		CancelDuration: c.Gesture.CancelDuration.Duration,
		Back: motion.BackConfig{
			Width:    c.Gesture.Width,
			MinScale: c.Gesture.MinScale,
			Edge:     edge,
		},
	}
}

// FlattenOptions converts the [animation] section for the flattener.
func (c Config) FlattenOptions() flatten.Options {
	return flatten.Options{
		Durations: map[flatten.TransitionType]time.Duration{
			flatten.TransitionPush:      c.Animation.Push.Duration,
			flatten.TransitionPop:       c.Animation.Pop.Duration,
			flatten.TransitionTabSwitch: c.Animation.TabSwitch.Duration,
			flatten.TransitionCrossFade: c.Animation.CrossFade.Duration,
		},
	}
}

// DefaultLayout converts the [layout] section.
func (c Config) DefaultLayout() wrapper.DefaultLayout {
	return wrapper.DefaultLayout{Mode: c.Layout.PaneMode}
}
