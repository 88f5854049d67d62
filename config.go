package blochsphere

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// BLOCH_TRANSITION_DURATION=250ms.
const EnvPrefix = "BLOCH"

// Config tunes a session. The zero value is not useful; start from
// NewConfig or LoadConfig.
type Config struct {
	TransitionDuration time.Duration
	Easing             string
	MeasurementDelay   time.Duration
	FrameRate          int
	Seed               uint64
	HistoryLimit       int
}

func NewConfig() *Config {
	return &Config{
		TransitionDuration: 800 * time.Millisecond,
		Easing:             "ease-out-cubic",
		MeasurementDelay:   500 * time.Millisecond,
		FrameRate:          60,
		Seed:               0,
		HistoryLimit:       256,
	}
}

/*
LoadConfig layers defaults, an optional config file (any format viper
understands) and BLOCH_* environment variables, in that order of
increasing precedence. An empty path skips the file.
*/
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{
		TransitionDuration: v.GetDuration("transition.duration"),
		Easing:             v.GetString("transition.easing"),
		MeasurementDelay:   v.GetDuration("measurement.delay"),
		FrameRate:          v.GetInt("frame.rate"),
		Seed:               v.GetUint64("random.seed"),
		HistoryLimit:       v.GetInt("history.limit"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings no session can run with.
func (c *Config) Validate() error {
	if c.TransitionDuration < 0 {
		return fmt.Errorf("transition.duration must not be negative, got %s", c.TransitionDuration)
	}

	if c.MeasurementDelay < 0 {
		return fmt.Errorf("measurement.delay must not be negative, got %s", c.MeasurementDelay)
	}

	if c.FrameRate <= 0 {
		return fmt.Errorf("frame.rate must be positive, got %d", c.FrameRate)
	}

	if c.HistoryLimit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.HistoryLimit)
	}

	return nil
}

// FrameInterval is the tick period implied by FrameRate.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("transition.duration", c.TransitionDuration)
	v.SetDefault("transition.easing", c.Easing)
	v.SetDefault("measurement.delay", c.MeasurementDelay)
	v.SetDefault("frame.rate", c.FrameRate)
	v.SetDefault("random.seed", c.Seed)
	v.SetDefault("history.limit", c.HistoryLimit)
}
