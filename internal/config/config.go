package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// GameConfig holds the tunables of a Farkle table and its host.
type GameConfig struct {
	DefaultPlayerCount  int    `json:"defaultPlayerCount" mapstructure:"defaultPlayerCount"`
	DefaultWinningScore int    `json:"defaultWinningScore" mapstructure:"defaultWinningScore"`
	RollAnimationMillis int    `json:"rollAnimationMillis" mapstructure:"rollAnimationMillis"`
	FarkleDelayMillis   int    `json:"farkleDelayMillis" mapstructure:"farkleDelayMillis"`
	TickRate            int    `json:"tickRate" mapstructure:"tickRate"`
	LogLevel            string `json:"logLevel" mapstructure:"logLevel"`
	HostTokenTTLSeconds int    `json:"hostTokenTTLSeconds" mapstructure:"hostTokenTTLSeconds"`

	// ReconnectGraceSeconds keeps a table alive with no host connected so it can be resumed.
	ReconnectGraceSeconds int `json:"reconnectGraceSeconds" mapstructure:"reconnectGraceSeconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("defaultPlayerCount", d.DefaultPlayerCount)
	v.SetDefault("defaultWinningScore", d.DefaultWinningScore)
	v.SetDefault("rollAnimationMillis", d.RollAnimationMillis)
	v.SetDefault("farkleDelayMillis", d.FarkleDelayMillis)
	v.SetDefault("tickRate", d.TickRate)
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("hostTokenTTLSeconds", d.HostTokenTTLSeconds)
	v.SetDefault("reconnectGraceSeconds", d.ReconnectGraceSeconds)
}

// Read loads a JSON config file on top of the defaults. An empty path yields the defaults.
// FARKLE_<KEY> environment variables override both.
func Read(path string) (*GameConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("farkle")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var c GameConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	return &c, nil
}

// Defaults returns the built-in configuration.
func Defaults() *GameConfig {
	return &GameConfig{
		DefaultPlayerCount:    1,
		DefaultWinningScore:   10000,
		RollAnimationMillis:   1000,
		FarkleDelayMillis:     2000,
		TickRate:              10,
		LogLevel:              "info",
		HostTokenTTLSeconds:   3600,
		ReconnectGraceSeconds: 60,
	}
}

// LoadGameConfig loads the global game configuration from the given path once.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		cfg, loadErr = Read(path)
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults if none was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return cfg
}

func (c *GameConfig) RollAnimation() time.Duration {
	return time.Duration(c.RollAnimationMillis) * time.Millisecond
}

func (c *GameConfig) FarkleDelay() time.Duration {
	return time.Duration(c.FarkleDelayMillis) * time.Millisecond
}

func (c *GameConfig) HostTokenTTL() time.Duration {
	return time.Duration(c.HostTokenTTLSeconds) * time.Second
}

func (c *GameConfig) ReconnectGrace() time.Duration {
	return time.Duration(c.ReconnectGraceSeconds) * time.Second
}

// Ticks converts a delay into match ticks at TickRate, rounding up to at least one tick.
func (c *GameConfig) Ticks(d time.Duration) int64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 1
	}
	tickLen := time.Second / time.Duration(rate)
	ticks := int64((d + tickLen - 1) / tickLen)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}
