// Package config loads the startup configuration of serialterm from defaults,
// an optional YAML file, SERIALTERM_* environment variables and command-line
// flags. Configuration is read-only: nothing is ever written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/session"
	"github.com/allbin/serialterm/internal/settings"
	"github.com/allbin/serialterm/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

const (
	EnvPrefix      = "SERIALTERM"
	userConfigDir  = ".config/serialterm"
	configFileName = "config"
)

// Keys
const (
	KeyPort              = "port"
	KeyBaudRate          = "baud_rate"
	KeyTheme             = "theme"
	KeyNightMode         = "night_mode"
	KeyRefreshInterval   = "refresh_interval"
	KeyPreserveSelection = "preserve_selection"
	KeyReadTimeout       = "read_timeout"
	KeyFlushAfter        = "flush_after"
	KeyLineEnding        = "line_ending"
	KeyEncoding          = "encoding"
	KeyMaxLogLines       = "max_log_lines"
	KeyEventBuffer       = "event_buffer"
	KeyLogLevel          = "log_level"
	KeyLogFile           = "log_file"
)

// Config is the effective startup configuration.
type Config struct {
	Port              string        `mapstructure:"port" yaml:"port"`
	BaudRate          int           `mapstructure:"baud_rate" yaml:"baud_rate"`
	Theme             string        `mapstructure:"theme" yaml:"theme"`
	NightMode         bool          `mapstructure:"night_mode" yaml:"night_mode"`
	RefreshInterval   time.Duration `mapstructure:"refresh_interval" yaml:"refresh_interval"`
	PreserveSelection bool          `mapstructure:"preserve_selection" yaml:"preserve_selection"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	FlushAfter        time.Duration `mapstructure:"flush_after" yaml:"flush_after"`
	LineEnding        string        `mapstructure:"line_ending" yaml:"line_ending"`
	Encoding          string        `mapstructure:"encoding" yaml:"encoding"`
	MaxLogLines       int           `mapstructure:"max_log_lines" yaml:"max_log_lines"`
	EventBuffer       int           `mapstructure:"event_buffer" yaml:"event_buffer"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile           string        `mapstructure:"log_file" yaml:"log_file"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "")
	v.SetDefault(KeyBaudRate, serial.StandardBaudRates[0])
	v.SetDefault(KeyTheme, settings.DefaultTheme)
	v.SetDefault(KeyNightMode, false)
	v.SetDefault(KeyRefreshInterval, 5*time.Second)
	v.SetDefault(KeyPreserveSelection, false)
	v.SetDefault(KeyReadTimeout, session.DefaultReadTimeout)
	v.SetDefault(KeyFlushAfter, time.Duration(0))
	v.SetDefault(KeyLineEnding, string(session.LineEndingNone))
	v.SetDefault(KeyEncoding, "utf-8")
	v.SetDefault(KeyMaxLogLines, 0)
	v.SetDefault(KeyEventBuffer, session.DefaultEventBuffer)
	v.SetDefault(KeyLogLevel, logging.LevelInfo.String())
	v.SetDefault(KeyLogFile, "")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file, if any, and returns the validated
// configuration. An explicit file must exist; without one the user config
// directory and the working directory are searched.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		if home, err := osUserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, userConfigDir))
		} else {
			logging.Warn("config", "could not determine user config path: %v", err)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		logging.Debug("config", "using config file %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("%w: baud_rate must be positive, got %d", serial.ErrInvalidConfig, c.BaudRate)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh_interval must be positive, got %s", serial.ErrInvalidConfig, c.RefreshInterval)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("%w: read_timeout must not be negative", serial.ErrInvalidConfig)
	}
	if c.FlushAfter < 0 {
		return fmt.Errorf("%w: flush_after must not be negative", serial.ErrInvalidConfig)
	}
	if c.MaxLogLines < 0 {
		return fmt.Errorf("%w: max_log_lines must not be negative", serial.ErrInvalidConfig)
	}
	if c.EventBuffer < 0 {
		return fmt.Errorf("%w: event_buffer must not be negative", serial.ErrInvalidConfig)
	}
	if _, err := session.ParseLineEnding(c.LineEnding); err != nil {
		return fmt.Errorf("%w: %v", serial.ErrInvalidConfig, err)
	}
	if _, err := session.NewCodec(c.Encoding); err != nil {
		return fmt.Errorf("%w: %v", serial.ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", serial.ErrInvalidConfig, err)
	}
	return nil
}

// SessionOptions builds the session options for the configured values.
func (c Config) SessionOptions() (session.Options, error) {
	ending, err := session.ParseLineEnding(c.LineEnding)
	if err != nil {
		return session.Options{}, err
	}
	codec, err := session.NewCodec(c.Encoding)
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		ReadTimeout: c.ReadTimeout,
		FlushAfter:  c.FlushAfter,
		LineEnding:  ending,
		Codec:       codec,
		EventBuffer: c.EventBuffer,
	}, nil
}
