// Package config loads the server configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (NOTECACHE_*)
//  3. Configuration file (YAML), when --config is given
//  4. Default values (lowest priority)
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "NOTECACHE"

// ErrMissingRequired is returned when host, port or cache is not set.
var ErrMissingRequired = errors.New("all options --host, --port, and --cache are required")

// Config represents the notecache server configuration.
type Config struct {
	// Host is the interface the HTTP server binds to.
	Host string `mapstructure:"host" validate:"required" yaml:"host"`

	// Port is the TCP port of the HTTP server.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535" yaml:"port"`

	// Cache is the store directory. It is created on startup if absent.
	Cache string `mapstructure:"cache" validate:"required" yaml:"cache"`

	// ReadOnly serves the store without allowing mutations.
	ReadOnly bool `mapstructure:"read_only" yaml:"read_only"`

	// Metrics exposes Prometheus metrics on /metrics.
	// Default: true
	Metrics bool `mapstructure:"metrics" yaml:"metrics"`

	// Watch follows changes made to the store directory by other processes
	// and reports them in the logs and metrics.
	// Default: false
	Watch bool `mapstructure:"watch" yaml:"watch"`

	// MaxBodyBytes caps request bodies (note text and upload forms).
	// Default: 10 MiB
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"gt=0" yaml:"max_body_bytes"`

	// ShutdownTimeout is the maximum time to wait for in-flight requests on shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0" yaml:"shutdown_timeout"`

	// Log controls log output behavior
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig controls logging behavior.
type LogConfig struct {
	// Level is the minimum log level to output
	// Valid values: debug, info, warn, error
	Level string `mapstructure:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"oneof=text json" yaml:"format"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("metrics", true)
	v.SetDefault("watch", false)
	v.SetDefault("read_only", false)
	v.SetDefault("max_body_bytes", int64(10<<20))
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load resolves the configuration from v, which the caller may already have
// bound to command-line flags. configFile is optional.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	return &cfg, nil
}

// Validate checks cfg. Missing host, port or cache collapse into
// ErrMissingRequired; other violations are reported per field.
func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.StructNamespace() {
		case "Config.Host", "Config.Cache":
			return ErrMissingRequired
		case "Config.Port":
			if fe.Tag() == "required" {
				return ErrMissingRequired
			}
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
