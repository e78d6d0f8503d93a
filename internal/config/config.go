package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "P2PDESK"

	DefaultAPIBaseURL = "https://cryptostar.grading.pages.academy"
)

// Config holds the runtime settings shared by every command.
type Config struct {
	APIBaseURL      string        `mapstructure:"api_base_url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	DebounceDelay   time.Duration `mapstructure:"debounce_delay"`
	ThrottleDelay   time.Duration `mapstructure:"throttle_delay"`
	MessageTimeout  time.Duration `mapstructure:"message_timeout"`
	PaymentPassword string        `mapstructure:"payment_password"`
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFile         string        `mapstructure:"log_file"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"server":       "api_base_url",
	"log-level":    "log_level",
	"metrics-addr": "metrics_addr",
}

// Load resolves the configuration. Precedence, highest first: flags that
// were set, P2PDESK_* environment variables (a .env file in the working
// directory is loaded into the environment), the config file at path,
// defaults. An empty path skips the config file.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("debounce_delay", "500ms")
	v.SetDefault("throttle_delay", "1500ms")
	v.SetDefault("message_timeout", "2s")
	v.SetDefault("payment_password", "180712")
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "p2pdesk.log")
	v.SetDefault("metrics_addr", "")
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must be set")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.DebounceDelay < 0 || c.ThrottleDelay < 0 || c.MessageTimeout < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}
