// Package config loads service configuration from defaults, an optional
// YAML file, .env files and SIGNUP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SIGNUP_SERVER_PORT.
const EnvPrefix = "SIGNUP"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Sink   SinkConfig   `mapstructure:"sink"`
	Render RenderConfig `mapstructure:"render"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Mode            string        `mapstructure:"mode"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SinkConfig selects where accepted submissions go. The endpoint is tried
// first; log and file record a submission only after it was accepted.
type SinkConfig struct {
	Log      bool              `mapstructure:"log"`
	File     string            `mapstructure:"file"`
	Format   string            `mapstructure:"format"`
	Endpoint string            `mapstructure:"endpoint"`
	Timeout  time.Duration     `mapstructure:"timeout"`
	Headers  map[string]string `mapstructure:"headers"`
}

// RenderConfig customises the HTML page.
type RenderConfig struct {
	Company      string `mapstructure:"company"`
	Terms        string `mapstructure:"terms"`
	TemplatesDir string `mapstructure:"templates_dir"`
	Locale       string `mapstructure:"locale"`
	CatalogFile  string `mapstructure:"catalog_file"`
}

// LoadEnv loads .env style files into the process environment. Missing files
// are skipped.
func LoadEnv(logger logrus.FieldLogger, files ...string) {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		loaded = append(loaded, file)
	}
	if logger == nil {
		return
	}
	if len(loaded) == 0 {
		logger.Debug("No local env files loaded; relying on process environment")
		return
	}
	logger.Debugf("Loaded env files: %s", strings.Join(loaded, ", "))
}

// Load loads configuration from file and environment. A missing file is not
// an error; an unparsable one is.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read %s: %w", configPath, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("sink.log", true)
	v.SetDefault("sink.file", "")
	v.SetDefault("sink.format", "json")
	v.SetDefault("sink.endpoint", "")
	v.SetDefault("sink.timeout", "10s")

	v.SetDefault("render.company", "Your Company")
	v.SetDefault("render.terms", "")
	v.SetDefault("render.templates_dir", "")
	v.SetDefault("render.locale", "en")
	v.SetDefault("render.catalog_file", "")
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	switch strings.ToLower(c.Sink.Format) {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("config: sink.format %q must be json or yaml", c.Sink.Format)
	}
	if c.Sink.Endpoint != "" && !strings.HasPrefix(c.Sink.Endpoint, "http://") && !strings.HasPrefix(c.Sink.Endpoint, "https://") {
		return fmt.Errorf("config: sink.endpoint must be an http(s) URL")
	}
	return nil
}
