package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"webperf/internal/logging"

	"github.com/spf13/viper"
)

// ConfigFileName is the base name searched for when no explicit config
// file is given.
const ConfigFileName = "performance-config"

// ETag modes
const (
	ETagWeak   = "weak"
	ETagStrong = "strong"
)

// BrowserCacheMaxAge is the max-age applied when browser caching is on.
// It is kept as the 7,200,000 ms the demo always used and is written to
// Cache-Control in whole seconds.
const BrowserCacheMaxAge = 7200000 * time.Millisecond

// Performance holds the knobs the demo is about.
type Performance struct {
	// ServerDurationMS is the artificial delay in milliseconds. Zero or
	// negative disables it.
	ServerDurationMS        int  `mapstructure:"server_duration" yaml:"server_duration" json:"serverDuration"`
	EnableGzipCompression   bool `mapstructure:"enable_gzip_compression" yaml:"enable_gzip_compression" json:"enableGzipCompression"`
	EnableBrotliCompression bool `mapstructure:"enable_brotli_compression" yaml:"enable_brotli_compression" json:"enableBrotliCompression"`
	Enable304CachingHeaders bool `mapstructure:"enable_304_caching_headers" yaml:"enable_304_caching_headers" json:"enable304CachingHeaders"`
	EnableBrowserCache      bool `mapstructure:"enable_browser_cache" yaml:"enable_browser_cache" json:"enableBrowserCache"`
}

// ServerDuration returns the simulated delay.
func (p Performance) ServerDuration() time.Duration {
	if p.ServerDurationMS <= 0 {
		return 0
	}
	return time.Duration(p.ServerDurationMS) * time.Millisecond
}

// MaxAge returns the browser cache lifetime, zero when browser caching is off.
func (p Performance) MaxAge() time.Duration {
	if !p.EnableBrowserCache {
		return 0
	}
	return BrowserCacheMaxAge
}

// Config holds all application configuration. It is built once by
// LoadConfig and never modified afterwards.
type Config struct {
	Port            string        `mapstructure:"port" yaml:"port"`
	MetricsPort     string        `mapstructure:"metrics_port" yaml:"metrics_port"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`
	StaticDir       string        `mapstructure:"static_dir" yaml:"static_dir"`
	ETagMode        string        `mapstructure:"etag_mode" yaml:"etag_mode"`
	HTTP2Cleartext  bool          `mapstructure:"http2_cleartext" yaml:"http2_cleartext"`
	TLSCertFile     string        `mapstructure:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile      string        `mapstructure:"tls_key_file" yaml:"tls_key_file"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`

	Performance `mapstructure:",squash" yaml:",inline"`

	// ConfigFile is the file the values were read from, empty when only
	// defaults and environment were used.
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// TLSEnabled reports whether both halves of a key pair are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// envBindings maps config keys to the environment variable that overrides them.
var envBindings = []struct {
	key string
	env string
}{
	{"port", "PORT"},
	{"metrics_port", "METRICS_PORT"},
	{"metrics_enabled", "METRICS_ENABLED"},
	{"static_dir", "STATIC_DIR"},
	{"etag_mode", "ETAG_MODE"},
	{"http2_cleartext", "HTTP2_CLEARTEXT"},
	{"tls_cert_file", "TLS_CERT_FILE"},
	{"tls_key_file", "TLS_KEY_FILE"},
	{"shutdown_timeout", "SHUTDOWN_TIMEOUT"},
	{"log_level", "LOG_LEVEL"},
	{"server_duration", "SERVER_DURATION"},
	{"enable_gzip_compression", "ENABLE_GZIP_COMPRESSION"},
	{"enable_brotli_compression", "ENABLE_BROTLI_COMPRESSION"},
	{"enable_304_caching_headers", "ENABLE_304_CACHING_HEADERS"},
	{"enable_browser_cache", "ENABLE_BROWSER_CACHE"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("metrics_port", "9090")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("static_dir", "./public")
	v.SetDefault("etag_mode", ETagWeak)
	v.SetDefault("http2_cleartext", true)
	v.SetDefault("tls_cert_file", "")
	v.SetDefault("tls_key_file", "")
	v.SetDefault("shutdown_timeout", "30s")
	v.SetDefault("log_level", "info")

	v.SetDefault("server_duration", 0)
	v.SetDefault("enable_gzip_compression", false)
	v.SetDefault("enable_brotli_compression", false)
	v.SetDefault("enable_304_caching_headers", false)
	v.SetDefault("enable_browser_cache", false)
}

// LoadConfig reads defaults, then the config file, then environment
// variables. When configFile is empty, performance-config.{yaml,json,toml}
// is looked up in "." and "./config" and may be absent. Any malformed value
// is an error; the caller is expected to stop.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", b.env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := validatePort("port", c.Port); err != nil {
		return err
	}
	if c.MetricsEnabled {
		if err := validatePort("metrics_port", c.MetricsPort); err != nil {
			return err
		}
		if c.MetricsPort == c.Port {
			return fmt.Errorf("metrics_port must differ from port (%s)", c.Port)
		}
	}

	c.ETagMode = strings.ToLower(strings.TrimSpace(c.ETagMode))
	if c.ETagMode != ETagWeak && c.ETagMode != ETagStrong {
		return fmt.Errorf("etag_mode must be %q or %q, got %q", ETagWeak, ETagStrong, c.ETagMode)
	}

	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("both tls_cert_file and tls_key_file must be provided")
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %v", c.ShutdownTimeout)
	}

	staticDir, err := filepath.Abs(c.StaticDir)
	if err != nil {
		return fmt.Errorf("failed to resolve static directory path: %w", err)
	}
	info, err := os.Stat(staticDir)
	if err != nil {
		return fmt.Errorf("static directory error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static directory %s is not a directory", staticDir)
	}
	c.StaticDir = staticDir

	return nil
}

func validatePort(key, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%s must be a TCP port number, got %q", key, value)
	}
	return nil
}
