package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"

	"github.com/vango-dev/routerstore/internal/errors"
	"github.com/vango-dev/routerstore/pkg/routerstore"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "routerstore.json"

	// DefaultPort is the default HTTP server port.
	DefaultPort = 4300

	// DefaultHost is the default HTTP server host.
	DefaultHost = "localhost"

	// DefaultHistory is the number of states replayed to new devtools clients.
	DefaultHistory = 50

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "routerstore"

	// DefaultRegion is the default archive region.
	DefaultRegion = "us-east-1"
)

// Config represents the complete routerstore.json configuration.
type Config struct {
	// Serializer selects the serializer variant ("full" or "minimal").
	Serializer string `json:"serializer,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Devtools contains time-travel debugging feed configuration.
	Devtools DevtoolsConfig `json:"devtools,omitempty"`

	// Archive contains persistence configuration.
	Archive ArchiveConfig `json:"archive,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Tracing contains span export configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// DevtoolsConfig contains devtools feed settings.
type DevtoolsConfig struct {
	// History is how many recorded states are kept for replay.
	History int `json:"history,omitempty"`
}

// ArchiveConfig contains S3 archive settings. The archive is disabled when
// Bucket is empty.
type ArchiveConfig struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint (e.g., a local MinIO).
	Endpoint string `json:"endpoint,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// TracingConfig contains span export settings. Spans are not exported when
// Zipkin is empty.
type TracingConfig struct {
	// Zipkin is the collector URL (e.g., http://localhost:9411/api/v2/spans).
	Zipkin string `json:"zipkin,omitempty"`

	// SampleRatio is the fraction of serializations traced (default: 1).
	SampleRatio float64 `json:"sampleRatio,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Serializer: string(routerstore.KindMinimal),
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Devtools: DevtoolsConfig{
			History: DefaultHistory,
		},
		Archive: ArchiveConfig{
			Region: DefaultRegion,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: TracingConfig{
			SampleRatio: 1,
		},
	}
}

// Load reads configuration from routerstore.json in the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("R041").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("R040").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("R040").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Resolve loads the configuration for a command: the file at path when path is
// set, otherwise routerstore.json in the working directory if it exists, and
// defaults when it does not. Environment overrides are applied last.
func Resolve(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	case Exists("."):
		cfg, err = Load(".")
	default:
		cfg = New()
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ROUTERSTORE_* environment variables. A .env
// file in the working directory is loaded first; variables already set in the
// environment take precedence over it.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := env("ROUTERSTORE_SERIALIZER"); v != "" {
		c.Serializer = v
	}
	if v := env("ROUTERSTORE_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := env("ROUTERSTORE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		} else {
			slog.Warn("ignoring invalid ROUTERSTORE_PORT", "value", v)
		}
	}
	if v := env("ROUTERSTORE_ARCHIVE_BUCKET"); v != "" {
		c.Archive.Bucket = v
	}
	if v := env("ROUTERSTORE_ARCHIVE_PREFIX"); v != "" {
		c.Archive.Prefix = v
	}
	if v := env("ROUTERSTORE_ARCHIVE_REGION"); v != "" {
		c.Archive.Region = v
	}
	if v := env("ROUTERSTORE_ARCHIVE_ENDPOINT"); v != "" {
		c.Archive.Endpoint = v
	}
	if v := env("ROUTERSTORE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := env("ROUTERSTORE_TRACING_ZIPKIN"); v != "" {
		c.Tracing.Zipkin = v
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("R040").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("R040").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Serializer == "" {
		c.Serializer = string(routerstore.KindMinimal)
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Devtools.History == 0 {
		c.Devtools.History = DefaultHistory
	}
	if c.Archive.Region == "" {
		c.Archive.Region = DefaultRegion
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := routerstore.ParseKind(c.Serializer); err != nil {
		return errors.New("R042").
			WithDetail("serializer must be \"full\" or \"minimal\", got " + strconv.Quote(c.Serializer)).
			Wrap(err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("R042").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Devtools.History < 0 {
		return errors.New("R042").
			WithDetail("devtools.history must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return errors.New("R042").
			WithDetail("log.level must be debug, info, warn or error").
			Wrap(err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("R042").
			WithDetail("log.format must be text or json")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return errors.New("R042").
			WithDetail("tracing.sampleRatio must be between 0 and 1")
	}
	return nil
}

// SerializerKind returns the configured serializer variant.
func (c *Config) SerializerKind() routerstore.Kind {
	kind, err := routerstore.ParseKind(c.Serializer)
	if err != nil {
		return routerstore.KindMinimal
	}
	return kind
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ArchiveEnabled reports whether an archive bucket is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.Archive.Bucket != ""
}

// TracingEnabled reports whether spans are exported.
func (c *Config) TracingEnabled() bool {
	return c.Tracing.Zipkin != ""
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
