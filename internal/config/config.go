package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Upstream   UpstreamConfig
	Stations   StationsConfig
	Attributes AttributesConfig
	WFS        WFSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int    `validate:"min=1,max=65535"`
	GinMode string `validate:"oneof=debug release test"`
	// PublicURL is the externally visible base URL of this service, e.g.
	// https://meteorologia.example.org. Empty means derive it from each request.
	PublicURL string `validate:"omitempty,url"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// UpstreamConfig describes the per-station telemetry endpoint
type UpstreamConfig struct {
	BaseURL        string        `validate:"required,url"`
	Timeout        time.Duration `validate:"gt=0"` // per station call
	Workers        int           `validate:"min=1,max=64"`
	CircuitBreaker CircuitBreakerConfig
}

// CircuitBreakerConfig guards the upstream host when it is down for every station
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold uint32        `validate:"min=1"`
	OpenTimeout      time.Duration `validate:"gt=0"`
}

// StationsConfig is the fixed, inclusive station id range
type StationsConfig struct {
	First int `validate:"min=1"`
	Last  int `validate:"gtefield=First"`
}

// AttributesConfig switches the optional attribute groups of a station feature
type AttributesConfig struct {
	Delay        bool
	Availability bool
	Chart        bool
	UTC          bool
	ChartURL     string `validate:"required"` // fmt template taking the station id
}

// WFSConfig holds the advertised feature type metadata
type WFSConfig struct {
	TypeName string `validate:"required"`
	SRSName  string `validate:"required"`
	Title    string
	Abstract string
}

// Load reads configuration from .env, config file and environment variables
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.agrometeo")

	setDefaults(v)

	// Read from environment variables, e.g. AGROMETEO_UPSTREAM_WORKERS
	v.SetEnvPrefix("AGROMETEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.publicurl", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("upstream.baseurl", "https://agrometeo.mendoza.gov.ar/api/getInstantaneas.php")
	v.SetDefault("upstream.timeout", 10*time.Second)
	v.SetDefault("upstream.workers", 4)
	v.SetDefault("upstream.circuitbreaker.enabled", false)
	v.SetDefault("upstream.circuitbreaker.failurethreshold", 10)
	v.SetDefault("upstream.circuitbreaker.opentimeout", 30*time.Second)

	v.SetDefault("stations.first", 1)
	v.SetDefault("stations.last", 43)

	v.SetDefault("attributes.delay", true)
	v.SetDefault("attributes.availability", true)
	v.SetDefault("attributes.chart", true)
	v.SetDefault("attributes.utc", false)
	v.SetDefault("attributes.charturl", "https://agrometeo.mendoza.gov.ar/informes/grafico.php?estacion=%d")

	v.SetDefault("wfs.typename", "Estaciones")
	v.SetDefault("wfs.srsname", "EPSG:4326")
	v.SetDefault("wfs.title", "WFS de Estaciones Agroclimáticas")
	v.SetDefault("wfs.abstract", "Servicio WFS que proporciona datos climáticos en formato estándar.")
}

// Validate checks the struct constraints declared on the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StationIDs expands the configured inclusive range in ascending order
func (c *Config) StationIDs() []int {
	if c.Stations.Last < c.Stations.First {
		return nil
	}
	ids := make([]int, 0, c.Stations.Last-c.Stations.First+1)
	for id := c.Stations.First; id <= c.Stations.Last; id++ {
		ids = append(ids, id)
	}
	return ids
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
