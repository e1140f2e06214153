package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/i2y/oasmint/internal/domain"
	"github.com/i2y/oasmint/internal/usecase"
)

const envPrefix = "OASMINT"

// FileConfig defines the structure loaded from the YAML configuration file.
// Empty fields leave the environment/default value in place.
type FileConfig struct {
	ReferenceDir     string `yaml:"reference_dir"`
	OutputDir        string `yaml:"output_dir"`
	DocsBaseURL      string `yaml:"docs_base_url"`
	DemoDocsBaseURL  string `yaml:"demo_docs_base_url"`
	RequestTimeout   string `yaml:"request_timeout"`
	OutputExtension  string `yaml:"output_extension"`
	ReferencePrefix  string `yaml:"reference_prefix"`
	ExtensionName    string `yaml:"extension_name"`
	HrefPrefix       string `yaml:"href_prefix"`
	LogLevel         string `yaml:"log_level"`
	OtelOtlpEndpoint string `yaml:"otel_exporter_otlp_endpoint"`
}

// Config holds the final application configuration, merged from file and environment variables.
// Fields are loaded from environment variables with the prefix "OASMINT_", which take
// precedence over the file.
type Config struct {
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	ReferenceDir    string        `envconfig:"REFERENCE_DIR" default:"reference"`
	OutputDir       string        `envconfig:"OUTPUT_DIR" default:"mdx"`
	DocsBaseURL     string        `envconfig:"DOCS_BASE_URL" default:"https://docs.coingecko.com/reference"`
	DemoDocsBaseURL string        `envconfig:"DEMO_DOCS_BASE_URL" default:"https://docs.coingecko.com/v3.0.1/reference"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	OutputExtension string        `envconfig:"OUTPUT_EXTENSION" default:".mdx"`
	ReferencePrefix string        `envconfig:"REFERENCE_PREFIX" default:"api-reference"`
	ExtensionName   string        `envconfig:"EXTENSION_NAME" default:"x-mint"`
	HrefPrefix      string        `envconfig:"HREF_PREFIX" default:"/reference"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string `envconfig:"LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Site returns the docs site the fetcher and link rewriter point at.
func (c *Config) Site() domain.DocsSite {
	return domain.DocsSite{BaseURL: c.DocsBaseURL, DemoBaseURL: c.DemoDocsBaseURL}
}

// Conversion returns the settings handed to the convert use case.
func (c *Config) Conversion(validate bool) usecase.ConversionSettings {
	return usecase.ConversionSettings{
		Site:            c.Site(),
		OutputDir:       c.OutputDir,
		OutputExtension: c.OutputExtension,
		ReferencePrefix: c.ReferencePrefix,
		Validate:        validate,
	}
}

// Inject returns the settings handed to the inject use case.
func (c *Config) Inject(validate bool) usecase.InjectSettings {
	return usecase.InjectSettings{
		Extension:  c.ExtensionName,
		HrefPrefix: c.HrefPrefix,
		Validate:   validate,
	}
}

// Load loads configuration first from environment variables (to get the file path
// and defaults), then from the YAML file if one is named, and finally lets explicitly
// set environment variables win over the file.
func Load() (*Config, error) {
	// 1. Env and defaults
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if cfg.ConfigFilePath == "" {
		slog.Debug("No config file path specified (OASMINT_CONFIG_FILE), using defaults/env vars only.")
		return &cfg, nil
	}

	// 2. YAML file
	data, err := os.ReadFile(cfg.ConfigFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", cfg.ConfigFilePath, err)
	}
	var fileCfg FileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", cfg.ConfigFilePath, err)
	}
	slog.Info("Loaded configuration from file.", "path", cfg.ConfigFilePath)

	// 3. Merge, env first
	if err := fileCfg.applyTo(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", cfg.ConfigFilePath, err)
	}
	return &cfg, nil
}

func (f FileConfig) applyTo(cfg *Config) error {
	set := func(key, value string, dst *string) {
		if value == "" || envSet(key) {
			return
		}
		*dst = value
	}
	set("REFERENCE_DIR", f.ReferenceDir, &cfg.ReferenceDir)
	set("OUTPUT_DIR", f.OutputDir, &cfg.OutputDir)
	set("DOCS_BASE_URL", f.DocsBaseURL, &cfg.DocsBaseURL)
	set("DEMO_DOCS_BASE_URL", f.DemoDocsBaseURL, &cfg.DemoDocsBaseURL)
	set("OUTPUT_EXTENSION", f.OutputExtension, &cfg.OutputExtension)
	set("REFERENCE_PREFIX", f.ReferencePrefix, &cfg.ReferencePrefix)
	set("EXTENSION_NAME", f.ExtensionName, &cfg.ExtensionName)
	set("HREF_PREFIX", f.HrefPrefix, &cfg.HrefPrefix)
	set("LOG_LEVEL", f.LogLevel, &cfg.LogLevel)
	set("OTEL_EXPORTER_OTLP_ENDPOINT", f.OtelOtlpEndpoint, &cfg.OtelExporterOtlpEndpoint)

	if f.RequestTimeout != "" && !envSet("REQUEST_TIMEOUT") {
		d, err := time.ParseDuration(f.RequestTimeout)
		if err != nil {
			return fmt.Errorf("failed to parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(envPrefix + "_" + key)
	return ok
}
