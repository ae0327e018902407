package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"labsimplify/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Upload    UploadConfig
	Metrics   MetricsConfig
	Generator GeneratorConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig bounds inbound report uploads.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB << 20
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// GeneratorConfig selects and tunes the generation backend.
type GeneratorConfig struct {
	Provider        string  `mapstructure:"provider"`
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	Endpoint        string  `mapstructure:"endpoint"`
	Region          string  `mapstructure:"region"`
	AccessKey       string  `mapstructure:"access_key"`
	SecretKey       string  `mapstructure:"secret_key"`
	TimeoutSecs     int     `mapstructure:"timeout_secs"`
	MaxRetries      int     `mapstructure:"max_retries"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
	MaxInputChars   int     `mapstructure:"max_input_chars"`
}

// Timeout returns the per-call generation timeout.
func (g *GeneratorConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// credentialEnv names the variable users should set for each provider's API key.
var credentialEnv = map[string]string{
	"openai":      "LABSIMPLIFY_GENERATOR_API_KEY or OPENAI_API_KEY",
	"claude":      "LABSIMPLIFY_GENERATOR_API_KEY or ANTHROPIC_API_KEY",
	"huggingface": "LABSIMPLIFY_GENERATOR_API_KEY or HUGGINGFACE_API_KEY",
	"gemini":      "LABSIMPLIFY_GENERATOR_API_KEY or GEMINI_API_KEY",
	"bedrock":     "",
}

// Validate checks that the selected provider is known and has a credential.
// Bedrock authenticates through the AWS credential chain and needs a region instead.
func (g *GeneratorConfig) Validate() error {
	env, ok := credentialEnv[g.Provider]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownProvider, g.Provider)
	}
	if g.Provider == "bedrock" {
		if g.Region == "" {
			return fmt.Errorf("%w: bedrock requires LABSIMPLIFY_GENERATOR_REGION", domain.ErrMissingCredential)
		}
		if (g.AccessKey == "") != (g.SecretKey == "") {
			return fmt.Errorf("%w: bedrock static credentials need both access and secret key", domain.ErrMissingCredential)
		}
		return nil
	}
	if strings.TrimSpace(g.APIKey) == "" {
		return fmt.Errorf("%w: set %s", domain.ErrMissingCredential, env)
	}
	return nil
}

// legacyKeyEnv and legacyModelEnv are the variable names the first version of the
// tool read. They apply only when the prefixed variables are unset.
var legacyKeyEnv = map[string]string{
	"openai":      "OPENAI_API_KEY",
	"claude":      "ANTHROPIC_API_KEY",
	"huggingface": "HUGGINGFACE_API_KEY",
	"gemini":      "GEMINI_API_KEY",
}

var legacyModelEnv = map[string]string{
	"huggingface": "HF_MODEL",
	"gemini":      "GEMINI_MODEL",
}

// Load reads configuration from environment variables with the LABSIMPLIFY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LABSIMPLIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("upload.max_file_size_mb", 20)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Generator defaults
	v.SetDefault("generator.provider", "gemini")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.endpoint", "")
	v.SetDefault("generator.region", "")
	v.SetDefault("generator.access_key", "")
	v.SetDefault("generator.secret_key", "")
	v.SetDefault("generator.timeout_secs", 60)
	v.SetDefault("generator.max_retries", 1)
	v.SetDefault("generator.temperature", 0.2)
	v.SetDefault("generator.max_output_tokens", 800)
	v.SetDefault("generator.max_input_chars", 4000)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "LABSIMPLIFY_SERVER_PORT",
		"server.read_timeout":         "LABSIMPLIFY_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "LABSIMPLIFY_SERVER_WRITE_TIMEOUT",
		"server.environment":          "LABSIMPLIFY_SERVER_ENVIRONMENT",
		"log.level":                   "LABSIMPLIFY_LOG_LEVEL",
		"log.format":                  "LABSIMPLIFY_LOG_FORMAT",
		"cors.allowed_origins":        "LABSIMPLIFY_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":     "LABSIMPLIFY_UPLOAD_MAX_FILE_SIZE_MB",
		"metrics.enabled":             "LABSIMPLIFY_METRICS_ENABLED",
		"metrics.path":                "LABSIMPLIFY_METRICS_PATH",
		"generator.provider":          "LABSIMPLIFY_GENERATOR_PROVIDER",
		"generator.api_key":           "LABSIMPLIFY_GENERATOR_API_KEY",
		"generator.model":             "LABSIMPLIFY_GENERATOR_MODEL",
		"generator.endpoint":          "LABSIMPLIFY_GENERATOR_ENDPOINT",
		"generator.region":            "LABSIMPLIFY_GENERATOR_REGION",
		"generator.access_key":        "LABSIMPLIFY_GENERATOR_ACCESS_KEY",
		"generator.secret_key":        "LABSIMPLIFY_GENERATOR_SECRET_KEY",
		"generator.timeout_secs":      "LABSIMPLIFY_GENERATOR_TIMEOUT_SECS",
		"generator.max_retries":       "LABSIMPLIFY_GENERATOR_MAX_RETRIES",
		"generator.temperature":       "LABSIMPLIFY_GENERATOR_TEMPERATURE",
		"generator.max_output_tokens": "LABSIMPLIFY_GENERATOR_MAX_OUTPUT_TOKENS",
		"generator.max_input_chars":   "LABSIMPLIFY_GENERATOR_MAX_INPUT_CHARS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LABSIMPLIFY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LABSIMPLIFY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	cfg.Generator = GeneratorConfig{
		Provider:        strings.ToLower(strings.TrimSpace(v.GetString("generator.provider"))),
		APIKey:          v.GetString("generator.api_key"),
		Model:           v.GetString("generator.model"),
		Endpoint:        v.GetString("generator.endpoint"),
		Region:          v.GetString("generator.region"),
		AccessKey:       v.GetString("generator.access_key"),
		SecretKey:       v.GetString("generator.secret_key"),
		TimeoutSecs:     v.GetInt("generator.timeout_secs"),
		MaxRetries:      v.GetInt("generator.max_retries"),
		Temperature:     float32(v.GetFloat64("generator.temperature")),
		MaxOutputTokens: v.GetInt32("generator.max_output_tokens"),
		MaxInputChars:   v.GetInt("generator.max_input_chars"),
	}
	applyLegacyEnv(&cfg.Generator)

	return cfg, nil
}

// applyLegacyEnv fills the key and model from the unprefixed variable names when the
// prefixed ones are empty.
func applyLegacyEnv(g *GeneratorConfig) {
	if g.APIKey == "" {
		if env, ok := legacyKeyEnv[g.Provider]; ok {
			g.APIKey = os.Getenv(env)
		}
	}
	if g.Model == "" {
		if env, ok := legacyModelEnv[g.Provider]; ok {
			g.Model = os.Getenv(env)
		}
	}
}
