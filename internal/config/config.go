package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

// Config holds the rerankd API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Rerank  RerankConfig  `yaml:"rerank"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// RerankConfig holds the server-side defaults for the re-ranking pipeline.
// Every field can be overridden per request.
type RerankConfig struct {
	TopN                int     `yaml:"top_n"`
	BatchSize           int     `yaml:"batch_size"`
	SemanticWeight      float64 `yaml:"semantic_weight"`
	LexicalWeight       float64 `yaml:"lexical_weight"`
	ExactWeight         float64 `yaml:"exact_weight"`
	RecencyWeight       float64 `yaml:"recency_weight"`
	UseExternalScore    bool    `yaml:"use_external_score"`
	RecencyHalfLifeDays float64 `yaml:"recency_half_life_days"`
	MinTokenLength      int     `yaml:"min_token_length"`
	NormalizeMethod     string  `yaml:"normalize_method"` // sigmoid, minmax (default: sigmoid)
	CustomStopwords     string  `yaml:"custom_stopwords"` // comma-separated
	UseModel            bool    `yaml:"use_model"`
	ModelWeights        string  `yaml:"model_weights"` // 5 comma-separated numbers
	Debug               bool    `yaml:"debug"`
	Workers             int     `yaml:"workers"` // per-batch scoring parallelism
}

// Options converts the config section into resolved pipeline options.
func (rc RerankConfig) Options() domrank.Options {
	opts := domrank.Options{
		TopN:      rc.TopN,
		BatchSize: rc.BatchSize,
		Weights: domrank.Weights{
			Semantic: rc.SemanticWeight,
			Lexical:  rc.LexicalWeight,
			Exact:    rc.ExactWeight,
			Recency:  rc.RecencyWeight,
		},
		UseExternalScore:    rc.UseExternalScore,
		RecencyHalfLifeDays: rc.RecencyHalfLifeDays,
		MinTokenLength:      rc.MinTokenLength,
		NormalizeMethod:     domrank.NormalizeMethod(rc.NormalizeMethod),
		CustomStopwords:     rc.CustomStopwords,
		UseModel:            rc.UseModel,
		ModelWeights:        rc.ModelWeights,
		Debug:               rc.Debug,
		Workers:             rc.Workers,
	}
	opts.ApplyDefaults()
	return opts
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Rerank.NormalizeMethod {
	case "", "sigmoid", "minmax":
		// ok
	default:
		return fmt.Errorf(
			"rerank.normalize_method must be \"sigmoid\" or \"minmax\", got %q",
			c.Rerank.NormalizeMethod,
		)
	}
	if c.Rerank.UseModel {
		if err := c.Rerank.Options().Validate(); err != nil {
			return fmt.Errorf("rerank.model_weights: %w", err)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
