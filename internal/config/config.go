package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the medassist service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Artifacts  ArtifactsConfig  `yaml:"artifacts"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Cache      CacheConfig      `yaml:"cache"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// HTTPConfig holds HTTP server settings for serve mode.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ArtifactsConfig holds paths to the precomputed retrieval artifacts.
// All are optional; a missing path degrades the corresponding capability.
type ArtifactsConfig struct {
	QADir    string `yaml:"qa_dir"`    // vector index + encoded documents
	KGDir    string `yaml:"kg_dir"`    // knowledge graph + NER + cluster artifacts
	DrugsCSV string `yaml:"drugs_csv"` // drug side-effects table
}

// EmbeddingConfig holds the sentence-encoder provider settings.
// The encoder is an external OpenAI-compatible embedding service; an
// unconfigured provider leaves the QA pipeline without an encoder.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// GenerationConfig holds the hosted generative model settings.
// An empty api_key disables generation; the QA pipeline then answers
// with a retrieval-only stub instead of failing.
type GenerationConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// CacheConfig holds the optional query-embedding cache settings.
// No addrs means no cache.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// Load reads configuration from config/<env>.yaml. A missing config
// file is not an error: the service runs on defaults with credentials
// taken from the environment, mirroring the artifact loader's
// degrade-not-fail policy.
func Load(env string) (Config, error) {
	var cfg Config

	configPath := filepath.Join("config", fmt.Sprintf("%s.yaml", env))
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	} else {
		// Substitute env variables of the form ${VAR} and ${VAR:-default}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
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

// ApplyDefaults fills empty fields with default values. Credentials
// fall back to the conventional environment variables.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Generation calls are slow; give responses more room than reads.
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Artifacts.QADir == "" {
		c.Artifacts.QADir = "embeddings"
	}
	if c.Artifacts.KGDir == "" {
		c.Artifacts.KGDir = "kg_rag_artifacts"
	}
	if c.Artifacts.DrugsCSV == "" {
		c.Artifacts.DrugsCSV = "drugs_side_effects.csv"
	}
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = os.Getenv("EMBEDDING_API_KEY")
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Generation.APIKey == "" {
		c.Generation.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if c.Generation.BaseURL == "" {
		c.Generation.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "llama3-8b-8192"
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding.dimensions must not be negative, got %d", c.Embedding.Dimensions)
	}
	return nil
}

// EmbeddingConfigured reports whether an encoder provider is set up.
func (c *Config) EmbeddingConfigured() bool {
	return c.Embedding.APIKey != "" || c.Embedding.BaseURL != ""
}

// GenerationConfigured reports whether the generative model credential is present.
func (c *Config) GenerationConfigured() bool {
	return c.Generation.APIKey != ""
}

// CacheConfigured reports whether the embedding cache is set up.
func (c *Config) CacheConfigured() bool {
	return len(c.Cache.Addrs) > 0
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
