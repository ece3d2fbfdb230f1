// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Model    ModelConfig    `mapstructure:"model"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address            string          `mapstructure:"address"`
	ReadTimeout        int             `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout       int             `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout    int             `mapstructure:"shutdown_timeout"` // milliseconds
	CORSAllowedOrigins []string        `mapstructure:"cors_allowed_origins"`
	RateLimit          RateLimitConfig `mapstructure:"rate_limit"`
	// ExposeTraceback controls whether unexpected 500s carry a stack trace.
	ExposeTraceback *bool `mapstructure:"expose_traceback"`
}

type RateLimitConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Requests int  `mapstructure:"requests"`
	Window   int  `mapstructure:"window"` // milliseconds
}

type ModelConfig struct {
	ExpectedSklearnVersion string          `mapstructure:"expected_sklearn_version"`
	SchemaRegistryPath     string          `mapstructure:"schema_registry_path"`
	Artifacts              ArtifactsConfig `mapstructure:"artifacts"`
}

// ArtifactsConfig selects where the four pre-fit artifacts are fetched from.
type ArtifactsConfig struct {
	Source    string        `mapstructure:"source"` // file | http | redis | postgres
	Dir       string        `mapstructure:"dir"`
	BaseURL   string        `mapstructure:"base_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	Table     string        `mapstructure:"table"`
	Timeout   int           `mapstructure:"timeout"` // milliseconds
	Names     ArtifactNames `mapstructure:"names"`
}

type ArtifactNames struct {
	Classifier  string `mapstructure:"classifier"`
	Transformer string `mapstructure:"transformer"`
	Decoder     string `mapstructure:"decoder"`
	Encoder     string `mapstructure:"encoder"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type TracingConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

// TracebackEnabled defaults to true outside production.
func (s ServerConfig) TracebackEnabled(environment string) bool {
	if s.ExposeTraceback != nil {
		return *s.ExposeTraceback
	}
	return environment != "production"
}
