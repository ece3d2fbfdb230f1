package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: career-predictor\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "1.6.1", cfg.Model.ExpectedSklearnVersion)
	assert.Equal(t, SourceFile, cfg.Model.Artifacts.Source)
	assert.Equal(t, "models", cfg.Model.Artifacts.Dir)
	assert.Equal(t, "career_model", cfg.Model.Artifacts.Names.Classifier)
	assert.Equal(t, "column_transformer", cfg.Model.Artifacts.Names.Transformer)
	assert.Equal(t, "label_encoder", cfg.Model.Artifacts.Names.Decoder)
	assert.Equal(t, "multilabelbinarizer", cfg.Model.Artifacts.Names.Encoder)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "career-predictor", cfg.Tracing.ServiceName)
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_MODEL_DIR", "/srv/models")
	path := writeConfig(t, "model:\n  artifacts:\n    dir: ${TEST_MODEL_DIR}\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/models", cfg.Model.Artifacts.Dir)
}

func TestLoadFromFile_UnsetPlaceholderUsesDefault(t *testing.T) {
	path := writeConfig(t, "model:\n  artifacts:\n    dir: ${CAREER_TEST_UNSET_DIR}\ntracing:\n  jaeger_endpoint: ${CAREER_TEST_UNSET_JAEGER}\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "models", cfg.Model.Artifacts.Dir)
	assert.Empty(t, cfg.Tracing.JaegerEndpoint)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("MODEL_EXPECTED_SKLEARN_VERSION", "1.5.0")
	path := writeConfig(t, "model:\n  expected_sklearn_version: 1.6.1\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", cfg.Model.ExpectedSklearnVersion)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "unknown source",
			body:   "model:\n  artifacts:\n    source: s3\n",
			errMsg: "not supported",
		},
		{
			name:   "http without base url",
			body:   "model:\n  artifacts:\n    source: http\n",
			errMsg: "base_url is required",
		},
		{
			name:   "redis without address",
			body:   "model:\n  artifacts:\n    source: redis\n",
			errMsg: "database.redis.address is required",
		},
		{
			name:   "postgres without host",
			body:   "model:\n  artifacts:\n    source: postgres\n",
			errMsg: "database.postgres.host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestServerConfig_TracebackEnabled(t *testing.T) {
	off := false
	assert.True(t, ServerConfig{}.TracebackEnabled("development"))
	assert.False(t, ServerConfig{}.TracebackEnabled("production"))
	assert.False(t, ServerConfig{ExposeTraceback: &off}.TracebackEnabled("development"))
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
