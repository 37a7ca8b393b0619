package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPC.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "financing.events", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "AR", cfg.DefaultCountry().String())
	assert.False(t, cfg.Simulation.ReuseReferencePrice)
	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, ":9090", cfg.GRPCAddr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORAGE", "Memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("SIMULATION_SEED", "42")
	t.Setenv("REUSE_REFERENCE_PRICE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	t.Setenv("HTTP_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.True(t, cfg.Simulation.ReuseReferencePrice)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 8080, cfg.HTTPPort)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DEFAULT_COUNTRY=cl\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	// godotenv never overrides variables that are already set.
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("DEFAULT_COUNTRY") })

	cfg := Load()

	assert.Equal(t, "CL", cfg.DefaultCountry().String())
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage:    StorageMemory,
			JWT:        JWTConfig{Secret: "s3cret"},
			Simulation: SimulationConfig{DefaultCountry: "AR"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid memory", func(*Config) {}, ""},
		{"postgres without password", func(c *Config) { c.Storage = StoragePostgres }, "DB_PASSWORD"},
		{"unknown storage", func(c *Config) { c.Storage = "redis" }, "STORAGE"},
		{"no jwt material", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET"},
		{"bad country", func(c *Config) { c.Simulation.DefaultCountry = "ARG" }, "DEFAULT_COUNTRY"},
		{"half tls", func(c *Config) { c.GRPC.TLSCertFile = "cert.pem" }, "GRPC_TLS"},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }, "RATE_LIMIT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
