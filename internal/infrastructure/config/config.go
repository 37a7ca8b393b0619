package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vehiclefin/financing-offer/internal/domain/valueobject"
	"github.com/vehiclefin/financing-offer/pkg/postgres"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether events go to Kafka rather than the log.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type JWTConfig struct {
	Secret         string
	PrivateKeyFile string
	PublicKeyFile  string
	Issuer         string
	Expiration     time.Duration
}

type AdminConfig struct {
	Username string
	Password string
}

type GRPCConfig struct {
	Port        int
	Reflection  bool
	TLSCertFile string
	TLSKeyFile  string
}

type SimulationConfig struct {
	// Seed 0 seeds from the clock.
	Seed                uint64
	ReuseReferencePrice bool
	DefaultCountry      string
}

type Config struct {
	ServiceName    string
	HTTPPort       int
	GRPC           GRPCConfig
	Storage        string
	DB             postgres.Config
	MigrationsPath string
	Kafka          KafkaConfig
	JWT            JWTConfig
	Admin          AdminConfig
	Simulation     SimulationConfig
	RateLimit      float64
	CORSOrigins    []string
	LogLevel       string
	LogFormat      string
	OTLPEndpoint   string
}

// Load reads the environment, after applying an optional .env file.
func Load() Config {
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	return Config{
		ServiceName: getEnv("SERVICE_NAME", "financing-offer"),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		GRPC: GRPCConfig{
			Port:        getEnvInt("GRPC_PORT", 9090),
			Reflection:  getEnvBool("GRPC_REFLECTION", false),
			TLSCertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
		},
		Storage: strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "financing"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "financing"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "financing.events"),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			PrivateKeyFile: getEnv("JWT_PRIVATE_KEY_FILE", ""),
			PublicKeyFile:  getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:         getEnv("JWT_ISSUER", "financing-offer"),
			Expiration:     getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Simulation: SimulationConfig{
			Seed:                uint64(getEnvInt("SIMULATION_SEED", 0)),
			ReuseReferencePrice: getEnvBool("REUSE_REFERENCE_PRICE", false),
			DefaultCountry:      getEnv("DEFAULT_COUNTRY", "AR"),
		},
		RateLimit:    getEnvFloat("RATE_LIMIT", 20),
		CORSOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// Validate rejects combinations the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StoragePostgres:
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required for postgres storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}
	if c.JWT.Secret == "" && c.JWT.PrivateKeyFile == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PRIVATE_KEY_FILE is required"))
	}
	if _, err := valueobject.NewCountryCode(c.Simulation.DefaultCountry); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_COUNTRY: %w", err))
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}
	return errors.Join(errs...)
}

// DefaultCountry returns the parsed fallback country. Call after Validate.
func (c Config) DefaultCountry() valueobject.CountryCode {
	return valueobject.MustCountryCode(c.Simulation.DefaultCountry)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPC.Port)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
