package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"studentsites/internal/domain"
)

const (
	DriverMySQL = "mysql"
	DriverMongo = "mongo"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Cache    CacheConfig
	Order    OrderConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port               int
	CORSAllowedOrigins []string
	SubmitRateLimit    float64
	SubmitRateBurst    int
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
	AutoMigrate     bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

type OrderConfig struct {
	TransitionPolicy string
}

type LogConfig struct {
	Level string
}

// Load reads configuration from the optional YAML file at path, then from the
// environment. Environment variables win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("SUBMIT_RATE_LIMIT_RPS", 5)
	v.SetDefault("SUBMIT_RATE_LIMIT_BURST", 10)
	v.SetDefault("STORAGE_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "studentsites")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "studentsites")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("STORAGE_QUERY_TIMEOUT", "5s")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "studentsites")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("ORDER_TRANSITION_POLICY", domain.PolicyPermissive)
	v.SetDefault("LOG_LEVEL", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}
	queryTimeout, err := time.ParseDuration(v.GetString("STORAGE_QUERY_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing STORAGE_QUERY_TIMEOUT: %w", err)
	}
	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing CACHE_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetInt("SERVER_PORT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			SubmitRateLimit:    v.GetFloat64("SUBMIT_RATE_LIMIT_RPS"),
			SubmitRateBurst:    v.GetInt("SUBMIT_RATE_LIMIT_BURST"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			QueryTimeout:    queryTimeout,
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Cache: CacheConfig{
			RedisAddr: v.GetString("REDIS_ADDR"),
			TTL:       cacheTTL,
		},
		Order: OrderConfig{
			TransitionPolicy: strings.ToLower(v.GetString("ORDER_TRANSITION_POLICY")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverMongo:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Database.Driver)
	}
	if _, err := domain.ParseTransitionPolicy(c.Order.TransitionPolicy); err != nil {
		return fmt.Errorf("ORDER_TRANSITION_POLICY: %w", err)
	}
	if c.Server.SubmitRateLimit < 0 || c.Server.SubmitRateBurst < 0 {
		return errors.New("submit rate limit must not be negative")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
