package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARGALOG_APP_ENV" required:"true"`
	Port         string `envconfig:"CARGALOG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARGALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARGALOG_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"CARGALOG_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARGALOG_DB_DSN"`
	Driver string `envconfig:"CARGALOG_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARGALOG_DB_HOST"`
	LegacyPort     int    `envconfig:"CARGALOG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARGALOG_DB_USER"`
	LegacyPassword string `envconfig:"CARGALOG_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARGALOG_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARGALOG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARGALOG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARGALOG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARGALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARGALOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN derives a DSN from the legacy host/user fields when an explicit
// DSN is not provided.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either CARGALOG_DB_DSN or host/user/name must be set")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.LegacyUser),
		url.QueryEscape(d.LegacyPassword),
		d.LegacyHost,
		d.LegacyPort,
		d.LegacyName,
		d.LegacySSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"CARGALOG_REDIS_URL"`
	Address      string        `envconfig:"CARGALOG_REDIS_ADDR"`
	Password     string        `envconfig:"CARGALOG_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARGALOG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARGALOG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARGALOG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARGALOG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARGALOG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARGALOG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CARGALOG_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CARGALOG_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CARGALOG_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CARGALOG_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CARGALOG_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CARGALOG_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CARGALOG_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CARGALOG_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CARGALOG_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"CARGALOG_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CARGALOG_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARGALOG_FEATURE_AUTO_MIGRATE" default:"false"`
}
