package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Service  ServiceConfig
	DB       DBConfig
	Redis    RedisConfig
	Reports  ReportsConfig
	GCP      GCPConfig
	PubSub   PubSubConfig
	BigQuery BigQueryConfig
	Features FeatureFlagsConfig
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
	Env          string   `envconfig:"INSIGHTS_APP_ENV" required:"true"`
	Port         string   `envconfig:"INSIGHTS_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"INSIGHTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"INSIGHTS_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"INSIGHTS_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"INSIGHTS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"INSIGHTS_DB_DSN"`
	Driver string `envconfig:"INSIGHTS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"INSIGHTS_DB_HOST"`
	LegacyPort     int    `envconfig:"INSIGHTS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"INSIGHTS_DB_USER"`
	LegacyPassword string `envconfig:"INSIGHTS_DB_PASSWORD"`
	LegacyName     string `envconfig:"INSIGHTS_DB_NAME"`
	LegacySSLMode  string `envconfig:"INSIGHTS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INSIGHTS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INSIGHTS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INSIGHTS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INSIGHTS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INSIGHTS_REDIS_URL"`
	Address      string        `envconfig:"INSIGHTS_REDIS_ADDR"`
	Password     string        `envconfig:"INSIGHTS_REDIS_PASSWORD"`
	DB           int           `envconfig:"INSIGHTS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INSIGHTS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INSIGHTS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INSIGHTS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INSIGHTS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INSIGHTS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ReportsConfig tunes the metrics engine and its cache.
type ReportsConfig struct {
	RecoveryWindow      time.Duration `envconfig:"INSIGHTS_REPORTS_RECOVERY_WINDOW" default:"48h"`
	CacheTTL            time.Duration `envconfig:"INSIGHTS_REPORTS_CACHE_TTL" default:"5m"`
	MaxForecastDays     int           `envconfig:"INSIGHTS_REPORTS_MAX_FORECAST_DAYS" default:"90"`
	DefaultLookbackDays int           `envconfig:"INSIGHTS_REPORTS_DEFAULT_LOOKBACK_DAYS" default:"30"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"INSIGHTS_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"INSIGHTS_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"INSIGHTS_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	CommerceTopic        string        `envconfig:"INSIGHTS_PUBSUB_COMMERCE_TOPIC" default:"commerce-events"`
	CommerceSubscription string        `envconfig:"INSIGHTS_PUBSUB_COMMERCE_SUBSCRIPTION"`
	IdempotencyTTL       time.Duration `envconfig:"INSIGHTS_PUBSUB_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"INSIGHTS_AUTO_MIGRATE" default:"false"`
}

type BigQueryConfig struct {
	Dataset             string `envconfig:"INSIGHTS_BIGQUERY_DATASET" default:"storefront"`
	CommerceEventsTable string `envconfig:"INSIGHTS_BIGQUERY_COMMERCE_TABLE" default:"commerce_events"`
}

// Enabled reports whether the warehouse trend source is configured.
func (b BigQueryConfig) Enabled(gcp GCPConfig) bool {
	return gcp.ProjectID != "" && b.Dataset != "" && b.CommerceEventsTable != ""
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
