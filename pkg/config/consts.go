package config

const (
	EnvPrefix = "INSIGHTS"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv = "INSIGHTS_APP_ENV"
	EnvPort   = "INSIGHTS_APP_PORT"

	EnvDBDSN  = "INSIGHTS_DB_DSN"
	EnvDBHost = "INSIGHTS_DB_HOST"
	EnvDBUser = "INSIGHTS_DB_USER"
	EnvDBName = "INSIGHTS_DB_NAME"

	EnvRedisURL = "INSIGHTS_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
