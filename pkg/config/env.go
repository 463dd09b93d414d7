package config

const EnvPrefix = "VIBEOUTFIT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:vibeoutfit.db?cache=shared&_foreign_keys=on"
)

const (
	EnvAppEnv   = "VIBEOUTFIT_APP_ENV"
	EnvPort     = "VIBEOUTFIT_APP_PORT"
	EnvUseSQL   = "VIBEOUTFIT_USE_SQLITE"
	EnvDBDSN    = "VIBEOUTFIT_DB_DSN"
	EnvDBHost   = "VIBEOUTFIT_DB_HOST"
	EnvDBUser   = "VIBEOUTFIT_DB_USER"
	EnvDBName   = "VIBEOUTFIT_DB_NAME"
	EnvDBDriver = "VIBEOUTFIT_DB_DRIVER"

	EnvRedisURL = "VIBEOUTFIT_REDIS_URL"

	EnvJWTSecret              = "VIBEOUTFIT_JWT_SECRET"
	EnvJWTIssuer              = "VIBEOUTFIT_JWT_ISSUER"
	EnvJWTExpMins             = "VIBEOUTFIT_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "VIBEOUTFIT_REFRESH_TOKEN_TTL_MINUTES"

	EnvCheckoutLockTTL = "VIBEOUTFIT_CHECKOUT_LOCK_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
