package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CatalogSourceSeed = "seed"
	CatalogSourceDB   = "db"

	DBDriverSQLite   = "sqlite"
	DefaultSQLiteDSN = "file:storefront.db?cache=shared&_foreign_keys=1"
)

const (
	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvPort         = "STOREFRONT_APP_PORT"
	EnvLogLevel     = "STOREFRONT_LOG_LEVEL"
	EnvLogFormat    = "STOREFRONT_LOG_FORMAT"
	EnvLogWarnStack = "STOREFRONT_LOG_WARN_STACK"
	EnvCORSOrigins  = "STOREFRONT_CORS_ALLOWED_ORIGINS"

	EnvCatalogSource        = "STOREFRONT_CATALOG_SOURCE"
	EnvCatalogFeaturedLimit = "STOREFRONT_CATALOG_FEATURED_LIMIT"

	EnvDBDSN      = "STOREFRONT_DB_DSN"
	EnvDBDriver   = "STOREFRONT_DB_DRIVER"
	EnvDBHost     = "STOREFRONT_DB_HOST"
	EnvDBPort     = "STOREFRONT_DB_PORT"
	EnvDBUser     = "STOREFRONT_DB_USER"
	EnvDBPassword = "STOREFRONT_DB_PASSWORD"
	EnvDBName     = "STOREFRONT_DB_NAME"
	EnvDBSSLMode  = "STOREFRONT_DB_SSLMODE"

	EnvRedisURL  = "STOREFRONT_REDIS_URL"
	EnvRedisAddr = "STOREFRONT_REDIS_ADDR"

	EnvShippingThreshold = "STOREFRONT_PRICING_FREE_SHIPPING_THRESHOLD"
	EnvShippingFlatFee   = "STOREFRONT_PRICING_SHIPPING_FLAT_FEE"

	EnvSessionIdleTTL       = "STOREFRONT_SESSION_IDLE_TTL"
	EnvSessionSweepInterval = "STOREFRONT_SESSION_SWEEP_INTERVAL"
	EnvSessionMaxActive     = "STOREFRONT_SESSION_MAX_ACTIVE"

	EnvRateLimitWindow    = "STOREFRONT_RATE_LIMIT_WINDOW"
	EnvRateLimitCartLimit = "STOREFRONT_RATE_LIMIT_CART_WRITES"

	EnvUseSQLite   = "STOREFRONT_USE_SQLITE"
	EnvAutoMigrate = "STOREFRONT_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
