package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	Catalog      CatalogConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Sessions     SessionConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.useSQLite()
	}
	if cfg.Catalog.UsesDB() {
		if err := cfg.RequireDB(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`

	CORSAllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	Source        string `envconfig:"STOREFRONT_CATALOG_SOURCE" default:"seed"`
	FeaturedLimit int    `envconfig:"STOREFRONT_CATALOG_FEATURED_LIMIT" default:"3"`
}

// UsesDB reports whether the catalog is read from the products table.
func (c CatalogConfig) UsesDB() bool {
	return strings.EqualFold(strings.TrimSpace(c.Source), CatalogSourceDB)
}

func (c CatalogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Source)) {
	case CatalogSourceSeed, CatalogSourceDB:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvCatalogSource, CatalogSourceSeed, CatalogSourceDB, c.Source)
	}
	if c.FeaturedLimit <= 0 {
		return fmt.Errorf("%s must be positive", EnvCatalogFeaturedLimit)
	}
	return nil
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOREFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a redis endpoint was configured. Rate limiting is
// skipped when it is not.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"STOREFRONT_PRICING_FREE_SHIPPING_THRESHOLD" default:"999"`
	ShippingFlatFee       decimal.Decimal `envconfig:"STOREFRONT_PRICING_SHIPPING_FLAT_FEE" default:"99"`
}

func (p PricingConfig) validate() error {
	if p.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvShippingThreshold)
	}
	if p.ShippingFlatFee.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvShippingFlatFee)
	}
	return nil
}

type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"STOREFRONT_SESSION_IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"STOREFRONT_SESSION_SWEEP_INTERVAL" default:"1m"`
	MaxActive     int           `envconfig:"STOREFRONT_SESSION_MAX_ACTIVE" default:"10000"`
}

type RateLimitConfig struct {
	Window     time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_WINDOW" default:"1m"`
	CartWrites int           `envconfig:"STOREFRONT_RATE_LIMIT_CART_WRITES" default:"120"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}

// RequireDB resolves the database DSN for callers that cannot run without a
// database, such as the migrate binary.
func (c *Config) RequireDB() error {
	return c.DB.ensureDSN()
}

func (db *DBConfig) useSQLite() {
	db.Driver = DBDriverSQLite
	if db.DSN == "" {
		db.DSN = DefaultSQLiteDSN
	}
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
