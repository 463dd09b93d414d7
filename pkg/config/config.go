package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Checkout      CheckoutConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every inconsistent setting at once.
func (c *Config) Validate() error {
	var err error
	if c.JWT.ExpirationMinutes <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvJWTExpMins))
	}
	if c.JWT.RefreshTokenTTL() <= time.Duration(c.JWT.ExpirationMinutes)*time.Minute {
		err = multierr.Append(err, fmt.Errorf("%s must exceed %s", EnvRefreshTokenTTLMinutes, EnvJWTExpMins))
	}
	switch c.DB.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		err = multierr.Append(err, fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver))
	}
	if c.Checkout.LockTTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvCheckoutLockTTL))
	}
	if c.App.IsProd() && c.FeatureFlags.UseSQLite {
		err = multierr.Append(err, errors.New("sqlite is not allowed in production"))
	}
	return err
}

type AppConfig struct {
	Env          string   `envconfig:"VIBEOUTFIT_APP_ENV" required:"true"`
	Port         string   `envconfig:"VIBEOUTFIT_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"VIBEOUTFIT_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"VIBEOUTFIT_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"VIBEOUTFIT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VIBEOUTFIT_DB_DSN"`
	Driver string `envconfig:"VIBEOUTFIT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VIBEOUTFIT_DB_HOST"`
	LegacyPort     int    `envconfig:"VIBEOUTFIT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VIBEOUTFIT_DB_USER"`
	LegacyPassword string `envconfig:"VIBEOUTFIT_DB_PASSWORD"`
	LegacyName     string `envconfig:"VIBEOUTFIT_DB_NAME"`
	LegacySSLMode  string `envconfig:"VIBEOUTFIT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VIBEOUTFIT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VIBEOUTFIT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VIBEOUTFIT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VIBEOUTFIT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VIBEOUTFIT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VIBEOUTFIT_REDIS_ADDR"`
	Password     string        `envconfig:"VIBEOUTFIT_REDIS_PASSWORD"`
	DB           int           `envconfig:"VIBEOUTFIT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VIBEOUTFIT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VIBEOUTFIT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VIBEOUTFIT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VIBEOUTFIT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VIBEOUTFIT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"VIBEOUTFIT_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VIBEOUTFIT_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"VIBEOUTFIT_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"VIBEOUTFIT_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VIBEOUTFIT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VIBEOUTFIT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VIBEOUTFIT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VIBEOUTFIT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VIBEOUTFIT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"VIBEOUTFIT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"VIBEOUTFIT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"VIBEOUTFIT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"VIBEOUTFIT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"VIBEOUTFIT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"VIBEOUTFIT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CheckoutConfig struct {
	LockTTL        time.Duration `envconfig:"VIBEOUTFIT_CHECKOUT_LOCK_TTL" default:"30s"`
	IdempotencyTTL time.Duration `envconfig:"VIBEOUTFIT_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VIBEOUTFIT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VIBEOUTFIT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == DBDriverSQLite {
		db.DSN = defaultSQLiteDSN
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
