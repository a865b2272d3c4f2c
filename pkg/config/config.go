package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SMOKERSCLUB"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SMOKERSCLUB_DB_DSN"
	EnvDBHost = "SMOKERSCLUB_DB_HOST"
	EnvDBUser = "SMOKERSCLUB_DB_USER"
	EnvDBName = "SMOKERSCLUB_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	AdminAuth     AdminAuthConfig
	AuthRateLimit AuthRateLimitConfig
	Password      PasswordConfig
	Session       SessionConfig
	Checkout      CheckoutConfig
	Square        SquareConfig
	Sendgrid      SendgridConfig
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
	Env          string `envconfig:"SMOKERSCLUB_APP_ENV" required:"true"`
	Port         string `envconfig:"SMOKERSCLUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SMOKERSCLUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMOKERSCLUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SMOKERSCLUB_DB_DSN"`
	Driver string `envconfig:"SMOKERSCLUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SMOKERSCLUB_DB_HOST"`
	LegacyPort     int    `envconfig:"SMOKERSCLUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SMOKERSCLUB_DB_USER"`
	LegacyPassword string `envconfig:"SMOKERSCLUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"SMOKERSCLUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"SMOKERSCLUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMOKERSCLUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMOKERSCLUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMOKERSCLUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMOKERSCLUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMOKERSCLUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SMOKERSCLUB_REDIS_ADDR"`
	Password     string        `envconfig:"SMOKERSCLUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMOKERSCLUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMOKERSCLUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMOKERSCLUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMOKERSCLUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMOKERSCLUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMOKERSCLUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type AdminAuthConfig struct {
	SessionTTLHours int `envconfig:"SMOKERSCLUB_ADMIN_SESSION_TTL_HOURS" default:"24"`
}

// SessionTTL returns the admin session lifetime.
func (a AdminAuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.SessionTTLHours) * time.Hour
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SMOKERSCLUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SMOKERSCLUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SMOKERSCLUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SMOKERSCLUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SMOKERSCLUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SMOKERSCLUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SMOKERSCLUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SMOKERSCLUB_ARGON_KEY_LEN" default:"32"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"SMOKERSCLUB_SESSION_COOKIE_NAME" default:"sc_session"`
	TTL        time.Duration `envconfig:"SMOKERSCLUB_SESSION_TTL" default:"24h"`
	Secure     bool          `envconfig:"SMOKERSCLUB_SESSION_COOKIE_SECURE" default:"true"`
}

type CheckoutConfig struct {
	SuccessURL string        `envconfig:"SMOKERSCLUB_CHECKOUT_SUCCESS_URL" required:"true"`
	CancelURL  string        `envconfig:"SMOKERSCLUB_CHECKOUT_CANCEL_URL" required:"true"`
	Timeout    time.Duration `envconfig:"SMOKERSCLUB_CHECKOUT_TIMEOUT" default:"15s"`
}

type SquareConfig struct {
	AccessToken   string `envconfig:"SMOKERSCLUB_SQUARE_ACCESS_TOKEN"`
	WebhookSecret string `envconfig:"SMOKERSCLUB_SQUARE_WEBHOOK_SECRET"`
	Env           string `envconfig:"SMOKERSCLUB_SQUARE_ENV" default:"sandbox"`
	LocationID    string `envconfig:"SMOKERSCLUB_SQUARE_LOCATION_ID"`
}

// Environment returns the normalized Square environment (sandbox/production).
func (s SquareConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type SendgridConfig struct {
	APIKey         string `envconfig:"SMOKERSCLUB_SENDGRID_API_KEY"`
	DefaultFrom    string `envconfig:"SMOKERSCLUB_SENDGRID_FROM_EMAIL"`
	WholesaleInbox string `envconfig:"SMOKERSCLUB_WHOLESALE_INBOX"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SMOKERSCLUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SMOKERSCLUB_AUTO_MIGRATE" default:"false"`
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
