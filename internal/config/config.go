package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal      = "local"
	EnvDev        = "dev"
	EnvProduction = "production"

	DBDriverMongo  = "mongo"
	DBDriverMySQL  = "mysql"
	DBDriverMemory = "memory"

	PendingStoreMemory = "memory"
	PendingStoreRedis  = "redis"

	EmailProviderSMTP     = "smtp"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderConsole  = "console"

	NotifyModeDirect = "direct"
	NotifyModeQueue  = "queue"
)

type Config struct {
	Env          string `env:"ENV" env-default:"local" env-description:"one of local, dev, production"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	Version      string `env:"APP_VERSION" env-default:"dev"`
	HttpServer   HttpServer
	Database     Database
	Limiter      Limiter
	Auth         AuthConfig
	Registration RegistrationConfig
	Email        EmailConfig
	SMTP         SMTPConfig
	SendGrid     SendGridConfig
	Notify       NotifyConfig
	Cache        Cache
	Metrics      MetricsConfig
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	CORSOrigins    []string      `env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:3000" env-separator:","`
}

type Database struct {
	Driver string `env:"DB_DRIVER" env-default:"mongo" env-description:"one of mongo, mysql, memory"`
	Mongo  MongoConfig
	MySQL  MySQLConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string        `env:"MONGO_DATABASE" env-default:"clinickart"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT" env-default:"10s"`
}

type MySQLConfig struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER"`
	DBName             string        `env:"DB_NAME"`
	User               string        `env:"DB_USER"`
	Password           string        `env:"DB_PASSWORD"`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT        JWTConfig
	BcryptCost int    `env:"AUTH_BCRYPT_COST" env-default:"12"`
	OTPLength  int    `env:"AUTH_OTP_LENGTH" env-default:"6"`
	OTPSalt    string `env:"AUTH_OTP_SALT" env-default:""`
}

type JWTConfig struct {
	AccessSecret    string        `env:"JWT_ACCESS_SECRET" env-required:"true"`
	RefreshSecret   string        `env:"JWT_REFRESH_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"168h"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
	Issuer          string        `env:"JWT_ISSUER" env-default:"clinickart-api"`
	Audience        string        `env:"JWT_AUDIENCE" env-default:"clinickart-users"`
}

type RegistrationConfig struct {
	PendingTTL     time.Duration `env:"REGISTRATION_PENDING_TTL" env-default:"15m"`
	OTPTTL         time.Duration `env:"REGISTRATION_OTP_TTL" env-default:"10m"`
	ResendCooldown time.Duration `env:"REGISTRATION_RESEND_COOLDOWN" env-default:"2m"`
	MaxOTPAttempts int           `env:"REGISTRATION_MAX_OTP_ATTEMPTS" env-default:"5"`
	SweepInterval  time.Duration `env:"REGISTRATION_SWEEP_INTERVAL" env-default:"30m"`
	ExposeOTP      bool          `env:"REGISTRATION_EXPOSE_OTP" env-default:"false" env-description:"return the otp in api responses, never allowed in production"`
	HashAtIntake   bool          `env:"REGISTRATION_HASH_AT_INTAKE" env-default:"false"`
	PendingStore   string        `env:"REGISTRATION_PENDING_STORE" env-default:"memory" env-description:"one of memory, redis"`
}

type EmailConfig struct {
	Enabled     bool   `env:"EMAIL_ENABLED" env-default:"false"`
	Provider    string `env:"EMAIL_PROVIDER" env-default:"console" env-description:"one of smtp, sendgrid, console"`
	From        string `env:"EMAIL_FROM" env-default:"no-reply@clinickart.com"`
	FromName    string `env:"EMAIL_FROM_NAME" env-default:"ClinicKart"`
	FrontendURL string `env:"EMAIL_FRONTEND_URL" env-default:"http://localhost:3000"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-default:"localhost"`
	Port int    `env:"SMTP_PORT" env-default:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
}

type SendGridConfig struct {
	APIKey string `env:"SENDGRID_API_KEY"`
}

type NotifyConfig struct {
	Mode    string        `env:"NOTIFY_MODE" env-default:"direct" env-description:"one of direct, queue"`
	Timeout time.Duration `env:"NOTIFY_TIMEOUT" env-default:"10s"`
	Breaker BreakerConfig
}

type BreakerConfig struct {
	MaxRequests      uint32        `env:"NOTIFY_BREAKER_MAX_REQUESTS" env-default:"1"`
	Interval         time.Duration `env:"NOTIFY_BREAKER_INTERVAL" env-default:"1m"`
	Timeout          time.Duration `env:"NOTIFY_BREAKER_TIMEOUT" env-default:"30s"`
	FailureThreshold uint32        `env:"NOTIFY_BREAKER_FAILURE_THRESHOLD" env-default:"5"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-default:"redis" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"localhost:6379" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" env-default:"true"`
}

// NeedsRedis reports whether any configured component talks to redis.
func (c *Config) NeedsRedis() bool {
	return c.Registration.PendingStore == PendingStoreRedis || c.Notify.Mode == NotifyModeQueue
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) Validate() error {
	var errs []error

	if c.IsProduction() && c.Registration.ExposeOTP {
		errs = append(errs, errors.New("REGISTRATION_EXPOSE_OTP must not be enabled in production"))
	}

	if c.Auth.JWT.AccessSecret == c.Auth.JWT.RefreshSecret {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ"))
	}

	if c.Auth.OTPLength < 4 || c.Auth.OTPLength > 8 {
		errs = append(errs, fmt.Errorf("AUTH_OTP_LENGTH must be between 4 and 8, got %d", c.Auth.OTPLength))
	}

	if c.IsProduction() && c.Auth.OTPSalt == "" {
		errs = append(errs, errors.New("AUTH_OTP_SALT is required in production"))
	}

	if c.Registration.MaxOTPAttempts < 1 {
		errs = append(errs, errors.New("REGISTRATION_MAX_OTP_ATTEMPTS must be positive"))
	}

	if c.Registration.SweepInterval <= 0 {
		errs = append(errs, errors.New("REGISTRATION_SWEEP_INTERVAL must be positive"))
	}

	switch c.Database.Driver {
	case DBDriverMongo, DBDriverMemory:
	case DBDriverMySQL:
		if c.Database.MySQL.Server == "" || c.Database.MySQL.DBName == "" || c.Database.MySQL.User == "" {
			errs = append(errs, errors.New("DB_SERVER, DB_NAME and DB_USER are required for the mysql driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Registration.PendingStore {
	case PendingStoreMemory, PendingStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown REGISTRATION_PENDING_STORE %q", c.Registration.PendingStore))
	}

	switch c.Email.Provider {
	case EmailProviderConsole:
	case EmailProviderSMTP:
		if c.Email.Enabled && c.SMTP.Host == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp provider"))
		}
	case EmailProviderSendGrid:
		if c.Email.Enabled && c.SendGrid.APIKey == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required for the sendgrid provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown EMAIL_PROVIDER %q", c.Email.Provider))
	}

	switch c.Notify.Mode {
	case NotifyModeDirect, NotifyModeQueue:
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFY_MODE %q", c.Notify.Mode))
	}

	return errors.Join(errs...)
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env failed: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return cfg
}
