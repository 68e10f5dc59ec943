package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	MongoDB   MongoDBConfig   `mapstructure:"mongodb"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Coupon    CouponConfig    `mapstructure:"coupon"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// TrustedProxies are the CIDRs or IPs allowed to set X-Forwarded-For.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig selects the persistence backend. "memory" keeps everything in
// process and is meant for local runs only.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type MongoDBConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
}

type SMTPConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	TLS      bool          `mapstructure:"tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// BroadcastWorkers bounds the number of concurrent sends when mailing
	// every registered user.
	BroadcastWorkers int `mapstructure:"broadcast_workers"`
}

type CouponConfig struct {
	DefaultTTL    time.Duration `mapstructure:"default_ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"`
}

type RateLimitConfig struct {
	LoginAttempts int           `mapstructure:"login_attempts"`
	LoginWindow   time.Duration `mapstructure:"login_window"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.trusted_proxies", []string{})

	v.SetDefault("store.driver", "mongo")

	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.database", "merabestie")
	v.SetDefault("mongodb.max_pool_size", 10)
	v.SetDefault("mongodb.connect_timeout", 10*time.Second)
	v.SetDefault("mongodb.query_timeout", 5*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "token")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.secure", false)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "pecommerce8@gmail.com")
	v.SetDefault("smtp.tls", false)
	v.SetDefault("smtp.timeout", 10*time.Second)
	v.SetDefault("smtp.broadcast_workers", 8)

	v.SetDefault("coupon.default_ttl", 30*24*time.Hour)
	v.SetDefault("coupon.sweep_schedule", "@hourly")

	v.SetDefault("rate_limit.login_attempts", 5)
	v.SetDefault("rate_limit.login_window", 15*time.Minute)

	v.SetDefault("cors.allow_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
}

// legacyEnv maps the variable names used by existing deployments onto config
// keys. Every other key is reachable as its upper-cased, underscore-joined
// form (MONGODB_URI, SMTP_HOST, ...).
var legacyEnv = map[string]string{
	"session.secret":     "JWT_SECRET",
	"smtp.username":      "EMAIL_USER",
	"smtp.password":      "EMAIL_PASS",
	"smtp.tls":           "SMTP_SECURE",
	"server.port":        "PORT",
	"mongodb.uri":        "MONGO_URI",
	"redis.addr":         "REDIS_ADDR",
	"store.driver":       "STORE_DRIVER",
	"log.level":          "LOG_LEVEL",
	"cors.allow_origins": "CORS_ALLOW_ORIGINS",
}

// Load reads .env (when present), an optional YAML file and the environment,
// in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "mongo":
		if c.MongoDB.URI == "" {
			return errors.New("mongodb.uri (MONGODB_URI) is required when store.driver is mongo")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret (JWT_SECRET) is required")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.RateLimit.LoginAttempts <= 0 || c.RateLimit.LoginWindow <= 0 {
		return errors.New("rate_limit.login_attempts and rate_limit.login_window must be positive")
	}
	if c.SMTP.Timeout <= 0 {
		return errors.New("smtp.timeout must be positive")
	}
	if c.SMTP.BroadcastWorkers <= 0 {
		c.SMTP.BroadcastWorkers = 1
	}
	return nil
}
