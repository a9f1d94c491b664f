package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// KakaoLoginURL is where the user login page sends browsers.
	KakaoLoginURL string        `env:"KAKAO_LOGIN_URL, default=/api/user/kakao/login"`
	MatchWindow   time.Duration `env:"MATCH_WINDOW,    default=10m"`

	Session SessionConfig
	Backend BackendConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// Backend selects the store behind session state: memory, redis or mongo.
	Backend    string        `env:"SESSION_BACKEND,    default=memory"`
	CookieName string        `env:"SESSION_COOKIE,     default=pirates_sid"`
	TTL        time.Duration `env:"SESSION_TTL,        default=24h"`
	SealKey    string        `env:"SESSION_SEAL_KEY"`
	WriteMode  string        `env:"SESSION_WRITE_MODE, default=async"`
	Writers    int           `env:"SESSION_WRITERS,    default=4"`
	Idle       time.Duration `env:"SESSION_IDLE,       default=30m"`
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8000"`
	ChatURL string        `env:"CHAT_URL,        default=http://localhost:8001"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,       default=pirates_console"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL, default=0"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := Parse(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Parse reads configuration from l and validates it.
func Parse(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Session.Backend {
	case "memory", "redis", "mongo":
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory, redis or mongo, got %q", c.Session.Backend)
	}
	switch c.Session.WriteMode {
	case "sync", "async":
	default:
		return fmt.Errorf("SESSION_WRITE_MODE must be sync or async, got %q", c.Session.WriteMode)
	}
	if c.Session.Writers <= 0 {
		return fmt.Errorf("SESSION_WRITERS must be positive, got %d", c.Session.Writers)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
