package config

import (
	"os"
	"strconv"
	"time"

	"github.com/samber/lo"

	"creme-menu/internal/logx"
)

var configLogger = logx.GetScope("config")

// Config holds the application configuration
type Config struct {
	AppEnv string
	Server struct {
		Addr string
	}
	Log struct {
		Level  string // debug, info, warn, error
		Format string // text, json
	}
	DB struct {
		Driver       string // postgres | sqlite
		URL          string
		MaxOpenConns int
		MaxIdleConns int
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	MQ struct {
		URL      string // RabbitMQ URL
		Exchange string
	}
	ES struct {
		Addrs         string // comma separated
		Username      string
		Password      string
		EntriesIndex  string
		EntitiesIndex string
	}
	Apollo struct {
		Enable    bool
		AppID     string
		Cluster   string
		Namespace string
		Addrs     string
		AccessKey string
	}
	JWT struct {
		Algo         string // HS256 | RS256
		HSSecret     string
		RSPrivateKey string
		RSPublicKey  string
		Issuer       string
		Audience     string
		AccessMin    int
		RefreshDays  int
	}
	Admin struct {
		Username     string
		PasswordHash string // argon2id, see auth.HashPassword
	}
	Menu struct {
		CacheTTLSec int
		RecentMax   int
	}
	RateLimit struct {
		WindowSec int
		Max       int
	}
}

// CacheTTL is the lifetime of the cached menu configuration records.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Menu.CacheTTLSec) * time.Second
}

// Load loads config from env, and if enabled, overrides with Apollo values.
// Returns config, store, optional apollo closer, and error.
func Load() (*Config, *Store, func(), error) {
	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.Server.Addr = getEnv("SERVER_ADDR", ":8080")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "text")

	cfg.DB.Driver = getEnv("DB_DRIVER", "postgres")
	cfg.DB.URL = getEnv("DB_URL", getEnv("POSTGRES_URL", ""))
	cfg.DB.MaxOpenConns = getInt("DB_MAX_OPEN", 10)
	cfg.DB.MaxIdleConns = getInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	cfg.MQ.URL = getEnv("RABBITMQ_URL", "")
	cfg.MQ.Exchange = getEnv("RABBITMQ_EXCHANGE", "events")

	cfg.ES.Addrs = getEnv("ES_ADDRS", "")
	cfg.ES.Username = getEnv("ES_USERNAME", "")
	cfg.ES.Password = getEnv("ES_PASSWORD", "")
	cfg.ES.EntriesIndex = getEnv("ES_ENTRIES_INDEX", "menu_entries")
	cfg.ES.EntitiesIndex = getEnv("ES_ENTITIES_INDEX", "entities")

	cfg.Apollo.Enable = getBool("APOLLO_ENABLE", false)
	cfg.Apollo.AppID = getEnv("APOLLO_APP_ID", "")
	cfg.Apollo.Cluster = getEnv("APOLLO_CLUSTER", "default")
	cfg.Apollo.Namespace = getEnv("APOLLO_NAMESPACE", "application")
	cfg.Apollo.Addrs = getEnv("APOLLO_ADDRS", "")
	cfg.Apollo.AccessKey = getEnv("APOLLO_ACCESS_KEY", "")

	cfg.JWT.Algo = getEnv("JWT_ALGO", "HS256")
	cfg.JWT.HSSecret = getEnv("JWT_HS_SECRET", "")
	cfg.JWT.RSPrivateKey = getEnv("JWT_RS_PRIVATE_KEY", "")
	cfg.JWT.RSPublicKey = getEnv("JWT_RS_PUBLIC_KEY", "")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "creme-menu")
	cfg.JWT.Audience = getEnv("JWT_AUDIENCE", "creme")
	cfg.JWT.AccessMin = getInt("JWT_ACCESS_MIN", 15)
	cfg.JWT.RefreshDays = getInt("JWT_REFRESH_DAYS", 14)

	cfg.Admin.Username = getEnv("ADMIN_USERNAME", "admin")
	cfg.Admin.PasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")

	cfg.Menu.CacheTTLSec = getInt("MENU_CACHE_TTL_SEC", 300)
	cfg.Menu.RecentMax = getInt("MENU_RECENT_MAX", 10)

	cfg.RateLimit.WindowSec = getInt("RATE_LIMIT_WINDOW_SEC", 60)
	cfg.RateLimit.Max = getInt("RATE_LIMIT_MAX", 120)

	store := NewStore(cfg)

	if cfg.Apollo.Enable {
		closer, err := overrideFromApollo(cfg, store)
		if err != nil {
			configLogger.Sugar().Errorf("apollo override failed: %v", err)
			return cfg, store, closer, err
		}
		return cfg, store, closer, nil
	}

	return cfg, store, nil, nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	return lo.Ternary(v != "", v, def)
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
