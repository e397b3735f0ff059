package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig     `mapstructure:"server"`
	Backend      BackendConfig    `mapstructure:"backend"`
	Session      SessionConfig    `mapstructure:"session"`
	Gate         GateConfig       `mapstructure:"gate"`
	RateLimit    RateLimitConfig  `mapstructure:"rate_limit" split_words:"true"`
	CORS         CORSConfig       `mapstructure:"cors"`
	Log          LogConfig        `mapstructure:"log"`
	DevBackend   DevBackendConfig `mapstructure:"devbackend"`
	SeedDemoData bool             `mapstructure:"seed_demo_data" split_words:"true"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" split_words:"true"`
}

// BackendConfig points at the REST backend. RequestTimeout is a transport
// safeguard on the HTTP client, not a per-operation deadline.
type BackendConfig struct {
	BaseURL        string        `mapstructure:"base_url" split_words:"true"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" split_words:"true"`
}

type SessionConfig struct {
	CookieName   string        `mapstructure:"cookie_name" split_words:"true"`
	TTL          time.Duration `mapstructure:"ttl"`
	Secure       bool          `mapstructure:"secure"`
	ProfileStore string        `mapstructure:"profile_store" split_words:"true"`
	RedisURL     string        `mapstructure:"redis_url" split_words:"true"`

	// WorkspaceTTL is how long an idle session keeps its screens.
	WorkspaceTTL  time.Duration `mapstructure:"workspace_ttl" split_words:"true"`
	MaxWorkspaces int           `mapstructure:"max_workspaces" split_words:"true"`
}

type GateConfig struct {
	LoginPath      string   `mapstructure:"login_path" split_words:"true"`
	HomePath       string   `mapstructure:"home_path" split_words:"true"`
	PublicPrefixes []string `mapstructure:"public_prefixes" split_words:"true"`
}

type RateLimitConfig struct {
	LoginRPS   float64 `mapstructure:"login_rps" split_words:"true"`
	LoginBurst int     `mapstructure:"login_burst" split_words:"true"`
}

// CORSConfig applies to the /api proxy. No origins means any origin.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins" split_words:"true"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DevBackendConfig struct {
	Port          int           `mapstructure:"port"`
	JWTSecret     string        `mapstructure:"jwt_secret" split_words:"true"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" split_words:"true"`
	AdminUsername string        `mapstructure:"admin_username" split_words:"true"`
	AdminPassword string        `mapstructure:"admin_password" split_words:"true"`
	AdminBranch   string        `mapstructure:"admin_branch" split_words:"true"`
}

const envPrefix = "console"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	v.SetDefault("backend.base_url", "http://127.0.0.1:8000")
	v.SetDefault("backend.request_timeout", 30*time.Second)

	v.SetDefault("session.cookie_name", "access_token")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("session.profile_store", "memory")
	v.SetDefault("session.workspace_ttl", 2*time.Hour)
	v.SetDefault("session.max_workspaces", 1000)

	v.SetDefault("gate.login_path", "/login")
	v.SetDefault("gate.home_path", "/")
	v.SetDefault("gate.public_prefixes", []string{"/login", "/register", "/static", "/api", "/health", "/metrics"})

	v.SetDefault("rate_limit.login_rps", 1.0)
	v.SetDefault("rate_limit.login_burst", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("devbackend.port", 8000)
	v.SetDefault("devbackend.token_ttl", 24*time.Hour)
	v.SetDefault("devbackend.admin_username", "admin")
	v.SetDefault("devbackend.admin_branch", "central")

	v.SetDefault("seed_demo_data", true)
}

// LoadConfig reads config.yaml (if any), then applies CONSOLE_* environment
// overrides, e.g. CONSOLE_BACKEND_BASE_URL or CONSOLE_SESSION_REDIS_URL.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app/config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name is required")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Session.WorkspaceTTL <= 0 {
		return errors.New("session.workspace_ttl must be positive")
	}
	switch strings.ToLower(c.Session.ProfileStore) {
	case "memory":
	case "redis":
		if c.Session.RedisURL == "" {
			return errors.New("session.redis_url is required when profile_store is redis")
		}
	default:
		return fmt.Errorf("unknown session.profile_store %q", c.Session.ProfileStore)
	}
	if !strings.HasPrefix(c.Gate.LoginPath, "/") || !strings.HasPrefix(c.Gate.HomePath, "/") {
		return errors.New("gate paths must be absolute")
	}
	for _, o := range c.CORS.AllowOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("cors origin %q must start with http:// or https://", o)
		}
	}
	return nil
}
