package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	Uploads  Uploads
	Log      Log
	App      App
}

type Server struct {
	Port        string
	Environment string
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type Database struct {
	DSN          string
	MaxOpenConns int `mapstructure:"max_open_conns"`
	MaxIdleConns int `mapstructure:"max_idle_conns"`
}

type JWT struct {
	Secret string
	TTL    time.Duration
}

type Uploads struct {
	Dir      string
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type Log struct {
	Level string
	File  string
	JSON  bool
}

type App struct {
	Timezone  string
	FeedLimit int `mapstructure:"feed_limit"`
}

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrMissingDSN    = errors.New("database dsn is not configured")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.environment", "local")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("jwt.ttl", 7*24*time.Hour)
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.max_bytes", 5*1024*1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.feed_limit", 50)
}

// Load reads the YAML file at path (if any) and layers HABIT_* environment
// variables on top. A missing file is not an error; everything has a default
// or an environment override.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("habit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare variable names used by existing deployments.
	_ = v.BindEnv("jwt.secret", "HABIT_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("database.dsn", "HABIT_DATABASE_DSN", "DATABASE_URL")
	_ = v.BindEnv("server.port", "HABIT_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.environment", "HABIT_SERVER_ENVIRONMENT", "DEPLOYMENT_ENV")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingSecret
	}
	if c.Database.DSN == "" {
		return ErrMissingDSN
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "cloud" || c.Server.Environment == "production"
}
