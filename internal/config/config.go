package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Fahad602/Dash-KanBan/pkg/logger"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config 애플리케이션 설정
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	CORS     CORSConfig     `yaml:"cors"`
	Board    BoardConfig    `yaml:"board"`
}

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port int    `yaml:"port" validate:"min=1,max=65535"`
	Mode string `yaml:"mode" validate:"oneof=debug release test"`
	Env  string `yaml:"env" validate:"required"`
}

// DatabaseConfig 데이터베이스 설정
type DatabaseConfig struct {
	Driver          string `yaml:"driver" validate:"oneof=mysql sqlite"`
	Host            string `yaml:"host" validate:"required_if=Driver mysql"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user" validate:"required_if=Driver mysql"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname" validate:"required_if=Driver mysql"`
	SQLitePath      string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
	MaxIdleConns    int    `yaml:"max_idle_conns" validate:"min=0"`
	MaxOpenConns    int    `yaml:"max_open_conns" validate:"min=0"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// RedisConfig Redis 설정
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host" validate:"required_if=Enabled true"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
	PoolSize int    `yaml:"pool_size" validate:"min=0"`
}

// CORSConfig CORS 설정 (comma separated origins)
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// BoardConfig 보드 설정
type BoardConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" validate:"min=0"`
}

// CacheTTL returns the board snapshot TTL
func (b BoardConfig) CacheTTL() time.Duration {
	return time.Duration(b.CacheTTLSeconds) * time.Second
}

// DefaultConfig returns the local development defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8081,
			Mode: "debug",
			Env:  "local",
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			Host:            "localhost",
			Port:            3306,
			User:            "ideaboard",
			DBName:          "ideaboard",
			SQLitePath:      "data/ideaboard.db",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 3600,
		},
		Redis: RedisConfig{
			Enabled:  false,
			Host:     "localhost",
			Port:     6379,
			PoolSize: 10,
		},
		CORS: CORSConfig{
			AllowOrigins: "http://localhost:3000,http://localhost:8050",
		},
		Board: BoardConfig{
			CacheTTLSeconds: 30,
		},
	}
}

var configValidator = validator.New()

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		logger.Warn("Config file %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := configValidator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides 환경변수로 덮어쓰기 (secrets, hosts)
func (c *Config) applyEnvOverrides() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(&c.Server.Env, "APP_ENV")
	setInt(&c.Server.Port, "SERVER_PORT")
	setString(&c.Server.Mode, "GIN_MODE")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SQLitePath, "DB_SQLITE_PATH")

	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Redis.Enabled = b
		}
	}
	setString(&c.Redis.Host, "REDIS_HOST")
	setInt(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")

	setString(&c.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
	setInt(&c.Board.CacheTTLSeconds, "BOARD_CACHE_TTL_SECONDS")
}

// IsDevelopment 개발 환경 여부
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Server.Env) {
	case "local", "dev", "development":
		return true
	}
	return false
}

// GetDSN MySQL DSN 생성
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

// LogResolved logs the effective configuration without secrets
func LogResolved(cfg *Config) {
	logger.GetLogger().Info().
		Str("env", cfg.Server.Env).
		Int("port", cfg.Server.Port).
		Str("gin_mode", cfg.Server.Mode).
		Str("db_driver", cfg.Database.Driver).
		Str("db_host", cfg.Database.Host).
		Str("db_name", cfg.Database.DBName).
		Str("sqlite_path", cfg.Database.SQLitePath).
		Bool("redis_enabled", cfg.Redis.Enabled).
		Str("redis_addr", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)).
		Str("cors_origins", cfg.CORS.AllowOrigins).
		Int("board_cache_ttl_seconds", cfg.Board.CacheTTLSeconds).
		Msg("config resolved")
}
