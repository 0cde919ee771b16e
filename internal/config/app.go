package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverBadger   = "badger"
)

type HTTPServer struct {
	Port                string `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	MaxBodyBytes        int64  `mapstructure:"max_body_bytes"`
}

type DbServer struct {
	Host               string `mapstructure:"host"`
	Port               string `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Pass               string `mapstructure:"pass"`
	Name               string `mapstructure:"name"`
	SSLMode            string `mapstructure:"ssl_mode"`
	MaxConns           int32  `mapstructure:"max_conns"`
	MaxConnIdleSeconds int    `mapstructure:"max_conn_idle_seconds"`
}

func (config *DbServer) GetConnectionStr() string {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		config.User, config.Pass, config.Host, config.Port, config.Name, sslMode,
	)
}

type Storage struct {
	Driver         string `mapstructure:"driver"`
	BadgerDir      string `mapstructure:"badger_dir"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

type Cache struct {
	MaxItems            int64 `mapstructure:"max_items"`
	TTLSeconds          int   `mapstructure:"ttl_seconds"`
	WarmIntervalSeconds int   `mapstructure:"warm_interval_seconds"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type API struct {
	// EmptyListNotFound keeps the legacy 404 answer for an empty currency list.
	EmptyListNotFound bool `mapstructure:"empty_list_not_found"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	Storage    Storage    `mapstructure:"storage"`
	Cache      Cache      `mapstructure:"cache"`
	Logging    Logging    `mapstructure:"logging"`
	API        API        `mapstructure:"api"`
}

// Init loads .env (if present), config.yaml and env overrides.
func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

func Load(configFile string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.read_timeout_seconds", 10)
	v.SetDefault("http_server.write_timeout_seconds", 10)
	v.SetDefault("http_server.max_body_bytes", 1024)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("storage.badger_dir", "./data")
	v.SetDefault("storage.migrate_on_start", true)
	v.SetDefault("cache.max_items", 1024)
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.warm_interval_seconds", 60)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("api.empty_list_not_found", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// storage env vars
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("storage.badger_dir", "BADGER_DIR")

	// cache env vars
	_ = v.BindEnv("cache.max_items", "CACHE_MAX_ITEMS")
	_ = v.BindEnv("cache.ttl_seconds", "CACHE_TTL_SECONDS")
	_ = v.BindEnv("cache.warm_interval_seconds", "CACHE_WARM_INTERVAL_SECONDS")

	// logging env vars
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")

	_ = v.BindEnv("api.empty_list_not_found", "EMPTY_LIST_NOT_FOUND")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *AppConfig) validate() error {
	switch cfg.Storage.Driver {
	case StorageDriverPostgres, StorageDriverBadger:
	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Cache.MaxItems <= 0 {
		return fmt.Errorf("cache.max_items must be positive, got %d", cfg.Cache.MaxItems)
	}
	return nil
}
