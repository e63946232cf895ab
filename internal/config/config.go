package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Storage StorageConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Game    GameConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CatalogConfig tells the catalog layer where level data comes from.
// Source is either "file" (Path points at a bundled JSON catalog) or
// "http" (BaseURL serves one level document per id).
type CatalogConfig struct {
	Source   string
	Path     string
	BaseURL  string
	CacheTTL time.Duration
}

type StorageConfig struct {
	// Path of the SQLite progression database file.
	Path string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type GameConfig struct {
	MaxLives   int
	SessionTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("catalog.source", "file")
	viper.SetDefault("catalog.path", "data/levels.json")
	viper.SetDefault("catalog.cache_ttl", 3600)
	viper.SetDefault("storage.path", "data/progress.db")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("game.max_lives", 3)
	viper.SetDefault("game.session_ttl", 1800)

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Catalog: CatalogConfig{
			Source:   viper.GetString("catalog.source"),
			Path:     viper.GetString("catalog.path"),
			BaseURL:  viper.GetString("catalog.base_url"),
			CacheTTL: viper.GetDuration("catalog.cache_ttl") * time.Second,
		},
		Storage: StorageConfig{
			Path: viper.GetString("storage.path"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Game: GameConfig{
			MaxLives:   viper.GetInt("game.max_lives"),
			SessionTTL: viper.GetDuration("game.session_ttl") * time.Second,
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if source := os.Getenv("CATALOG_SOURCE"); source != "" {
		config.Catalog.Source = source
	}
	if path := os.Getenv("CATALOG_PATH"); path != "" {
		config.Catalog.Path = path
	}
	if baseURL := os.Getenv("CATALOG_BASE_URL"); baseURL != "" {
		config.Catalog.BaseURL = baseURL
	}
	if path := os.Getenv("STORAGE_PATH"); path != "" {
		config.Storage.Path = path
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Enabled = true
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	if config.Game.MaxLives <= 0 {
		config.Game.MaxLives = 3
	}

	return config, nil
}

// GetDSN returns the SQLite DSN for the progression database.
// Synchronous mode is forced so every progression write is flushed
// before the call returns.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("file:%s?_fk=1&_sync=full", c.Storage.Path)
}
