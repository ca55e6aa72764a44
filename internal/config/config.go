// Package config содержит загрузку конфигурации приложения
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	KnowledgeBase KnowledgeBaseConfig `mapstructure:"knowledge_base"`
	Media         MediaConfig
	Game          GameConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis.
// Поддерживает режимы: single, sentinel, cluster.
type RedisConfig struct {
	Mode       string   `mapstructure:"mode"`
	Addrs      []string `mapstructure:"addrs"`
	Addr       string   `mapstructure:"addr"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
	MasterName string   `mapstructure:"master_name"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// KnowledgeBaseConfig содержит настройки клиента базы знаний
type KnowledgeBaseConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	TimeoutSec   int    `mapstructure:"timeout_sec"`
	MediaBaseURL string `mapstructure:"media_base_url"`
}

// MediaConfig содержит настройки раздачи медиа-файлов приложения
type MediaConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// GameConfig содержит настройки генерации вопросов
type GameConfig struct {
	NumChoices  int `mapstructure:"num_choices"`
	MaxAttempts int `mapstructure:"max_attempts"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("jwt.expirationHrs", 24)
	vip.SetDefault("knowledge_base.timeout_sec", 10)
	vip.SetDefault("game.num_choices", 4)
	vip.SetDefault("game.max_attempts", 100)

	// Привязываем переменные окружения ЯВНО
	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("knowledge_base.base_url", "KNOWLEDGE_BASE_URL")
	vip.BindEnv("knowledge_base.timeout_sec", "KNOWLEDGE_BASE_TIMEOUT_SEC")
	vip.BindEnv("knowledge_base.media_base_url", "KNOWLEDGE_BASE_MEDIA_URL")

	vip.BindEnv("media.base_url", "MEDIA_BASE_URL")

	vip.BindEnv("game.num_choices", "GAME_NUM_CHOICES")
	vip.BindEnv("game.max_attempts", "GAME_MAX_ATTEMPTS")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Knowledge Base URL: %s", cfg.KnowledgeBase.BaseURL)
		log.Printf("JWT Expiration Hours: %d", cfg.JWT.ExpirationHrs)
		log.Printf("-----------------------------------------")
	}

	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required (check JWT_SECRET env var)")
	}
	if cfg.KnowledgeBase.BaseURL == "" {
		return nil, fmt.Errorf("knowledge base URL is required (check KNOWLEDGE_BASE_URL env var)")
	}
	return &cfg, nil
}
