package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Quiz   QuizConfig
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Env     string
	Level   string
	Service string
}

// QuizConfig tunes question generation and session lifetime.
type QuizConfig struct {
	DefaultQuestionCount      int
	MaxQuestionCount          int
	AttemptsPerQuestion       int
	Difficulty                string
	VarietyRate               float64
	MultiIngredientPreference float64
	MinBucketShare            float64
	ResolverCacheSize         int
	SessionTTL                time.Duration
	CatalogTTL                time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("db.port", 1521)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.service", "restaurant-quiz")
	v.SetDefault("quiz.default_question_count", 10)
	v.SetDefault("quiz.max_question_count", 50)
	v.SetDefault("quiz.attempts_per_question", 10)
	v.SetDefault("quiz.difficulty", "medium")
	v.SetDefault("quiz.variety_rate", 0.0)
	v.SetDefault("quiz.multi_ingredient_preference", 0.7)
	v.SetDefault("quiz.min_bucket_share", 0.4)
	v.SetDefault("quiz.resolver_cache_size", 1024)
	v.SetDefault("quiz.session_ttl", "24h")
	v.SetDefault("quiz.catalog_ttl", "5m")
}

// LoadConfig reads config.yaml (optional) and APP_-prefixed environment
// variables, e.g. APP_DB_HOST or APP_QUIZ_DIFFICULTY.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:     v.GetString("logger.env"),
			Level:   v.GetString("logger.level"),
			Service: v.GetString("logger.service"),
		},
		Quiz: QuizConfig{
			DefaultQuestionCount:      v.GetInt("quiz.default_question_count"),
			MaxQuestionCount:          v.GetInt("quiz.max_question_count"),
			AttemptsPerQuestion:       v.GetInt("quiz.attempts_per_question"),
			Difficulty:                v.GetString("quiz.difficulty"),
			VarietyRate:               v.GetFloat64("quiz.variety_rate"),
			MultiIngredientPreference: v.GetFloat64("quiz.multi_ingredient_preference"),
			MinBucketShare:            v.GetFloat64("quiz.min_bucket_share"),
			ResolverCacheSize:         v.GetInt("quiz.resolver_cache_size"),
			SessionTTL:                v.GetDuration("quiz.session_ttl"),
			CatalogTTL:                v.GetDuration("quiz.catalog_ttl"),
		},
	}
}

func (c *Config) GetDSN() string {
	// Oracle DSN format: user/password@host:port/service
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
