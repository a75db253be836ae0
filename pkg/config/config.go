package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	AI        AIConfig        `mapstructure:"ai"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Port    int           `mapstructure:"port"`
	Mode    string        `mapstructure:"mode"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpiryHours int    `mapstructure:"jwt_expiry_hours"`
	JWTIssuer      string `mapstructure:"jwt_issuer"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AIConfig selects the model provider once at startup. The first
// configured key wins; OpenAI is preferred when both are present.
type AIConfig struct {
	OpenAIKey   string `mapstructure:"openai_key"`
	OpenAIModel string `mapstructure:"openai_model"`
	GeminiKey   string `mapstructure:"gemini_key"`
	GeminiModel string `mapstructure:"gemini_model"`
}

type SchedulerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

func LoadConfig(configPath string) (*Config, error) {
	var config Config

	if envConfigFile := os.Getenv("CONFIG_FILE"); envConfigFile != "" {
		configPath = envConfigFile
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		dir := filepath.Dir(configPath)
		file := filepath.Base(configPath)
		name := strings.TrimSuffix(file, filepath.Ext(file))

		v.AddConfigPath(dir)
		v.SetConfigName(name)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./pkg/config")
		v.SetConfigName("config")
	}

	setDefaults(v)

	// Config file is optional; env vars alone are a valid deployment.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit env overrides for the well-known deployment variables.
	envVars := map[string]string{
		"database.host":            "DB_HOST",
		"database.port":            "DB_PORT",
		"database.user":            "DB_USER",
		"database.password":        "DB_PASSWORD",
		"database.name":            "DB_NAME",
		"database.sslmode":         "DB_SSLMODE",
		"server.port":              "SERVER_PORT",
		"server.mode":              "SERVER_MODE",
		"redis.host":               "REDIS_HOST",
		"redis.port":               "REDIS_PORT",
		"redis.password":           "REDIS_PASSWORD",
		"redis.db":                 "REDIS_DB",
		"auth.jwt_secret":          "JWT_SECRET",
		"auth.jwt_issuer":          "JWT_ISSUER",
		"auth.jwt_expiry_hours":    "JWT_EXPIRY_HOURS",
		"ai.openai_key":            "OPENAI_API_KEY",
		"ai.gemini_key":            "GEMINI_API_KEY",
		"logging.level":            "LOG_LEVEL",
		"logging.format":           "LOG_FORMAT",
		"scheduler.enabled":        "SCHEDULER_ENABLED",
		"scheduler.sweep_interval": "SCHEDULER_SWEEP_INTERVAL",
	}

	for configKey, envVar := range envVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		switch envVar {
		case "DB_PORT", "REDIS_PORT", "REDIS_DB", "SERVER_PORT", "JWT_EXPIRY_HOURS":
			if intVal, err := strconv.Atoi(value); err == nil {
				v.Set(configKey, intVal)
			}
		case "SCHEDULER_SWEEP_INTERVAL":
			if d, err := time.ParseDuration(value); err == nil {
				v.Set(configKey, d)
			}
		case "SCHEDULER_ENABLED":
			v.Set(configKey, value == "true" || value == "1")
		default:
			v.Set(configKey, value)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (JWT_SECRET) is required")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "development")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("auth.jwt_expiry_hours", 24)
	v.SetDefault("auth.jwt_issuer", "eventecho")
	v.SetDefault("logging.level", "info")
	v.SetDefault("ai.openai_model", "gpt-4o-mini")
	v.SetDefault("ai.gemini_model", "gemini-1.5-flash")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.sweep_interval", 10*time.Minute)
}
