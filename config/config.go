package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"query-gateway/database"
	"query-gateway/validator"
)

type Config struct {
	Env      string `json:"env" validate:"required,oneof=development production test"`
	LogLevel string `json:"logLevel" validate:"oneof=debug info warn error"`

	DBDriver         string        `json:"dbDriver" validate:"required,sqldriver"`
	DBHost           string        `json:"dbHost" validate:"required"`
	DBPort           int           `json:"dbPort" validate:"gte=1,lte=65535"`
	DBName           string        `json:"dbName" validate:"required"`
	DBUser           string        `json:"dbUser"`
	DBPassword       string        `json:"-"`
	DBConnectTimeout time.Duration `json:"dbConnectTimeout" validate:"gt=0"`
}

var AppConfig *Config

// Load reads .env (if present) and the environment. Flags may still
// override the result, so validation is left to Validate.
func Load() *Config {
	_ = godotenv.Load()

	AppConfig = &Config{
		Env:              GetEnv("ENV", "development"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		DBDriver:         GetEnv("DB_DRIVER", database.DriverMySQL),
		DBHost:           GetEnv("DB_HOST", "127.0.0.1"),
		DBPort:           GetEnvInt("DB_PORT", 3306),
		DBName:           GetEnv("DB_NAME", "pdo_practice"),
		DBUser:           GetEnv("DB_USER", "root"),
		DBPassword:       GetEnv("DB_PASSWORD", "secret"),
		DBConnectTimeout: GetEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}

	return AppConfig
}

func (c *Config) Validate() error {
	return validator.New().Validate(c)
}

// DatabaseOptions maps the configuration onto gateway options.
func (c *Config) DatabaseOptions(logger *slog.Logger) database.Options {
	opts := database.DefaultOptions()
	opts.Driver = c.DBDriver
	opts.Host = c.DBHost
	opts.Port = c.DBPort
	opts.Database = c.DBName
	opts.User = c.DBUser
	opts.Password = c.DBPassword
	opts.ConnectTimeout = c.DBConnectTimeout
	opts.Logger = logger
	return opts
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
