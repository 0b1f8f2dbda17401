package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	Redis     Redis
	JWT       JWT
	Log       Log
	RateLimit RateLimit
	PageSize  int
}

type Server struct {
	Port         string
	Mode         string
	AllowOrigins []string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string // database name, or the file/DSN for sqlite
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type JWT struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type Log struct {
	Level  string
	Format string
}

type RateLimit struct {
	RPS   float64
	Burst int
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 60)
	viper.SetDefault("PAGE_SIZE", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("GIN_MODE")
	config.Server.AllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")

	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.AccessTokenTTL = time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Format = viper.GetString("LOG_FORMAT")

	config.RateLimit.RPS = viper.GetFloat64("RATE_LIMIT_RPS")
	config.RateLimit.Burst = viper.GetInt("RATE_LIMIT_BURST")

	config.PageSize = viper.GetInt("PAGE_SIZE")
	if config.PageSize <= 0 {
		config.PageSize = 10
	}

	if config.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is not set; set a secure value in production")
	}

	log.Info().Interface("config", config.Masked()).Msg("Config loaded")
	return &config, nil
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	if c.Database.Password != "" {
		c.Database.Password = "***"
	}
	if c.Redis.Password != "" {
		c.Redis.Password = "***"
	}
	if c.JWT.Secret != "" {
		c.JWT.Secret = "***"
	}
	return c
}
