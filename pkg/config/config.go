package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	TMDB struct {
		APIKey   string `envconfig:"TMDB_API_KEY"`
		BaseURL  string `envconfig:"TMDB_BASE_URL"`
		Language string `envconfig:"TMDB_LANGUAGE"`
	}
	Cache struct {
		// RedisAddr switches the response cache from the in-process
		// store to a shared Redis instance when set.
		RedisAddr     string `envconfig:"CACHE_REDIS_ADDR"`
		RedisPassword string `envconfig:"CACHE_REDIS_PASSWORD"`
		RedisDB       int    `envconfig:"CACHE_REDIS_DB"`
	}
	DynamoDB struct {
		// Table switches the favorites store from postgres to
		// DynamoDB when set.
		Table        string `envconfig:"DYNAMODB_TABLE"`
		Region       string `envconfig:"DYNAMODB_REGION"`
		Endpoint     string `envconfig:"DYNAMODB_ENDPOINT"`
		AccessKey    string `envconfig:"DYNAMODB_ACCESS_KEY"`
		SecretKey    string `envconfig:"DYNAMODB_SECRET_KEY"`
		SessionToken string `envconfig:"DYNAMODB_SESSION_TOKEN"`
	}
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
