package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE"`
	Host       string `env:"HOST" envDefault:"0.0.0.0"`
	Port       uint16 `env:"PORT" envDefault:"9090"`

	Secret           string `env:"SECRET,notEmpty"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PostgresqlURL string `env:"POSTGRESQL_URL,notEmpty"`
	RedisURL      string `env:"REDIS_URL,notEmpty"`
	RabbitmqURL   string `env:"RABBITMQ_URL,notEmpty"`

	SessionValidDuration time.Duration `env:"SESSION_VALID_DURATION" envDefault:"720h"`

	RabbitmqEmailExchange string `env:"RABBITMQ_EMAIL_EXCHANGE" envDefault:"email-notifications"`
	RabbitmqEmailQueue    string `env:"RABBITMQ_EMAIL_QUEUE" envDefault:"email-notifications"`

	AwsRegion    string `env:"AWS_REGION" envDefault:"eu-west-1"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY,notEmpty"`
	AwsSecretKey string `env:"AWS_SECRET_KEY,notEmpty"`

	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER,notEmpty"`
	AwsEmailSetPasswordTemplate   string  `env:"AWS_EMAIL_SET_PASSWORD_TEMPLATE" envDefault:"set-password"`
	AwsEmailSetPasswordBaseUrl    url.URL `env:"AWS_EMAIL_SET_PASSWORD_BASE_URL,notEmpty"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`
	AwsEmailPasswordResetBaseUrl  url.URL `env:"AWS_EMAIL_PASSWORD_RESET_BASE_URL,notEmpty"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	return cfg, nil
}
