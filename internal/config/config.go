package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string         `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath string         `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	HTTP        HTTPConfig     `yaml:"http"`
	Token       TokenConfig    `yaml:"token"`
	Media       MediaConfig    `yaml:"media"`
	Verifier    VerifierConfig `yaml:"verifier"`
	Ledger      LedgerConfig   `yaml:"ledger"`
	Sweeper     SweeperConfig  `yaml:"sweeper"`
	CORS        CORSConfig     `yaml:"cors"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env:"HTTP_PORT" env-default:"8082"`
}

type TokenConfig struct {
	Secret string        `yaml:"secret" env:"TOKEN_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env:"TOKEN_TTL" env-default:"168h"`
}

type MediaConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MEDIA_ENDPOINT"`
	Region    string `yaml:"region" env:"MEDIA_REGION" env-default:"us-east-1"`
	Bucket    string `yaml:"bucket" env:"MEDIA_BUCKET"`
	AccessKey string `yaml:"access_key" env:"MEDIA_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MEDIA_SECRET_KEY"`
}

type VerifierConfig struct {
	Address string        `yaml:"address" env:"VERIFIER_ADDRESS"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type LedgerConfig struct {
	Address string        `yaml:"address" env:"LEDGER_ADDRESS"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type SweeperConfig struct {
	Interval time.Duration `yaml:"interval" env:"SWEEPER_INTERVAL" env-default:"1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

// Load reads config from path, or from CONFIG_PATH when it is set.
func Load(path string) *Config {
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	}

	var config Config
	err := cleanenv.ReadConfig(path, &config)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &config
}
