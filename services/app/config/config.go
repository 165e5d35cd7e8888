package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:3001"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"10s"`
}

type RedisConfig struct {
	Address  string `yaml:"address" env:"REDIS_ADDRESS"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"taskboard:storage:"`
}

type SessionConfig struct {
	Backend   string      `yaml:"backend" env:"SESSION_BACKEND" env-default:"file"`
	File      string      `yaml:"file" env:"SESSION_FILE"`
	Hydration string      `yaml:"hydration" env:"SESSION_HYDRATION" env-default:"strict"`
	Redis     RedisConfig `yaml:"redis"`
}

type Config struct {
	LogLevel string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	API      APIConfig     `yaml:"api"`
	Session  SessionConfig `yaml:"session"`
}

// Load reads configPath, falling back to the environment when the path is
// empty or the file does not exist. A .env file in the working directory is
// loaded into the environment first.
func Load(configPath string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return Config{}, fmt.Errorf("cannot read env: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("cannot read config %q: %w", configPath, err)
	}

	return cfg, nil
}
