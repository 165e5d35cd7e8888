package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Address string        `yaml:"address" env:"SERVER_ADDRESS" env-default:":3001"`
	Timeout time.Duration `yaml:"timeout" env:"SERVER_TIMEOUT" env-default:"5s"`
}

// Config of the task board backend. Without DBAddress the backend keeps
// users and tasks in memory; SeedFile then names a db.json style document
// ({"users": [...], "tasks": [...]}) loaded once at startup.
type Config struct {
	LogLevel  string     `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	HTTP      HTTPConfig `yaml:"http"`
	DBAddress string     `yaml:"db_address" env:"DB_ADDRESS"`
	SeedFile  string     `yaml:"seed_file" env:"SEED_FILE"`
}

// InMemory reports whether the backend runs without PostgreSQL.
func (c Config) InMemory() bool { return c.DBAddress == "" }

func (c Config) validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.SeedFile != "" && !c.InMemory() {
		return errors.New("seed_file only applies to memory storage; unset db_address or seed_file")
	}
	return nil
}

// Load reads configPath and then the environment. A missing file is not an
// error: the environment and the defaults are used alone. Variables from a
// .env file in the working directory are picked up first.
func Load(configPath string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := read(configPath, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func read(configPath string, cfg *Config) error {
	if configPath != "" {
		err := cleanenv.ReadConfig(configPath, cfg)
		if err == nil {
			return nil
		}
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return fmt.Errorf("read config %q: %w", configPath, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}
