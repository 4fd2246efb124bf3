package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"adminauth/pkg/user"
)

var ErrMissingSecret = errors.New("JWT_SECRET is not set in environment")

type Config struct {
	ListenAddr      string        `yaml:"listen_addr"`
	TokenTTL        time.Duration `yaml:"token_ttl"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Admin           user.User     `yaml:"admin"`

	// JWTSecret is only ever read from the environment.
	JWTSecret string `yaml:"-"`
}

func Default() Config {
	return Config{
		ListenAddr:      ":5000",
		TokenTTL:        24 * time.Hour,
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
		Admin: user.User{
			ID:       1,
			Username: "admin",
			Password: "kopo123",
			IsAdmin:  true,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE and the environment, in that order of precedence. Variables in
// the dotenv file named by ENV_FILE (default .env) are loaded first if the
// file exists.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.readEnv(); err != nil {
		return nil, err
	}

	// the configured identity is always the administrator
	cfg.Admin.IsAdmin = true

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) readEnv() error {
	c.JWTSecret = os.Getenv("JWT_SECRET")

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		c.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv("ADMIN_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ADMIN_ID: %w", err)
		}
		c.Admin.ID = id
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}
	return nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return errors.New("admin username and password must not be empty")
	}
	if c.ListenAddr == "" {
		return errors.New("listen address must not be empty")
	}
	return nil
}
