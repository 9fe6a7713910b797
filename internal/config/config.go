package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Review   ReviewConfig   `yaml:"review"`
	Identity IdentityConfig `yaml:"identity"`
	Workers  WorkersConfig  `yaml:"workers"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type RedisConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	PoolSize    int    `yaml:"pool_size"`
	ExportQueue string `yaml:"export_queue"`
	DLQSuffix   string `yaml:"dlq_suffix"`
}

type StorageConfig struct {
	// Backend selects the blob store implementation: "s3" or "local".
	Backend string      `yaml:"backend"`
	S3      S3Config    `yaml:"s3"`
	Local   LocalConfig `yaml:"local"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type LocalConfig struct {
	Root string `yaml:"root"`
}

type ReviewConfig struct {
	PageSize int `yaml:"page_size"`
}

// IdentityConfig pins the caller identity until a real identity provider
// replaces the static one.
type IdentityConfig struct {
	UserID   string `yaml:"user_id"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Reviewer string `yaml:"reviewer"`
}

type WorkersConfig struct {
	Export ExportWorkerConfig `yaml:"export"`
}

type ExportWorkerConfig struct {
	Count  int    `yaml:"count"`
	Prefix string `yaml:"prefix"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Review.PageSize <= 0 {
		c.Review.PageSize = 10
	}
	if c.Workers.Export.Count <= 0 {
		c.Workers.Export.Count = 1
	}
	if c.Workers.Export.Prefix == "" {
		c.Workers.Export.Prefix = "exports"
	}
	if c.Redis.ExportQueue == "" {
		c.Redis.ExportQueue = "claims:export"
	}
	if c.Redis.DLQSuffix == "" {
		c.Redis.DLQSuffix = ":dlq"
	}
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
