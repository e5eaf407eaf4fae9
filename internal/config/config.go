package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Progress   ProgressConfig   `mapstructure:"progress"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Drill      DrillConfig      `mapstructure:"drill"`
	Server     ServerConfig     `mapstructure:"server"`
}

type VocabularyConfig struct {
	File string          `mapstructure:"file" validate:"required"`
	Git  GitSourceConfig `mapstructure:"git"`
}

// Path returns the vocabulary file to read: the file inside the synced repository when a git
// source is configured, File otherwise.
func (c VocabularyConfig) Path() string {
	if c.Git.URL == "" {
		return c.File
	}
	return filepath.Join(c.Git.Directory, c.Git.Path)
}

type GitSourceConfig struct {
	URL       string `mapstructure:"url"`
	Directory string `mapstructure:"directory" validate:"required_with=URL"`
	Path      string `mapstructure:"path" validate:"required_with=URL"`
}

const (
	ProgressBackendFile     = "file"
	ProgressBackendDatabase = "database"
	ProgressBackendRedis    = "redis"
)

type ProgressConfig struct {
	Backend string      `mapstructure:"backend" validate:"oneof=file database redis"`
	File    string      `mapstructure:"file" validate:"required_if=Backend file"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Key      string `mapstructure:"key"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Path            string            `mapstructure:"path"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts"`
}

type DrillConfig struct {
	Selection string `mapstructure:"selection" validate:"oneof=uniform weighted"`
	Seed      uint64 `mapstructure:"seed"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=0,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/verbdrill")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("vocabulary.file", filepath.Join("vocabulary", "verbs.yml"))
	v.SetDefault("vocabulary.git.url", "")
	v.SetDefault("vocabulary.git.directory", filepath.Join("vocabulary", "repository"))
	v.SetDefault("vocabulary.git.path", "verbs.yml")
	v.SetDefault("progress.backend", ProgressBackendFile)
	v.SetDefault("progress.file", filepath.Join("progress", "progress.yml"))
	v.SetDefault("progress.redis.addr", "localhost:6379")
	v.SetDefault("progress.redis.db", 0)
	v.SetDefault("progress.redis.key", "verbdrill:progress")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.path", "verbdrill.db")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("drill.selection", "uniform")
	v.SetDefault("drill.seed", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})

	// Secrets are bound to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("progress.redis.password", "REDIS_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind REDIS_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
