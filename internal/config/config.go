package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Engine   EngineConfig   `mapstructure:"engine"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// S3Config points at the bucket holding exercise demonstration media.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	// File enables rotation through lumberjack. Empty means stdout only.
	File string `mapstructure:"file"`
}

// EngineConfig tunes how much history feeds the adaptive engine.
type EngineConfig struct {
	DefaultTargetMinutes int `mapstructure:"default_target_minutes"`
	// WindowDays bounds the history used for pattern analysis.
	WindowDays int `mapstructure:"window_days"`
	// HistoryLimit caps adaptation history listings.
	HistoryLimit int `mapstructure:"history_limit"`
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret is required")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: jwt.expiration must be positive, got %s", c.JWT.Expiration)
	}
	if c.Engine.DefaultTargetMinutes <= 0 {
		return fmt.Errorf("config: engine.default_target_minutes must be positive")
	}
	if c.Engine.WindowDays <= 0 {
		return fmt.Errorf("config: engine.window_days must be positive")
	}
	if c.Engine.HistoryLimit <= 0 {
		return fmt.Errorf("config: engine.history_limit must be positive")
	}
	return nil
}

// LoadConfig reads configuration from path/config.yaml and the environment.
// A missing file is not an error; defaults and env vars still apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return config, fmt.Errorf("config: read file: %w", err)
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "adaptive_coach")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("engine.default_target_minutes", 30)
	v.SetDefault("engine.window_days", 30)
	v.SetDefault("engine.history_limit", 20)
}
