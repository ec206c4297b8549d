// Package config loads server configuration from config.yaml and
// TRIVIA_-prefixed environment variables, env winning over file.
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Host        string   `mapstructure:"host"`
		Port        string   `mapstructure:"port"`
		CORSOrigins []string `mapstructure:"cors_origins"`
		Debug       bool     `mapstructure:"debug"`
	} `mapstructure:"server"`
	Session struct {
		IdleTimeoutMinutes   int `mapstructure:"idle_timeout_minutes"`
		SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
	} `mapstructure:"session"`
	Spotify struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
	} `mapstructure:"spotify"`
	Auth struct {
		JWTSecret     string `mapstructure:"jwt_secret"`
		AdminPassword string `mapstructure:"admin_password"`
	} `mapstructure:"auth"`
	Storage struct {
		Backend string `mapstructure:"backend"`
		DataDir string `mapstructure:"data_dir"`
		S3      struct {
			Endpoint string `mapstructure:"endpoint"`
			Region   string `mapstructure:"region"`
			Bucket   string `mapstructure:"bucket"`
			KeyID    string `mapstructure:"key_id"`
			AppKey   string `mapstructure:"app_key"`
		} `mapstructure:"s3"`
	} `mapstructure:"storage"`
}

// IdleTimeout returns the session idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleTimeoutMinutes) * time.Minute
}

// SweepInterval returns how often expired sessions are collected.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Session.SweepIntervalMinutes) * time.Minute
}

func Load() *Config {
	viper.SetEnvPrefix("TRIVIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("server.host")
	viper.BindEnv("server.port")
	viper.BindEnv("server.cors_origins")
	viper.BindEnv("server.debug")
	viper.BindEnv("session.idle_timeout_minutes")
	viper.BindEnv("session.sweep_interval_minutes")
	viper.BindEnv("spotify.client_id")
	viper.BindEnv("spotify.client_secret")
	viper.BindEnv("auth.jwt_secret")
	viper.BindEnv("auth.admin_password")
	viper.BindEnv("storage.backend")
	viper.BindEnv("storage.data_dir")
	viper.BindEnv("storage.s3.endpoint")
	viper.BindEnv("storage.s3.region")
	viper.BindEnv("storage.s3.bucket")
	viper.BindEnv("storage.s3.key_id")
	viper.BindEnv("storage.s3.app_key")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.cors_origins", []string{"*"})
	viper.SetDefault("session.idle_timeout_minutes", 30)
	viper.SetDefault("session.sweep_interval_minutes", 5)
	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.data_dir", "./data")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: config error: %s", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if cfg.Storage.Backend == "s3" && cfg.Storage.S3.Bucket == "" {
		log.Fatal("Critical: S3 bucket is missing (TRIVIA_STORAGE_S3_BUCKET)")
	}

	return &cfg
}
