// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.ttl_hours", "jwt_ttl_hours")

	v.BindEnv("db.path", "db_path")
	v.BindEnv("storage.path", "storage_path")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})

	v.SetDefault("jwt.ttl_hours", 24*30)

	v.SetDefault("db.path", "database.db")
	v.SetDefault("storage.path", "uploads")

	v.SetDefault("upload.max_size", 50)

	v.SetDefault("security.rate_limit", 20)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt("jwt.ttl_hours") <= 0 {
		return errors.New("jwt.ttl_hours must be bigger than 0")
	}

	if v.GetString("storage.path") == "" {
		return errors.New("no storage path provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
