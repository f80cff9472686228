// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	// CleanupNow runs a cleanup pass immediately after startup instead
	// of waiting for the first scheduled tick
	CleanupNow = pflag.Bool("cleanup", false, "Runs a cleanup pass on startup")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

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

	v.BindEnv("storage.data_dir", "data_dir")

	v.BindEnv("cleanup.interval", "cleanup_interval")

	v.BindEnv("admin.user", "drop_admin_user")
	v.BindEnv("admin.pass", "drop_admin_pass")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("storage.data_dir", "./data")

	v.SetDefault("cleanup.interval", "10m")

	v.SetDefault("security.rate_limit", 25)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional. Everything can be set through
		// environment variables instead
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

	if v.GetString("storage.data_dir") == "" {
		return errors.New("storage.data_dir can't be empty")
	}

	if v.GetDuration("cleanup.interval") < time.Minute {
		return errors.New("cleanup.interval must be at least one minute")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetString("admin.user") == "" || v.GetString("admin.pass") == "" {
		fmt.Println("[WARNING]: No admin credentials configured. Every request will be treated as privileged")
	}

	return nil
}
