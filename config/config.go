// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	dropTables = pflag.Bool("drop-tables", false, "Drops and recreates all tables on startup")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers = []string{"postgres", "sqlite"}
	validStorage   = []string{"s3", "local"}
)

// DropTables reports whether the operator asked for a destructive schema
// rebuild via --drop-tables
func DropTables() bool {
	return *dropTables
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
	v.BindEnv("host.ssl_enabled", "host_ssl_enabled")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.host", "db_host")
	v.BindEnv("db.name", "db_name")
	v.BindEnv("db.user", "db_user")
	v.BindEnv("db.password", "db_password")
	v.BindEnv("db.port", "db_port")

	v.BindEnv("security.jwt_secret", "security_jwt_secret")

	v.BindEnv("admin.username", "admin_username")
	v.BindEnv("admin.password", "admin_password")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.local_dir", "storage_local_dir")
	v.BindEnv("storage.endpoint", "storage_endpoint")
	v.BindEnv("storage.bucket", "storage_bucket")
	v.BindEnv("storage.access_key_id", "storage_access_key_id")
	v.BindEnv("storage.secret_access_key", "storage_secret_access_key")

	v.BindEnv("upload.max_size", "upload_max_size")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.ssl_enabled", false)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.name", "estacionatec")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.port", 5432)

	v.SetDefault("admin.username", "admin@tec.edu")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_dir", "uploads")

	// In MiB, converted to bytes below
	v.SetDefault("upload.max_size", 10)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
		// No config.toml is fine as long as env vars cover the rest
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid db driver provided")
	}

	// The signing secret must be supplied by the operator. Generating one
	// per process would invalidate every session on restart and break
	// multi-instance deployments
	if v.GetString("security.jwt_secret") == "" {
		return errors.New("security.jwt_secret must be set")
	}

	// Same for the bootstrap admin credentials. There is no default
	// password on purpose
	if v.GetString("admin.username") == "" {
		return errors.New("admin.username must be set")
	}

	if v.GetString("admin.password") == "" {
		return errors.New("admin.password must be set")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	switch v.GetString("storage.type") {
	case "s3":
		{
			if v.GetString("storage.endpoint") == "" {
				return errors.New("storage endpoint can't be empty")
			}
			if v.GetString("storage.bucket") == "" {
				return errors.New("bucket can't be empty")
			}
			if v.GetString("storage.access_key_id") == "" {
				return errors.New("access key id can't be empty")
			}
			if v.GetString("storage.secret_access_key") == "" {
				return errors.New("secret access key can't be empty")
			}
		}
	case "local":
		{
			if v.GetString("storage.local_dir") == "" {
				return errors.New("storage local dir can't be empty")
			}
		}
	default:
		return errors.New("invalid storage type provided")
	}

	if !slices.Contains(validStorage, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}

// DSN builds the PostgreSQL connection string from the db.* keys
func DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		v.GetString("db.host"),
		v.GetString("db.user"),
		v.GetString("db.password"),
		v.GetString("db.name"),
		v.GetInt("db.port"),
	)
}
