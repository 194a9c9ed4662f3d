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
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"postgres", "sqlite"}
	validStorage   = []string{"s3", "r2"}
)

// Setup prepares everything config-related so that the app can start
// working. Both token secrets, the token prefix and the mail relay are
// required: a missing value here is a fatal startup condition, not
// something to discover per-request.
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
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors", "host_cors")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")
	v.BindEnv("host.ssl.certificate_path", "host_ssl_certificate_path")
	v.BindEnv("host.ssl.certificate_key_path", "host_ssl_certificate_key_path")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.path", "db_path")
	v.BindEnv("db.host", "db_host")
	v.BindEnv("db.port", "db_port")
	v.BindEnv("db.username", "db_username")
	v.BindEnv("db.password", "db_password")
	v.BindEnv("db.name", "db_name")
	v.BindEnv("db.sslmode", "db_sslmode")

	v.BindEnv("jwt.login_secret", "jwt_login_secret")
	v.BindEnv("jwt.verification_secret", "jwt_verification_secret")
	v.BindEnv("jwt.expiry", "jwt_expiry")
	v.BindEnv("jwt.prefix", "jwt_prefix")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.public_url", "storage_public_url")
	v.BindEnv("storage.main_folder", "storage_main_folder")

	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")

	v.BindEnv("cloudflare.account_id", "cloudflare_account_id")
	v.BindEnv("cloudflare.access_key_id", "cloudflare_access_key_id")
	v.BindEnv("cloudflare.secret_access_key", "cloudflare_secret_access_key")
	v.BindEnv("cloudflare.bucket", "cloudflare_bucket")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender_address")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("security.rate_limit", "security_rate_limit")
	v.BindEnv("cleanup.verification_deadline", "cleanup_verification_deadline")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "database.db")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("jwt.expiry", "24h")

	v.SetDefault("storage.type", "s3")
	v.SetDefault("storage.main_folder", "catalog")

	v.SetDefault("security.rate_limit", 5)

	// Unverified accounts are kept for a week before cleanup; 0 disables it
	v.SetDefault("cleanup.verification_deadline", "168h")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetBool("host.ssl.enabled") {
		if v.GetString("host.ssl.certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl.certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid db driver provided")
	}

	if v.GetString("jwt.login_secret") == "" {
		return errors.New("jwt.login_secret can't be empty")
	}

	if v.GetString("jwt.verification_secret") == "" {
		return errors.New("jwt.verification_secret can't be empty")
	}

	if v.GetString("jwt.login_secret") == v.GetString("jwt.verification_secret") {
		return errors.New("jwt.login_secret and jwt.verification_secret must differ")
	}

	if v.GetString("jwt.prefix") == "" {
		return errors.New("jwt.prefix can't be empty")
	}

	if v.GetDuration("jwt.expiry") <= 0 {
		return errors.New("jwt.expiry must be bigger than 0")
	}

	if !slices.Contains(validStorage, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	switch v.GetString("storage.type") {
	case "s3":
		if v.GetString("aws.access_key_id") == "" {
			return errors.New("aws access key id can't be empty")
		}
		if v.GetString("aws.secret_access_key") == "" {
			return errors.New("aws secret access key can't be empty")
		}
		if v.GetString("aws.region") == "" {
			return errors.New("aws region can't be empty")
		}
		if v.GetString("aws.bucket") == "" {
			return errors.New("aws bucket can't be empty")
		}
	case "r2":
		if v.GetString("cloudflare.account_id") == "" {
			return errors.New("cloudflare account id can't be empty")
		}
		if v.GetString("cloudflare.access_key_id") == "" {
			return errors.New("cloudflare access key id can't be empty")
		}
		if v.GetString("cloudflare.secret_access_key") == "" {
			return errors.New("cloudflare secret access key can't be empty")
		}
		if v.GetString("cloudflare.bucket") == "" {
			return errors.New("cloudflare bucket can't be empty")
		}
	}

	if v.GetString("storage.public_url") == "" {
		return errors.New("storage.public_url can't be empty")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("mail.host can't be empty")
	}

	if v.GetInt("mail.port") <= 0 {
		return errors.New("invalid mail.port provided")
	}

	if v.GetString("mail.sender") == "" {
		return errors.New("mail.sender can't be empty")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetDuration("cleanup.verification_deadline") < 0 {
		return errors.New("cleanup.verification_deadline can't be negative")
	}

	return nil
}
