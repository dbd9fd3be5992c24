// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sitegentech/atendo/internal/common"
)

// Default configuration values.
const (
	DefaultServerAddr = ":3000"
	DefaultTimezone   = "America/Sao_Paulo"
	DefaultSMTPPort   = 587
)

// SMTPConfig holds mail delivery settings for scheduled reports.
type SMTPConfig struct {
	Host       string
	Username   string
	Password   string
	From       string
	Recipients []string
	Port       int
}

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	ServerAddr   string
	Timezone     string
	SMTP         SMTPConfig
}

// Load resolves the configuration from Viper (config file or ATENDO_ env
// vars), applying defaults where keys are unset.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: ExpandPath(viper.GetString("database.path")),
		ServerAddr:   viper.GetString("server.addr"),
		Timezone:     viper.GetString("timezone"),
		SMTP: SMTPConfig{
			Host:       viper.GetString("smtp.host"),
			Port:       viper.GetInt("smtp.port"),
			Username:   viper.GetString("smtp.username"),
			Password:   viper.GetString("smtp.password"),
			From:       viper.GetString("smtp.from"),
			Recipients: viper.GetStringSlice("report.recipients"),
		},
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = ExpandPath("~/.local/share/atendo/atendo.db")
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = DefaultServerAddr
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = DefaultSMTPPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", common.ErrInvalidConfig, c.Timezone, err)
	}
	if c.SMTPConfigured() {
		if c.SMTP.From == "" {
			return fmt.Errorf("%w: smtp.from is required when smtp.host is set", common.ErrMissingConfig)
		}
		if len(c.SMTP.Recipients) == 0 {
			return fmt.Errorf("%w: report.recipients is required when smtp.host is set", common.ErrMissingConfig)
		}
	}
	return nil
}

// SMTPConfigured reports whether mail delivery is enabled.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.Host != ""
}

// Location returns the configured timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
