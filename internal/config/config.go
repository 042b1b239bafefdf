// Package config loads and validates watcher configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JakeFAU/arin-waitlist-watcher/internal/notify"
)

// DefaultWaitlistURL is the public waiting-list registry page.
const DefaultWaitlistURL = "https://www.arin.net/resources/guide/ipv4/waiting_list/"

// Config is the explicit configuration value object built once at startup.
// No component reads the environment directly.
type Config struct {
	TargetDate           string `mapstructure:"target_date"`
	CheckIntervalSeconds int    `mapstructure:"check_interval_seconds"`
	StateFile            string `mapstructure:"state_file"`

	WaitlistURL       string `mapstructure:"waitlist_url"`
	NavTimeoutSeconds int    `mapstructure:"nav_timeout_seconds"`
	UserAgent         string `mapstructure:"user_agent"`

	SMTPHost                  string `mapstructure:"smtp_host"`
	SMTPPort                  int    `mapstructure:"smtp_port"`
	SMTPUser                  string `mapstructure:"smtp_user"`
	SMTPPass                  string `mapstructure:"smtp_pass"`
	MailFrom                  string `mapstructure:"mail_from"`
	MailTo                    string `mapstructure:"mail_to"`
	MailSubjectPrefix         string `mapstructure:"mail_subject_prefix"`
	SMTPConnectTimeoutSeconds int    `mapstructure:"smtp_connect_timeout"`

	LogDevelopment bool `mapstructure:"log_development"`
}

// Load builds a Config from the environment and an optional config file.
// Environment variables use the ARIN_ prefix, e.g. ARIN_TARGET_DATE,
// ARIN_SMTP_HOST, ARIN_CHECK_INTERVAL_SECONDS.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ARIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("target_date", "Tue, 03 Feb 2026, 12:17:25 EST")
	v.SetDefault("check_interval_seconds", 12*60*60)
	v.SetDefault("state_file", "arin_waitlist_state.json")
	v.SetDefault("waitlist_url", DefaultWaitlistURL)
	v.SetDefault("nav_timeout_seconds", 60)
	v.SetDefault("user_agent", "")
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
	v.SetDefault("mail_from", "")
	v.SetDefault("mail_to", "")
	v.SetDefault("mail_subject_prefix", "[ARIN Waitlist]")
	v.SetDefault("smtp_connect_timeout", 15)
	v.SetDefault("log_development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.TargetDate == "" {
		return fmt.Errorf("target_date must be set")
	}
	if c.CheckIntervalSeconds <= 0 {
		return fmt.Errorf("check_interval_seconds must be > 0")
	}
	if c.StateFile == "" {
		return fmt.Errorf("state_file must be set")
	}
	if c.WaitlistURL == "" {
		return fmt.Errorf("waitlist_url must be set")
	}
	if c.NavTimeoutSeconds <= 0 {
		return fmt.Errorf("nav_timeout_seconds must be > 0")
	}
	if c.SMTPPort <= 0 {
		return fmt.Errorf("smtp_port must be > 0")
	}
	if c.SMTPConnectTimeoutSeconds <= 0 {
		return fmt.Errorf("smtp_connect_timeout must be > 0")
	}
	return nil
}

// Interval is the pause between watch-mode cycles.
func (c Config) Interval() time.Duration {
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}

// NavTimeout bounds a single page navigation.
func (c Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSeconds) * time.Second
}

// Notify converts the mail settings into the notifier's config.
func (c Config) Notify() notify.Config {
	return notify.Config{
		Host:           c.SMTPHost,
		Port:           c.SMTPPort,
		Username:       c.SMTPUser,
		Password:       c.SMTPPass,
		From:           c.MailFrom,
		To:             c.MailTo,
		ConnectTimeout: time.Duration(c.SMTPConnectTimeoutSeconds) * time.Second,
	}
}
