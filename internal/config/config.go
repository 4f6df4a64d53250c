package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to run. Values come from an
// optional config file; the TASKBOARD_* environment takes precedence.
type Config struct {
	Port        string   `mapstructure:"port"`
	DBPath      string   `mapstructure:"db_path"`
	BaseURL     string   `mapstructure:"base_url"`
	AdminEmails []string `mapstructure:"admin_emails"`

	// Session lifetime in hours.
	SessionTTLHours int `mapstructure:"session_ttl_hours"`

	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	SMTPUser string `mapstructure:"smtp_user"`
	SMTPPass string `mapstructure:"smtp_pass"`
	SMTPFrom string `mapstructure:"smtp_from"`
}

// Load reads configuration from path. A missing file is not an error;
// defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "taskboard.db")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("session_ttl_hours", 30*24)
	v.SetDefault("smtp_port", 587)

	v.SetEnvPrefix("TASKBOARD")
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}
