package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"award_vetter/awards"
)

const (
	// DefaultPath is read when present; an explicit --config must exist.
	DefaultPath = "config/config.json"
	EnvPrefix   = "VETTER"
)

// Config is the root configuration of the award vetter service.
type Config struct {
	Server ServerConfig   `mapstructure:"server"`
	Auth   AuthConfig     `mapstructure:"auth"`
	LLM    LLMConfig      `mapstructure:"llm"`
	Sheet  SheetConfig    `mapstructure:"sheet"`
	Log    LogConfig      `mapstructure:"log"`
	Awards []awards.Award `mapstructure:"awards"`
	Roles  []string       `mapstructure:"roles"`
	Units  []string       `mapstructure:"units"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	SecureCookie    bool          `mapstructure:"secure_cookie"`
}

// AuthConfig holds the shared secret gating the interface. PasswordHash is a
// bcrypt hash and wins over Password when both are set.
type AuthConfig struct {
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// LLMConfig 选择生成模型：先用 Primary，失败后才用 Secondary。
// Timeout 分别作用于每一次调用。
type LLMConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	PrimaryModel   string        `mapstructure:"primary_model"`
	SecondaryModel string        `mapstructure:"secondary_model"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// SheetConfig locates the tracking spreadsheet. Without credentials the
// tracker is disabled and accepted entries are not mirrored.
type SheetConfig struct {
	SpreadsheetName string `mapstructure:"spreadsheet_name"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Worksheet       string `mapstructure:"worksheet"`
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	URL             string `mapstructure:"url"`
}

type LogConfig struct {
	Mode    string `mapstructure:"mode"`
	Verbose bool   `mapstructure:"verbose"`
}

// HasCredentials reports whether a service account is configured.
func (s SheetConfig) HasCredentials() bool {
	return s.CredentialsFile != "" || s.CredentialsJSON != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "1m")
	v.SetDefault("server.write_timeout", "5m")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.secure_cookie", false)

	v.SetDefault("auth.password", "")
	v.SetDefault("auth.password_hash", "")

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.primary_model", "gemini-2.5-pro")
	v.SetDefault("llm.secondary_model", "gemini-2.5-flash")
	v.SetDefault("llm.timeout", "60s")

	v.SetDefault("sheet.spreadsheet_name", "NS AWARDS TRACKING")
	v.SetDefault("sheet.spreadsheet_id", "")
	v.SetDefault("sheet.worksheet", "Sheet1")
	v.SetDefault("sheet.credentials_file", "")
	v.SetDefault("sheet.credentials_json", "")
	v.SetDefault("sheet.url", "")

	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.verbose", false)
}

// Load reads the config file at path (json, toml or yaml by extension), applies
// VETTER_* environment overrides and validates the result. A missing file at
// DefaultPath is not an error; defaults and environment provide everything.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		case errors.Is(statErr, os.ErrNotExist) && path == DefaultPath:
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, statErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
		return errors.New("auth.password or auth.password_hash is required")
	}
	switch c.LLM.Provider {
	case "gemini", "openai", "mock":
	case "deepseek":
		// 兼容 OpenAI 接口，需要显式填写网关地址。
		if c.LLM.BaseURL == "" {
			return errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	if c.LLM.PrimaryModel == "" {
		return errors.New("llm.primary_model is required")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("invalid llm.timeout: %s", c.LLM.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid server.shutdown_timeout: %s", c.Server.ShutdownTimeout)
	}
	for _, a := range c.Awards {
		if a.Name == "" || a.Name == awards.Other {
			return fmt.Errorf("invalid award name %q", a.Name)
		}
	}
	return nil
}
