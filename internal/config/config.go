package config

import (
	"fmt"
	"time"

	"github.com/labops/evidence-desk/pkg/utils"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Delivery DeliveryConfig `mapstructure:"delivery"`
	Email    EmailConfig    `mapstructure:"email"`
	Lark     LarkConfig     `mapstructure:"lark"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds submission log database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// SessionConfig holds submission session configuration
type SessionConfig struct {
	// PreserveApplicant keeps the applicant name across the post-send reset
	PreserveApplicant bool `mapstructure:"preserve_applicant"`
}

// DeliveryConfig selects the reviewer delivery backend
type DeliveryConfig struct {
	// Backend is one of: ses, lark, ledger
	Backend string `mapstructure:"backend"`
}

// EmailConfig holds SES delivery configuration
type EmailConfig struct {
	Region        string `mapstructure:"region"`
	Sender        string `mapstructure:"sender"`
	ReviewerEmail string `mapstructure:"reviewer_email"`
}

// LarkConfig holds Lark delivery configuration
type LarkConfig struct {
	AppID         string `mapstructure:"app_id"`
	AppSecret     string `mapstructure:"app_secret"`
	ReceiveID     string `mapstructure:"receive_id"`
	ReceiveIDType string `mapstructure:"receive_id_type"`
}

// LedgerConfig holds spreadsheet ledger configuration
type LedgerConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("database.path", "data/submissions.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	viper.SetDefault("session.preserve_applicant", true)

	viper.SetDefault("delivery.backend", "ledger")
	viper.SetDefault("email.region", "ap-northeast-2")
	viper.SetDefault("lark.receive_id_type", "email")
	viper.SetDefault("ledger.path", "data/submission_ledger.xlsx")
	viper.SetDefault("ledger.sheet", "Submissions")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("email.sender", "SES_SENDER")
	viper.BindEnv("email.reviewer_email", "REVIEWER_EMAIL")
	viper.BindEnv("lark.app_id", "LARK_APP_ID")
	viper.BindEnv("lark.app_secret", "LARK_APP_SECRET")
	viper.BindEnv("lark.receive_id", "LARK_RECEIVE_ID")
}

// Validate validates the configuration for the selected delivery backend
func (c *Config) Validate() error {
	switch c.Delivery.Backend {
	case "ses":
		if c.Email.Sender == "" {
			return fmt.Errorf("email.sender is required for the ses backend")
		}
		if c.Email.ReviewerEmail == "" {
			return fmt.Errorf("email.reviewer_email is required for the ses backend")
		}
		if err := utils.ValidateEmail(c.Email.ReviewerEmail); err != nil {
			return fmt.Errorf("email.reviewer_email: %w", err)
		}
	case "lark":
		if c.Lark.AppID == "" {
			return fmt.Errorf("lark.app_id is required for the lark backend")
		}
		if c.Lark.AppSecret == "" {
			return fmt.Errorf("lark.app_secret is required for the lark backend")
		}
		if c.Lark.ReceiveID == "" {
			return fmt.Errorf("lark.receive_id is required for the lark backend")
		}
	case "ledger":
		if c.Ledger.Path == "" {
			return fmt.Errorf("ledger.path is required for the ledger backend")
		}
	default:
		return fmt.Errorf("unknown delivery backend: %s", c.Delivery.Backend)
	}

	return nil
}
