package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/iancarlos335/table-sync/internal/engine"
)

// Endpoint holds the connection parameters for one database. Either an
// explicit DSN or server/database details (SQL Server only).
type Endpoint struct {
	Driver   string `mapstructure:"driver"`
	Server   string `mapstructure:"server"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Trusted  bool   `mapstructure:"trusted_connection"`
	DSN      string `mapstructure:"dsn"`
}

// BuildDSN returns the connection string for the endpoint. Non-SQL-Server
// drivers must supply a ready-made DSN since their formats differ.
func (e *Endpoint) BuildDSN() (string, error) {
	if e.DSN != "" {
		return e.DSN, nil
	}
	if e.Driver != "sqlserver" && e.Driver != "mssql" {
		return "", fmt.Errorf("driver %q requires an explicit dsn", e.Driver)
	}
	if e.Server == "" || e.Database == "" {
		return "", fmt.Errorf("server and database are required when no dsn is given")
	}

	parts := []string{
		"server=" + e.Server,
		"database=" + e.Database,
	}
	if e.Trusted {
		parts = append(parts, "trusted_connection=yes")
	} else {
		parts = append(parts, "user id="+e.User, "password="+e.Password)
	}
	return strings.Join(parts, ";"), nil
}

// Config is the immutable run configuration, assembled once from viper
// (flag > config file > default) and validated before any connection is
// opened.
type Config struct {
	Source       Endpoint `mapstructure:"source"`
	Target       Endpoint `mapstructure:"target"`
	TableList    string   `mapstructure:"table_list"`
	FilterColumn string   `mapstructure:"filter_column"`
	FilterValue  string   `mapstructure:"filter_value"`
	PreDelete    bool     `mapstructure:"pre_delete"`
	Mode         string   `mapstructure:"mode"`
	PrimaryKey   string   `mapstructure:"primary_key"`
	OutputDir    string   `mapstructure:"output_dir"`
}

// LoadConfig unmarshals and validates the configuration.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Source.Driver == "" {
		cfg.Source.Driver = "sqlserver"
	}
	if cfg.Target.Driver == "" {
		cfg.Target.Driver = "sqlserver"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unusable configurations up front, before connecting.
func (c *Config) Validate() error {
	mode, err := engine.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if mode == engine.ModeUpdate && strings.TrimSpace(c.PrimaryKey) == "" {
		return fmt.Errorf("primary_key is required in UPDATE mode")
	}
	if c.TableList == "" {
		return fmt.Errorf("table_list is required")
	}
	if c.FilterColumn == "" {
		return fmt.Errorf("filter_column is required")
	}
	// Generated DML is T-SQL; only the source side may use another driver.
	if c.Target.Driver != "sqlserver" && c.Target.Driver != "mssql" {
		return fmt.Errorf("target driver must be sqlserver or mssql, got %q", c.Target.Driver)
	}
	return nil
}

// OperationMode returns the validated mode.
func (c *Config) OperationMode() engine.Mode {
	mode, _ := engine.ParseMode(c.Mode)
	return mode
}
