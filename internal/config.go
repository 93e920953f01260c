package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Security    SecurityConfig    `mapstructure:"security"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Permissions PermissionsConfig `mapstructure:"permissions"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	Source          string        `mapstructure:"source" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type SecurityConfig struct {
	SessionSecret          string        `mapstructure:"session_secret" validate:"required,min=32"`
	SessionTTL             time.Duration `mapstructure:"session_ttl" validate:"required,min=1m"`
	SessionFile            string        `mapstructure:"session_file"`
	BCryptCost             int           `mapstructure:"bcrypt_cost" validate:"required,min=4,max=15"`
	LoginAttemptsPerMinute int           `mapstructure:"login_attempts_per_minute"`
	LoginBurst             int           `mapstructure:"login_burst"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// PermissionsConfig maps roles to their default group and groups to capabilities.
type PermissionsConfig struct {
	RoleGroups map[string]string   `mapstructure:"role_groups"`
	Groups     map[string][]string `mapstructure:"groups"`
}

const (
	RoleManagement = "management"
	RoleSales      = "sales"
	RoleSupport    = "support"

	GroupManagement = "management_team"
	GroupSales      = "sales_team"
	GroupSupport    = "support_team"
)

// Roles lists the role names in menu order.
var Roles = []string{RoleManagement, RoleSales, RoleSupport}

func DefaultPermissions() PermissionsConfig {
	return PermissionsConfig{
		RoleGroups: map[string]string{
			RoleManagement: GroupManagement,
			RoleSales:      GroupSales,
			RoleSupport:    GroupSupport,
		},
		Groups: map[string][]string{
			GroupManagement: {
				"view_collaborator",
				"manage_collaborators",
				"view_client",
				"add_client",
				"change_client",
				"delete_client",
				"view_contract",
				"manage_contracts_creation_modification",
				"view_event",
				"change_event",
				"assign_event_support",
			},
			GroupSales: {
				"view_client",
				"add_client",
				"change_client",
				"view_contract",
				"view_event",
				"add_event",
			},
			GroupSupport: {
				"view_client",
				"view_contract",
				"view_event",
				"change_event",
			},
		},
	}
}

// Defaults returns a configuration usable without a config file.
func Defaults() map[string]interface{} {
	perms := DefaultPermissions()
	return map[string]interface{}{
		"app.env":                            "development",
		"database.driver":                    "sqlite",
		"database.source":                    "epic_events.db",
		"database.max_open_conns":            1,
		"database.max_idle_conns":            1,
		"database.conn_max_lifetime":         time.Hour,
		"database.ping_timeout":              5 * time.Second,
		"security.session_secret":            "",
		"security.session_ttl":               8 * time.Hour,
		"security.session_file":              ".epicevents_session",
		"security.bcrypt_cost":               12,
		"security.login_attempts_per_minute": 5,
		"security.login_burst":               3,
		"logging.level":                      "info",
		"logging.format":                     "text",
		"permissions.role_groups":            perms.RoleGroups,
		"permissions.groups":                 perms.Groups,
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if err := c.Permissions.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("permissions config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver != "postgres" && c.Driver != "sqlite" {
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.SessionSecret) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}
	if c.SessionTTL < time.Minute {
		return errors.New("session_ttl must be at least 1m")
	}
	if c.BCryptCost < 4 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 4 and 15")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}

func (c *PermissionsConfig) Validate() error {
	for role, group := range c.RoleGroups {
		if _, ok := c.Groups[group]; !ok {
			return fmt.Errorf("role %s references unknown group %s", role, group)
		}
	}
	return nil
}
