// Package app provides the application container that wires every
// dependency and service together.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/planhub/collab-event-service/internal/dao"
	"github.com/planhub/collab-event-service/pkg/logger"
	"github.com/planhub/collab-event-service/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig application configuration.
type AppConfig struct {
	File     string             `yaml:"-"`
	Server   ServerConfig       `yaml:"server"`
	Log      logger.Config      `yaml:"log"`
	Database dao.DatabaseConfig `yaml:"database"`
	App      AppSettings        `yaml:"app"`
	User     UserConfig         `yaml:"user"`
	Security SecurityConfig     `yaml:"security"`
	Tracer   TracerConfig       `yaml:"tracer"`
}

// ServerConfig server configuration.
type ServerConfig struct {
	// RunMode is "debug" or "release".
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort is the public listen address.
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout read timeout in seconds.
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout write timeout in seconds.
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen serves pprof, metrics and expvar.
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// SecurityConfig security configuration.
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"collab-event-Auth-Token"`
	// TokenExpiry access token lifetime, e.g. 24h, 30m, 7d.
	TokenExpiry string `yaml:"token-expiry" default:"24h"`
	// RefreshTokenExpiry refresh token lifetime.
	RefreshTokenExpiry string `yaml:"refresh-token-expiry" default:"30d"`
}

// UserConfig user configuration.
type UserConfig struct {
	// RegisterIsEnable toggles open registration.
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
}

// AppSettings application settings.
type AppSettings struct {
	// DefaultPageSize default list page size.
	DefaultPageSize int `yaml:"default-page-size" default:"20"`
	// MaxPageSize largest accepted page size.
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout per-request timeout in seconds.
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// BatchCreateLimit caps events per batch request.
	BatchCreateLimit int `yaml:"batch-create-limit" default:"100"`
	// TokenCleanupInterval how often expired blacklist rows are purged.
	TokenCleanupInterval string `yaml:"token-cleanup-interval" default:"1h"`
	// DBMaintenanceInterval how often storage maintenance runs.
	DBMaintenanceInterval string `yaml:"db-maintenance-interval" default:"24h"`
}

// TracerConfig request tracing configuration.
type TracerConfig struct {
	// Enabled toggles trace ID propagation.
	Enabled bool `yaml:"enabled" default:"true"`
	// Header carries the trace ID, defaults to X-Trace-ID.
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig loads the configuration from a file, applying defaults
// for anything the file leaves out.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// Fill fields present in YAML but left empty.
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save writes the configuration back to its file.
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetTokenExpiry parses the access token lifetime.
func (c *AppConfig) GetTokenExpiry() time.Duration {
	d, err := util.ParseDuration(c.Security.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetRefreshTokenExpiry parses the refresh token lifetime.
func (c *AppConfig) GetRefreshTokenExpiry() time.Duration {
	d, err := util.ParseDuration(c.Security.RefreshTokenExpiry)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

// GetTokenCleanupInterval parses the blacklist purge interval.
func (c *AppConfig) GetTokenCleanupInterval() time.Duration {
	d, err := util.ParseDuration(c.App.TokenCleanupInterval)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// GetDBMaintenanceInterval parses the storage maintenance interval.
func (c *AppConfig) GetDBMaintenanceInterval() time.Duration {
	d, err := util.ParseDuration(c.App.DBMaintenanceInterval)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}
