package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vtree.json"

	// DefaultAddr is the default server listen address.
	DefaultAddr = ":8080"

	// DefaultMetricsPath is the default metrics route.
	DefaultMetricsPath = "/metrics"

	// DefaultWriteTimeout is the default websocket write timeout.
	DefaultWriteTimeout = "10s"

	// DefaultSnapshotDir is the default directory of the disk snapshot store.
	DefaultSnapshotDir = "snapshots"
)

// Snapshot store kinds.
const (
	StoreDisk = "disk"
	StoreS3   = "s3"
)

// Config represents the complete vtree.json configuration.
type Config struct {
	// Name is the project name, used as the page title.
	Name string `json:"name,omitempty"`

	// Dev turns on structural validation of trees (duplicate keys, reused
	// nodes, unknown listeners).
	Dev bool `json:"dev,omitempty"`

	// Server contains the live server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Render contains rendering configuration.
	Render RenderConfig `json:"render,omitempty"`

	// Snapshot contains snapshot store configuration.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	// Addr is the address to listen on.
	Addr string `json:"addr,omitempty"`

	// MetricsPath is the Prometheus route. "-" disables it.
	MetricsPath string `json:"metricsPath,omitempty"`

	// ClientScript is the path of the client script written into pages.
	ClientScript string `json:"clientScript,omitempty"`

	// WriteTimeout bounds one websocket write (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// MaxPatchHistory is the number of patch frames kept for reconnects.
	MaxPatchHistory int `json:"maxPatchHistory,omitempty"`
}

// RenderConfig contains rendering settings.
type RenderConfig struct {
	// Pretty indents rendered markup.
	Pretty bool `json:"pretty,omitempty"`

	// Strategy is the live build strategy: "live" or "markup".
	Strategy string `json:"strategy,omitempty"`
}

// SnapshotConfig contains snapshot store settings.
type SnapshotConfig struct {
	// Store is "disk" or "s3".
	Store string `json:"store,omitempty"`

	// Dir is the disk store directory.
	Dir string `json:"dir,omitempty"`

	// Bucket, Prefix and Region locate the s3 store.
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`

	// MaxSize limits stored objects in bytes (0 = no limit).
	MaxSize int64 `json:"maxSize,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
// It looks for vtree.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, cfg.Validate()
}

// LoadOrNew loads the config in dir, or returns defaults when there is none.
func LoadOrNew(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.MaxPatchHistory == 0 {
		c.Server.MaxPatchHistory = 100
	}
	if c.Render.Strategy == "" {
		c.Render.Strategy = render.StrategyLive.String()
	}
	if c.Snapshot.Store == "" {
		c.Snapshot.Store = StoreDisk
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := render.ParseStrategy(c.Render.Strategy); err != nil {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("render.strategy %q is not one of live, markup", c.Render.Strategy)
	}
	if _, err := time.ParseDuration(c.Server.WriteTimeout); err != nil {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("server.writeTimeout %q is not a duration", c.Server.WriteTimeout)
	}
	if c.Server.MaxPatchHistory < 0 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("server.maxPatchHistory must not be negative")
	}
	switch c.Snapshot.Store {
	case StoreDisk:
	case StoreS3:
		if c.Snapshot.Bucket == "" {
			return errors.New(errors.CodeConfigInvalid).
				WithDetail("snapshot.bucket is required for the s3 store")
		}
	default:
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("snapshot.store %q is not one of disk, s3", c.Snapshot.Store)
	}
	return nil
}

// Strategy returns the parsed render strategy.
func (c *Config) Strategy() render.Strategy {
	s, _ := render.ParseStrategy(c.Render.Strategy)
	return s
}

// WriteTimeout returns the parsed websocket write timeout.
func (c *Config) WriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultWriteTimeout)
	}
	return d
}

// MetricsPath returns the metrics route, or "" when disabled.
func (c *Config) MetricsPath() string {
	if c.Server.MetricsPath == "-" {
		return ""
	}
	return c.Server.MetricsPath
}

// SnapshotDir returns the absolute path of the disk snapshot store.
func (c *Config) SnapshotDir() string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing vtree.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
