package refdata

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config controls where datasets and the cache are resolved from.
type Config struct {
	BaseDir   string               `yaml:"base_dir"`  // Directory the relative dataset paths are joined to (default: ".")
	CacheDir  string               `yaml:"cache_dir"` // Cache directory (default: CacheDir)
	Overrides map[DatasetID]string `yaml:"datasets"`  // Per-dataset path overrides

	logger *zap.Logger
}

// Option is a functional option for configuring Config.
type Option func(*Config)

// WithBaseDir sets the directory relative dataset paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(c *Config) {
		c.BaseDir = dir
	}
}

// WithCacheDir sets the cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Config) {
		c.CacheDir = dir
	}
}

// WithDatasetPath overrides the location of a single dataset.
func WithDatasetPath(id DatasetID, path string) Option {
	return func(c *Config) {
		if c.Overrides == nil {
			c.Overrides = make(map[DatasetID]string)
		}
		c.Overrides[id] = path
	}
}

// WithLogger sets the logger used for export and validation messages.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	return &Config{
		BaseDir:  ".",
		CacheDir: CacheDir,
		logger:   zap.NewNop(),
	}
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// LoadConfig reads a YAML config file. Options are applied after the file,
// so they take precedence over its values.
//
//	base_dir: notebooks/india
//	cache_dir: /tmp/refdata-cache
//	datasets:
//	  splotFiltered: /data/splot.parquet
func LoadConfig(path string, opts ...Option) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	for id := range cfg.Overrides {
		if _, ok := LookupDataset(id); !ok {
			return nil, fmt.Errorf("config %s: unknown dataset %q", path, id)
		}
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = CacheDir
	}

	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg, nil
}

// Logger returns the configured logger.
func (c *Config) Logger() *zap.Logger {
	return c.logger
}

// Paths holds resolved dataset locations.
type Paths struct {
	GBIFRaw      string
	Splot        string
	GBIFFiltered string
	Cache        string
}

// Resolve joins every dataset path to BaseDir. Absolute overrides are kept as-is.
func (c *Config) Resolve() Paths {
	return Paths{
		GBIFRaw:      c.resolve(DatasetGBIFRaw),
		Splot:        c.resolve(DatasetSplot),
		GBIFFiltered: c.resolve(DatasetGBIFFiltered),
		Cache:        c.join(c.CacheDir),
	}
}

func (c *Config) resolve(id DatasetID) string {
	if p, ok := c.Overrides[id]; ok && p != "" {
		return c.join(p)
	}
	d, _ := LookupDataset(id)
	return c.join(d.Path)
}

func (c *Config) join(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
