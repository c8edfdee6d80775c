package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort        = 4000
	defaultEnv         = "development"
	defaultSource      = SourceMarkdown
	defaultDataDir     = "data"
	defaultSnapshotTTL = 5 * time.Minute
	defaultDBHost      = "127.0.0.1"
	defaultDBPort      = 3306
	defaultDBUser      = "root"
	defaultDBName      = "shiny_dollop"
	defaultDBCharset   = "utf8mb4"
	defaultSiteURL     = "http://localhost:4000"
	defaultSiteTitle   = "Shiny Dollop"
	defaultSiteDesc    = "Curated photo gallery collections"
)

// Catalog source kinds.
const (
	SourceStatic   = "static"
	SourceMarkdown = "markdown"
	SourceDatabase = "database"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port        int            `yaml:"port"`
	Env         string         `yaml:"env"` // "development" | "production"
	Source      string         `yaml:"source"`
	DataDir     string         `yaml:"data_dir"`
	SnapshotTTL time.Duration  `yaml:"snapshot_ttl"`
	DSN         string         `yaml:"dsn"`
	Database    DatabaseConfig `yaml:"database"`
	RedisURL    string         `yaml:"redis_url"`
	Site        SiteConfig     `yaml:"site"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// SiteConfig feeds feed/sitemap generation and SEO strings.
type SiteConfig struct {
	URL         string `yaml:"url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// Load reads the YAML config file, applies environment overrides and defaults.
// A missing file is not an error: env vars and defaults alone are a valid setup.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := envString("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := envString("ENV", "NODE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := envString("CATALOG_SOURCE"); v != "" {
		cfg.Source = v
	}
	if v := envString("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := envString("SNAPSHOT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SnapshotTTL = d
		}
	}
	if v := envString("DATABASE_DSN", "DATABASE_URL"); v != "" {
		cfg.DSN = v
	}
	if v := envString("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := envString("SITE_URL"); v != "" {
		cfg.Site.URL = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Source == "" {
		cfg.Source = defaultSource
	}
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = defaultSnapshotTTL
	}
	if cfg.DSN == "" {
		cfg.DSN = buildDSN(cfg.Database)
	}
	if cfg.Site.URL == "" {
		cfg.Site.URL = defaultSiteURL
	}
	cfg.Site.URL = strings.TrimRight(cfg.Site.URL, "/")
	if cfg.Site.Title == "" {
		cfg.Site.Title = defaultSiteTitle
	}
	if cfg.Site.Description == "" {
		cfg.Site.Description = defaultSiteDesc
	}
}

func validate(cfg *AppConfig) error {
	switch cfg.Source {
	case SourceStatic, SourceMarkdown, SourceDatabase:
		return nil
	default:
		return fmt.Errorf("unknown catalog source %q (want static, markdown or database)", cfg.Source)
	}
}

// envString returns the first non-empty value among the named env vars.
func envString(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
