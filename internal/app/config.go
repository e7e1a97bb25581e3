package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"

	"flashysurf/internal/domain"
	"flashysurf/internal/relay"
	"flashysurf/internal/services/sitemap"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = "flashysurf.yaml"

// Config is the flashysurf configuration file.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Sitemap   SitemapConfig   `yaml:"sitemap"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Carousel  CarouselConfig  `yaml:"carousel"`
	Server    ServerConfig    `yaml:"server"`
}

// SiteConfig locates the static site.
type SiteConfig struct {
	Root    string   `yaml:"root"`
	BaseURL string   `yaml:"base_url"`
	Exclude []string `yaml:"exclude"`
}

type SitemapConfig struct {
	ChangeFreq  string `yaml:"change_freq"`
	Priority    string `yaml:"priority"`
	Concurrency int    `yaml:"concurrency"`
	// Output is where `flashysurf sitemap` writes; empty means stdout.
	Output string `yaml:"output"`
	// Watch keeps the served sitemap current as the tree changes.
	Watch bool `yaml:"watch"`
}

// AnalyticsConfig selects the event sinks. Each sink is enabled by setting
// its location.
type AnalyticsConfig struct {
	ExtensionHost string         `yaml:"extension_host"`
	VisitorSalt   string         `yaml:"visitor_salt"`
	EventsFile    string         `yaml:"events_file"`
	PostgresDSN   string         `yaml:"postgres_dsn"`
	Mixpanel      MixpanelConfig `yaml:"mixpanel"`
}

type MixpanelConfig struct {
	Token    string `yaml:"token"`
	Endpoint string `yaml:"endpoint"`
}

type CarouselConfig struct {
	InitialSlide int `yaml:"initial_slide"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultConfig returns a Config that serves and maps the current directory
// and logs events to a local file.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Root:    ".",
			BaseURL: "http://localhost:8080",
			Exclude: append([]string(nil), sitemap.DefaultExclude...),
		},
		Sitemap: SitemapConfig{
			ChangeFreq: domain.DefaultChangeFreq,
			Priority:   domain.DefaultPriority,
		},
		Analytics: AnalyticsConfig{
			ExtensionHost: domain.DefaultExtensionHost,
			EventsFile:    "events.jsonl",
			Mixpanel:      MixpanelConfig{Endpoint: relay.DefaultEndpoint},
		},
		Server: ServerConfig{Listen: "localhost:8080"},
	}
}

// LoadConfig reads the file at path over DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

var changeFreqs = map[string]bool{
	"always": true, "hourly": true, "daily": true, "weekly": true,
	"monthly": true, "yearly": true, "never": true,
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Site.Root == "" {
		errs = append(errs, errors.New("site.root: required"))
	}
	if u, err := url.Parse(c.Site.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("site.base_url: %q is not an absolute http(s) URL", c.Site.BaseURL))
	}
	if c.Sitemap.ChangeFreq != "" && !changeFreqs[c.Sitemap.ChangeFreq] {
		errs = append(errs, fmt.Errorf("sitemap.change_freq: unknown value %q", c.Sitemap.ChangeFreq))
	}
	if c.Sitemap.Priority != "" {
		p, err := strconv.ParseFloat(c.Sitemap.Priority, 64)
		if err != nil || p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("sitemap.priority: %q is not a number in [0, 1]", c.Sitemap.Priority))
		}
	}
	if c.Sitemap.Concurrency < 0 {
		errs = append(errs, errors.New("sitemap.concurrency: must not be negative"))
	}
	return errors.Join(errs...)
}
