package app

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FLASHYSURF_SITE_BASE_URL.
const EnvPrefix = "FLASHYSURF"

// NewViper returns a viper instance reading FLASHYSURF_* environment
// variables for dotted config keys.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ConfigPath returns the config file to load: the "config" key if set,
// otherwise DefaultConfigFile.
func ConfigPath(v *viper.Viper) string {
	if p := v.GetString("config"); p != "" {
		return p
	}
	return DefaultConfigFile
}

// Load reads the config file named by v and applies v's overrides.
func Load(v *viper.Viper) (*Config, error) {
	cfg, err := LoadConfig(ConfigPath(v))
	if err != nil {
		return nil, err
	}
	ApplyOverrides(cfg, v)
	return cfg, nil
}

// ApplyOverrides copies every key set in v (by flag, environment or Set)
// over cfg.
func ApplyOverrides(cfg *Config, v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	str("site.root", &cfg.Site.Root)
	str("site.base_url", &cfg.Site.BaseURL)
	str("sitemap.output", &cfg.Sitemap.Output)
	str("sitemap.change_freq", &cfg.Sitemap.ChangeFreq)
	str("sitemap.priority", &cfg.Sitemap.Priority)
	str("analytics.extension_host", &cfg.Analytics.ExtensionHost)
	str("analytics.visitor_salt", &cfg.Analytics.VisitorSalt)
	str("analytics.events_file", &cfg.Analytics.EventsFile)
	str("analytics.postgres_dsn", &cfg.Analytics.PostgresDSN)
	str("analytics.mixpanel.token", &cfg.Analytics.Mixpanel.Token)
	str("analytics.mixpanel.endpoint", &cfg.Analytics.Mixpanel.Endpoint)
	str("server.listen", &cfg.Server.Listen)

	if v.IsSet("site.exclude") {
		cfg.Site.Exclude = v.GetStringSlice("site.exclude")
	}
	if v.IsSet("sitemap.concurrency") {
		cfg.Sitemap.Concurrency = v.GetInt("sitemap.concurrency")
	}
	if v.IsSet("sitemap.watch") {
		cfg.Sitemap.Watch = v.GetBool("sitemap.watch")
	}
	if v.IsSet("carousel.initial_slide") {
		cfg.Carousel.InitialSlide = v.GetInt("carousel.initial_slide")
	}
}
