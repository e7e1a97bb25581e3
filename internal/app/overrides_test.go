package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashysurf/internal/app"
)

func TestApplyOverrides_EnvAndSet(t *testing.T) {
	t.Setenv("FLASHYSURF_SITE_BASE_URL", "https://flashysurf.com")
	t.Setenv("FLASHYSURF_ANALYTICS_MIXPANEL_TOKEN", "tok")
	t.Setenv("FLASHYSURF_CAROUSEL_INITIAL_SLIDE", "4")
	t.Setenv("FLASHYSURF_SITEMAP_WATCH", "true")

	v := app.NewViper()
	v.Set("server.listen", ":9090")

	cfg := app.DefaultConfig()
	app.ApplyOverrides(cfg, v)

	assert.Equal(t, "https://flashysurf.com", cfg.Site.BaseURL)
	assert.Equal(t, "tok", cfg.Analytics.Mixpanel.Token)
	assert.Equal(t, 4, cfg.Carousel.InitialSlide)
	assert.True(t, cfg.Sitemap.Watch)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, ".", cfg.Site.Root, "unset keys are left alone")
}

func TestLoad_FileThenOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  root: public\n  base_url: https://a.example\n"), 0o644))

	v := app.NewViper()
	v.Set("config", path)
	v.Set("site.base_url", "https://b.example")

	cfg, err := app.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.Site.Root)
	assert.Equal(t, "https://b.example", cfg.Site.BaseURL)
}

func TestConfigPath_Default(t *testing.T) {
	assert.Equal(t, app.DefaultConfigFile, app.ConfigPath(app.NewViper()))
}
