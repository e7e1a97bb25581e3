package sitemap_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashysurf/internal/domain"
	"flashysurf/internal/services/sitemap"
)

const (
	plainPage   = `<!DOCTYPE html><html><head><title>x</title></head><body></body></html>`
	noindexPage = `<html><head><meta name="robots" content="noindex"></head></html>`
)

var stamp = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// writeTree creates files under root, all with mtime stamp.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		require.NoError(t, os.Chtimes(p, stamp, stamp))
	}
}

func locs(entries []domain.SitemapEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Loc
	}
	return out
}

func TestGenerate_SkipsNoIndexPages(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":       plainPage,
		"about/index.html": noindexPage,
	})

	svc := sitemap.New(sitemap.Options{Root: root, BaseURL: "https://example.com"})
	var buf bytes.Buffer
	require.NoError(t, svc.Generate(context.Background(), &buf))

	want := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://example.com/</loc>
    <lastmod>2024-05-01</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.8</priority>
  </url>
</urlset>
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("sitemap mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_EntriesSortedWithDefaults(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":               plainPage,
		"zeta/index.html":          plainPage,
		"blog/index.html":          plainPage,
		"blog/first/index.html":    plainPage,
		"blog/first/notes.html":    plainPage,
		"assets/app.js":            "",
		"docs/guide/README.md":     "",
		"docs/guide/index.htm":     plainPage,
		"docs/guide/tutorial.html": plainPage,
	})

	entries, err := sitemap.New(sitemap.Options{Root: root, BaseURL: "https://example.com/"}).Scan(context.Background())
	require.NoError(t, err)

	want := []domain.SitemapEntry{
		{Loc: "https://example.com/", LastMod: "2024-05-01", ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: "https://example.com/blog/", LastMod: "2024-05-01", ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: "https://example.com/blog/first/", LastMod: "2024-05-01", ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: "https://example.com/zeta/", LastMod: "2024-05-01", ChangeFreq: "weekly", Priority: "0.8"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_DefaultExclusions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":                  plainPage,
		"vendor/lib/index.html":       plainPage,
		"node_modules/pkg/index.html": plainPage,
		".git/index.html":             plainPage,
		"docs/vendor/index.html":      plainPage,
		"vendors/index.html":          plainPage,
	})

	entries, err := sitemap.New(sitemap.Options{Root: root, BaseURL: "https://example.com"}).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/",
		"https://example.com/vendors/",
	}, locs(entries))
}

func TestScan_ExcludeMatchesWholeNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"admin/index.html":        plainPage,
		"radmin/index.html":       plainPage,
		"site/admin/x/index.html": plainPage,
		"vendor/index.html":       plainPage,
	})

	svc := sitemap.New(sitemap.Options{Root: root, BaseURL: "https://example.com", Exclude: []string{"admin"}})
	entries, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/radmin/",
		"https://example.com/vendor/",
	}, locs(entries), "a custom list replaces the defaults")
}

func TestScan_SkipsSelfPath(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":     plainPage,
		"map/index.html": plainPage,
	})

	svc := sitemap.New(sitemap.Options{
		Root:     root,
		BaseURL:  "https://example.com",
		SelfPath: filepath.Join(root, "map", "index.html"),
	})
	entries, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/"}, locs(entries))
}

func TestScan_CustomFrequencyAndPriority(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": plainPage})

	svc := sitemap.New(sitemap.Options{Root: root, BaseURL: "https://example.com", ChangeFreq: "daily", Priority: "0.5"})
	entries, err := svc.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "daily", entries[0].ChangeFreq)
	assert.Equal(t, "0.5", entries[0].Priority)
}

func TestScan_LastModIsUTC(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": plainPage})

	late := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	require.NoError(t, os.Chtimes(filepath.Join(root, "index.html"), late, late))

	entries, err := sitemap.New(sitemap.Options{Root: root, BaseURL: "https://example.com"}).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-03-10", entries[0].LastMod)
}

func TestGenerate_EscapesLocations(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a b/index.html": plainPage,
		"x&y/index.html": plainPage,
	})

	var buf bytes.Buffer
	require.NoError(t, sitemap.New(sitemap.Options{Root: root, BaseURL: "https://example.com"}).Generate(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, "<loc>https://example.com/a%20b/</loc>")
	assert.Contains(t, out, "<loc>https://example.com/x&amp;y/</loc>")
}

func TestScan_MissingRoot(t *testing.T) {
	svc := sitemap.New(sitemap.Options{Root: filepath.Join(t.TempDir(), "nope"), BaseURL: "https://example.com"})
	_, err := svc.Scan(context.Background())
	require.Error(t, err)
}

func TestScan_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": plainPage, "a/index.html": plainPage})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sitemap.New(sitemap.Options{Root: root}).Scan(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sitemap.Encode(&buf, nil))
	assert.Equal(t,
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\"></urlset>\n",
		buf.String())
}
