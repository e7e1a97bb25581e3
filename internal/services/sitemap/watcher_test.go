package sitemap_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"flashysurf/internal/services/sitemap"
)

func startWatcher(t *testing.T, root string, changes *atomic.Int32) *sitemap.Watcher {
	t.Helper()
	svc := sitemap.New(sitemap.Options{Root: root, BaseURL: "https://example.com"})
	w, err := sitemap.NewWatcher(svc, func() { changes.Add(1) }, sitemap.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	return w
}

func TestWatcher_ReportsNewPages(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": plainPage})

	var changes atomic.Int32
	w := startWatcher(t, root, &changes)
	defer w.Stop()

	require.NoError(t, os.Mkdir(filepath.Join(root, "about"), 0o755))
	require.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// The new directory is watched too.
	before := changes.Load()
	require.NoError(t, os.WriteFile(filepath.Join(root, "about", "index.html"), []byte(plainPage), 0o644))
	require.Eventually(t, func() bool { return changes.Load() > before }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	var changes atomic.Int32
	svc := sitemap.New(sitemap.Options{Root: root})
	w, err := sitemap.NewWatcher(svc, func() { changes.Add(1) }, sitemap.WithDebounce(200*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	p := filepath.Join(root, "index.html")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(p, []byte(plainPage), 0o644))
	}
	require.Eventually(t, func() bool { return changes.Load() == 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.EqualValues(t, 1, changes.Load())
}

func TestWatcher_IgnoresExcludedDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"node_modules/pkg/index.html": plainPage})

	var changes atomic.Int32
	w := startWatcher(t, root, &changes)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "pkg", "index.html"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, changes.Load())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	var changes atomic.Int32
	w := startWatcher(t, t.TempDir(), &changes)
	w.Stop()
	w.Stop()
}

func TestWatcher_FailedStartReleasesWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := sitemap.New(sitemap.Options{Root: filepath.Join(t.TempDir(), "missing"), BaseURL: "https://example.com"})
	w, err := sitemap.NewWatcher(svc, func() {})
	require.NoError(t, err)

	require.Error(t, w.Start(context.Background()))
	require.ErrorIs(t, w.Start(context.Background()), sitemap.ErrWatcherClosed)
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := sitemap.New(sitemap.Options{Root: t.TempDir(), BaseURL: "https://example.com"})
	w, err := sitemap.NewWatcher(svc, func() {})
	require.NoError(t, err)

	w.Stop()
	require.ErrorIs(t, w.Start(context.Background()), sitemap.ErrWatcherClosed)
}
