package sitemap

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"flashysurf/internal/domain"
)

// PageFile is the only file name that turns a directory into a page.
const PageFile = "index.html"

// DefaultExclude lists directory names that are never crawled.
var DefaultExclude = []string{"vendor", "node_modules", ".git"}

var _ domain.SitemapService = (*Service)(nil)

// Options configures a Service. Zero values fall back to the defaults.
type Options struct {
	Root    string
	BaseURL string
	// Exclude replaces DefaultExclude when non-nil.
	Exclude []string
	// SelfPath names a file that must never be listed, usually the sitemap
	// output when it is written inside Root.
	SelfPath    string
	ChangeFreq  string
	Priority    string
	Concurrency int
	Logger      *slog.Logger
}

// Service generates sitemap entries from a directory tree.
type Service struct {
	root        string
	base        string
	excluded    map[string]bool
	selfPath    string
	changeFreq  string
	priority    string
	concurrency int
	log         *slog.Logger
}

func New(opts Options) *Service {
	s := &Service{
		root:        opts.Root,
		base:        strings.TrimRight(opts.BaseURL, "/"),
		excluded:    excludeSet(opts.Exclude),
		selfPath:    opts.SelfPath,
		changeFreq:  opts.ChangeFreq,
		priority:    opts.Priority,
		concurrency: opts.Concurrency,
		log:         opts.Logger,
	}
	if s.root == "" {
		s.root = "."
	}
	if s.changeFreq == "" {
		s.changeFreq = domain.DefaultChangeFreq
	}
	if s.priority == "" {
		s.priority = domain.DefaultPriority
	}
	if s.concurrency < 1 {
		s.concurrency = runtime.GOMAXPROCS(0)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

func excludeSet(names []string) map[string]bool {
	if names == nil {
		names = DefaultExclude
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.Trim(n, "/"); n != "" {
			set[n] = true
		}
	}
	return set
}

// page is an index.html found during the walk.
type page struct {
	path    string
	relDir  string
	modTime time.Time
}

// Scan walks the root and returns one entry per indexable page, sorted by loc.
func (s *Service) Scan(ctx context.Context) ([]domain.SitemapEntry, error) {
	pages, err := s.walk(ctx)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			keep[i] = !s.noIndex(pages[i].path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(pages))
	entries := make([]domain.SitemapEntry, 0, len(pages))
	for i, p := range pages {
		if !keep[i] {
			continue
		}
		loc := s.pageURL(p.relDir)
		if seen[loc] {
			continue
		}
		seen[loc] = true
		entries = append(entries, domain.SitemapEntry{
			Loc:        loc,
			LastMod:    p.modTime.UTC().Format(time.DateOnly),
			ChangeFreq: s.changeFreq,
			Priority:   s.priority,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Loc < entries[j].Loc })
	s.log.Debug("sitemap scan", "root", s.root, "pages", len(pages), "entries", len(entries))
	return entries, nil
}

// Generate scans the tree and writes the sitemap document to w.
func (s *Service) Generate(ctx context.Context, w io.Writer) error {
	entries, err := s.Scan(ctx)
	if err != nil {
		return err
	}
	return Encode(w, entries)
}

// Excluded reports whether a directory name is skipped during the walk.
func (s *Service) Excluded(name string) bool { return s.excluded[name] }

// Root returns the directory the service scans.
func (s *Service) Root() string { return s.root }

func (s *Service) walk(ctx context.Context) ([]page, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	var self os.FileInfo
	if s.selfPath != "" {
		self, _ = os.Stat(s.selfPath)
	}

	var pages []page
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.log.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && s.excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != PageFile {
			return nil
		}
		// Stat follows symlinked pages.
		info, err := os.Stat(path)
		if err != nil {
			s.log.Warn("skipping page", "path", path, "error", err)
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if self != nil && os.SameFile(self, info) {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		pages = append(pages, page{path: path, relDir: rel, modTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}
	return pages, nil
}

// noIndex reads the page and reports whether it opts out of indexing. Pages
// that cannot be read are kept.
func (s *Service) noIndex(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		s.log.Warn("cannot read page, including it", "path", path, "error", err)
		return false
	}
	defer f.Close()

	found, err := HasNoIndex(f)
	if err != nil {
		s.log.Warn("cannot parse page, including it", "path", path, "error", err)
		return false
	}
	return found
}

// pageURL maps a directory relative to the root onto its public URL.
func (s *Service) pageURL(relDir string) string {
	if relDir == "." || relDir == "" {
		return s.base + "/"
	}
	segs := strings.Split(filepath.ToSlash(relDir), "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return s.base + "/" + strings.Join(segs, "/") + "/"
}
