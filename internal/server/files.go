package server

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// wellKnown stays reachable despite the dot-file rule.
const wellKnown = ".well-known"

// siteFS serves the site root minus dot-files, excluded directories and
// private files such as the config and the event log. Hidden entries are
// missing from directory listings as well.
type siteFS struct {
	dir     http.Dir
	root    string
	hidden  func(name string) bool
	private map[string]bool
}

func newSiteFS(root string, hidden func(string) bool, private []string) *siteFS {
	s := &siteFS{dir: http.Dir(root), root: absPath(root), hidden: hidden, private: map[string]bool{}}
	for _, p := range private {
		if p != "" {
			s.private[absPath(p)] = true
		}
	}
	return s
}

func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

func (s *siteFS) Open(name string) (http.File, error) {
	clean := path.Clean("/" + name)
	for _, seg := range strings.Split(clean, "/") {
		if s.hiddenName(seg) {
			return nil, fs.ErrNotExist
		}
	}
	if s.private[filepath.Join(s.root, filepath.FromSlash(clean))] {
		return nil, fs.ErrNotExist
	}
	f, err := s.dir.Open(clean)
	if err != nil {
		return nil, err
	}
	return &listing{File: f, fs: s, dir: clean}, nil
}

func (s *siteFS) hiddenName(seg string) bool {
	if seg == "" {
		return false
	}
	if strings.HasPrefix(seg, ".") && seg != wellKnown {
		return true
	}
	return s.hidden != nil && s.hidden(seg)
}

// listing filters hidden entries out of directory reads.
type listing struct {
	http.File
	fs  *siteFS
	dir string
}

func (l *listing) Readdir(count int) ([]os.FileInfo, error) {
	infos, err := l.File.Readdir(count)
	kept := infos[:0]
	for _, fi := range infos {
		if l.fs.hiddenName(fi.Name()) || l.fs.private[filepath.Join(l.fs.root, filepath.FromSlash(l.dir), fi.Name())] {
			continue
		}
		kept = append(kept, fi)
	}
	return kept, err
}
