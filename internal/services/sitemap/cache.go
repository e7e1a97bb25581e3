package sitemap

import (
	"bytes"
	"context"
	"sync"
	"time"

	"flashysurf/internal/domain"
)

// Cache holds the last rendered sitemap until it is invalidated.
type Cache struct {
	mu      sync.Mutex
	svc     domain.SitemapService
	doc     []byte
	builtAt time.Time
}

func NewCache(svc domain.SitemapService) *Cache {
	return &Cache{svc: svc}
}

// Bytes returns the rendered document, regenerating it if needed. Callers
// must not modify the returned slice.
func (c *Cache) Bytes(ctx context.Context) ([]byte, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc != nil {
		return c.doc, c.builtAt, nil
	}
	var buf bytes.Buffer
	if err := c.svc.Generate(ctx, &buf); err != nil {
		return nil, time.Time{}, err
	}
	c.doc = buf.Bytes()
	c.builtAt = time.Now()
	return c.doc, c.builtAt, nil
}

// Invalidate drops the rendered document.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.doc = nil
	c.mu.Unlock()
}
