package interfaces

import (
	"context"
	"io"

	domaintypes "flashysurf/internal/domain/types"
)

// SitemapService scans the site tree and renders sitemap documents.
type SitemapService interface {
	Scan(ctx context.Context) ([]domaintypes.SitemapEntry, error)
	Generate(ctx context.Context, w io.Writer) error
}

// AnalyticsService turns page activity into tracked events.
type AnalyticsService interface {
	PageLoad(ctx context.Context, visit domaintypes.Visit) (domaintypes.Event, error)
	LinkClick(
		ctx context.Context,
		visit domaintypes.Visit,
		href string,
	) (domaintypes.Event, bool, error)
}
