package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"

	"flashysurf/internal/domain"
)

// Namespace is the sitemaps.org schema every urlset declares.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ContentType is the media type the sitemap is served with.
const ContentType = "application/xml; charset=utf-8"

type urlset struct {
	XMLName xml.Name              `xml:"urlset"`
	Xmlns   string                `xml:"xmlns,attr"`
	URLs    []domain.SitemapEntry `xml:"url"`
}

// Encode writes entries as a sitemap document, indented by two spaces and
// terminated by a newline.
func Encode(w io.Writer, entries []domain.SitemapEntry) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write sitemap header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(urlset{Xmlns: Namespace, URLs: entries}); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}
