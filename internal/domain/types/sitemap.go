package types

// Sitemap defaults applied to every entry.
const (
	DefaultChangeFreq = "weekly"
	DefaultPriority   = "0.8"
)

// SitemapEntry is one <url> element of a sitemap document.
type SitemapEntry struct {
	Loc        string `xml:"loc" json:"loc"`
	LastMod    string `xml:"lastmod" json:"lastmod"` // YYYY-MM-DD
	ChangeFreq string `xml:"changefreq" json:"changefreq"`
	Priority   string `xml:"priority" json:"priority"`
}
