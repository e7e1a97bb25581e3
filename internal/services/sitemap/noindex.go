package sitemap

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HasNoIndex reports whether the document in r carries a robots or googlebot
// meta tag whose content asks crawlers not to index it.
func HasNoIndex(r io.Reader) (bool, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return false, nil
			}
			return false, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if !hasAttr || string(name) != "meta" {
				continue
			}
			var metaName, content string
			for more := true; more; {
				var key, val []byte
				key, val, more = z.TagAttr()
				switch string(key) {
				case "name":
					metaName = string(val)
				case "content":
					content = string(val)
				}
			}
			if isCrawlerMeta(metaName) && strings.Contains(strings.ToLower(content), "noindex") {
				return true, nil
			}
		}
	}
}

func isCrawlerMeta(name string) bool {
	name = strings.TrimSpace(name)
	return strings.EqualFold(name, "robots") || strings.EqualFold(name, "googlebot")
}
