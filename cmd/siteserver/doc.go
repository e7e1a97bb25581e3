// Package main runs the FlashySurf site server. It serves the static site
// from the configured root, a generated sitemap, and the analytics endpoint
// the landing page posts to.
//
// HTTP API
//
//	GET /sitemap.xml
//	    The sitemap for the site root. It is generated on first request and
//	    cached until the tree changes (with sitemap.watch) or the process
//	    restarts.
//
//	POST /events { "type": "page_load" | "link_click", "page_url": ..., "href": ... }
//	    Record an analytics event. page_url falls back to the Referer header.
//	    Answers 202 with the event, 202 with tracked=false for a click that
//	    is not an extension link, or 503 when no sink is configured.
//
//	GET /
//	    Static files under site.root.
//
// Behaviour
//
//   - Configuration comes from flashysurf.yaml, FLASHYSURF_* environment
//     variables and flags, in increasing precedence.
//   - An access log records method, path, remote, status, bytes and
//     duration for each request.
//   - SIGINT or SIGTERM drains in-flight requests before exiting.
package main
