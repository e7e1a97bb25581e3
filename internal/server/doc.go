// Package server serves a static site together with its generated sitemap
// and an event collection endpoint.
//
// HTTP API
//
//	GET /sitemap.xml
//	    The sitemap of the served root, regenerated after the tree changes
//	    when a watcher is attached.
//
//	POST /events {"type": "page_load"|"link_click", "page_url": "...", "href": "..."}
//	    Track a page load or a link click. Replies 202 with the event, or
//	    {"tracked": false} for clicks on links that are not tracked.
//
//	GET /...
//	    Files under the site root.
//
// A lightweight access log records method, path, remote, status, bytes and
// duration for each request.
package server
