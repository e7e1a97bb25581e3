// Package sitemap builds sitemaps.org XML for a static site tree.
//
// A Service walks the site root for index.html pages, drops excluded
// directories and pages marked noindex, and turns each remaining page
// directory into one <url> entry. Cache and Watcher keep a rendered
// document current while the tree changes underneath a server.
package sitemap
