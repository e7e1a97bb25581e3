// Package app wires application dependencies for the CLI and the site server.
//
// It loads Config from YAML, builds the sitemap generator, the analytics
// service and every configured event sink from it, and exposes them via the
// Wire struct for commands to use.
package app
