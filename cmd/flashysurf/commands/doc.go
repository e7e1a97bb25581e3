// Package commands defines the flashysurf CLI and wires dependencies for subcommands.
//
// Commands
//
//   - sitemap        Generate sitemap.xml for the site root
//   - track visit    Record a page load for a URL
//   - track click    Record a click on a link from a page
//   - events list    Show tracked events
//   - inspect        Report which interactive features a page binds
//   - carousel       Preview a page's slideshow in the terminal
//   - config init    Write a starter flashysurf.yaml
//   - config show    Print the effective configuration
//
// # Implementation
//
// The root command sets up logging and loads the configuration (file, then
// FLASHYSURF_* environment, then flags) before any subcommand runs.
// Subcommands that need services build the dependency graph with newWire and
// close it when they return.
package commands
