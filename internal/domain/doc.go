// Package domain holds the sitemap and analytics data models and the
// contracts between services, sinks and stores. Types live in domain/types,
// interfaces in domain/interfaces; this package re-exports both.
package domain
