package domain

import (
	interfaces "flashysurf/internal/domain/interfaces"
	types "flashysurf/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	EventName    = types.EventName
	DistinctID   = types.DistinctID
	SitemapEntry = types.SitemapEntry
	UTM          = types.UTM
	Visit        = types.Visit
	Event        = types.Event
)

// Constant re-exports for the same reason.
const (
	EventVisitWebsite       = types.EventVisitWebsite
	EventVisitExtensionPage = types.EventVisitExtensionPage
	DefaultChangeFreq       = types.DefaultChangeFreq
	DefaultPriority         = types.DefaultPriority
	DefaultExtensionHost    = types.DefaultExtensionHost
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	EventSink        = interfaces.EventSink
	EventStore       = interfaces.EventStore
	SitemapService   = interfaces.SitemapService
	AnalyticsService = interfaces.AnalyticsService
)
