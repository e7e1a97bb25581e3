package types

// EventName identifies a tracked analytics event.
type EventName string

// String returns the string form of the event name.
func (n EventName) String() string { return string(n) }

const (
	// EventVisitWebsite is emitted once per page load.
	EventVisitWebsite EventName = "Visit Website"
	// EventVisitExtensionPage is emitted when a visitor follows a link to the
	// browser extension store.
	EventVisitExtensionPage EventName = "Visit Extension Page"
)

// DistinctID is the pseudonymous visitor identifier attached to events.
type DistinctID string

// String returns the string form of the identifier.
func (id DistinctID) String() string { return string(id) }

// DefaultExtensionHost is the URL substring that marks links to the browser
// extension store.
const DefaultExtensionHost = "chromewebstore.google.com"
