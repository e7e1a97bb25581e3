package types

import "time"

// UTM carries the campaign attribution of a visit. A nil field means the
// query parameter was absent and encodes as JSON null.
type UTM struct {
	Source   *string `json:"source"`
	Campaign *string `json:"campaign"`
}

// Visit describes the page view an event is derived from.
type Visit struct {
	PageURL    string `json:"page_url"`
	RemoteAddr string `json:"remote_addr,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
}

// Event is a single tracked analytics event.
type Event struct {
	InsertID   string     `json:"insert_id"`
	Name       EventName  `json:"event"`
	DistinctID DistinctID `json:"distinct_id"`
	PageURL    string     `json:"page_url,omitempty"`
	Time       time.Time  `json:"time"`
	Properties UTM        `json:"properties"`
}
