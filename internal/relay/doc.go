// Package relay delivers tracked events to Mixpanel's ingestion API.
//
// Mixpanel implements domain.EventSink. Each event becomes one entry of a
// /track request carrying the project token, the visitor's distinct id, an
// insert id for de-duplication and the UTM properties of the visit. Requests
// honour the caller's context. Non-2xx statuses are returned as errors with
// the HTTP method, full URL, and status text to aid diagnostics; a 2xx reply
// whose verbose status is not 1 wraps ErrRejected.
package relay
