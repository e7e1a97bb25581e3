package interfaces

import (
	"context"

	domaintypes "flashysurf/internal/domain/types"
)

// EventStore is an EventSink that can also replay what it stored.
type EventStore interface {
	EventSink
	ListEvents(ctx context.Context) ([]domaintypes.Event, error)
}
