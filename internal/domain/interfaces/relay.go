package interfaces

import (
	"context"

	domaintypes "flashysurf/internal/domain/types"
)

// EventSink receives tracked events. Implementations deliver them to an
// analytics backend or persist them.
type EventSink interface {
	TrackEvent(ctx context.Context, event domaintypes.Event) error
}
