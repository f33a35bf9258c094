package queue_publisher

import (
	"context"

	q "github.com/impressmydate/backend/internal/queue"
)

// Events adapts the package-level publish functions to the planner's
// Publisher interface.  Publishing is best effort; errors were already
// logged inside publish, so they are dropped here.
type Events struct{}

func (Events) ItineraryConfirmed(ctx context.Context, ev q.ItineraryConfirmedEvent) {
	_ = PublishItineraryConfirmed(ctx, ev)
}

func (Events) SessionDiscarded(ctx context.Context, ev q.SessionDiscardedEvent) {
	_ = PublishSessionDiscarded(ctx, ev)
}
