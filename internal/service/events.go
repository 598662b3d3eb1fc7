package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bountyboard/bounty-service/internal/events"
)

// publish stamps and dispatches an event; dispatch failures never fail the
// triggering operation.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = dispatcher.Publish(ctx, event)
}
