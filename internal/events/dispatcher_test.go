package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventBugCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "evt-1", Type: EventBugCreated, BugID: "bug-1"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.Equal(t, "bug-1", received[0].BugID)
}

func TestDispatcherIgnoresUnrelatedEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventBountyPaid, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventBugCreated}))
	require.False(t, called)
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	dispatcher.Subscribe(EventSubmissionApproved, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	secondCalled := false
	dispatcher.Subscribe(EventSubmissionApproved, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventSubmissionApproved}))
	require.True(t, secondCalled)
}
