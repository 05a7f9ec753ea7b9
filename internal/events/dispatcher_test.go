package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventJobPosted, func(_ context.Context, e Event) error {
		got = append(got, "first:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventJobPosted, func(_ context.Context, e Event) error {
		got = append(got, "second:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventAccountDeleted, func(context.Context, Event) error {
		t.Fatal("unrelated handler called")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), New(EventJobPosted, 1, 2, JobPostedPayload{Title: "Go dev"})))
	assert.Equal(t, []string{"first:job_posted", "second:job_posted"}, got)
}

func TestDispatcher_HandlerErrorsDoNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	calls := 0
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), New(EventApplicationSubmitted, 5, 9, nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestNew(t *testing.T) {
	a := New(EventAccountDeleted, 1, 1, nil)
	b := New(EventAccountDeleted, 1, 1, nil)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}

func TestDispatcher_RecoversPanickingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	reached := false
	d.Subscribe(EventJobPosted, func(context.Context, Event) error { panic("nil map") })
	d.Subscribe(EventJobPosted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(t.Context(), New(EventJobPosted, 1, 1, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: nil map")
	assert.True(t, reached)
}

func TestDispatcher_Subscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	d.Subscribe(EventAccountDeleted, func(context.Context, Event) error { return nil })
	d.Subscribe(EventAccountDeleted, nil)

	assert.Equal(t, 1, d.Subscribers(EventAccountDeleted))
	assert.Zero(t, d.Subscribers(EventJobPosted))
	assert.NoError(t, d.Publish(t.Context(), New(EventJobPosted, 1, 1, nil)))
}
