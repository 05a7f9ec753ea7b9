package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/job-board/internal/events"
)

type recordingNotifier struct {
	mu      sync.Mutex
	handled []events.EventType
	err     error
}

func (r *recordingNotifier) Handle(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handled = append(r.handled, event.Type)
	return r.err
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handled)
}

func TestNotificationWorker_DeliversPublishedEvents(t *testing.T) {
	notifier := &recordingNotifier{}
	dispatcher := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(notifier, zap.NewNop(), 0)
	w.Subscribe(dispatcher, events.EventJobPosted, events.EventAccountDeleted)

	ctx, cancel := context.WithCancel(t.Context())
	w.Start(ctx)

	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventJobPosted, 1, 10, nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventAccountDeleted, 1, 4, nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventApplicationSubmitted, 1, 5, nil)))

	assert.Eventually(t, func() bool { return notifier.count() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	w.Wait()
	assert.Equal(t, []events.EventType{events.EventJobPosted, events.EventAccountDeleted}, notifier.handled)
}

func TestNotificationWorker_DropsWhenQueueFull(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	notifier := &recordingNotifier{}
	dispatcher := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(notifier, zap.New(core), 1)
	w.Subscribe(dispatcher, events.EventJobPosted)

	require.NoError(t, dispatcher.Publish(t.Context(), events.New(events.EventJobPosted, 1, 1, nil)))
	require.NoError(t, dispatcher.Publish(t.Context(), events.New(events.EventJobPosted, 1, 2, nil)))
	assert.Equal(t, 1, logs.FilterMessage("notification queue full, dropping event").Len())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	w.Start(ctx)
	w.Wait()
	assert.Equal(t, 1, notifier.count())
}

func TestNotificationWorker_LogsFailures(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	w := NewNotificationWorker(notifier, zap.New(core), 4)

	w.handle(t.Context(), events.New(events.EventJobPosted, 1, 1, nil))
	assert.Equal(t, 1, logs.FilterMessage("notification failed").Len())
}
