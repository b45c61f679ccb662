package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse-core/internal/domain/shared"
)

// recordingHandler collects events it receives; optionally fails every call.
type recordingHandler struct {
	mu     sync.Mutex
	name   string
	events []shared.Event
	err    error
}

func (h *recordingHandler) Handle(_ context.Context, event shared.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) Name() string { return h.name }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func enrolledEvent() shared.Event {
	return shared.NewStudentEnrolledEvent("s-1", "c-1", false)
}

func TestEventBus_TypedSubscription(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	defer bus.Close()

	enrollments := &recordingHandler{name: "enrollments"}
	lectures := &recordingHandler{name: "lectures"}
	require.NoError(t, bus.Subscribe(shared.EventStudentEnrolled, enrollments))
	require.NoError(t, bus.Subscribe(shared.EventLectureStatusChanged, lectures))

	require.NoError(t, bus.Publish(context.Background(), enrolledEvent()))

	assert.Equal(t, 1, enrollments.count())
	assert.Equal(t, 0, lectures.count())
}

func TestEventBus_SubscribeAllSeesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	defer bus.Close()

	audit := &recordingHandler{name: "audit"}
	require.NoError(t, bus.SubscribeAll(audit))

	require.NoError(t, bus.Publish(context.Background(), enrolledEvent()))
	require.NoError(t, bus.Publish(context.Background(),
		shared.NewLectureStatusChangedEvent("l-1", "c-1", "scheduled", "live")))

	assert.Equal(t, 2, audit.count())
}

func TestEventBus_HandlerErrorIsSwallowed(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	defer bus.Close()

	broken := &recordingHandler{name: "broken", err: errors.New("hook down")}
	healthy := &recordingHandler{name: "healthy"}
	require.NoError(t, bus.Subscribe(shared.EventStudentEnrolled, broken))
	require.NoError(t, bus.Subscribe(shared.EventStudentEnrolled, healthy))

	// A failing subscriber must not fail the publish or starve the others.
	require.NoError(t, bus.Publish(context.Background(), enrolledEvent()))

	assert.Equal(t, 1, broken.count())
	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, 1, bus.Metrics().FailedCount(shared.EventStudentEnrolled))
}

func TestEventBus_Metrics(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	defer bus.Close()

	audit := &recordingHandler{name: "audit"}
	require.NoError(t, bus.SubscribeAll(audit))

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(context.Background(), enrolledEvent()))
	}
	require.NoError(t, bus.Publish(context.Background(),
		shared.NewGradesPublishedEvent("a-1", "c-1", 5, 100, false)))

	m := bus.Metrics()
	require.NotNil(t, m)
	assert.Equal(t, 3, m.PublishedCount(shared.EventStudentEnrolled))
	assert.Equal(t, 1, m.PublishedCount(shared.EventGradesPublished))
	assert.Equal(t, 4, m.TotalPublished())
}

func TestEventBus_AsyncDelivery(t *testing.T) {
	cfg := DefaultInMemoryEventBusConfig()
	cfg.AsyncMode = true
	cfg.WorkerPoolSize = 2
	bus := NewInMemoryEventBus(cfg)

	audit := &recordingHandler{name: "audit"}
	require.NoError(t, bus.SubscribeAll(audit))

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(context.Background(), enrolledEvent()))
	}

	require.Eventually(t, func() bool { return audit.count() == 10 },
		time.Second, 5*time.Millisecond)
	require.NoError(t, bus.Close())
}

func TestEventBus_ClosedBusRejectsOperations(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), enrolledEvent())
	assert.ErrorIs(t, err, ErrEventBusClosed)

	err = bus.Subscribe(shared.EventStudentEnrolled, &recordingHandler{name: "late"})
	assert.ErrorIs(t, err, ErrEventBusClosed)

	// Double close is a no-op.
	require.NoError(t, bus.Close())
}

func TestEventBus_NilEventAndHandler(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	defer bus.Close()

	assert.Error(t, bus.Publish(context.Background(), nil))
	assert.Error(t, bus.Subscribe(shared.EventStudentEnrolled, nil))
	assert.Error(t, bus.SubscribeAll(nil))
}

func TestAuditSubscriber_NeverFails(t *testing.T) {
	sub := NewAuditSubscriber(nil)

	assert.Equal(t, "audit", sub.Name())
	assert.NoError(t, sub.Handle(context.Background(), enrolledEvent()))
}
