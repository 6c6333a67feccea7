package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "InventoryItem", uuid.New())}
}

type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []string
	err        error
	panicWith  any
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event.EventType())
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

type memoryStore struct {
	mu   sync.Mutex
	keys map[string]bool
	err  error
}

func (s *memoryStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys == nil {
		s.keys = map[string]bool{}
	}
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *memoryStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[key], nil
}

func (s *memoryStore) Close() error { return nil }

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	purchases := &recordingHandler{eventTypes: []string{"InventoryPurchaseRecorded"}}
	all := &recordingHandler{}
	bus.Subscribe(purchases)
	bus.Subscribe(all)

	err := bus.Publish(context.Background(),
		newTestEvent("InventoryPurchaseRecorded"),
		newTestEvent("InventoryStockDeficit"),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, purchases.count())
	assert.Equal(t, 2, all.count())
}

func TestInMemoryEventBus_SubscribeExplicitTypes(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &recordingHandler{eventTypes: []string{"Ignored"}}
	bus.Subscribe(h, "InventoryStockDeficit")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("InventoryStockDeficit"), newTestEvent("Ignored")))
	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_HandlerFailuresDoNotPropagate(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))
	failing := &recordingHandler{eventTypes: []string{"E"}, err: errors.New("smtp down")}
	panicking := &recordingHandler{eventTypes: []string{"E"}, panicWith: "boom"}
	healthy := &recordingHandler{eventTypes: []string{"E"}}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("E"))

	assert.NoError(t, err)
	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, int64(2), bus.Failures())
	assert.Equal(t, 2, logs.FilterMessage("handler failed to process event").Len())
}

func TestInMemoryEventBus_Lifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &recordingHandler{eventTypes: []string{"E"}}
	bus.Subscribe(h)

	require.NoError(t, bus.Start(context.Background()))
	assert.True(t, bus.IsRunning())

	bus.Unsubscribe(h)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("E")))
	assert.Equal(t, 0, h.count())

	require.NoError(t, bus.Stop(context.Background()))
	assert.False(t, bus.IsRunning())
}

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()
	a := &recordingHandler{}
	b := &recordingHandler{}
	wild := &recordingHandler{}

	r.Register(a, "X", "Y")
	r.Register(b, "X")
	r.Register(wild)

	assert.Equal(t, []shared.EventHandler{a, b, wild}, r.GetHandlers("X"))
	assert.Equal(t, []shared.EventHandler{a, wild}, r.GetHandlers("Y"))
	assert.Equal(t, []shared.EventHandler{wild}, r.GetHandlers("Z"))
	assert.Len(t, r.GetAllHandlers(), 3)

	r.Unregister(a)
	assert.Equal(t, []shared.EventHandler{wild}, r.GetHandlers("Y"))
	assert.Len(t, r.GetAllHandlers(), 2)
}

func TestIdempotentHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("redelivered event is handled once", func(t *testing.T) {
		inner := &recordingHandler{eventTypes: []string{"InventoryPurchaseRecorded"}}
		store := &memoryStore{}
		h := NewIdempotentHandler(inner, store, shared.IdempotencyConfig{}, nil)
		evt := newTestEvent("InventoryPurchaseRecorded")

		require.NoError(t, h.Handle(ctx, evt))
		require.NoError(t, h.Handle(ctx, evt))

		assert.Equal(t, 1, inner.count())
		assert.Equal(t, IdempotencyStats{Processed: 1, Duplicate: 1}, h.Stats())
		assert.Equal(t, inner.EventTypes(), h.EventTypes())
		seen, _ := store.IsProcessed(ctx, "event:"+evt.EventID().String())
		assert.True(t, seen)
	})

	t.Run("store failure still processes", func(t *testing.T) {
		inner := &recordingHandler{}
		h := NewIdempotentHandler(inner, &memoryStore{err: errors.New("redis down")}, shared.DefaultIdempotencyConfig(), nil)

		require.NoError(t, h.Handle(ctx, newTestEvent("E")))
		assert.Equal(t, 1, inner.count())
	})

	t.Run("handler error is returned and counted", func(t *testing.T) {
		inner := &recordingHandler{err: errors.New("db down")}
		h := NewIdempotentHandler(inner, &memoryStore{}, shared.DefaultIdempotencyConfig(), nil)

		assert.Error(t, h.Handle(ctx, newTestEvent("E")))
		assert.Equal(t, int64(1), h.Stats().Failed)
	})

	t.Run("disabled bypasses the store", func(t *testing.T) {
		inner := &recordingHandler{}
		cfg := shared.IdempotencyConfig{TTL: time.Hour, Enabled: false}
		h := NewIdempotentHandler(inner, &memoryStore{}, cfg, nil)
		evt := newTestEvent("E")

		require.NoError(t, h.Handle(ctx, evt))
		require.NoError(t, h.Handle(ctx, evt))
		assert.Equal(t, 2, inner.count())
	})
}
