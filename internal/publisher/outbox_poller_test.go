package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fjod/frocone/internal/orders"
	"github.com/google/uuid"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

type mockStore struct {
	mu        sync.Mutex
	events    []*orders.OutboxEvent
	fetchErr  error
	markErr   error
	processed []uuid.UUID
}

func (m *mockStore) GetUnprocessedEvents(context.Context, int) ([]*orders.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	var out []*orders.OutboxEvent
	for _, e := range m.events {
		if !m.isProcessed(e.ID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStore) MarkEventAsProcessed(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	m.processed = append(m.processed, id)
	return nil
}

func (m *mockStore) isProcessed(id uuid.UUID) bool {
	for _, p := range m.processed {
		if p == id {
			return true
		}
	}
	return false
}

type mockWriter struct {
	mu       sync.Mutex
	messages []kafkaGo.Message
	failKey  string
	closed   bool
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("leader not available")
		}
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *mockWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func newEvent(orderID string) *orders.OutboxEvent {
	return &orders.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: orderID,
		EventType:   orders.EventOrderCreated,
		Payload:     json.RawMessage(fmt.Sprintf(`{"orderId":%s}`, orderID)),
		CreatedAt:   time.Now(),
	}
}

func TestProcessUnpublishedEvents_PublishesAndMarks(t *testing.T) {
	store := &mockStore{events: []*orders.OutboxEvent{newEvent("1"), newEvent("2")}}
	writer := &mockWriter{}
	p := newOutboxPoller(store, writer, nil)

	n := p.processUnpublishedEvents(context.Background())

	assert.Equal(t, 2, n)
	require.Len(t, writer.messages, 2)
	assert.Equal(t, "1", string(writer.messages[0].Key))
	assert.Equal(t, `{"orderId":1}`, string(writer.messages[0].Value))
	assert.Equal(t, "event_type", writer.messages[0].Headers[0].Key)
	assert.Equal(t, orders.EventOrderCreated, string(writer.messages[0].Headers[0].Value))
	assert.ElementsMatch(t, []uuid.UUID{store.events[0].ID, store.events[1].ID}, store.processed)
}

func TestProcessUnpublishedEvents_PublishFailureLeavesEventPending(t *testing.T) {
	store := &mockStore{events: []*orders.OutboxEvent{newEvent("1"), newEvent("2")}}
	writer := &mockWriter{failKey: "1"}
	p := newOutboxPoller(store, writer, nil)

	n := p.processUnpublishedEvents(context.Background())

	assert.Equal(t, 1, n)
	assert.Equal(t, []uuid.UUID{store.events[1].ID}, store.processed)

	writer.failKey = ""
	assert.Equal(t, 1, p.processUnpublishedEvents(context.Background()))
	assert.Len(t, store.processed, 2)
}

func TestProcessUnpublishedEvents_FetchError(t *testing.T) {
	store := &mockStore{fetchErr: errors.New("connection refused")}
	writer := &mockWriter{}
	p := newOutboxPoller(store, writer, nil)

	assert.Zero(t, p.processUnpublishedEvents(context.Background()))
	assert.Empty(t, writer.messages)
}

func TestProcessUnpublishedEvents_MarkError(t *testing.T) {
	store := &mockStore{events: []*orders.OutboxEvent{newEvent("1")}, markErr: errors.New("tx aborted")}
	writer := &mockWriter{}
	p := newOutboxPoller(store, writer, nil)

	assert.Zero(t, p.processUnpublishedEvents(context.Background()))
	assert.Len(t, writer.messages, 1, "delivery is at-least-once")
}

func TestRun_StopsOnCancelAndClosesWriter(t *testing.T) {
	store := &mockStore{events: []*orders.OutboxEvent{newEvent("7")}}
	writer := &mockWriter{}
	p := newOutboxPoller(store, writer, nil)
	p.eventTick = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.processed) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.True(t, writer.closed)
}

func setupKafka(t *testing.T) (string, func()) {
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers, "broker address should not be empty")

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	}

	return brokers[0], cleanup
}

func TestOutboxPoller_PublishesEventsToKafka(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	brokerAddr, cleanup := setupKafka(t)
	defer cleanup()

	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	require.NoError(t, conn.CreateTopics(kafkaGo.TopicConfig{Topic: Topic, NumPartitions: 1, ReplicationFactor: 1}))
	conn.Close()

	store := &mockStore{events: []*orders.OutboxEvent{newEvent("42")}}
	p := NewOutboxPoller(store, nil, brokerAddr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	go p.Run(ctx)

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:  []string{brokerAddr},
		Topic:    Topic,
		GroupID:  "test-consumer",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, "42", string(msg.Key))
	assert.JSONEq(t, `{"orderId":42}`, string(msg.Value))
}
