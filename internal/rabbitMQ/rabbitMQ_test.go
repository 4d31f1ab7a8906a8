package rabbitMQ

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ds124wfegd/notification-service/internal/consumer"
	"github.com/ds124wfegd/notification-service/internal/database"
	"github.com/ds124wfegd/notification-service/internal/entity"
	"github.com/ds124wfegd/notification-service/internal/service"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ackResult struct {
	tag     uint64
	acked   bool
	requeue bool
}

// fakeAcknowledger records how each delivery was settled.
type fakeAcknowledger struct {
	mu      sync.Mutex
	results []ackResult
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, ackResult{tag: tag, acked: true})
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, ackResult{tag: tag, requeue: requeue})
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func deliver(ack *fakeAcknowledger, bodies ...string) <-chan amqp.Delivery {
	msgs := make(chan amqp.Delivery, len(bodies))
	for i, body := range bodies {
		msgs <- amqp.Delivery{Acknowledger: ack, DeliveryTag: uint64(i + 1), Body: []byte(body)}
	}
	close(msgs)
	return msgs
}

func TestHandleMessagesSettlement(t *testing.T) {
	repo := database.NewInMemoryRepository()
	valid := consumer.NewSendNotificationHandler(service.NewSendNotification(repo)).Handle

	storageFailure := entity.NewStorageError("create notification", errors.New("timeout"))
	var calls int
	handler := func(ctx context.Context, body []byte) error {
		calls++
		if calls == 3 {
			return storageFailure
		}
		return valid(ctx, body)
	}

	ack := &fakeAcknowledger{}
	msgs := deliver(ack,
		`{"recipientId":"r1","content":"hello world","category":"friend-request"}`,
		`{"recipientId":"r1","content":"hey","category":"social"}`,
		`{"recipientId":"r1","content":"retried later","category":"social"}`,
	)

	handleMessages(context.Background(), "notifications", msgs, handler)

	require.Len(t, ack.results, 3)
	assert.Equal(t, ackResult{tag: 1, acked: true}, ack.results[0])
	assert.Equal(t, ackResult{tag: 2, requeue: false}, ack.results[1])
	assert.Equal(t, ackResult{tag: 3, requeue: true}, ack.results[2])
	assert.Equal(t, 1, repo.Len())
}

func TestHandleMessagesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	msgs := make(chan amqp.Delivery)

	done := make(chan struct{})
	go func() {
		handleMessages(ctx, "notifications", msgs, func(context.Context, []byte) error { return nil })
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handleMessages did not stop after cancellation")
	}
}

func TestHealthCheckWithoutConnection(t *testing.T) {
	r := &RabbitMQ{}

	assert.Error(t, r.HealthCheck())
	assert.NoError(t, r.Close())
}
