package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worthy-waste/domain"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestProducer_FlushesOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducer(w, 8)
	p.Start()

	p.Publish(domain.TransactionEvent{Kind: domain.EventTransactionCreated, TransactionID: "tx-1", AmountKg: 3})
	p.Publish(domain.TransactionEvent{Kind: domain.EventTransactionStatusChanged, TransactionID: "tx-1", Status: "confirmed"})
	p.Close()

	require.Len(t, w.msgs, 2)
	assert.True(t, w.closed)
	assert.Equal(t, "tx-1", string(w.msgs[0].Key))
	assert.Equal(t, domain.EventTransactionCreated, string(w.msgs[0].Headers[0].Value))

	var ev domain.TransactionEvent
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &ev))
	assert.Equal(t, "confirmed", ev.Status)
}

func TestProducer_PublishAfterCloseIsDropped(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducer(w, 1)
	p.Start()
	p.Close()

	assert.NotPanics(t, func() {
		p.Publish(domain.TransactionEvent{Kind: domain.EventTransactionCreated, TransactionID: "late"})
	})
	assert.Empty(t, w.msgs)
	assert.NotPanics(t, p.Close)
}

func TestNewPublisher_NoBrokers(t *testing.T) {
	p := NewPublisher(nil, "")
	_, ok := p.(noopPublisher)
	assert.True(t, ok)
	p.Publish(domain.TransactionEvent{})
	p.Close()
}
