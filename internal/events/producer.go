// Package events publishes transaction lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/segmentio/kafka-go"

	"worthy-waste/domain"
)

const DefaultTopic = "worthy-waste.transactions"

type (
	Publisher interface {
		Publish(event domain.TransactionEvent)
		Close()
	}

	messageWriter interface {
		WriteMessages(ctx context.Context, msgs ...kafka.Message) error
		Close() error
	}

	Producer struct {
		w       messageWriter
		inbox   chan kafka.Message
		closeCh chan struct{}

		mu     sync.RWMutex
		closed bool
	}

	noopPublisher struct{}
)

// NewPublisher returns a started Kafka producer, or a publisher that drops
// every event when no brokers are configured.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return noopPublisher{}
	}
	if topic == "" {
		topic = DefaultTopic
	}
	p := NewProducer(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}, 256)
	p.Start()
	return p
}

func NewProducer(w messageWriter, buf int) *Producer {
	return &Producer{
		w:       w,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Producer) Start() {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			if err := p.w.WriteMessages(context.Background(), m); err != nil {
				log.Errorf("kafka write %s: %v", m.Key, err)
			}
		}
		if err := p.w.Close(); err != nil {
			log.Errorf("kafka writer close: %v", err)
		}
	}()
}

// Publish queues an event keyed by transaction id. Events are dropped with a
// warning when the buffer is full or the producer is closed.
func (p *Producer) Publish(event domain.TransactionEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		log.Errorf("marshal event %s: %v", event.Kind, err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		log.Warnf("producer closed, dropping %s", event.Kind)
		return
	}
	select {
	case p.inbox <- msg:
	default:
		log.Warnf("event buffer full, dropping %s for %s", event.Kind, event.TransactionID)
	}
}

// Close stops accepting events, flushes the buffer and waits for the writer.
func (p *Producer) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()
	<-p.closeCh
}

func (noopPublisher) Publish(domain.TransactionEvent) {}
func (noopPublisher) Close()                          {}
