// Package events publishes simulation results for downstream consumers
// such as the narrative generator.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeSeasonSimulated = "season.simulated"
	TypeTradeProjected  = "trade.projected"

	queueSize    = 256
	writeTimeout = 5 * time.Second
)

type Event struct {
	Type       string    `json:"type"`
	SessionID  string    `json:"sessionId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Publisher accepts events without blocking the caller. Publish never
// fails a request; delivery problems are logged.
type Publisher interface {
	Publish(e Event)
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(Event) {}
func (Nop) Close() error  { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka writes events as JSON keyed by session id from a background
// goroutine.
type Kafka struct {
	writer messageWriter
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic must not be empty")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: false,
	}
	return newKafka(w), nil
}

func newKafka(w messageWriter) *Kafka {
	k := &Kafka{writer: w, queue: make(chan Event, queueSize)}
	k.wg.Add(1)
	go k.run()
	return k
}

func (k *Kafka) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		slog.Warn("Dropping event, publisher closed", "type", e.Type, "session", e.SessionID)
		return
	}
	select {
	case k.queue <- e:
	default:
		slog.Warn("Dropping event, publish queue full", "type", e.Type, "session", e.SessionID)
	}
}

func (k *Kafka) run() {
	defer k.wg.Done()
	for e := range k.queue {
		value, err := json.Marshal(e)
		if err != nil {
			slog.Error("Failed to encode event", "type", e.Type, "error", err)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err = k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.SessionID), Value: value})
		cancel()
		if err != nil {
			slog.Error("Failed to publish event", "type", e.Type, "session", e.SessionID, "error", err)
		}
	}
}

// Close drains queued events and closes the writer.
func (k *Kafka) Close() error {
	var err error
	k.once.Do(func() {
		k.mu.Lock()
		k.closed = true
		close(k.queue)
		k.mu.Unlock()
		k.wg.Wait()
		err = k.writer.Close()
	})
	return err
}
