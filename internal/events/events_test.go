package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestKafkaPublishesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	k := newKafka(w)
	k.Publish(Event{Type: TypeSeasonSimulated, SessionID: "sess-1", Payload: map[string]int{"gmScore": 71}})
	k.Publish(Event{Type: TypeTradeProjected, SessionID: "sess-2"})
	if err := k.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !w.closed {
		t.Fatal("writer not closed")
	}
	if len(w.msgs) != 2 {
		t.Fatalf("wrote %d messages, want 2", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "sess-1" {
		t.Fatalf("key = %q", w.msgs[0].Key)
	}
	var e struct {
		Type    string         `json:"type"`
		Payload map[string]int `json:"payload"`
	}
	if err := json.Unmarshal(w.msgs[0].Value, &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Type != TypeSeasonSimulated || e.Payload["gmScore"] != 71 {
		t.Fatalf("event = %+v", e)
	}
}

func TestKafkaWriteFailureIsSwallowed(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	k := newKafka(w)
	k.Publish(Event{Type: TypeSeasonSimulated, SessionID: "s"})
	if err := k.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestKafkaPublishDuringClose(t *testing.T) {
	w := &fakeWriter{}
	k := newKafka(w)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				k.Publish(Event{Type: TypeSeasonSimulated, SessionID: "s"})
			}
		}()
	}
	if err := k.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	wg.Wait()
	k.Publish(Event{Type: TypeTradeProjected, SessionID: "late"})
}

func TestNewKafkaValidates(t *testing.T) {
	if _, err := NewKafka(nil, "topic"); err == nil {
		t.Fatal("expected error without brokers")
	}
	if _, err := NewKafka([]string{"localhost:9092"}, ""); err == nil {
		t.Fatal("expected error without topic")
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	p.Publish(Event{})
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
