// Package sse implements a Server-Sent Events broker for document and index
// change notifications.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// heartbeatInterval is how often idle streams receive a comment line so
// that proxies keep the connection open.
const heartbeatInterval = 25 * time.Second

// Event represents an SSE event to broadcast.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type documentEvent struct {
	kind string
	path string
}

// Broker fans events out to connected SSE clients.
//
// A single loop goroutine owns the client set, the event sequence number and
// the index.updated throttle. Public methods talk to it over channels.
type Broker struct {
	indexMin time.Duration

	subscribe   chan chan []byte
	unsubscribe chan chan []byte
	publish     chan Event
	documents   chan documentEvent
	count       chan chan int

	stop    chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker that emits index.updated at most once per
// indexThrottle. A non-positive value means two seconds.
func NewBroker(indexThrottle time.Duration) *Broker {
	if indexThrottle <= 0 {
		indexThrottle = 2 * time.Second
	}

	b := &Broker{
		indexMin:    indexThrottle,
		subscribe:   make(chan chan []byte),
		unsubscribe: make(chan chan []byte),
		publish:     make(chan Event, 256),
		documents:   make(chan documentEvent, 256),
		count:       make(chan chan int),
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	go b.run()
	return b
}

// format renders an event in wire format with its sequence id.
func format(id uint64, event Event) ([]byte, error) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "id: %d\nevent: %s\ndata: %s\n\n", id, event.Type, payload), nil
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})
	var (
		seq       uint64
		lastIndex time.Time
	)

	broadcast := func(event Event) {
		seq++
		raw, err := format(seq, event)
		if err != nil {
			return
		}
		for ch := range clients {
			select {
			case ch <- raw:
			default:
				// Slow client; drop rather than stall the loop.
			}
		}
	}

	for {
		select {
		case <-b.stop:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.subscribe:
			clients[ch] = struct{}{}

		case ch := <-b.unsubscribe:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publish:
			broadcast(event)

		case ev := <-b.documents:
			switch ev.kind {
			case "created", "updated", "deleted":
			default:
				continue
			}
			broadcast(Event{Type: "document." + ev.kind, Data: map[string]string{"path": ev.path}})

			if now := time.Now(); now.Sub(lastIndex) >= b.indexMin {
				lastIndex = now
				broadcast(Event{Type: "index.updated", Data: map[string]string{}})
			}

		case resp := <-b.count:
			resp <- len(clients)
		}
	}
}

// Close stops the broker loop and closes all client channels. It is safe to
// call more than once.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stop)
	}
	<-b.stopped
}

// send delivers v to the loop unless the broker has stopped.
func send[T any](b *Broker, ch chan T, v T) bool {
	if b.closed.Load() {
		return false
	}
	select {
	case ch <- v:
		return true
	case <-b.stopped:
		return false
	}
}

// Subscribe adds a new client and returns its channel. The channel is
// closed on Unsubscribe or Close.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 64)
	if !send(b, b.subscribe, ch) {
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	send(b, b.unsubscribe, ch)
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	resp := make(chan int, 1)
	if !send(b, b.count, resp) {
		return 0
	}
	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to all connected clients.
func (b *Broker) Publish(event Event) {
	send(b, b.publish, event)
}

// PublishDocumentEvent publishes a document change and a throttled
// index.updated event. Unknown kinds are ignored. Its signature matches
// index.EventCallback.
func (b *Broker) PublishDocumentEvent(kind, path string) {
	send(b, b.documents, documentEvent{kind: kind, path: path})
}

// ServeHTTP streams events to one client (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
