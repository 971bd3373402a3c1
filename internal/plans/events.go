package plans

import (
	"strings"
	"sync"
	"time"
)

type EventType string

const (
	EventPlanCreated EventType = "plan_created"
	EventPlanUpdated EventType = "plan_updated"
	EventPlanDeleted EventType = "plan_deleted"
)

// Event notifies subscribers that an owner's collection changed and any
// client-held view of it should be refetched.
type Event struct {
	Type   EventType `json:"type"`
	PlanID string    `json:"plan_id"`
	At     time.Time `json:"at"`
}

// Broker fans change events out to per-owner subscribers. Slow subscribers
// drop events instead of blocking the mutation path.
type Broker struct {
	mu          sync.Mutex
	subscribers map[string]map[int]chan Event
	nextSubID   int
}

func NewBroker() *Broker {
	return &Broker{subscribers: make(map[string]map[int]chan Event)}
}

// Subscribe registers for an owner's change events. The returned cancel
// function closes the channel and releases the subscription.
func (b *Broker) Subscribe(userID string) (<-chan Event, func()) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}

	ch := make(chan Event, 64)
	b.mu.Lock()
	b.nextSubID++
	id := b.nextSubID
	if _, ok := b.subscribers[userID]; !ok {
		b.subscribers[userID] = make(map[int]chan Event)
	}
	b.subscribers[userID][id] = ch
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subscribers[userID]
		if subs == nil {
			return
		}
		if c, ok := subs[id]; ok {
			delete(subs, id)
			close(c)
		}
		if len(subs) == 0 {
			delete(b.subscribers, userID)
		}
	}
}

func (b *Broker) publish(userID string, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
