// Package memory provides an in-memory event store used in tests and when
// the service runs without a database.
package memory

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

var _ ports.EventStore = &EventStore{}

// EventStore keeps per-order journals and snapshots in process memory.
type EventStore struct {
	mu        sync.RWMutex
	journals  map[string][]order.Event
	snapshots map[string]ports.Snapshot
}

func NewEventStore() *EventStore {
	return &EventStore{
		journals:  make(map[string][]order.Event),
		snapshots: make(map[string]ports.Snapshot),
	}
}

func (s *EventStore) Append(_ context.Context, orderID string, fromSeq uint64, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	journal := s.journals[orderID]
	if uint64(len(journal))+1 != fromSeq {
		return ports.ErrSequenceConflict
	}
	s.journals[orderID] = append(journal, events...)
	return nil
}

func (s *EventStore) Load(_ context.Context, orderID string, afterSeq uint64) ([]order.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	journal := s.journals[orderID]
	if afterSeq >= uint64(len(journal)) {
		return nil, nil
	}

	events := make([]order.Event, len(journal)-int(afterSeq))
	copy(events, journal[afterSeq:])
	return events, nil
}

func (s *EventStore) SaveSnapshot(_ context.Context, orderID string, snapshot ports.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[orderID] = snapshot
	return nil
}

func (s *EventStore) LoadSnapshot(_ context.Context, orderID string) (ports.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[orderID]
	return snapshot, ok, nil
}
