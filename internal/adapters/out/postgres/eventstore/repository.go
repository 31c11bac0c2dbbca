package eventstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

var _ ports.EventStore = &GormEventStore{}

// GormEventStore implements the event journal and snapshot store using GORM.
type GormEventStore struct {
	db *gorm.DB
}

// NewGormEventStore creates a new GORM event store.
func NewGormEventStore(db *gorm.DB) *GormEventStore {
	return &GormEventStore{db: db}
}

// Migrate creates the journal and snapshot tables.
func (s *GormEventStore) Migrate() error {
	return s.db.AutoMigrate(&EventDTO{}, &SnapshotDTO{})
}

// Append journals events starting at fromSeq. The sequence check runs inside
// a transaction and the unique (order_id, seq) index backs it up, so a stale
// writer always fails with ErrSequenceConflict.
func (s *GormEventStore) Append(ctx context.Context, orderID string, fromSeq uint64, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for i, event := range events {
		eventType, payload, err := encodeEvent(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, EventDTO{
			OrderID: orderID,
			Seq:     fromSeq + uint64(i),
			Type:    eventType,
			Payload: payload,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lastSeq uint64
		row := tx.Model(&EventDTO{}).
			Where("order_id = ?", orderID).
			Select("COALESCE(MAX(seq), 0)")
		if err := row.Scan(&lastSeq).Error; err != nil {
			return err
		}
		if lastSeq+1 != fromSeq {
			return ports.ErrSequenceConflict
		}
		return tx.Create(&dtos).Error
	})
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrSequenceConflict
	}
	return err
}

// Load returns the order's events with sequence numbers greater than afterSeq.
func (s *GormEventStore) Load(ctx context.Context, orderID string, afterSeq uint64) ([]order.Event, error) {
	var dtos []EventDTO
	err := s.db.WithContext(ctx).
		Where("order_id = ? AND seq > ?", orderID, afterSeq).
		Order("seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := decodeEvent(dto.Type, dto.Payload)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// SaveSnapshot upserts the order's checkpoint.
func (s *GormEventStore) SaveSnapshot(ctx context.Context, orderID string, snapshot ports.Snapshot) error {
	payload, err := encodeState(snapshot.State)
	if err != nil {
		return err
	}

	dto := SnapshotDTO{OrderID: orderID, Seq: snapshot.Seq, Payload: payload}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"seq", "payload", "updated_at"}),
		}).
		Create(&dto).Error
}

// LoadSnapshot returns the latest checkpoint for the order, if any.
func (s *GormEventStore) LoadSnapshot(ctx context.Context, orderID string) (ports.Snapshot, bool, error) {
	var dto SnapshotDTO
	err := s.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Snapshot{}, false, nil
		}
		return ports.Snapshot{}, false, err
	}

	state, err := decodeState(dto.Payload)
	if err != nil {
		return ports.Snapshot{}, false, err
	}
	return ports.Snapshot{Seq: dto.Seq, State: state}, true, nil
}
