// Package eventstore persists the per-order event journal and snapshots in
// PostgreSQL, mapping domain events to JSON payload rows.
package eventstore

import (
	"time"
)

// EventDTO is one journaled event row. The (order_id, seq) pair is unique so
// the database rejects a second writer appending at the same position.
type EventDTO struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID   string    `gorm:"index:idx_order_events_order_seq,unique"`
	Seq       uint64    `gorm:"index:idx_order_events_order_seq,unique"`
	Type      string    `gorm:"not null"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for journaled events.
func (EventDTO) TableName() string {
	return "order_events"
}

// SnapshotDTO is the latest full-state checkpoint of an order. One row per
// order, replaced on every save.
type SnapshotDTO struct {
	OrderID   string    `gorm:"primaryKey"`
	Seq       uint64    `gorm:"not null"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for snapshots.
func (SnapshotDTO) TableName() string {
	return "order_snapshots"
}
