package runtime

import "time"

const (
	defaultSnapshotEvery       = 100
	defaultMaxInflightBookings = 10
	defaultAskTimeout          = 5 * time.Second
	defaultRestartBackoffMin   = 200 * time.Millisecond
	defaultRestartBackoffMax   = 5 * time.Second
	defaultMailboxSize         = 64
)

// Config tunes the per-order entities. The zero value selects the defaults.
type Config struct {
	// SnapshotEvery is the number of persisted events between full-state
	// snapshots.
	SnapshotEvery uint64

	// MaxInflightBookings caps concurrent outbound booking calls per order.
	MaxInflightBookings int

	// AskTimeout bounds how long a caller waits for an entity's answer.
	AskTimeout time.Duration

	// RestartBackoffMin and RestartBackoffMax bound the exponential backoff
	// applied between entity restarts after a persistence failure.
	RestartBackoffMin time.Duration
	RestartBackoffMax time.Duration

	// MailboxSize is the entity's command buffer capacity.
	MailboxSize int
}

func (c Config) withDefaults() Config {
	if c.SnapshotEvery == 0 {
		c.SnapshotEvery = defaultSnapshotEvery
	}
	if c.MaxInflightBookings == 0 {
		c.MaxInflightBookings = defaultMaxInflightBookings
	}
	if c.AskTimeout == 0 {
		c.AskTimeout = defaultAskTimeout
	}
	if c.RestartBackoffMin == 0 {
		c.RestartBackoffMin = defaultRestartBackoffMin
	}
	if c.RestartBackoffMax == 0 {
		c.RestartBackoffMax = defaultRestartBackoffMax
	}
	if c.MailboxSize == 0 {
		c.MailboxSize = defaultMailboxSize
	}
	return c
}
