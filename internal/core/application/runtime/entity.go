package runtime

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// entity is the single writer for one order. It owns the order's state,
// processes commands from its mailbox one at a time, and survives
// persistence failures through supervised restart with replay.
type entity struct {
	orderID string
	mailbox chan any
	done    chan struct{}

	store     ports.EventStore
	publisher ports.EventPublisher
	booker    Booker
	allocator Allocator
	logger    *slog.Logger
	cfg       Config

	state         order.State
	seq           uint64
	sinceSnapshot uint64

	// inflight counts outbound booking calls. It survives restarts because
	// the calls themselves do: their completions land in the new instance's
	// mailbox.
	inflight atomic.Int32

	// lastActive is the unix-nano time of the last processed command, read
	// by the passivation sweep.
	lastActive atomic.Int64
}

func newEntity(
	orderID string,
	store ports.EventStore,
	publisher ports.EventPublisher,
	booker Booker,
	allocator Allocator,
	logger *slog.Logger,
	cfg Config,
) *entity {
	e := &entity{
		orderID:   orderID,
		mailbox:   make(chan any, cfg.MailboxSize),
		done:      make(chan struct{}),
		store:     store,
		publisher: publisher,
		booker:    booker,
		allocator: allocator,
		logger:    logger.With("order_id", orderID),
		cfg:       cfg,
	}
	e.lastActive.Store(time.Now().UnixNano())
	return e
}

// errEntityStopped reports a post that lost the race with passivation.
var errEntityStopped = errors.New("order entity stopped")

// post delivers a command to the mailbox. It fails with errEntityStopped
// when the entity has been stopped, and with ErrUnavailable when the context
// expires before the mailbox accepts the command, so a full mailbox behind a
// restarting entity never strands the caller past its deadline.
func (e *entity) post(ctx context.Context, msg any) error {
	select {
	case e.mailbox <- msg:
		return nil
	case <-e.done:
		return errEntityStopped
	case <-ctx.Done():
		return ErrUnavailable
	}
}

// stop signals the entity to drain its mailbox and exit. Safe to call once.
func (e *entity) stop() {
	close(e.done)
}

// stopping reports whether stop has been signalled.
func (e *entity) stopping() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

func (e *entity) idleSince() time.Time {
	return time.Unix(0, e.lastActive.Load())
}

// run supervises the entity's serve loop: a persistence failure restarts it
// with exponential backoff and replay.
func (e *entity) run() {
	backoff := e.cfg.RestartBackoffMin
	for {
		err := e.serve()
		if err == nil {
			return
		}

		e.logger.Error("order entity failed, restarting", "error", err, "backoff", backoff)
		select {
		case <-time.After(withJitter(backoff)):
		case <-e.done:
			return
		}
		backoff *= 2
		if backoff > e.cfg.RestartBackoffMax {
			backoff = e.cfg.RestartBackoffMax
		}
	}
}

// withJitter spreads a backoff delay by ±10%.
func withJitter(d time.Duration) time.Duration {
	jitter := 0.1 * float64(d) * (2*rand.Float64() - 1)
	return d + time.Duration(jitter)
}

// serve recovers state and processes commands until the entity is stopped
// (returns nil) or persistence fails (returns the error, triggering restart).
func (e *entity) serve() error {
	if err := e.recoverState(); err != nil {
		return err
	}

	for {
		select {
		case msg := <-e.mailbox:
			if err := e.handle(msg); err != nil {
				return err
			}
		case <-e.done:
			// Drain what is already queued, then exit.
			for {
				select {
				case msg := <-e.mailbox:
					if err := e.handle(msg); err != nil {
						return err
					}
				default:
					return nil
				}
			}
		}
	}
}

// recoverState rebuilds the order from the latest snapshot plus the journal
// tail. A rebuilt New state means the allocator's reply was never observed,
// so the worker is re-spawned.
func (e *entity) recoverState() error {
	ctx := context.Background()

	state := order.State(order.BlankState{})
	var seq uint64

	snapshot, ok, err := e.store.LoadSnapshot(ctx, e.orderID)
	if err != nil {
		return err
	}
	if ok {
		state = snapshot.State
		seq = snapshot.Seq
	}

	events, err := e.store.Load(ctx, e.orderID, seq)
	if err != nil {
		return err
	}
	for _, event := range events {
		state = order.Apply(state, event)
		seq++
	}

	e.state = state
	e.seq = seq
	e.sinceSnapshot = 0

	if s, isNew := state.(order.NewOrderState); isNew {
		e.spawnAllocator(s.Items(), s.Customer())
	}
	return nil
}

// handle processes one command. A non-nil return is a persistence failure
// and is fatal to this instance.
func (e *entity) handle(msg any) error {
	e.lastActive.Store(time.Now().UnixNano())

	switch cmd := msg.(type) {
	case receiveOrder:
		return e.handleReceiveOrder(cmd)
	case receiveAllocations:
		return e.handleReceiveAllocations(cmd)
	case packAllocation:
		e.handlePackAllocation(cmd)
		return nil
	case bookingCompleted:
		return e.handleBookingCompleted(cmd)
	case updateTracking:
		return e.handleUpdateTracking(cmd)
	case fetchDetails:
		cmd.reply <- e.state.Details()
		return nil
	default:
		e.logger.Warn("dropping unknown command", "command", msg)
		return nil
	}
}

func (e *entity) handleReceiveOrder(cmd receiveOrder) error {
	if _, blank := e.state.(order.BlankState); !blank {
		cmd.reply <- ErrOrderAlreadyExists
		return nil
	}

	if len(cmd.items) == 0 {
		cmd.reply <- errs.NewValueIsRequiredError("items")
		return nil
	}
	for id, item := range cmd.items {
		if err := item.Validate(); err != nil {
			cmd.reply <- err
			return nil
		}
		if id != item.ID() {
			cmd.reply <- errs.NewValueIsInvalidError("items")
			return nil
		}
	}
	if err := cmd.customer.Validate(); err != nil {
		cmd.reply <- err
		return nil
	}

	event := order.NewOrderReceived(e.orderID, cmd.items, cmd.customer)
	if err := e.persist(event); err != nil {
		return err
	}

	e.spawnAllocator(cmd.items, cmd.customer)
	cmd.reply <- nil
	return nil
}

func (e *entity) handleReceiveAllocations(cmd receiveAllocations) error {
	if _, isNew := e.state.(order.NewOrderState); !isNew {
		// Duplicate or late worker reply. Ignore.
		return nil
	}
	if len(cmd.allocations) == 0 {
		return nil
	}
	return e.persist(order.NewOrderAllocationsReceived(e.orderID, cmd.allocations))
}

func (e *entity) handlePackAllocation(cmd packAllocation) {
	state, err := e.allocatedState()
	if err != nil {
		cmd.reply <- packResult{err: err}
		return
	}
	if cmd.allocationID == "" {
		cmd.reply <- packResult{err: errs.NewValueIsRequiredError("allocation id")}
		return
	}

	allocation, ok := state.Allocation(cmd.allocationID)
	if !ok {
		cmd.reply <- packResult{err: ErrAllocationNotFound}
		return
	}

	latest := allocation.LatestStatus()
	if latest >= order.Packed {
		// Already packed. Idempotent re-pack returns the existing tracking
		// identifier without persisting anything.
		cmd.reply <- packResult{trackingID: allocation.TrackingID()}
		return
	}
	if latest != order.Allocated {
		cmd.reply <- packResult{err: ErrInconsistentStatus}
		return
	}

	if int(e.inflight.Load()) >= e.cfg.MaxInflightBookings {
		cmd.reply <- packResult{err: ErrBookingCapExceeded}
		return
	}

	// A stopped entity drains its mailbox but must not issue new booking
	// calls: their completions could no longer be delivered, leaving the
	// courier booked with no event journaled.
	if e.stopping() {
		cmd.reply <- packResult{err: ErrUnavailable}
		return
	}

	e.inflight.Add(1)
	customer := state.Customer()
	go func() {
		trackingID, bookErr := e.booker.Book(context.Background(), e.orderID, allocation, customer)
		completion := bookingCompleted{
			allocationID: cmd.allocationID,
			trackingID:   trackingID,
			err:          bookErr,
			reply:        cmd.reply,
		}
		if err := e.post(context.Background(), completion); err != nil {
			e.inflight.Add(-1)
			e.logger.Warn("dropping booking completion, entity stopped",
				"allocation_id", cmd.allocationID, "tracking_id", trackingID)
		}
	}()
}

func (e *entity) handleBookingCompleted(cmd bookingCompleted) error {
	e.inflight.Add(-1)

	state, err := e.allocatedState()
	if err != nil {
		cmd.reply <- packResult{err: err}
		return nil
	}
	allocation, ok := state.Allocation(cmd.allocationID)
	if !ok {
		cmd.reply <- packResult{err: ErrAllocationNotFound}
		return nil
	}

	// A concurrent pack may have won the race while this call was out.
	if allocation.LatestStatus() >= order.Packed {
		cmd.reply <- packResult{trackingID: allocation.TrackingID()}
		return nil
	}

	if cmd.err != nil {
		cmd.reply <- packResult{err: cmd.err}
		return nil
	}

	event := order.NewOrderAllocationPacked(e.orderID, cmd.allocationID, cmd.trackingID, time.Now())
	if err := e.persist(event); err != nil {
		return err
	}
	cmd.reply <- packResult{trackingID: cmd.trackingID}
	return nil
}

func (e *entity) handleUpdateTracking(cmd updateTracking) error {
	state, err := e.allocatedState()
	if err != nil {
		cmd.reply <- err
		return nil
	}
	if cmd.allocationID == "" {
		cmd.reply <- errs.NewValueIsRequiredError("allocation id")
		return nil
	}
	if err := cmd.status.Validate(); err != nil {
		cmd.reply <- err
		return nil
	}

	allocation, ok := state.Allocation(cmd.allocationID)
	if !ok {
		cmd.reply <- ErrAllocationNotFound
		return nil
	}

	// Tracking moves strictly forward and only after packing.
	latest := allocation.LatestStatus()
	if latest < order.Packed || cmd.status <= latest {
		cmd.reply <- ErrInconsistentStatus
		return nil
	}

	event := order.NewTrackingUpdated(e.orderID, cmd.allocationID, cmd.status, cmd.at)
	if err := e.persist(event); err != nil {
		return err
	}
	cmd.reply <- nil
	return nil
}

// allocatedState maps the current phase to the error a pack or tracking
// command gets outside the Allocated phase.
func (e *entity) allocatedState() (order.AllocatedOrderState, error) {
	switch s := e.state.(type) {
	case order.AllocatedOrderState:
		return s, nil
	case order.NewOrderState:
		return order.AllocatedOrderState{}, ErrNoAllocations
	default:
		return order.AllocatedOrderState{}, ErrOrderNotFound
	}
}

// persist journals the event, folds it into state, publishes it and takes a
// snapshot when due. Journal failures are fatal to this instance.
func (e *entity) persist(event order.Event) error {
	ctx := context.Background()

	if err := e.store.Append(ctx, e.orderID, e.seq+1, []order.Event{event}); err != nil {
		return err
	}
	e.seq++
	e.sinceSnapshot++
	e.state = order.Apply(e.state, event)

	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.Warn("failed to publish order event", "error", err)
	}

	if e.sinceSnapshot >= e.cfg.SnapshotEvery {
		snapshot := ports.Snapshot{Seq: e.seq, State: e.state}
		if err := e.store.SaveSnapshot(ctx, e.orderID, snapshot); err != nil {
			e.logger.Warn("failed to save order snapshot", "error", err)
		} else {
			e.sinceSnapshot = 0
		}
	}
	return nil
}

// spawnAllocator runs the one-shot allocation worker and folds its reply
// back into the mailbox as a fire-and-forget command.
func (e *entity) spawnAllocator(items map[string]order.OrderItem, customer order.Customer) {
	go func() {
		allocations, err := e.allocator.Allocate(items, customer)
		if err != nil {
			e.logger.Error("allocation failed", "error", err)
			return
		}
		// A reply dropped because the entity stopped is re-derived on
		// recovery: a rebuilt New state respawns the worker.
		if err := e.post(context.Background(), receiveAllocations{allocations: allocations}); err != nil {
			e.logger.Warn("dropping allocation reply, entity stopped")
		}
	}()
}
