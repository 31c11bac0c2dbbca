// Package runtime hosts the per-order state machines. Every order gets one
// goroutine that owns its state and processes commands from a FIFO mailbox,
// so commands for one order are strictly serialized while different orders
// proceed concurrently.
package runtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Booker issues the external courier booking call for an allocation.
type Booker interface {
	Book(ctx context.Context, orderID string, allocation order.Allocation, customer order.Customer) (string, error)
}

// Allocator computes the allocation split for a received order.
type Allocator interface {
	Allocate(items map[string]order.OrderItem, customer order.Customer) (map[string]order.Allocation, error)
}

// Runtime routes commands to per-order entities, creating them on demand.
type Runtime struct {
	store     ports.EventStore
	publisher ports.EventPublisher
	booker    Booker
	allocator Allocator
	logger    *slog.Logger
	cfg       Config

	mu       sync.Mutex
	entities map[string]*entity
	stopped  bool
}

// NewRuntime creates the order runtime.
func NewRuntime(
	store ports.EventStore,
	publisher ports.EventPublisher,
	booker Booker,
	allocator Allocator,
	logger *slog.Logger,
	cfg Config,
) *Runtime {
	return &Runtime{
		store:     store,
		publisher: publisher,
		booker:    booker,
		allocator: allocator,
		logger:    logger.With("component", "order-runtime"),
		cfg:       cfg.withDefaults(),
		entities:  make(map[string]*entity),
	}
}

// SubmitOrder records a new order and starts its allocation.
func (r *Runtime) SubmitOrder(
	ctx context.Context,
	orderID string,
	items map[string]order.OrderItem,
	customer order.Customer,
) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}

	reply := make(chan error, 1)
	cmd := receiveOrder{items: items, customer: customer, reply: reply}
	if err := r.send(ctx, orderID, cmd); err != nil {
		return err
	}
	return r.awaitErr(ctx, reply)
}

// PackAllocation books a courier pickup for the allocation and returns the
// tracking identifier. Idempotent once the allocation is packed.
func (r *Runtime) PackAllocation(ctx context.Context, orderID, allocationID string) (string, error) {
	if orderID == "" {
		return "", errs.NewValueIsRequiredError("order id")
	}

	reply := make(chan packResult, 1)
	cmd := packAllocation{allocationID: allocationID, reply: reply}
	if err := r.send(ctx, orderID, cmd); err != nil {
		return "", err
	}

	ctx, cancel := r.askContext(ctx)
	defer cancel()
	select {
	case result := <-reply:
		return result.trackingID, result.err
	case <-ctx.Done():
		return "", ErrUnavailable
	}
}

// UpdateTracking appends a delivery-tracking status to the allocation.
func (r *Runtime) UpdateTracking(ctx context.Context, orderID, allocationID string, status order.Status) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}

	reply := make(chan error, 1)
	cmd := updateTracking{allocationID: allocationID, status: status, at: time.Now(), reply: reply}
	if err := r.send(ctx, orderID, cmd); err != nil {
		return err
	}
	return r.awaitErr(ctx, reply)
}

// OrderDetails returns a uniform snapshot of the order. An order that was
// never submitted yields empty allocations and no customer.
func (r *Runtime) OrderDetails(ctx context.Context, orderID string) (order.Details, error) {
	if orderID == "" {
		return order.Details{}, errs.NewValueIsRequiredError("order id")
	}

	reply := make(chan order.Details, 1)
	if err := r.send(ctx, orderID, fetchDetails{reply: reply}); err != nil {
		return order.Details{}, err
	}

	ctx, cancel := r.askContext(ctx)
	defer cancel()
	select {
	case details := <-reply:
		return details, nil
	case <-ctx.Done():
		return order.Details{}, ErrUnavailable
	}
}

// PassivateIdle stops and removes entities whose last activity is older than
// maxIdle and that have no booking calls in flight. Returns how many were
// passivated. Passivation loses no state: the next command for the order
// recovers it from the journal.
func (r *Runtime) PassivateIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	passivated := 0
	for orderID, e := range r.entities {
		if e.inflight.Load() > 0 || e.idleSince().After(cutoff) {
			continue
		}
		delete(r.entities, orderID)
		e.stop()
		passivated++
	}
	return passivated
}

// Stop passivates every entity and rejects further commands.
func (r *Runtime) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopped = true
	for orderID, e := range r.entities {
		delete(r.entities, orderID)
		e.stop()
	}
}

// send posts a command to the order's entity, creating it if needed, bounded
// by the ask timeout so a saturated mailbox cannot strand the caller. A post
// that loses the race with passivation is retried against a fresh entity.
func (r *Runtime) send(ctx context.Context, orderID string, cmd any) error {
	ctx, cancel := r.askContext(ctx)
	defer cancel()
	for {
		e, err := r.getOrCreate(orderID)
		if err != nil {
			return err
		}
		err = e.post(ctx, cmd)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errEntityStopped) {
			return err
		}
	}
}

func (r *Runtime) getOrCreate(orderID string) (*entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return nil, ErrUnavailable
	}
	if e, ok := r.entities[orderID]; ok {
		return e, nil
	}

	e := newEntity(orderID, r.store, r.publisher, r.booker, r.allocator, r.logger, r.cfg)
	r.entities[orderID] = e
	go e.run()
	return e, nil
}

func (r *Runtime) awaitErr(ctx context.Context, reply <-chan error) error {
	ctx, cancel := r.askContext(ctx)
	defer cancel()
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ErrUnavailable
	}
}

func (r *Runtime) askContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.cfg.AskTimeout)
}
