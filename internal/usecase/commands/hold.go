package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookcore/internal/domain/hold"
	"bookcore/internal/infra"
	"bookcore/internal/pkg/clock"
	"bookcore/internal/pkg/errs"
	"bookcore/internal/usecase/shared"
)

// HoldStore persists holds with a TTL. Expiry is enforced by the store
// itself; Get on an expired hold behaves like Get on a missing one.
type HoldStore interface {
	Put(ctx context.Context, h hold.Hold, ttl time.Duration) error
	Get(ctx context.Context, holdID uuid.UUID) (*hold.Hold, error)
	Delete(ctx context.Context, holdID uuid.UUID) error
}

type HoldRequest struct {
	SlotID    uuid.UUID
	TenantID  uuid.UUID
	SessionID string
	Quantity  int32
}

type HoldCommands interface {
	Hold(ctx context.Context, req HoldRequest) (*hold.Hold, error)
	// Redeem validates a hold against the booking being committed and
	// returns its quantity. It does not consume the hold; the caller
	// deletes it after the booking transaction commits.
	Redeem(ctx context.Context, holdID, slotID uuid.UUID, sessionID string) (int32, error)
	Release(ctx context.Context, holdID uuid.UUID) error
}

type holdCommandsImpl struct {
	store HoldStore
	uow   shared.UnitOfWork
	clk   clock.Clock
	ttl   time.Duration
}

func NewHoldCommands(store HoldStore, uow shared.UnitOfWork, clk clock.Clock, ttl time.Duration) HoldCommands {
	return &holdCommandsImpl{store: store, uow: uow, clk: clk, ttl: ttl}
}

// Hold is advisory: it never decrements capacity. The availability check
// here is a courtesy snapshot; the admit transaction remains the sole
// overbooking guard.
func (h *holdCommandsImpl) Hold(ctx context.Context, req HoldRequest) (*hold.Hold, error) {
	if req.Quantity <= 0 {
		return nil, errs.Mark(errs.New("hold quantity must be positive"), ErrValidation)
	}
	if req.SessionID == "" {
		return nil, errs.Mark(errs.New("session id is required"), ErrValidation)
	}

	snap, err := h.uow.Reads().SlotByID(ctx, req.SlotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrSlotNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap.TenantID != req.TenantID {
		return nil, errs.Mark(errs.New("slot tenant mismatch"), ErrTenantMismatch)
	}
	if !snap.IsAvailable {
		return nil, errs.Mark(errs.New("slot is closed"), ErrSlotUnavailable)
	}
	if req.Quantity > snap.AvailableCapacity {
		return nil, errs.Mark(
			errs.Newf("requested %d, available %d", req.Quantity, snap.AvailableCapacity),
			ErrInsufficientCapacity,
		)
	}

	hd, err := hold.New(req.SlotID, req.TenantID, req.SessionID, req.Quantity, h.clk.Now(), h.ttl)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if err := h.store.Put(ctx, hd, h.ttl); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &hd, nil
}

func (h *holdCommandsImpl) Redeem(ctx context.Context, holdID, slotID uuid.UUID, sessionID string) (int32, error) {
	hd, err := h.store.Get(ctx, holdID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, errs.Mark(errs.New("hold not found or expired"), ErrLockInvalid)
		}
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := hd.Validate(slotID, sessionID, h.clk.Now()); err != nil {
		return 0, errs.Mark(err, ErrLockInvalid)
	}
	return hd.Quantity, nil
}

// Release is idempotent; releasing a missing or expired hold is a no-op.
func (h *holdCommandsImpl) Release(ctx context.Context, holdID uuid.UUID) error {
	if err := h.store.Delete(ctx, holdID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
