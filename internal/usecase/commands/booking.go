package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"bookcore/internal/domain/booking"
	"bookcore/internal/domain/payment"
	"bookcore/internal/domain/pkgsub"
	"bookcore/internal/domain/slot"
	"bookcore/internal/infra"
	"bookcore/internal/pkg/clock"
	"bookcore/internal/pkg/errs"
	"bookcore/internal/usecase/queries"
	"bookcore/internal/usecase/shared"
)

type AdmitRequest struct {
	TenantID         uuid.UUID
	ServiceID        uuid.UUID
	SlotID           uuid.UUID
	CustomerID       *uuid.UUID
	GuestName        *string
	GuestPhone       *string
	AdultCount       int32
	ChildCount       int32
	VisitorCount     int32
	RequestedCovered int32
	SubscriptionID   *uuid.UUID
	HoldID           *uuid.UUID
	SessionID        string
}

type BulkAdmitRequest struct {
	TenantID         uuid.UUID
	ServiceID        uuid.UUID
	SlotIDs          []uuid.UUID
	CustomerID       *uuid.UUID
	GuestName        *string
	GuestPhone       *string
	AdultCount       int32
	ChildCount       int32
	RequestedCovered int32
	SubscriptionID   *uuid.UUID
}

type BookingCommands interface {
	Admit(ctx context.Context, req AdmitRequest) (*queries.BookingView, error)
	// AdmitBulk admits adultCount+childCount visitors one per slot, all or
	// nothing. Returns the created booking IDs in slot lock order.
	AdmitBulk(ctx context.Context, req BulkAdmitRequest) ([]uuid.UUID, error)
	Reschedule(ctx context.Context, bookingID, newSlotID uuid.UUID) (*queries.BookingView, error)
	Confirm(ctx context.Context, bookingID uuid.UUID) error
	CheckIn(ctx context.Context, bookingID uuid.UUID) error
	Complete(ctx context.Context, bookingID uuid.UUID) error
	UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, newStatus payment.Status) error
	Cancel(ctx context.Context, bookingID uuid.UUID) error
	Delete(ctx context.Context, bookingID uuid.UUID, allowDeletePaid bool) error
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	holds   HoldCommands
	queries queries.BookingQueries
	clk     clock.Clock
	logger  *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	holds HoldCommands,
	bq queries.BookingQueries,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{uow: uow, holds: holds, queries: bq, clk: clk, logger: logger}
}

// Admit is the engine's single commit path. Every precondition is
// re-verified under the slot's exclusive row lock, so a request that
// passed a stale availability read still cannot overbook.
func (c *bookingCommandsImpl) Admit(ctx context.Context, req AdmitRequest) (*queries.BookingView, error) {
	if err := validateAdmit(req); err != nil {
		return nil, err
	}

	var bookingID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := findSlotForUpdate(ctx, tx, req.SlotID)
		if err != nil {
			return err
		}
		if err := checkSlotAdmittable(s, req.TenantID); err != nil {
			return err
		}

		if req.HoldID != nil {
			heldQty, err := c.holds.Redeem(ctx, *req.HoldID, req.SlotID, req.SessionID)
			if err != nil {
				return err
			}
			if heldQty != req.VisitorCount {
				return errs.Mark(
					errs.Newf("hold covers %d visitors, booking requests %d", heldQty, req.VisitorCount),
					ErrLockInvalid,
				)
			}
		}

		alloc, sub, err := c.resolveAllocation(ctx, tx, req.SubscriptionID, req.CustomerID, req.TenantID, req.ServiceID, req.RequestedCovered, req.VisitorCount)
		if err != nil {
			return err
		}

		if err := s.Reserve(req.VisitorCount); err != nil {
			return markSlotErr(err, s)
		}
		if err := tx.Slots().ApplyCounters(ctx, s); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if alloc.CoveredQty > 0 {
			if err := adjustBalance(ctx, tx, sub.ID(), -alloc.CoveredQty); err != nil {
				return err
			}
		}

		b, err := booking.New(booking.NewParams{
			TenantID:       req.TenantID,
			ServiceID:      req.ServiceID,
			SlotID:         req.SlotID,
			CustomerID:     req.CustomerID,
			Guest:          guestFrom(req.GuestName, req.GuestPhone),
			AdultCount:     req.AdultCount,
			ChildCount:     req.ChildCount,
			VisitorCount:   req.VisitorCount,
			CoveredQty:     alloc.CoveredQty,
			PaidQty:        alloc.PaidQty,
			SubscriptionID: req.SubscriptionID,
			HoldID:         req.HoldID,
		})
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		bookingID, err = tx.Bookings().Create(ctx, b)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return c.enqueueEvent(ctx, tx, "notification", "booking_created", bookingEventPayload{
			BookingID: bookingID,
			TenantID:  req.TenantID,
			SlotID:    req.SlotID,
		})
	})
	if err != nil {
		return nil, err
	}

	// The booking row now owns the capacity; the hold is spent. Redis TTL
	// reclaims the key if this delete is lost.
	if req.HoldID != nil {
		if err := c.holds.Release(ctx, *req.HoldID); err != nil {
			c.logger.Warn("failed to release redeemed hold",
				slog.String("hold_id", req.HoldID.String()),
				slog.String("error", err.Error()))
		}
	}

	view, err := c.queries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) AdmitBulk(ctx context.Context, req BulkAdmitRequest) ([]uuid.UUID, error) {
	visitorCount := req.AdultCount + req.ChildCount
	if err := validateBulkAdmit(req, visitorCount); err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slots, err := tx.Slots().FindManyForUpdate(ctx, req.SlotIDs)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSlotNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, s := range slots {
			if err := checkSlotAdmittable(s, req.TenantID); err != nil {
				return err
			}
		}

		alloc, sub, err := c.resolveAllocation(ctx, tx, req.SubscriptionID, req.CustomerID, req.TenantID, req.ServiceID, req.RequestedCovered, visitorCount)
		if err != nil {
			return err
		}

		// One visitor per slot, in lock order. Adults fill first, then
		// children; covered units fill first, then paid.
		ids = make([]uuid.UUID, 0, len(slots))
		for i, s := range slots {
			if err := s.Reserve(1); err != nil {
				return markSlotErr(err, s)
			}
			if err := tx.Slots().ApplyCounters(ctx, s); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			adult, child := int32(0), int32(1)
			if int32(i) < req.AdultCount {
				adult, child = 1, 0
			}
			covered, paid := int32(0), int32(1)
			var subID *uuid.UUID
			if int32(i) < alloc.CoveredQty {
				covered, paid = 1, 0
				subID = req.SubscriptionID
			}

			b, err := booking.New(booking.NewParams{
				TenantID:       req.TenantID,
				ServiceID:      req.ServiceID,
				SlotID:         s.ID(),
				CustomerID:     req.CustomerID,
				Guest:          guestFrom(req.GuestName, req.GuestPhone),
				AdultCount:     adult,
				ChildCount:     child,
				VisitorCount:   1,
				CoveredQty:     covered,
				PaidQty:        paid,
				SubscriptionID: subID,
			})
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			id, err := tx.Bookings().Create(ctx, b)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			ids = append(ids, id)
		}

		if alloc.CoveredQty > 0 {
			if err := adjustBalance(ctx, tx, sub.ID(), -alloc.CoveredQty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Reschedule moves a booking between slots atomically: the new slot's
// capacity is taken before the old slot's is returned, inside one
// transaction, so the visitor never holds zero or two seats.
func (c *bookingCommandsImpl) Reschedule(ctx context.Context, bookingID, newSlotID uuid.UUID) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status().IsTerminal() {
			return errs.Mark(errs.Newf("booking is %s", b.Status()), ErrInvalidTransition)
		}
		oldSlotID := b.SlotID()
		if oldSlotID == newSlotID {
			return errs.Mark(errs.New("booking already on requested slot"), ErrValidation)
		}

		slots, err := tx.Slots().FindManyForUpdate(ctx, []uuid.UUID{oldSlotID, newSlotID})
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSlotNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		oldSlot, newSlot := pickSlots(slots, oldSlotID, newSlotID)
		if err := checkSlotAdmittable(newSlot, b.TenantID()); err != nil {
			return err
		}

		if err := newSlot.Reserve(b.VisitorCount()); err != nil {
			return markSlotErr(err, newSlot)
		}
		if err := oldSlot.Release(b.VisitorCount()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Slots().ApplyCounters(ctx, newSlot); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Slots().ApplyCounters(ctx, oldSlot); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := b.MoveToSlot(newSlotID); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return c.enqueueEvent(ctx, tx, "notification", "booking_rescheduled", bookingEventPayload{
			BookingID:  bookingID,
			TenantID:   b.TenantID(),
			SlotID:     newSlotID,
			PrevSlotID: &oldSlotID,
		})
	})
	if err != nil {
		return nil, err
	}

	view, err := c.queries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, bookingID uuid.UUID) error {
	return c.transitionBooking(ctx, bookingID, func(b *booking.Booking) error {
		return b.Confirm()
	})
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, bookingID uuid.UUID) error {
	return c.transitionBooking(ctx, bookingID, func(b *booking.Booking) error {
		return b.CheckIn(c.clk.Now())
	})
}

func (c *bookingCommandsImpl) Complete(ctx context.Context, bookingID uuid.UUID) error {
	return c.transitionBooking(ctx, bookingID, func(b *booking.Booking) error {
		return b.Complete()
	})
}

func (c *bookingCommandsImpl) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, newStatus payment.Status) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		current := b.PaymentStatus()
		if !payment.CanTransition(current, newStatus) {
			return errs.Mark(
				errs.Newf("payment status cannot move from %s to %s", current, newStatus),
				ErrInvalidTransition,
			)
		}
		b.SetPaymentStatus(newStatus)
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.enqueueEvent(ctx, tx, "invoice", "payment_status_updated", paymentEventPayload{
			BookingID: bookingID,
			TenantID:  b.TenantID(),
			From:      string(current),
			To:        string(newStatus),
		})
	})
}

// Cancel releases the booking's capacity and refunds any package-covered
// units in the same transaction that flips the status, so a crash can
// never strand capacity or balance.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := b.Cancel(); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if err := c.restoreResources(ctx, tx, b); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.enqueueEvent(ctx, tx, "notification", "booking_cancelled", bookingEventPayload{
			BookingID: bookingID,
			TenantID:  b.TenantID(),
			SlotID:    b.SlotID(),
		})
	})
}

// Delete removes the booking row entirely. A cancelled booking already
// returned its resources; deleting a live one restores them first.
func (c *bookingCommandsImpl) Delete(ctx context.Context, bookingID uuid.UUID, allowDeletePaid bool) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.PaymentStatus().IsPaidEquivalent() && !allowDeletePaid {
			return errs.Mark(errs.New("paid bookings require explicit deletion consent"), ErrForbidden)
		}
		if b.Status() != booking.StatusCancelled {
			if err := c.restoreResources(ctx, tx, b); err != nil {
				return err
			}
		}
		if err := tx.Bookings().Delete(ctx, bookingID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) transitionBooking(ctx context.Context, bookingID uuid.UUID, mutate func(*booking.Booking) error) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := mutate(b); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// restoreResources returns the booking's seats to its slot and its covered
// units to the subscription. Callers hold the booking row lock.
func (c *bookingCommandsImpl) restoreResources(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	s, err := findSlotForUpdate(ctx, tx, b.SlotID())
	if err != nil {
		return err
	}
	if err := s.Release(b.VisitorCount()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Slots().ApplyCounters(ctx, s); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if b.CoveredQty() > 0 && b.SubscriptionID() != nil {
		if err := adjustBalance(ctx, tx, *b.SubscriptionID(), b.CoveredQty()); err != nil {
			return err
		}
	}
	return nil
}

func (c *bookingCommandsImpl) resolveAllocation(
	ctx context.Context,
	tx shared.Tx,
	subscriptionID *uuid.UUID,
	customerID *uuid.UUID,
	tenantID, serviceID uuid.UUID,
	requestedCovered, visitorCount int32,
) (pkgsub.Allocation, *pkgsub.Subscription, error) {
	var sub *pkgsub.Subscription
	if subscriptionID != nil {
		found, err := tx.Packages().FindForUpdate(ctx, *subscriptionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return pkgsub.Allocation{}, nil, errs.Mark(err, ErrSubscriptionNotFound)
			}
			return pkgsub.Allocation{}, nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if found.TenantID() != tenantID {
			return pkgsub.Allocation{}, nil, errs.Mark(errs.New("subscription tenant mismatch"), ErrTenantMismatch)
		}
		if customerID == nil || found.CustomerID() != *customerID {
			return pkgsub.Allocation{}, nil, errs.Mark(errs.New("subscription belongs to another customer"), ErrValidation)
		}
		sub = found
	}

	alloc, err := pkgsub.ResolveAllocation(sub, serviceID, requestedCovered, visitorCount)
	if err != nil {
		switch {
		case errors.Is(err, pkgsub.ErrInsufficientBalance):
			return pkgsub.Allocation{}, nil, errs.Mark(err, ErrInsufficientBalance)
		default:
			return pkgsub.Allocation{}, nil, errs.Mark(err, ErrValidation)
		}
	}
	return alloc, sub, nil
}

func (c *bookingCommandsImpl) enqueueEvent(ctx context.Context, tx shared.Tx, kind, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, kind, topic, body, c.clk.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

type bookingEventPayload struct {
	BookingID  uuid.UUID  `json:"booking_id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	SlotID     uuid.UUID  `json:"slot_id"`
	PrevSlotID *uuid.UUID `json:"prev_slot_id,omitempty"`
}

type paymentEventPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
}

func validateAdmit(req AdmitRequest) error {
	if req.AdultCount < 0 || req.ChildCount < 0 || req.RequestedCovered < 0 {
		return errs.Mark(errs.New("quantities cannot be negative"), ErrValidation)
	}
	if req.VisitorCount <= 0 {
		return errs.Mark(errs.New("visitor count must be positive"), ErrValidation)
	}
	if req.VisitorCount != req.AdultCount+req.ChildCount {
		return errs.Mark(booking.ErrVisitorCountMismatch, ErrValidation)
	}
	if req.RequestedCovered > req.VisitorCount {
		return errs.Mark(errs.New("covered quantity exceeds visitor count"), ErrValidation)
	}
	if req.RequestedCovered > 0 && req.SubscriptionID == nil {
		return errs.Mark(errs.New("covered quantity requires a subscription"), ErrValidation)
	}
	if req.CustomerID == nil && req.GuestName == nil {
		return errs.Mark(booking.ErrNoBookerIdentity, ErrValidation)
	}
	if req.HoldID != nil && req.SessionID == "" {
		return errs.Mark(errs.New("hold redemption requires a session id"), ErrValidation)
	}
	return nil
}

func validateBulkAdmit(req BulkAdmitRequest, visitorCount int32) error {
	if req.AdultCount < 0 || req.ChildCount < 0 || req.RequestedCovered < 0 {
		return errs.Mark(errs.New("quantities cannot be negative"), ErrValidation)
	}
	if visitorCount <= 0 {
		return errs.Mark(errs.New("visitor count must be positive"), ErrValidation)
	}
	if int32(len(req.SlotIDs)) != visitorCount {
		return errs.Mark(
			errs.Newf("%d visitors require %d slots, got %d", visitorCount, visitorCount, len(req.SlotIDs)),
			ErrValidation,
		)
	}
	seen := make(map[uuid.UUID]struct{}, len(req.SlotIDs))
	for _, id := range req.SlotIDs {
		if _, dup := seen[id]; dup {
			return errs.Mark(errs.New("duplicate slot id in bulk admission"), ErrValidation)
		}
		seen[id] = struct{}{}
	}
	if req.RequestedCovered > visitorCount {
		return errs.Mark(errs.New("covered quantity exceeds visitor count"), ErrValidation)
	}
	if req.RequestedCovered > 0 && req.SubscriptionID == nil {
		return errs.Mark(errs.New("covered quantity requires a subscription"), ErrValidation)
	}
	if req.CustomerID == nil && req.GuestName == nil {
		return errs.Mark(booking.ErrNoBookerIdentity, ErrValidation)
	}
	return nil
}

func findSlotForUpdate(ctx context.Context, tx shared.Tx, id uuid.UUID) (*slot.Slot, error) {
	s, err := tx.Slots().FindForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrSlotNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return s, nil
}

func findBookingForUpdate(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

func adjustBalance(ctx context.Context, tx shared.Tx, subID uuid.UUID, delta int32) error {
	if err := tx.Packages().AdjustBalance(ctx, subID, delta); err != nil {
		if infra.IsKind(err, infra.KindGuardViolated) {
			return errs.Mark(err, ErrInsufficientBalance)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func checkSlotAdmittable(s *slot.Slot, tenantID uuid.UUID) error {
	if !s.BelongsTo(tenantID) {
		return errs.Mark(errs.New("slot belongs to another tenant"), ErrTenantMismatch)
	}
	if !s.IsAvailable() {
		return errs.Mark(errs.New("slot is closed for booking"), ErrSlotUnavailable)
	}
	return nil
}

func markSlotErr(err error, s *slot.Slot) error {
	if errors.Is(err, slot.ErrInsufficientCapacity) {
		return errs.Mark(
			errs.Newf("slot %s has %d of %d available", s.ID(), s.AvailableCapacity(), s.OriginalCapacity()),
			ErrInsufficientCapacity,
		)
	}
	return errs.Mark(err, ErrValidation)
}

func pickSlots(slots []*slot.Slot, oldID, newID uuid.UUID) (oldSlot, newSlot *slot.Slot) {
	for _, s := range slots {
		switch s.ID() {
		case oldID:
			oldSlot = s
		case newID:
			newSlot = s
		}
	}
	return oldSlot, newSlot
}

func guestFrom(name, phone *string) *booking.Guest {
	if name == nil {
		return nil
	}
	g := &booking.Guest{Name: *name}
	if phone != nil {
		g.Phone = *phone
	}
	return g
}
