package booking

import (
	"errors"
	"time"

	"bookcore/internal/domain/payment"

	"github.com/google/uuid"
)

var (
	ErrVisitorCountMismatch = errors.New("visitor count must equal adult count plus child count")
	ErrQuantitySplitInvalid = errors.New("covered and paid quantities must sum to visitor count")
	ErrNegativeQuantity     = errors.New("quantities cannot be negative")
	ErrNoBookerIdentity     = errors.New("either customer ID or guest identity is required")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrTerminalStatus       = errors.New("booking is in a terminal status")
	ErrNotConfirmed         = errors.New("booking must be confirmed before check-in")
	ErrNotCheckedIn         = errors.New("booking must be checked in before completion")
)

// Booking is the committed admission record. Quantity conservation
// (visitorCount == adultCount+childCount == coveredQty+paidQty) is enforced
// at construction and preserved by every mutator.
type Booking struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	serviceID      uuid.UUID
	slotID         uuid.UUID
	customerID     *uuid.UUID
	guest          *Guest
	adultCount     int32
	childCount     int32
	visitorCount   int32
	coveredQty     int32
	paidQty        int32
	subscriptionID *uuid.UUID
	status         Status
	paymentStatus  payment.Status
	checkedInAt    *time.Time
	holdID         *uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

type NewParams struct {
	TenantID       uuid.UUID
	ServiceID      uuid.UUID
	SlotID         uuid.UUID
	CustomerID     *uuid.UUID
	Guest          *Guest
	AdultCount     int32
	ChildCount     int32
	VisitorCount   int32
	CoveredQty     int32
	PaidQty        int32
	SubscriptionID *uuid.UUID
	HoldID         *uuid.UUID
}

// New validates the quantity invariants and admits the booking in status
// pending. Payment status derives from the paid portion: a fully
// package-covered booking owes nothing.
func New(p NewParams) (*Booking, error) {
	if p.AdultCount < 0 || p.ChildCount < 0 || p.CoveredQty < 0 || p.PaidQty < 0 {
		return nil, ErrNegativeQuantity
	}
	if p.VisitorCount <= 0 || p.VisitorCount != p.AdultCount+p.ChildCount {
		return nil, ErrVisitorCountMismatch
	}
	if p.CoveredQty+p.PaidQty != p.VisitorCount {
		return nil, ErrQuantitySplitInvalid
	}
	if p.CustomerID == nil && p.Guest == nil {
		return nil, ErrNoBookerIdentity
	}

	paymentStatus := payment.StatusUnpaid
	if p.PaidQty == 0 {
		paymentStatus = payment.StatusPaid
	}

	return &Booking{
		id:             uuid.New(),
		tenantID:       p.TenantID,
		serviceID:      p.ServiceID,
		slotID:         p.SlotID,
		customerID:     p.CustomerID,
		guest:          p.Guest,
		adultCount:     p.AdultCount,
		childCount:     p.ChildCount,
		visitorCount:   p.VisitorCount,
		coveredQty:     p.CoveredQty,
		paidQty:        p.PaidQty,
		subscriptionID: p.SubscriptionID,
		status:         StatusPending,
		paymentStatus:  paymentStatus,
		holdID:         p.HoldID,
	}, nil
}

func Reconstruct(
	id, tenantID, serviceID, slotID uuid.UUID,
	customerID *uuid.UUID,
	guest *Guest,
	adultCount, childCount, visitorCount, coveredQty, paidQty int32,
	subscriptionID *uuid.UUID,
	status Status,
	paymentStatus payment.Status,
	checkedInAt *time.Time,
	holdID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		tenantID:       tenantID,
		serviceID:      serviceID,
		slotID:         slotID,
		customerID:     customerID,
		guest:          guest,
		adultCount:     adultCount,
		childCount:     childCount,
		visitorCount:   visitorCount,
		coveredQty:     coveredQty,
		paidQty:        paidQty,
		subscriptionID: subscriptionID,
		status:         status,
		paymentStatus:  paymentStatus,
		checkedInAt:    checkedInAt,
		holdID:         holdID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Booking) Confirm() error {
	if b.status != StatusPending {
		return ErrInvalidStatus
	}
	b.status = StatusConfirmed
	return nil
}

func (b *Booking) CheckIn(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.status = StatusCheckedIn
	b.checkedInAt = &now
	return nil
}

func (b *Booking) Complete() error {
	if b.status != StatusCheckedIn {
		return ErrNotCheckedIn
	}
	b.status = StatusCompleted
	return nil
}

func (b *Booking) Cancel() error {
	if b.status.IsTerminal() {
		return ErrTerminalStatus
	}
	b.status = StatusCancelled
	return nil
}

// MoveToSlot repoints the booking at a new slot and invalidates any prior
// check-in: the visitor must be re-validated at the new time. A checked-in
// booking drops back to confirmed.
func (b *Booking) MoveToSlot(newSlotID uuid.UUID) error {
	if b.status.IsTerminal() {
		return ErrTerminalStatus
	}
	b.slotID = newSlotID
	b.checkedInAt = nil
	if b.status == StatusCheckedIn {
		b.status = StatusConfirmed
	}
	return nil
}

func (b *Booking) SetPaymentStatus(s payment.Status) {
	b.paymentStatus = s
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) TenantID() uuid.UUID             { return b.tenantID }
func (b *Booking) ServiceID() uuid.UUID            { return b.serviceID }
func (b *Booking) SlotID() uuid.UUID               { return b.slotID }
func (b *Booking) CustomerID() *uuid.UUID          { return b.customerID }
func (b *Booking) Guest() *Guest                   { return b.guest }
func (b *Booking) AdultCount() int32               { return b.adultCount }
func (b *Booking) ChildCount() int32               { return b.childCount }
func (b *Booking) VisitorCount() int32             { return b.visitorCount }
func (b *Booking) CoveredQty() int32               { return b.coveredQty }
func (b *Booking) PaidQty() int32                  { return b.paidQty }
func (b *Booking) SubscriptionID() *uuid.UUID      { return b.subscriptionID }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) PaymentStatus() payment.Status   { return b.paymentStatus }
func (b *Booking) CheckedInAt() *time.Time         { return b.checkedInAt }
func (b *Booking) HoldID() *uuid.UUID              { return b.holdID }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }
