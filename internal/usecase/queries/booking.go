package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	ServiceID      uuid.UUID  `json:"service_id"`
	SlotID         uuid.UUID  `json:"slot_id"`
	SlotStartsAt   time.Time  `json:"slot_starts_at"`
	CustomerID     *uuid.UUID `json:"customer_id,omitempty"`
	GuestName      *string    `json:"guest_name,omitempty"`
	AdultCount     int32      `json:"adult_count"`
	ChildCount     int32      `json:"child_count"`
	VisitorCount   int32      `json:"visitor_count"`
	CoveredQty     int32      `json:"package_covered_qty"`
	PaidQty        int32      `json:"paid_qty"`
	SubscriptionID *uuid.UUID `json:"package_subscription_id,omitempty"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"payment_status"`
	CheckedInAt    *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID  `json:"id"`
	SlotID        uuid.UUID  `json:"slot_id"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	GuestName     *string    `json:"guest_name,omitempty"`
	VisitorCount  int32      `json:"visitor_count"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]*BookingListItem, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindBySlotID(ctx context.Context, slotID uuid.UUID) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]*BookingListItem, error) {
	return q.store.FindBySlotID(ctx, slotID)
}
