package response

import (
	"time"

	"github.com/google/uuid"

	"bookcore/internal/usecase/queries"
)

type BookingResponse struct {
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

type BookingListResponse struct {
	ID            uuid.UUID  `json:"id"`
	SlotID        uuid.UUID  `json:"slot_id"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	GuestName     *string    `json:"guest_name,omitempty"`
	VisitorCount  int32      `json:"visitor_count"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
}

type BulkBookingResponse struct {
	BookingIDs []uuid.UUID `json:"booking_ids"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:             v.ID,
		TenantID:       v.TenantID,
		ServiceID:      v.ServiceID,
		SlotID:         v.SlotID,
		SlotStartsAt:   v.SlotStartsAt,
		CustomerID:     v.CustomerID,
		GuestName:      v.GuestName,
		AdultCount:     v.AdultCount,
		ChildCount:     v.ChildCount,
		VisitorCount:   v.VisitorCount,
		CoveredQty:     v.CoveredQty,
		PaidQty:        v.PaidQty,
		SubscriptionID: v.SubscriptionID,
		Status:         v.Status,
		PaymentStatus:  v.PaymentStatus,
		CheckedInAt:    v.CheckedInAt,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:            item.ID,
		SlotID:        item.SlotID,
		CustomerID:    item.CustomerID,
		GuestName:     item.GuestName,
		VisitorCount:  item.VisitorCount,
		Status:        item.Status,
		PaymentStatus: item.PaymentStatus,
		CreatedAt:     item.CreatedAt,
	}
}
