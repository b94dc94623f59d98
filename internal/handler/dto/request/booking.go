package request

import "github.com/google/uuid"

type CreateBookingRequest struct {
	ServiceID        uuid.UUID  `json:"service_id" binding:"required"`
	SlotID           uuid.UUID  `json:"slot_id" binding:"required"`
	CustomerID       *uuid.UUID `json:"customer_id,omitempty"`
	GuestName        *string    `json:"guest_name,omitempty"`
	GuestPhone       *string    `json:"guest_phone,omitempty"`
	AdultCount       int32      `json:"adult_count"`
	ChildCount       int32      `json:"child_count"`
	VisitorCount     int32      `json:"visitor_count" binding:"required"`
	RequestedCovered int32      `json:"package_covered_qty"`
	SubscriptionID   *uuid.UUID `json:"package_subscription_id,omitempty"`
	HoldID           *uuid.UUID `json:"hold_id,omitempty"`
}

type BulkCreateBookingRequest struct {
	ServiceID        uuid.UUID   `json:"service_id" binding:"required"`
	SlotIDs          []uuid.UUID `json:"slot_ids" binding:"required,min=1"`
	CustomerID       *uuid.UUID  `json:"customer_id,omitempty"`
	GuestName        *string     `json:"guest_name,omitempty"`
	GuestPhone       *string     `json:"guest_phone,omitempty"`
	AdultCount       int32       `json:"adult_count"`
	ChildCount       int32       `json:"child_count"`
	RequestedCovered int32       `json:"package_covered_qty"`
	SubscriptionID   *uuid.UUID  `json:"package_subscription_id,omitempty"`
}

type RescheduleBookingRequest struct {
	NewSlotID uuid.UUID `json:"new_slot_id" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}
