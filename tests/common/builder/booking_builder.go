//go:build unit || e2e

package builder

import (
	"time"

	dombooking "bookcore/internal/domain/booking"
	reqdto "bookcore/internal/handler/dto/request"
	"bookcore/internal/usecase/commands"
	"bookcore/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	TenantID         uuid.UUID
	ServiceID        uuid.UUID
	SlotID           uuid.UUID
	CustomerID       *uuid.UUID
	GuestName        *string
	GuestPhone       *string
	AdultCount       int32
	ChildCount       int32
	VisitorCount     int32
	CoveredQty       int32
	PaidQty          int32
	SubscriptionID   *uuid.UUID
	HoldID           *uuid.UUID
	SessionID        string
	SlotStartsAt     time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	customerID := uuid.New()
	return &BookingBuilder{
		TenantID:     uuid.New(),
		ServiceID:    uuid.New(),
		SlotID:       uuid.New(),
		CustomerID:   &customerID,
		AdultCount:   2,
		ChildCount:   1,
		VisitorCount: 3,
		CoveredQty:   0,
		PaidQty:      3,
		SessionID:    "session-1",
		SlotStartsAt: now.Add(24 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) AsGuest(name, phone string) *BookingBuilder {
	b.CustomerID = nil
	b.GuestName = &name
	b.GuestPhone = &phone
	return b
}

func (b *BookingBuilder) WithCoverage(subscriptionID uuid.UUID, covered int32) *BookingBuilder {
	b.SubscriptionID = &subscriptionID
	b.CoveredQty = covered
	b.PaidQty = b.VisitorCount - covered
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	var guest *dombooking.Guest
	if b.GuestName != nil {
		guest = &dombooking.Guest{Name: *b.GuestName}
		if b.GuestPhone != nil {
			guest.Phone = *b.GuestPhone
		}
	}
	return dombooking.New(dombooking.NewParams{
		TenantID:       b.TenantID,
		ServiceID:      b.ServiceID,
		SlotID:         b.SlotID,
		CustomerID:     b.CustomerID,
		Guest:          guest,
		AdultCount:     b.AdultCount,
		ChildCount:     b.ChildCount,
		VisitorCount:   b.VisitorCount,
		CoveredQty:     b.CoveredQty,
		PaidQty:        b.PaidQty,
		SubscriptionID: b.SubscriptionID,
		HoldID:         b.HoldID,
	})
}

func (b *BookingBuilder) BuildAdmitRequest() commands.AdmitRequest {
	return commands.AdmitRequest{
		TenantID:         b.TenantID,
		ServiceID:        b.ServiceID,
		SlotID:           b.SlotID,
		CustomerID:       b.CustomerID,
		GuestName:        b.GuestName,
		GuestPhone:       b.GuestPhone,
		AdultCount:       b.AdultCount,
		ChildCount:       b.ChildCount,
		VisitorCount:     b.VisitorCount,
		RequestedCovered: b.CoveredQty,
		SubscriptionID:   b.SubscriptionID,
		HoldID:           b.HoldID,
		SessionID:        b.SessionID,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ServiceID:        b.ServiceID,
		SlotID:           b.SlotID,
		CustomerID:       b.CustomerID,
		GuestName:        b.GuestName,
		GuestPhone:       b.GuestPhone,
		AdultCount:       b.AdultCount,
		ChildCount:       b.ChildCount,
		VisitorCount:     b.VisitorCount,
		RequestedCovered: b.CoveredQty,
		SubscriptionID:   b.SubscriptionID,
		HoldID:           b.HoldID,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	id := uuid.New()
	return &queries.BookingView{
		ID:             id,
		TenantID:       b.TenantID,
		ServiceID:      b.ServiceID,
		SlotID:         b.SlotID,
		SlotStartsAt:   b.SlotStartsAt,
		CustomerID:     b.CustomerID,
		GuestName:      b.GuestName,
		AdultCount:     b.AdultCount,
		ChildCount:     b.ChildCount,
		VisitorCount:   b.VisitorCount,
		CoveredQty:     b.CoveredQty,
		PaidQty:        b.PaidQty,
		SubscriptionID: b.SubscriptionID,
		Status:         "pending",
		PaymentStatus:  "unpaid",
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
