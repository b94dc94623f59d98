package pkgsub

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInsufficientBalance = errors.New("insufficient package balance")
	ErrInvalidAllocation   = errors.New("invalid allocation request")
	ErrServiceMismatch     = errors.New("subscription does not cover this service")
)

// Subscription is a pre-purchased balance of service occurrences. The
// balance itself is mutated only by the lifecycle engine, atomically with
// the booking insert or cancellation it belongs to.
type Subscription struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	customerID   uuid.UUID
	serviceID    uuid.UUID
	remainingQty int32
	createdAt    time.Time
	updatedAt    time.Time
}

func ReconstructSubscription(
	id, tenantID, customerID, serviceID uuid.UUID,
	remainingQty int32,
	createdAt, updatedAt time.Time,
) *Subscription {
	return &Subscription{
		id:           id,
		tenantID:     tenantID,
		customerID:   customerID,
		serviceID:    serviceID,
		remainingQty: remainingQty,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *Subscription) Covers(serviceID uuid.UUID) bool {
	return s.serviceID == serviceID
}

func (s *Subscription) ID() uuid.UUID         { return s.id }
func (s *Subscription) TenantID() uuid.UUID   { return s.tenantID }
func (s *Subscription) CustomerID() uuid.UUID { return s.customerID }
func (s *Subscription) ServiceID() uuid.UUID  { return s.serviceID }
func (s *Subscription) RemainingQty() int32   { return s.remainingQty }
func (s *Subscription) CreatedAt() time.Time  { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time  { return s.updatedAt }
