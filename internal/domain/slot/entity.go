package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrCapacityOverflow     = errors.New("release exceeds booked count")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrCountersInconsistent = errors.New("capacity counters inconsistent")
)

// Slot is a bookable occurrence with finite capacity. The counters must
// satisfy originalCapacity == availableCapacity + bookedCount at every
// commit boundary; Reserve and Release refuse any mutation that would
// break it.
type Slot struct {
	id                uuid.UUID
	tenantID          uuid.UUID
	originalCapacity  int32
	availableCapacity int32
	bookedCount       int32
	isAvailable       bool
	startsAt          time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func NewSlot(tenantID uuid.UUID, capacity int32, startsAt time.Time) (*Slot, error) {
	if capacity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Slot{
		id:                uuid.New(),
		tenantID:          tenantID,
		originalCapacity:  capacity,
		availableCapacity: capacity,
		bookedCount:       0,
		isAvailable:       true,
		startsAt:          startsAt,
	}, nil
}

func ReconstructSlot(
	id, tenantID uuid.UUID,
	originalCapacity, availableCapacity, bookedCount int32,
	isAvailable bool,
	startsAt, createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:                id,
		tenantID:          tenantID,
		originalCapacity:  originalCapacity,
		availableCapacity: availableCapacity,
		bookedCount:       bookedCount,
		isAvailable:       isAvailable,
		startsAt:          startsAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Reserve commits quantity seats. It mutates nothing when the slot cannot
// satisfy the request, so a failed call leaves the entity identical to its
// pre-call state.
func (s *Slot) Reserve(quantity int32) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if s.availableCapacity-quantity < 0 {
		return ErrInsufficientCapacity
	}
	s.availableCapacity -= quantity
	s.bookedCount += quantity
	return nil
}

// Release returns quantity seats to the pool, bounded by bookedCount so a
// double release can never push availableCapacity past the ceiling.
func (s *Slot) Release(quantity int32) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if s.bookedCount-quantity < 0 {
		return ErrCapacityOverflow
	}
	s.availableCapacity += quantity
	s.bookedCount -= quantity
	return nil
}

// CheckInvariant reports whether the conservation invariant holds.
func (s *Slot) CheckInvariant() error {
	if s.originalCapacity != s.availableCapacity+s.bookedCount || s.availableCapacity < 0 {
		return ErrCountersInconsistent
	}
	return nil
}

func (s *Slot) BelongsTo(tenantID uuid.UUID) bool {
	return s.tenantID == tenantID
}

func (s *Slot) ID() uuid.UUID             { return s.id }
func (s *Slot) TenantID() uuid.UUID       { return s.tenantID }
func (s *Slot) OriginalCapacity() int32   { return s.originalCapacity }
func (s *Slot) AvailableCapacity() int32  { return s.availableCapacity }
func (s *Slot) BookedCount() int32        { return s.bookedCount }
func (s *Slot) IsAvailable() bool         { return s.isAvailable }
func (s *Slot) StartsAt() time.Time       { return s.startsAt }
func (s *Slot) CreatedAt() time.Time      { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time      { return s.updatedAt }
func (s *Slot) SetAvailability(on bool)   { s.isAvailable = on }
