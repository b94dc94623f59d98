package hold

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotMismatch    = errors.New("hold does not belong to this slot")
	ErrSessionMismatch = errors.New("hold does not belong to this session")
	ErrExpired         = errors.New("hold has expired")
	ErrInvalidQuantity = errors.New("hold quantity must be positive")
)

// Hold is an ephemeral, advisory claim on slot capacity scoped to a
// checkout session. It never affects the slot's counters; its only job is
// to prove at commit time that the caller who took it is still entitled to
// redeem it.
type Hold struct {
	ID        uuid.UUID `json:"id"`
	SlotID    uuid.UUID `json:"slot_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	SessionID string    `json:"session_id"`
	Quantity  int32     `json:"quantity"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func New(slotID, tenantID uuid.UUID, sessionID string, quantity int32, now time.Time, ttl time.Duration) (Hold, error) {
	if quantity <= 0 {
		return Hold{}, ErrInvalidQuantity
	}
	return Hold{
		ID:        uuid.New(),
		SlotID:    slotID,
		TenantID:  tenantID,
		SessionID: sessionID,
		Quantity:  quantity,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// Validate checks redeemability and fails closed. The expiry check is
// belt-and-braces on top of the store's TTL eviction: a reader whose clock
// is past ExpiresAt must treat the hold as nonexistent even if the store
// has not evicted it yet.
func (h Hold) Validate(slotID uuid.UUID, sessionID string, now time.Time) error {
	if h.SlotID != slotID {
		return ErrSlotMismatch
	}
	if h.SessionID != sessionID {
		return ErrSessionMismatch
	}
	if !now.Before(h.ExpiresAt) {
		return ErrExpired
	}
	return nil
}
