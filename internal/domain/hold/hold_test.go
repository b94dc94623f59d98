//go:build unit

package hold_test

import (
	"testing"
	"time"

	"bookcore/internal/domain/hold"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHold(t *testing.T) {
	now := time.Now()
	slotID, tenantID := uuid.New(), uuid.New()

	h, err := hold.New(slotID, tenantID, "session-1", 2, now, 10*time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, h.ID)
	assert.Equal(t, slotID, h.SlotID)
	assert.Equal(t, int32(2), h.Quantity)
	assert.Equal(t, now.Add(10*time.Minute), h.ExpiresAt)

	_, err = hold.New(slotID, tenantID, "session-1", 0, now, 10*time.Minute)
	assert.ErrorIs(t, err, hold.ErrInvalidQuantity)
}

func TestHoldValidate(t *testing.T) {
	now := time.Now()
	slotID := uuid.New()
	h, err := hold.New(slotID, uuid.New(), "session-1", 2, now, 10*time.Minute)
	require.NoError(t, err)

	t.Run("valid redemption", func(t *testing.T) {
		assert.NoError(t, h.Validate(slotID, "session-1", now.Add(time.Minute)))
	})

	t.Run("wrong slot", func(t *testing.T) {
		assert.ErrorIs(t, h.Validate(uuid.New(), "session-1", now), hold.ErrSlotMismatch)
	})

	t.Run("wrong session", func(t *testing.T) {
		assert.ErrorIs(t, h.Validate(slotID, "session-2", now), hold.ErrSessionMismatch)
	})

	t.Run("expired", func(t *testing.T) {
		assert.ErrorIs(t, h.Validate(slotID, "session-1", now.Add(11*time.Minute)), hold.ErrExpired)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		assert.ErrorIs(t, h.Validate(slotID, "session-1", h.ExpiresAt), hold.ErrExpired)
		assert.NoError(t, h.Validate(slotID, "session-1", h.ExpiresAt.Add(-time.Nanosecond)))
	})
}
