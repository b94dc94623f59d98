package response

import (
	"time"

	"github.com/google/uuid"

	"bookcore/internal/domain/hold"
)

type HoldResponse struct {
	ID        uuid.UUID `json:"id"`
	SlotID    uuid.UUID `json:"slot_id"`
	Quantity  int32     `json:"quantity"`
	ExpiresAt time.Time `json:"expires_at"`
}

func FromHold(h *hold.Hold) *HoldResponse {
	return &HoldResponse{
		ID:        h.ID,
		SlotID:    h.SlotID,
		Quantity:  h.Quantity,
		ExpiresAt: h.ExpiresAt,
	}
}
