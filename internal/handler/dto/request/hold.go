package request

import "github.com/google/uuid"

type CreateHoldRequest struct {
	SlotID   uuid.UUID `json:"slot_id" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required,min=1"`
}
