package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshot for command-side precondition reads.
type SlotSnapshot struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	OriginalCapacity  int32
	AvailableCapacity int32
	BookedCount       int32
	IsAvailable       bool
	StartsAt          time.Time
}
