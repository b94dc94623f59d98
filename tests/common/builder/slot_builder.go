//go:build unit || e2e

package builder

import (
	"time"

	domslot "bookcore/internal/domain/slot"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	OriginalCapacity  int32
	AvailableCapacity int32
	BookedCount       int32
	IsAvailable       bool
	StartsAt          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewSlotBuilder() *SlotBuilder {
	now := time.Now()
	return &SlotBuilder{
		ID:                uuid.New(),
		TenantID:          uuid.New(),
		OriginalCapacity:  10,
		AvailableCapacity: 10,
		BookedCount:       0,
		IsAvailable:       true,
		StartsAt:          now.Add(24 * time.Hour),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithCapacity(original, available int32) *SlotBuilder {
	b.OriginalCapacity = original
	b.AvailableCapacity = available
	b.BookedCount = original - available
	return b
}

func (b *SlotBuilder) BuildDomain() *domslot.Slot {
	return domslot.ReconstructSlot(
		b.ID, b.TenantID,
		b.OriginalCapacity, b.AvailableCapacity, b.BookedCount,
		b.IsAvailable,
		b.StartsAt, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *SlotBuilder) BuildSnapshot() *shared.SlotSnapshot {
	return &shared.SlotSnapshot{
		ID:                b.ID,
		TenantID:          b.TenantID,
		OriginalCapacity:  b.OriginalCapacity,
		AvailableCapacity: b.AvailableCapacity,
		BookedCount:       b.BookedCount,
		IsAvailable:       b.IsAvailable,
		StartsAt:          b.StartsAt,
	}
}
