package readstore

import (
	"context"

	"bookcore/internal/infra"
	"bookcore/internal/pkg/pgconv"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
)

// SlotReadStore serves lock-free precondition reads. Anything that decides
// capacity must go through the locked write path instead.
type SlotReadStore struct {
	db shared.DBTX
}

func NewSlotReadStore(db shared.DBTX) *SlotReadStore {
	return &SlotReadStore{db: db}
}

func (r *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	query := `
SELECT id, tenant_id, original_capacity, available_capacity, booked_count, is_available, starts_at
FROM slots
WHERE id = $1`

	var snap shared.SlotSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.TenantID,
		&snap.OriginalCapacity, &snap.AvailableCapacity, &snap.BookedCount,
		&snap.IsAvailable, &snap.StartsAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}
	return &snap, nil
}
