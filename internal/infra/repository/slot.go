package repository

import (
	"context"
	"sort"
	"time"

	"bookcore/internal/domain/slot"
	"bookcore/internal/infra"
	"bookcore/internal/pkg/pgconv"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotRepository struct {
	db shared.DBTX
}

func NewSlotRepository(db shared.DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = `id, tenant_id, original_capacity, available_capacity, booked_count, is_available, starts_at, created_at, updated_at`

// FindForUpdate takes the slot's exclusive row lock. Every read-then-write
// of the capacity counters must come through here so that concurrent
// admissions against the same slot are fully serialized.
func (r *SlotRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`

	s, err := r.scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock slot", err)
	}
	return s, nil
}

// FindManyForUpdate locks several slots in ascending ID order. The caller's
// input order is irrelevant; the fixed order is what prevents deadlock
// between two multi-slot transactions.
func (r *SlotRepository) FindManyForUpdate(ctx context.Context, ids []uuid.UUID) ([]*slot.Slot, error) {
	ordered := make([]uuid.UUID, len(ids))
	copy(ordered, ids)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].String() < ordered[j].String()
	})

	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`

	slots := make([]*slot.Slot, 0, len(ordered))
	for _, id := range ordered {
		s, err := r.scanSlot(r.db.QueryRow(ctx, query, id))
		if err != nil {
			if pgconv.IsNoRows(err) {
				return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
			}
			return nil, infra.WrapRepoErr("failed to lock slot", err)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

// ApplyCounters persists the entity's counters. The WHERE guard re-checks
// non-negativity and conservation so a bug above this layer can never
// commit a negative availability.
func (r *SlotRepository) ApplyCounters(ctx context.Context, s *slot.Slot) error {
	stmt := `
UPDATE slots
SET available_capacity = $2, booked_count = $3, updated_at = now()
WHERE id = $1 AND $2 >= 0 AND $2 + $3 = original_capacity`

	tag, err := r.db.Exec(ctx, stmt, s.ID(), s.AvailableCapacity(), s.BookedCount())
	if err != nil {
		return infra.WrapRepoErr("failed to update slot counters", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot counter update violated capacity guard", nil, infra.KindGuardViolated)
	}
	return nil
}

func (r *SlotRepository) scanSlot(row interface{ Scan(dest ...any) error }) (*slot.Slot, error) {
	var (
		id, tenantID                                       uuid.UUID
		originalCapacity, availableCapacity, bookedCount   int32
		isAvailable                                        bool
		startsAt, createdAt, updatedAt                     time.Time
	)
	err := row.Scan(&id, &tenantID, &originalCapacity, &availableCapacity, &bookedCount, &isAvailable, &startsAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return slot.ReconstructSlot(id, tenantID, originalCapacity, availableCapacity, bookedCount, isAvailable, startsAt, createdAt, updatedAt), nil
}
