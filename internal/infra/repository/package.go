package repository

import (
	"context"
	"time"

	"bookcore/internal/domain/pkgsub"
	"bookcore/internal/infra"
	"bookcore/internal/pkg/pgconv"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type PackageRepository struct {
	db shared.DBTX
}

func NewPackageRepository(db shared.DBTX) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*pkgsub.Subscription, error) {
	query := `
SELECT id, tenant_id, customer_id, service_id, remaining_qty, created_at, updated_at
FROM package_subscriptions
WHERE id = $1
FOR UPDATE`

	var (
		subID, tenantID, customerID, serviceID uuid.UUID
		remainingQty                           int32
		createdAt, updatedAt                   time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&subID, &tenantID, &customerID, &serviceID, &remainingQty, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("package subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock package subscription", err)
	}

	return pkgsub.ReconstructSubscription(subID, tenantID, customerID, serviceID, remainingQty, createdAt, updatedAt), nil
}

// AdjustBalance applies delta (negative on admission, positive on
// cancellation) with the non-negativity guard in SQL so the balance can
// never be overdrawn even if two transactions race on the same
// subscription from different slots.
func (r *PackageRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int32) error {
	stmt := `
UPDATE package_subscriptions
SET remaining_qty = remaining_qty + $2, updated_at = now()
WHERE id = $1 AND remaining_qty + $2 >= 0`

	tag, err := r.db.Exec(ctx, stmt, id, delta)
	if err != nil {
		return infra.WrapRepoErr("failed to adjust package balance", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("package balance adjustment violated guard", nil, infra.KindGuardViolated)
	}
	return nil
}
