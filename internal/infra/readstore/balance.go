package readstore

import (
	"context"

	"bookcore/internal/infra"
	"bookcore/internal/pkg/pgconv"
	"bookcore/internal/usecase/queries"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type BalanceReadStore struct {
	db shared.DBTX
}

func NewBalanceReadStore(db shared.DBTX) *BalanceReadStore {
	return &BalanceReadStore{db: db}
}

func (r *BalanceReadStore) FindByCustomerAndService(ctx context.Context, customerID, serviceID uuid.UUID) (*queries.BalanceView, error) {
	query := `
SELECT id, customer_id, service_id, remaining_qty, updated_at
FROM package_subscriptions
WHERE customer_id = $1 AND service_id = $2`

	var view queries.BalanceView
	err := r.db.QueryRow(ctx, query, customerID, serviceID).Scan(
		&view.SubscriptionID, &view.CustomerID, &view.ServiceID, &view.RemainingQty, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("package subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find package balance", err)
	}
	return &view, nil
}
