package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BalanceView is the read-only balance surface consumed by the
// package-management UI collaborator.
type BalanceView struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	RemainingQty   int32     `json:"remaining_qty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BalanceQueries interface {
	RemainingBalance(ctx context.Context, customerID, serviceID uuid.UUID) (*BalanceView, error)
}

type BalanceReadStore interface {
	FindByCustomerAndService(ctx context.Context, customerID, serviceID uuid.UUID) (*BalanceView, error)
}

type balanceQueriesImpl struct {
	store BalanceReadStore
}

func NewBalanceQueries(store BalanceReadStore) BalanceQueries {
	return &balanceQueriesImpl{store: store}
}

func (q *balanceQueriesImpl) RemainingBalance(ctx context.Context, customerID, serviceID uuid.UUID) (*BalanceView, error) {
	return q.store.FindByCustomerAndService(ctx, customerID, serviceID)
}
