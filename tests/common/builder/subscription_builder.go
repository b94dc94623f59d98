//go:build unit || e2e

package builder

import (
	"time"

	"bookcore/internal/domain/pkgsub"

	"github.com/google/uuid"
)

type SubscriptionBuilder struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	CustomerID   uuid.UUID
	ServiceID    uuid.UUID
	RemainingQty int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewSubscriptionBuilder() *SubscriptionBuilder {
	now := time.Now()
	return &SubscriptionBuilder{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		CustomerID:   uuid.New(),
		ServiceID:    uuid.New(),
		RemainingQty: 10,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *SubscriptionBuilder) With(mutate func(*SubscriptionBuilder)) *SubscriptionBuilder {
	mutate(b)
	return b
}

func (b *SubscriptionBuilder) BuildDomain() *pkgsub.Subscription {
	return pkgsub.ReconstructSubscription(
		b.ID, b.TenantID, b.CustomerID, b.ServiceID,
		b.RemainingQty,
		b.CreatedAt, b.UpdatedAt,
	)
}
