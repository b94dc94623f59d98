//go:build unit

package pkgsub_test

import (
	"testing"

	"bookcore/internal/domain/pkgsub"
	"bookcore/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAllocation(t *testing.T) {
	t.Run("no coverage requested", func(t *testing.T) {
		alloc, err := pkgsub.ResolveAllocation(nil, uuid.New(), 0, 3)
		require.NoError(t, err)
		assert.Equal(t, pkgsub.Allocation{CoveredQty: 0, PaidQty: 3}, alloc)
	})

	t.Run("partial coverage", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().BuildDomain()
		alloc, err := pkgsub.ResolveAllocation(sub, sub.ServiceID(), 2, 3)
		require.NoError(t, err)
		assert.Equal(t, pkgsub.Allocation{CoveredQty: 2, PaidQty: 1}, alloc)
	})

	t.Run("full coverage", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().BuildDomain()
		alloc, err := pkgsub.ResolveAllocation(sub, sub.ServiceID(), 3, 3)
		require.NoError(t, err)
		assert.Equal(t, pkgsub.Allocation{CoveredQty: 3, PaidQty: 0}, alloc)
	})

	t.Run("coverage exceeds balance", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.RemainingQty = 1
		}).BuildDomain()
		_, err := pkgsub.ResolveAllocation(sub, sub.ServiceID(), 2, 3)
		assert.ErrorIs(t, err, pkgsub.ErrInsufficientBalance)
	})

	t.Run("balance exactly equals request", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.RemainingQty = 2
		}).BuildDomain()
		alloc, err := pkgsub.ResolveAllocation(sub, sub.ServiceID(), 2, 3)
		require.NoError(t, err)
		assert.Equal(t, int32(2), alloc.CoveredQty)
	})

	t.Run("subscription for a different service", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().BuildDomain()
		_, err := pkgsub.ResolveAllocation(sub, uuid.New(), 1, 3)
		assert.ErrorIs(t, err, pkgsub.ErrServiceMismatch)
	})

	t.Run("invalid requests", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().BuildDomain()

		_, err := pkgsub.ResolveAllocation(sub, sub.ServiceID(), -1, 3)
		assert.ErrorIs(t, err, pkgsub.ErrInvalidAllocation)

		_, err = pkgsub.ResolveAllocation(sub, sub.ServiceID(), 4, 3)
		assert.ErrorIs(t, err, pkgsub.ErrInvalidAllocation)

		_, err = pkgsub.ResolveAllocation(sub, sub.ServiceID(), 0, 0)
		assert.ErrorIs(t, err, pkgsub.ErrInvalidAllocation)

		// Coverage without a subscription is a caller bug.
		_, err = pkgsub.ResolveAllocation(nil, uuid.New(), 1, 3)
		assert.ErrorIs(t, err, pkgsub.ErrInvalidAllocation)
	})
}
