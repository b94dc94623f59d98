//go:build unit

package payment_test

import (
	"testing"

	"bookcore/internal/domain/payment"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to payment.Status }{
		{payment.StatusUnpaid, payment.StatusAwaitingPayment},
		{payment.StatusUnpaid, payment.StatusPaidManual},
		{payment.StatusAwaitingPayment, payment.StatusPaid},
		{payment.StatusPaid, payment.StatusRefunded},
		{payment.StatusPaidManual, payment.StatusRefunded},
	}
	for _, tc := range allowed {
		t.Run(string(tc.from)+" to "+string(tc.to), func(t *testing.T) {
			assert.True(t, payment.CanTransition(tc.from, tc.to))
		})
	}

	denied := []struct{ from, to payment.Status }{
		{payment.StatusUnpaid, payment.StatusPaid},
		{payment.StatusUnpaid, payment.StatusRefunded},
		{payment.StatusAwaitingPayment, payment.StatusUnpaid},
		{payment.StatusAwaitingPayment, payment.StatusPaidManual},
		{payment.StatusPaid, payment.StatusUnpaid},
		{payment.StatusPaid, payment.StatusAwaitingPayment},
		{payment.StatusRefunded, payment.StatusUnpaid},
		{payment.StatusRefunded, payment.StatusPaid},
		{payment.StatusPaid, payment.StatusPaid},
	}
	for _, tc := range denied {
		t.Run(string(tc.from)+" to "+string(tc.to)+" denied", func(t *testing.T) {
			assert.False(t, payment.CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsPaidEquivalent(t *testing.T) {
	assert.True(t, payment.StatusPaid.IsPaidEquivalent())
	assert.True(t, payment.StatusPaidManual.IsPaidEquivalent())
	assert.False(t, payment.StatusUnpaid.IsPaidEquivalent())
	assert.False(t, payment.StatusAwaitingPayment.IsPaidEquivalent())
	assert.False(t, payment.StatusRefunded.IsPaidEquivalent())
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"unpaid", "awaiting_payment", "paid", "paid_manual", "refunded"} {
		s, err := payment.ParseStatus(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, s.String())
	}

	_, err := payment.ParseStatus("pending")
	assert.ErrorIs(t, err, payment.ErrUnknownStatus)
}
