package response

import (
	"github.com/google/uuid"

	"bookcore/internal/usecase/queries"
)

type BalanceResponse struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	RemainingQty   int32     `json:"remaining_qty"`
}

func FromBalanceView(v *queries.BalanceView) *BalanceResponse {
	return &BalanceResponse{
		SubscriptionID: v.SubscriptionID,
		CustomerID:     v.CustomerID,
		ServiceID:      v.ServiceID,
		RemainingQty:   v.RemainingQty,
	}
}
