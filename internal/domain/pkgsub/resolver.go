package pkgsub

import "github.com/google/uuid"

// Allocation is the covered/paid split for a single admission. Invariant:
// CoveredQty + PaidQty == visitorCount, both non-negative.
type Allocation struct {
	CoveredQty int32
	PaidQty    int32
}

// ResolveAllocation decides how much of a booking the subscription covers.
// sub may be nil when the caller requested no coverage. The resolver never
// mutates the balance; the matching decrement happens in the engine's
// transaction so balance and booking existence cannot diverge.
func ResolveAllocation(sub *Subscription, serviceID uuid.UUID, requestedCovered, visitorCount int32) (Allocation, error) {
	if requestedCovered < 0 || visitorCount <= 0 || requestedCovered > visitorCount {
		return Allocation{}, ErrInvalidAllocation
	}
	if requestedCovered == 0 {
		return Allocation{CoveredQty: 0, PaidQty: visitorCount}, nil
	}
	if sub == nil {
		return Allocation{}, ErrInvalidAllocation
	}
	if !sub.Covers(serviceID) {
		return Allocation{}, ErrServiceMismatch
	}
	if requestedCovered > sub.remainingQty {
		return Allocation{}, ErrInsufficientBalance
	}
	return Allocation{CoveredQty: requestedCovered, PaidQty: visitorCount - requestedCovered}, nil
}
