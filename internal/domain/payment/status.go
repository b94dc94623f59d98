package payment

import "errors"

var ErrUnknownStatus = errors.New("unknown payment status")

type Status string

const (
	StatusUnpaid          Status = "unpaid"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusPaid            Status = "paid"
	StatusPaidManual      Status = "paid_manual"
	StatusRefunded        Status = "refunded"
)

// transitions is the closed table of legal moves. Forward-only: once a
// booking advances past a state it cannot re-enter it, except through an
// explicit refund of a paid state.
var transitions = map[Status][]Status{
	StatusUnpaid:          {StatusAwaitingPayment, StatusPaidManual},
	StatusAwaitingPayment: {StatusPaid},
	StatusPaid:            {StatusRefunded},
	StatusPaidManual:      {StatusRefunded},
	StatusRefunded:        {},
}

// CanTransition is a pure function of (current, requested); it performs no
// I/O and holds no state.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsPaidEquivalent reports whether the status represents settled money,
// which guards destructive operations like hard delete.
func (s Status) IsPaidEquivalent() bool {
	return s == StatusPaid || s == StatusPaidManual
}

func (s Status) String() string { return string(s) }

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusUnpaid, StatusAwaitingPayment, StatusPaid, StatusPaidManual, StatusRefunded:
		return Status(raw), nil
	}
	return "", ErrUnknownStatus
}
