package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) String() string { return string(s) }

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	}
	return "", ErrInvalidStatus
}

// Guest identifies an unregistered booker. Either a Guest or a registered
// customer ID must be present on every booking.
type Guest struct {
	Name  string
	Phone string
}
