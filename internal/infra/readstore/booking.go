package readstore

import (
	"context"
	"time"

	"bookcore/internal/infra"
	"bookcore/internal/pkg/pgconv"
	"bookcore/internal/usecase/queries"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db shared.DBTX
}

func NewBookingReadStore(db shared.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
SELECT b.id, b.tenant_id, b.service_id, b.slot_id, s.starts_at,
       b.customer_id, b.guest_name,
       b.adult_count, b.child_count, b.visitor_count,
       b.package_covered_qty, b.paid_qty, b.package_subscription_id,
       b.status, b.payment_status, b.checked_in_at, b.created_at, b.updated_at
FROM bookings b
JOIN slots s ON s.id = b.slot_id
WHERE b.id = $1`

	var (
		view                       queries.BookingView
		customerID, subscriptionID pgtype.UUID
		guestName                  pgtype.Text
		checkedInAt                pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.TenantID, &view.ServiceID, &view.SlotID, &view.SlotStartsAt,
		&customerID, &guestName,
		&view.AdultCount, &view.ChildCount, &view.VisitorCount,
		&view.CoveredQty, &view.PaidQty, &subscriptionID,
		&view.Status, &view.PaymentStatus, &checkedInAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.CustomerID = pgconv.UUIDPtrFromPgtype(customerID)
	view.GuestName = pgconv.StringPtrFromPgtype(guestName)
	view.SubscriptionID = pgconv.UUIDPtrFromPgtype(subscriptionID)
	view.CheckedInAt = pgconv.TimePtrFromPgtype(checkedInAt)
	return &view, nil
}

func (r *BookingReadStore) FindBySlotID(ctx context.Context, slotID uuid.UUID) ([]*queries.BookingListItem, error) {
	query := `
SELECT id, slot_id, customer_id, guest_name, visitor_count, status, payment_status, created_at
FROM bookings
WHERE slot_id = $1
ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, slotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by slot", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item       queries.BookingListItem
			customerID pgtype.UUID
			guestName  pgtype.Text
			createdAt  time.Time
		)
		if err := rows.Scan(&item.ID, &item.SlotID, &customerID, &guestName, &item.VisitorCount, &item.Status, &item.PaymentStatus, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.CustomerID = pgconv.UUIDPtrFromPgtype(customerID)
		item.GuestName = pgconv.StringPtrFromPgtype(guestName)
		item.CreatedAt = createdAt
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}
