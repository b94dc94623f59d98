package repository

import (
	"context"
	"time"

	"bookcore/internal/domain/booking"
	"bookcore/internal/domain/payment"
	"bookcore/internal/infra"
	"bookcore/internal/pkg/pgconv"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct {
	db shared.DBTX
}

func NewBookingRepository(db shared.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, tenant_id, service_id, slot_id, customer_id, guest_name, guest_phone,
adult_count, child_count, visitor_count, package_covered_qty, paid_qty, package_subscription_id,
status, payment_status, checked_in_at, hold_id, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	stmt := `
INSERT INTO bookings (id, tenant_id, service_id, slot_id, customer_id, guest_name, guest_phone,
	adult_count, child_count, visitor_count, package_covered_qty, paid_qty, package_subscription_id,
	status, payment_status, checked_in_at, hold_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	var guestName, guestPhone *string
	if g := b.Guest(); g != nil {
		guestName = &g.Name
		guestPhone = &g.Phone
	}

	_, err := r.db.Exec(ctx, stmt,
		b.ID(), b.TenantID(), b.ServiceID(), b.SlotID(),
		pgconv.UUIDPtrToPgtype(b.CustomerID()),
		pgconv.StringPtrToPgtype(guestName),
		pgconv.StringPtrToPgtype(guestPhone),
		b.AdultCount(), b.ChildCount(), b.VisitorCount(),
		b.CoveredQty(), b.PaidQty(),
		pgconv.UUIDPtrToPgtype(b.SubscriptionID()),
		b.Status().String(), b.PaymentStatus().String(),
		pgconv.TimePtrToPgtype(b.CheckedInAt()),
		pgconv.UUIDPtrToPgtype(b.HoldID()),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return b.ID(), nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	stmt := `
UPDATE bookings
SET slot_id = $2, status = $3, payment_status = $4, checked_in_at = $5, updated_at = now()
WHERE id = $1`

	tag, err := r.db.Exec(ctx, stmt,
		b.ID(), b.SlotID(), b.Status().String(), b.PaymentStatus().String(),
		pgconv.TimePtrToPgtype(b.CheckedInAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanBooking(row interface{ Scan(dest ...any) error }) (*booking.Booking, error) {
	var (
		id, tenantID, serviceID, slotID              uuid.UUID
		customerID, subscriptionID, holdID           pgtype.UUID
		guestName, guestPhone                        pgtype.Text
		adultCount, childCount, visitorCount         int32
		coveredQty, paidQty                          int32
		statusRaw, paymentStatusRaw                  string
		checkedInAt                                  pgtype.Timestamptz
		createdAt, updatedAt                         time.Time
	)

	err := row.Scan(
		&id, &tenantID, &serviceID, &slotID,
		&customerID, &guestName, &guestPhone,
		&adultCount, &childCount, &visitorCount, &coveredQty, &paidQty,
		&subscriptionID, &statusRaw, &paymentStatusRaw, &checkedInAt, &holdID,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	status, err := booking.ParseStatus(statusRaw)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := payment.ParseStatus(paymentStatusRaw)
	if err != nil {
		return nil, err
	}

	var guest *booking.Guest
	if name := pgconv.StringPtrFromPgtype(guestName); name != nil {
		guest = &booking.Guest{Name: *name}
		if phone := pgconv.StringPtrFromPgtype(guestPhone); phone != nil {
			guest.Phone = *phone
		}
	}

	return booking.Reconstruct(
		id, tenantID, serviceID, slotID,
		pgconv.UUIDPtrFromPgtype(customerID),
		guest,
		adultCount, childCount, visitorCount, coveredQty, paidQty,
		pgconv.UUIDPtrFromPgtype(subscriptionID),
		status, paymentStatus,
		pgconv.TimePtrFromPgtype(checkedInAt),
		pgconv.UUIDPtrFromPgtype(holdID),
		createdAt, updatedAt,
	), nil
}
