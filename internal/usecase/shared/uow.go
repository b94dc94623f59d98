package shared

import (
	"context"
	"time"

	"bookcore/internal/domain/booking"
	"bookcore/internal/domain/pkgsub"
	"bookcore/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the minimal query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork interface {
	// Within: full read-write transaction; the engine's serialization point.
	// Slot rows touched inside fn via Slots().FindForUpdate stay exclusively
	// locked until commit or rollback.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error
	// Reads: precondition lookups outside any lock (hold creation, validation)
	Reads() CommandReads
}

type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Packages() PackageRepository
	Notifications() NotificationRepository
	DB() DBTX
}

// SlotRepository is the write side of the slot ledger. FindForUpdate takes
// the per-slot exclusive row lock; ApplyCounters persists the entity's
// counters with the conservation invariant re-checked in SQL.
type SlotRepository interface {
	FindForUpdate(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	// FindManyForUpdate locks the rows in ascending ID order regardless of
	// input order, the fixed global order that keeps two multi-slot
	// operations from deadlocking each other.
	FindManyForUpdate(ctx context.Context, ids []uuid.UUID) ([]*slot.Slot, error)
	ApplyCounters(ctx context.Context, s *slot.Slot) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PackageRepository interface {
	FindForUpdate(ctx context.Context, id uuid.UUID) (*pkgsub.Subscription, error)
	// AdjustBalance applies delta to remaining_qty with the non-negativity
	// guard enforced in SQL; a violated guard surfaces as KindGuardViolated.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta int32) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type CommandReads interface {
	SlotByID(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
}
