//go:build unit

package commands_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookcore/internal/domain/booking"
	"bookcore/internal/domain/hold"
	"bookcore/internal/domain/pkgsub"
	"bookcore/internal/domain/slot"
	"bookcore/internal/infra"
	"bookcore/internal/usecase/queries"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory unit of work with copy-on-write transactions: fn runs against a
// deep copy and the copy replaces the state only on success, which gives the
// same atomicity and serialization guarantees the engine relies on.

type fakeJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type fakeState struct {
	slots    map[uuid.UUID]*slot.Slot
	bookings map[uuid.UUID]*booking.Booking
	subs     map[uuid.UUID]*pkgsub.Subscription
	jobs     []fakeJob
}

func newFakeState() *fakeState {
	return &fakeState{
		slots:    make(map[uuid.UUID]*slot.Slot),
		bookings: make(map[uuid.UUID]*booking.Booking),
		subs:     make(map[uuid.UUID]*pkgsub.Subscription),
	}
}

func cloneSlot(s *slot.Slot) *slot.Slot {
	return slot.ReconstructSlot(
		s.ID(), s.TenantID(),
		s.OriginalCapacity(), s.AvailableCapacity(), s.BookedCount(),
		s.IsAvailable(),
		s.StartsAt(), s.CreatedAt(), s.UpdatedAt(),
	)
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	var guest *booking.Guest
	if g := b.Guest(); g != nil {
		copied := *g
		guest = &copied
	}
	return booking.Reconstruct(
		b.ID(), b.TenantID(), b.ServiceID(), b.SlotID(),
		b.CustomerID(), guest,
		b.AdultCount(), b.ChildCount(), b.VisitorCount(), b.CoveredQty(), b.PaidQty(),
		b.SubscriptionID(), b.Status(), b.PaymentStatus(),
		b.CheckedInAt(), b.HoldID(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}

func cloneSub(s *pkgsub.Subscription) *pkgsub.Subscription {
	return pkgsub.ReconstructSubscription(
		s.ID(), s.TenantID(), s.CustomerID(), s.ServiceID(),
		s.RemainingQty(), s.CreatedAt(), s.UpdatedAt(),
	)
}

func (st *fakeState) clone() *fakeState {
	next := newFakeState()
	for id, s := range st.slots {
		next.slots[id] = cloneSlot(s)
	}
	for id, b := range st.bookings {
		next.bookings[id] = cloneBooking(b)
	}
	for id, s := range st.subs {
		next.subs[id] = cloneSub(s)
	}
	next.jobs = append(next.jobs, st.jobs...)
	return next
}

type fakeUoW struct {
	mu    sync.Mutex
	state *fakeState
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{state: newFakeState()}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	work := u.state.clone()
	if err := fn(ctx, &fakeTx{state: work}); err != nil {
		return err
	}
	u.state = work
	return nil
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db shared.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return &fakeReads{uow: u}
}

func (u *fakeUoW) addSlot(s *slot.Slot)              { u.state.slots[s.ID()] = s }
func (u *fakeUoW) addSub(s *pkgsub.Subscription)     { u.state.subs[s.ID()] = s }
func (u *fakeUoW) addBooking(b *booking.Booking)     { u.state.bookings[b.ID()] = b }

func (u *fakeUoW) slotByID(id uuid.UUID) *slot.Slot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.slots[id]
}

func (u *fakeUoW) bookingByID(id uuid.UUID) *booking.Booking {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.bookings[id]
}

func (u *fakeUoW) subByID(id uuid.UUID) *pkgsub.Subscription {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.subs[id]
}

func (u *fakeUoW) bookingCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.state.bookings)
}

func (u *fakeUoW) jobTopics() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	topics := make([]string, len(u.state.jobs))
	for i, j := range u.state.jobs {
		topics[i] = j.Topic
	}
	return topics
}

type fakeReads struct {
	uow *fakeUoW
}

func (r *fakeReads) SlotByID(_ context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	s := r.uow.slotByID(id)
	if s == nil {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return &shared.SlotSnapshot{
		ID:                s.ID(),
		TenantID:          s.TenantID(),
		OriginalCapacity:  s.OriginalCapacity(),
		AvailableCapacity: s.AvailableCapacity(),
		BookedCount:       s.BookedCount(),
		IsAvailable:       s.IsAvailable(),
		StartsAt:          s.StartsAt(),
	}, nil
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Slots() shared.SlotRepository            { return &fakeSlotRepo{state: t.state} }
func (t *fakeTx) Bookings() shared.BookingRepository      { return &fakeBookingRepo{state: t.state} }
func (t *fakeTx) Packages() shared.PackageRepository      { return &fakePackageRepo{state: t.state} }
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{state: t.state}
}
func (t *fakeTx) DB() shared.DBTX { return nil }

type fakeSlotRepo struct {
	state *fakeState
}

func (r *fakeSlotRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	s, ok := r.state.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return s, nil
}

func (r *fakeSlotRepo) FindManyForUpdate(_ context.Context, ids []uuid.UUID) ([]*slot.Slot, error) {
	ordered := make([]uuid.UUID, len(ids))
	copy(ordered, ids)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].String() < ordered[j].String() })

	slots := make([]*slot.Slot, 0, len(ordered))
	for _, id := range ordered {
		s, ok := r.state.slots[id]
		if !ok {
			return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func (r *fakeSlotRepo) ApplyCounters(_ context.Context, s *slot.Slot) error {
	if err := s.CheckInvariant(); err != nil {
		return infra.WrapRepoErr("counter guard violated", err, infra.KindGuardViolated)
	}
	r.state.slots[s.ID()] = s
	return nil
}

type fakeBookingRepo struct {
	state *fakeState
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	r.state.bookings[b.ID()] = b
	return b.ID(), nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.state.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.state.bookings[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.state.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.state.bookings[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	delete(r.state.bookings, id)
	return nil
}

type fakePackageRepo struct {
	state *fakeState
}

func (r *fakePackageRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*pkgsub.Subscription, error) {
	s, ok := r.state.subs[id]
	if !ok {
		return nil, infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return s, nil
}

func (r *fakePackageRepo) AdjustBalance(_ context.Context, id uuid.UUID, delta int32) error {
	s, ok := r.state.subs[id]
	if !ok {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	next := s.RemainingQty() + delta
	if next < 0 {
		return infra.WrapRepoErr("balance guard violated", nil, infra.KindGuardViolated)
	}
	r.state.subs[id] = pkgsub.ReconstructSubscription(
		s.ID(), s.TenantID(), s.CustomerID(), s.ServiceID(),
		next, s.CreatedAt(), time.Now(),
	)
	return nil
}

type fakeNotificationRepo struct {
	state *fakeState
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.state.jobs = append(r.state.jobs, fakeJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type fakeHoldStore struct {
	mu    sync.Mutex
	holds map[uuid.UUID]hold.Hold
}

func newFakeHoldStore() *fakeHoldStore {
	return &fakeHoldStore{holds: make(map[uuid.UUID]hold.Hold)}
}

func (s *fakeHoldStore) Put(_ context.Context, h hold.Hold, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holds[h.ID] = h
	return nil
}

func (s *fakeHoldStore) Get(_ context.Context, id uuid.UUID) (*hold.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.holds[id]
	if !ok {
		return nil, infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return &h, nil
}

func (s *fakeHoldStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holds, id)
	return nil
}

func (s *fakeHoldStore) contains(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.holds[id]
	return ok
}

// Read side backed directly by the committed fake state.
type fakeBookingQueries struct {
	uow *fakeUoW
}

func (q *fakeBookingQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b := q.uow.bookingByID(id)
	if b == nil {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	var guestName *string
	if g := b.Guest(); g != nil {
		guestName = &g.Name
	}
	var startsAt time.Time
	if s := q.uow.slotByID(b.SlotID()); s != nil {
		startsAt = s.StartsAt()
	}
	return &queries.BookingView{
		ID:             b.ID(),
		TenantID:       b.TenantID(),
		ServiceID:      b.ServiceID(),
		SlotID:         b.SlotID(),
		SlotStartsAt:   startsAt,
		CustomerID:     b.CustomerID(),
		GuestName:      guestName,
		AdultCount:     b.AdultCount(),
		ChildCount:     b.ChildCount(),
		VisitorCount:   b.VisitorCount(),
		CoveredQty:     b.CoveredQty(),
		PaidQty:        b.PaidQty(),
		SubscriptionID: b.SubscriptionID(),
		Status:         b.Status().String(),
		PaymentStatus:  b.PaymentStatus().String(),
		CheckedInAt:    b.CheckedInAt(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}, nil
}

func (q *fakeBookingQueries) ListBySlot(_ context.Context, slotID uuid.UUID) ([]*queries.BookingListItem, error) {
	q.uow.mu.Lock()
	defer q.uow.mu.Unlock()
	var items []*queries.BookingListItem
	for _, b := range q.uow.state.bookings {
		if b.SlotID() != slotID {
			continue
		}
		var guestName *string
		if g := b.Guest(); g != nil {
			guestName = &g.Name
		}
		items = append(items, &queries.BookingListItem{
			ID:            b.ID(),
			SlotID:        b.SlotID(),
			CustomerID:    b.CustomerID(),
			GuestName:     guestName,
			VisitorCount:  b.VisitorCount(),
			Status:        b.Status().String(),
			PaymentStatus: b.PaymentStatus().String(),
			CreatedAt:     b.CreatedAt(),
		})
	}
	return items, nil
}
