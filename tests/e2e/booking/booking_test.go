//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	"bookcore/internal/handler/dto/response"
	"bookcore/internal/handler/middleware"
	"bookcore/tests/common/authtest"
	"bookcore/tests/common/dbtest"
	"bookcore/tests/common/httptest"
	"bookcore/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL = "/api/bookings"
	holdsURL    = "/api/holds"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type actor struct {
	tenantID  uuid.UUID
	userID    uuid.UUID
	sessionID string
	token     string
}

func (s *BookingSuite) newActor(t *testing.T, role string) actor {
	t.Helper()
	a := actor{
		tenantID:  uuid.New(),
		userID:    uuid.New(),
		sessionID: uuid.NewString(),
	}
	jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
	a.token = jwtHelper.GenerateToken(t, a.userID, a.tenantID, role, a.sessionID)
	return a
}

func (s *BookingSuite) createBookingBody(slotID uuid.UUID, customerID uuid.UUID, visitors int32) map[string]any {
	return map[string]any{
		"service_id":    uuid.New().String(),
		"slot_id":       slotID.String(),
		"customer_id":   customerID.String(),
		"adult_count":   visitors,
		"child_count":   0,
		"visitor_count": visitors,
	}
}

// =============================================================================
// TestBookingLifecycle - full admit/confirm/check-in/cancel flow
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: booking walks the full lifecycle", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		customerID := uuid.New()
		serviceID := uuid.New()
		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))

		body := s.createBookingBody(slotID, customerID, 3)
		body["service_id"] = serviceID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, a.token)
		require.Equal(t, http.StatusCreated, w.Code, "Should create booking: %s", w.Body.String())

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		expected := &response.BookingResponse{
			TenantID:      a.tenantID,
			ServiceID:     serviceID,
			SlotID:        slotID,
			CustomerID:    &customerID,
			AdultCount:    3,
			VisitorCount:  3,
			PaidQty:       3,
			Status:        "pending",
			PaymentStatus: "unpaid",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "SlotStartsAt", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}

		available, booked := dbtest.SlotCounters(t, s.DB, slotID)
		require.Equal(t, int32(7), available)
		require.Equal(t, int32(3), booked)

		bookingURL := bookingsURL + "/" + created.ID.String()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/confirm", nil, a.token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/check-in", nil, a.token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL, nil, a.token)
		require.Equal(t, http.StatusOK, w.Code)
		var fetched response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &fetched))
		require.Equal(t, "checked_in", fetched.Status)
		require.NotNil(t, fetched.CheckedInAt)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/cancel", nil, a.token)
		require.Equal(t, http.StatusNoContent, w.Code)

		available, booked = dbtest.SlotCounters(t, s.DB, slotID)
		require.Equal(t, int32(10), available, "Cancel should return capacity")
		require.Equal(t, int32(0), booked)
	})

	s.Run("Error case: overbooking is rejected with 409", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 2, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(slotID, uuid.New(), 3), a.token)
		require.Equal(t, http.StatusConflict, w.Code)

		available, booked := dbtest.SlotCounters(t, s.DB, slotID)
		require.Equal(t, int32(2), available, "Failed admit must not touch counters")
		require.Equal(t, int32(0), booked)
	})

	s.Run("Error case: foreign tenant slot is rejected with 403", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		slotID := dbtest.CreateTestSlot(t, s.DB, uuid.New(), 10, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(slotID, uuid.New(), 1), a.token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: unauthenticated request is rejected with 401", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(uuid.New(), uuid.New(), 1), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: expired token is rejected with 401", func() {
		t := s.T()
		jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
		expired := jwtHelper.CreateExpiredToken(t, uuid.New(), uuid.New(), middleware.RoleStaff)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(uuid.New(), uuid.New(), 1), expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestHoldFlow - advisory hold placement and redemption
// =============================================================================

func (s *BookingSuite) TestHoldFlow() {
	s.Run("Normal case: hold is redeemed into a booking", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL,
			map[string]any{"slot_id": slotID.String(), "quantity": 2}, a.token)
		require.Equal(t, http.StatusCreated, w.Code, "Should create hold: %s", w.Body.String())

		var hold response.HoldResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &hold))
		require.Equal(t, int32(2), hold.Quantity)

		// Holds are advisory and must not move counters.
		available, _ := dbtest.SlotCounters(t, s.DB, slotID)
		require.Equal(t, int32(10), available)

		body := s.createBookingBody(slotID, uuid.New(), 2)
		body["hold_id"] = hold.ID.String()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, a.token)
		require.Equal(t, http.StatusCreated, w.Code, "Should redeem hold: %s", w.Body.String())

		available, booked := dbtest.SlotCounters(t, s.DB, slotID)
		require.Equal(t, int32(8), available)
		require.Equal(t, int32(2), booked)
	})

	s.Run("Error case: hold from another session is rejected with 409", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		other := s.newActor(t, middleware.RoleStaff)
		other.tenantID = a.tenantID
		jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
		other.token = jwtHelper.GenerateToken(t, other.userID, a.tenantID, middleware.RoleStaff, other.sessionID)

		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL,
			map[string]any{"slot_id": slotID.String(), "quantity": 2}, a.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var hold response.HoldResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &hold))

		body := s.createBookingBody(slotID, uuid.New(), 2)
		body["hold_id"] = hold.ID.String()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, other.token)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Normal case: released hold is gone", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL,
			map[string]any{"slot_id": slotID.String(), "quantity": 1}, a.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var hold response.HoldResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &hold))

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, holdsURL+"/"+hold.ID.String(), nil, a.token)
		require.Equal(t, http.StatusNoContent, w.Code)

		body := s.createBookingBody(slotID, uuid.New(), 1)
		body["hold_id"] = hold.ID.String()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, a.token)
		require.Equal(t, http.StatusConflict, w.Code, "Redeeming a released hold must fail")
	})
}

// =============================================================================
// TestPackageCoverage - subscription-backed bookings and balances
// =============================================================================

func (s *BookingSuite) TestPackageCoverage() {
	s.Run("Normal case: coverage debits and cancel refunds the balance", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		customerID := uuid.New()
		serviceID := uuid.New()
		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))
		subID := dbtest.CreateTestSubscription(t, s.DB, a.tenantID, customerID, serviceID, 5)

		body := map[string]any{
			"service_id":              serviceID.String(),
			"slot_id":                 slotID.String(),
			"customer_id":             customerID.String(),
			"adult_count":             3,
			"child_count":             0,
			"visitor_count":           3,
			"package_covered_qty":     2,
			"package_subscription_id": subID.String(),
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, a.token)
		require.Equal(t, http.StatusCreated, w.Code, "Should create covered booking: %s", w.Body.String())

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, int32(2), created.CoveredQty)
		require.Equal(t, int32(1), created.PaidQty)
		require.Equal(t, int32(3), dbtest.RemainingQty(t, s.DB, subID))

		balanceURL := "/api/customers/" + customerID.String() + "/balances/" + serviceID.String()
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, balanceURL, nil, a.token)
		require.Equal(t, http.StatusOK, w.Code)
		var balance response.BalanceResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &balance))
		require.Equal(t, int32(3), balance.RemainingQty)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/cancel", nil, a.token)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, int32(5), dbtest.RemainingQty(t, s.DB, subID), "Cancel should refund coverage")
	})

	s.Run("Error case: insufficient balance leaves nothing behind", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		customerID := uuid.New()
		serviceID := uuid.New()
		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))
		subID := dbtest.CreateTestSubscription(t, s.DB, a.tenantID, customerID, serviceID, 1)

		body := map[string]any{
			"service_id":              serviceID.String(),
			"slot_id":                 slotID.String(),
			"customer_id":             customerID.String(),
			"adult_count":             2,
			"child_count":             0,
			"visitor_count":           2,
			"package_covered_qty":     2,
			"package_subscription_id": subID.String(),
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, a.token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		available, _ := dbtest.SlotCounters(t, s.DB, slotID)
		require.Equal(t, int32(10), available)
		require.Equal(t, int32(1), dbtest.RemainingQty(t, s.DB, subID))
	})
}

// =============================================================================
// TestReschedule - moving bookings between slots
// =============================================================================

func (s *BookingSuite) TestReschedule() {
	s.Run("Normal case: capacity follows the booking", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		oldSlotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))
		newSlotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(48*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(oldSlotID, uuid.New(), 3), a.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/reschedule",
			map[string]any{"new_slot_id": newSlotID.String()}, a.token)
		require.Equal(t, http.StatusOK, w.Code, "Should reschedule: %s", w.Body.String())

		var moved response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &moved))
		require.Equal(t, newSlotID, moved.SlotID)

		oldAvailable, _ := dbtest.SlotCounters(t, s.DB, oldSlotID)
		newAvailable, _ := dbtest.SlotCounters(t, s.DB, newSlotID)
		require.Equal(t, int32(10), oldAvailable)
		require.Equal(t, int32(7), newAvailable)
	})

	s.Run("Error case: full target leaves both slots unchanged", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		oldSlotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))
		fullSlotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 1, time.Now().Add(48*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(fullSlotID, uuid.New(), 1), a.token)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(oldSlotID, uuid.New(), 3), a.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/reschedule",
			map[string]any{"new_slot_id": fullSlotID.String()}, a.token)
		require.Equal(t, http.StatusConflict, w.Code)

		oldAvailable, _ := dbtest.SlotCounters(t, s.DB, oldSlotID)
		require.Equal(t, int32(7), oldAvailable)
	})
}

// =============================================================================
// TestPaymentAndDelete - payment transitions and privileged delete
// =============================================================================

func (s *BookingSuite) TestPaymentAndDelete() {
	s.Run("Normal case: payment walks unpaid to refunded", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(slotID, uuid.New(), 1), a.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		paymentURL := bookingsURL + "/" + created.ID.String() + "/payment-status"
		for _, status := range []string{"awaiting_payment", "paid", "refunded"} {
			w = httptest.PerformRequest(t, s.Router, http.MethodPatch, paymentURL,
				map[string]any{"payment_status": status}, a.token)
			require.Equal(t, http.StatusNoContent, w.Code, "Transition to %s should succeed", status)
		}

		// Refunded is terminal.
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, paymentURL,
			map[string]any{"payment_status": "paid"}, a.token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("Error case: staff cannot delete bookings", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		slotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 10, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(slotID, uuid.New(), 1), a.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete,
			bookingsURL+"/"+created.ID.String(), nil, a.token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Normal case: manager deletes and capacity returns", func() {
		t := s.T()
		staff := s.newActor(t, middleware.RoleStaff)
		manager := s.newActor(t, middleware.RoleManager)
		jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
		manager.token = jwtHelper.GenerateToken(t, manager.userID, staff.tenantID, middleware.RoleManager, manager.sessionID)

		slotID := dbtest.CreateTestSlot(t, s.DB, staff.tenantID, 10, time.Now().Add(24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(slotID, uuid.New(), 2), staff.token)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete,
			bookingsURL+"/"+created.ID.String(), nil, manager.token)
		require.Equal(t, http.StatusNoContent, w.Code)

		available, _ := dbtest.SlotCounters(t, s.DB, slotID)
		require.Equal(t, int32(10), available)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+created.ID.String(), nil, manager.token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestBulkBooking - one visitor per slot, all or nothing
// =============================================================================

func (s *BookingSuite) TestBulkBooking() {
	s.Run("Normal case: one booking per slot", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		slotIDs := []uuid.UUID{
			dbtest.CreateTestSlot(t, s.DB, a.tenantID, 1, time.Now().Add(24*time.Hour)),
			dbtest.CreateTestSlot(t, s.DB, a.tenantID, 1, time.Now().Add(48*time.Hour)),
		}

		body := map[string]any{
			"service_id":  uuid.New().String(),
			"slot_ids":    []string{slotIDs[0].String(), slotIDs[1].String()},
			"customer_id": uuid.New().String(),
			"adult_count": 2,
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/bulk", body, a.token)
		require.Equal(t, http.StatusCreated, w.Code, "Should create bulk bookings: %s", w.Body.String())

		var created response.BulkBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Len(t, created.BookingIDs, 2)

		for _, slotID := range slotIDs {
			available, booked := dbtest.SlotCounters(t, s.DB, slotID)
			require.Equal(t, int32(0), available)
			require.Equal(t, int32(1), booked)
		}
	})

	s.Run("Error case: one full slot rolls back the whole batch", func() {
		t := s.T()
		a := s.newActor(t, middleware.RoleStaff)
		openSlotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 1, time.Now().Add(24*time.Hour))
		fullSlotID := dbtest.CreateTestSlot(t, s.DB, a.tenantID, 1, time.Now().Add(48*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			s.createBookingBody(fullSlotID, uuid.New(), 1), a.token)
		require.Equal(t, http.StatusCreated, w.Code)

		body := map[string]any{
			"service_id":  uuid.New().String(),
			"slot_ids":    []string{openSlotID.String(), fullSlotID.String()},
			"customer_id": uuid.New().String(),
			"adult_count": 2,
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/bulk", body, a.token)
		require.Equal(t, http.StatusConflict, w.Code)

		available, _ := dbtest.SlotCounters(t, s.DB, openSlotID)
		require.Equal(t, int32(1), available, "Open slot must be untouched after rollback")
	})
}
