//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"resource-booking/internal/domain/identity"
	"resource-booking/internal/handler/dto/response"
	"resource-booking/tests/common/dbtest"
	"resource-booking/tests/common/httptest"
	"resource-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) memberToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := s.JWT.GenerateToken(userID, identity.RoleMember)
	require.NoError(t, err)
	return token
}

func (s *BookingSuite) adminToken(t *testing.T) string {
	t.Helper()
	token, err := s.JWT.GenerateToken(uuid.New(), identity.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (s *BookingSuite) slot() (time.Time, time.Time) {
	start := time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour)
	return start, start.Add(2 * time.Hour)
}

func bookingBody(resourceID uuid.UUID, start, end time.Time, pmRef string) map[string]any {
	body := map[string]any{
		"resource_id": resourceID,
		"start_time":  start,
		"end_time":    end,
	}
	if pmRef != "" {
		body["payment_method_ref"] = pmRef
	}
	return body
}

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booking is confirmed and payment recorded", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio A", 5000)
		userID := uuid.New()
		start, end := s.slot()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, end, "pm_test_visa"), s.memberToken(t, userID))
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, resourceID, created.ResourceID)
		require.Equal(t, userID, created.UserID)
		require.Equal(t, "CONFIRMED", created.Status)
		require.Equal(t, int64(10000), created.AmountCents)
		require.NotEmpty(t, created.TransactionID)

		var paymentCount int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM payments WHERE booking_id = $1 AND transaction_id = $2",
			created.ID, created.TransactionID).Scan(&paymentCount)
		require.NoError(t, err)
		require.Equal(t, 1, paymentCount)

		// The payment method used for the charge gets cached
		var pmCount int
		err = s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM payment_methods WHERE ref = $1 AND user_id = $2",
			"pm_test_visa", userID).Scan(&pmCount)
		require.NoError(t, err)
		require.Equal(t, 1, pmCount)

		// Detail endpoint joins the payment back in
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+created.ID.String(), nil, s.memberToken(t, userID))
		require.Equal(t, http.StatusOK, dw.Code)

		var view response.BookingViewResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &view))
		require.Equal(t, created.ID, view.ID)
		require.Equal(t, "Studio A", view.ResourceName)
		require.NotNil(t, view.AmountCents)
		require.Equal(t, int64(10000), *view.AmountCents)
	})

	s.Run("Normal case: missing payment method returns a quote without persisting", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio B", 8000)
		start, end := s.slot()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, end, ""), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusAccepted, w.Code)

		var quote response.PaymentRequiredResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		require.True(t, quote.RequiresPaymentMethod)
		require.Equal(t, int64(16000), quote.AmountCents)

		var bookingCount int
		err := s.DB.QueryRow(context.Background(), "SELECT count(*) FROM bookings").Scan(&bookingCount)
		require.NoError(t, err)
		require.Zero(t, bookingCount)
	})

	s.Run("Error case: overlapping slot is rejected", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio C", 5000)
		start, end := s.slot()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, end, "pm_test_visa"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code)

		// Different user, same slot
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start.Add(time.Hour), end.Add(time.Hour), "pm_test_visa"),
			s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Normal case: back-to-back slots share a boundary without conflict", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio D", 5000)
		start, end := s.slot()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, end, "pm_test_visa"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, end, end.Add(time.Hour), "pm_test_visa"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code)
	})

	s.Run("Error case: declined card returns 402 and persists nothing", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio E", 5000)
		start, end := s.slot()

		s.Gateway.DeclineAll = true
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, end, "pm_test_visa"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusPaymentRequired, w.Code)

		var bookingCount int
		err := s.DB.QueryRow(context.Background(), "SELECT count(*) FROM bookings").Scan(&bookingCount)
		require.NoError(t, err)
		require.Zero(t, bookingCount)
	})

	s.Run("Error case: past slot is rejected", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio F", 5000)
		start := time.Now().UTC().Add(-48 * time.Hour)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, start.Add(time.Hour), "pm_test_visa"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: request without token is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(uuid.New(), time.Now(), time.Now().Add(time.Hour), "pm_test_visa"), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// The overlap invariant is enforced by the database, so concurrent
// requests for the same slot must produce exactly one winner regardless
// of how the advisory checks interleave. Every charge that lost the race
// must be refunded.
func (s *BookingSuite) TestConcurrentBookingSingleWinner() {
	s.Run("exactly one of many concurrent requests wins", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Contended Room", 5000)
		start, end := s.slot()

		const attempts = 8
		statuses := make([]int, attempts)

		var wg sync.WaitGroup
		for i := range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				token := s.memberToken(t, uuid.New())
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
					bookingBody(resourceID, start, end, fmt.Sprintf("pm_test_%d", i)), token)
				statuses[i] = w.Code
			}()
		}
		wg.Wait()

		var won, conflicted int
		for _, code := range statuses {
			switch code {
			case http.StatusCreated:
				won++
			case http.StatusConflict:
				conflicted++
			default:
				t.Errorf("unexpected status %d", code)
			}
		}
		require.Equal(t, 1, won)
		require.Equal(t, attempts-1, conflicted)

		var bookingCount int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM bookings WHERE resource_id = $1 AND status = 'CONFIRMED'", resourceID).Scan(&bookingCount)
		require.NoError(t, err)
		require.Equal(t, 1, bookingCount)

		// Exactly one charge kept its money; every other charge was refunded.
		require.Equal(t, s.Gateway.ChargeCount()-1, len(s.Gateway.Refunds()))
	})
}

func (s *BookingSuite) TestUpdateBookingStatus() {
	s.Run("Normal case: admin cancels a confirmed booking", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio G", 5000)
		userID := uuid.New()
		start, end := s.slot()
		bookingID := dbtest.CreateTestBooking(t, s.DB, resourceID, userID, start, end, "CONFIRMED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "CANCELED", "reason": "guest request"}, s.adminToken(t))
		require.Equal(t, http.StatusOK, w.Code)

		var dbStatus string
		err := s.DB.QueryRow(context.Background(),
			"SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&dbStatus)
		require.NoError(t, err)
		require.Equal(t, "CANCELED", dbStatus)
	})

	s.Run("Error case: canceled booking cannot be reconfirmed", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio H", 5000)
		start, end := s.slot()
		bookingID := dbtest.CreateTestBooking(t, s.DB, resourceID, uuid.New(), start, end, "CANCELED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "CONFIRMED"}, s.adminToken(t))
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Error case: member cannot change booking status", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio I", 5000)
		start, end := s.slot()
		bookingID := dbtest.CreateTestBooking(t, s.DB, resourceID, uuid.New(), start, end, "CONFIRMED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "CANCELED"}, s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Normal case: canceled slot becomes bookable again", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio J", 5000)
		start, end := s.slot()
		bookingID := dbtest.CreateTestBooking(t, s.DB, resourceID, uuid.New(), start, end, "CONFIRMED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+bookingID.String()+"/status",
			map[string]any{"status": "CANCELED"}, s.adminToken(t))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, end, "pm_test_visa"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code)
	})
}

func (s *BookingSuite) TestRefundBooking() {
	s.Run("Normal case: admin refunds a booking in full", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio K", 5000)
		userID := uuid.New()
		start, end := s.slot()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, end, "pm_test_visa"), s.memberToken(t, userID))
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/refund", nil, s.adminToken(t))
		require.Equal(t, http.StatusOK, rw.Code)

		var refund response.RefundResponse
		require.NoError(t, httptest.DecodeResponseBody(t, rw.Body, &refund))
		require.Equal(t, int64(10000), refund.AmountCents)
		require.Contains(t, s.Gateway.Refunds(), created.TransactionID)

		var refundCount int
		err := s.DB.QueryRow(context.Background(), "SELECT count(*) FROM refunds").Scan(&refundCount)
		require.NoError(t, err)
		require.Equal(t, 1, refundCount)
	})

	s.Run("Error case: refund exceeding the paid amount is rejected", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Studio L", 5000)
		start, end := s.slot()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(resourceID, start, end, "pm_test_visa"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.ID.String()+"/refund",
			map[string]any{"amount_cents": 999999}, s.adminToken(t))
		require.Equal(t, http.StatusBadRequest, rw.Code)
	})
}
