//go:build e2e

package availability_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
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

const availabilityURL = "/api/availability"

type AvailabilitySuite struct {
	e2e.SharedSuite
}

func TestAvailabilitySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AvailabilitySuite))
}

func (s *AvailabilitySuite) token(t *testing.T, role identity.Role) string {
	t.Helper()
	token, err := s.JWT.GenerateToken(uuid.New(), role)
	require.NoError(t, err)
	return token
}

func (s *AvailabilitySuite) day() time.Time {
	return time.Now().UTC().AddDate(0, 0, 2).Truncate(24 * time.Hour)
}

func windowBody(resourceID uuid.UUID, start, end time.Time) map[string]any {
	return map[string]any{
		"resource_id": resourceID,
		"start_time":  start,
		"end_time":    end,
	}
}

func (s *AvailabilitySuite) TestWindowManagement() {
	s.Run("Normal case: admin declares and removes a window", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 1", 5000)
		day := s.day()
		admin := s.token(t, identity.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, availabilityURL,
			windowBody(resourceID, day.Add(9*time.Hour), day.Add(18*time.Hour)), admin)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.WindowResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEqual(t, uuid.Nil, created.ID)

		dw := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			availabilityURL+"/"+created.ID.String(), nil, admin)
		require.Equal(t, http.StatusNoContent, dw.Code)
	})

	s.Run("Error case: overlapping window is rejected", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 2", 5000)
		day := s.day()
		admin := s.token(t, identity.RoleAdmin)
		dbtest.CreateTestWindow(t, s.DB, resourceID, day.Add(9*time.Hour), day.Add(18*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, availabilityURL,
			windowBody(resourceID, day.Add(17*time.Hour), day.Add(20*time.Hour)), admin)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Normal case: adjacent window sharing an endpoint is accepted", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 3", 5000)
		day := s.day()
		admin := s.token(t, identity.RoleAdmin)
		dbtest.CreateTestWindow(t, s.DB, resourceID, day.Add(9*time.Hour), day.Add(12*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, availabilityURL,
			windowBody(resourceID, day.Add(12*time.Hour), day.Add(18*time.Hour)), admin)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	s.Run("Error case: storage rejects overlapping windows behind the API's back", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 7", 5000)
		day := s.day()
		dbtest.CreateTestWindow(t, s.DB, resourceID, day.Add(9*time.Hour), day.Add(18*time.Hour))

		_, err := s.DB.Exec(context.Background(),
			"INSERT INTO availability_windows (resource_id, start_time, end_time) VALUES ($1, $2, $3)",
			resourceID, day.Add(17*time.Hour), day.Add(20*time.Hour))
		require.Error(t, err)
		require.Contains(t, err.Error(), "availability_windows_no_overlap")
	})

	s.Run("Error case: member cannot declare windows", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 4", 5000)
		day := s.day()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, availabilityURL,
			windowBody(resourceID, day.Add(9*time.Hour), day.Add(18*time.Hour)), s.token(t, identity.RoleMember))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func (s *AvailabilitySuite) TestCheckAvailability() {
	s.Run("Normal case: free slot reports a quote", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 5", 5000)
		day := s.day()
		member := s.token(t, identity.RoleMember)

		path := fmt.Sprintf("%s/check?resource_id=%s&start_time=%s&end_time=%s",
			availabilityURL, resourceID,
			url.QueryEscape(day.Add(10*time.Hour).Format(time.RFC3339)),
			url.QueryEscape(day.Add(12*time.Hour).Format(time.RFC3339)))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, member)
		require.Equal(t, http.StatusOK, w.Code)

		var check response.AvailabilityCheckResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &check))
		require.True(t, check.Free)
		require.Empty(t, check.Conflicts)
		require.Equal(t, int64(10000), check.QuoteCents)
	})

	s.Run("Normal case: existing booking surfaces as a conflict", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 6", 5000)
		day := s.day()
		member := s.token(t, identity.RoleMember)
		bookingID := dbtest.CreateTestBooking(t, s.DB, resourceID, uuid.New(),
			day.Add(10*time.Hour), day.Add(12*time.Hour), "CONFIRMED")

		path := fmt.Sprintf("%s/check?resource_id=%s&start_time=%s&end_time=%s",
			availabilityURL, resourceID,
			url.QueryEscape(day.Add(11*time.Hour).Format(time.RFC3339)),
			url.QueryEscape(day.Add(13*time.Hour).Format(time.RFC3339)))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, member)
		require.Equal(t, http.StatusOK, w.Code)

		var check response.AvailabilityCheckResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &check))
		require.False(t, check.Free)
		require.Len(t, check.Conflicts, 1)
		require.Equal(t, bookingID, check.Conflicts[0].BookingID)
	})
}

func (s *AvailabilitySuite) TestGetFreeSlots() {
	s.Run("Normal case: slots exclude booked ranges", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 7", 5000)
		day := s.day()
		member := s.token(t, identity.RoleMember)
		dbtest.CreateTestWindow(t, s.DB, resourceID, day.Add(9*time.Hour), day.Add(18*time.Hour))
		dbtest.CreateTestBooking(t, s.DB, resourceID, uuid.New(),
			day.Add(12*time.Hour), day.Add(14*time.Hour), "CONFIRMED")

		path := fmt.Sprintf("%s/%s/slots?date=%s&duration=60",
			availabilityURL, resourceID, day.Format("2006-01-02"))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, member)
		require.Equal(t, http.StatusOK, w.Code)

		var slots []response.FreeSlotResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &slots))
		require.Len(t, slots, 7)
		for _, slot := range slots {
			require.Equal(t, int64(5000), slot.CostCents)
			require.False(t, slot.StartTime.Before(day.Add(14*time.Hour)) && day.Add(12*time.Hour).Before(slot.EndTime),
				"slot %v-%v overlaps the booking", slot.StartTime, slot.EndTime)
		}
	})

	s.Run("Normal case: canceled bookings do not block slots", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 8", 5000)
		day := s.day()
		member := s.token(t, identity.RoleMember)
		dbtest.CreateTestWindow(t, s.DB, resourceID, day.Add(9*time.Hour), day.Add(12*time.Hour))
		dbtest.CreateTestBooking(t, s.DB, resourceID, uuid.New(),
			day.Add(9*time.Hour), day.Add(11*time.Hour), "CANCELED")

		path := fmt.Sprintf("%s/%s/slots?date=%s&duration=60",
			availabilityURL, resourceID, day.Format("2006-01-02"))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, member)
		require.Equal(t, http.StatusOK, w.Code)

		var slots []response.FreeSlotResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &slots))
		require.Len(t, slots, 3)
	})
}

func (s *AvailabilitySuite) TestListWindows() {
	s.Run("Normal case: windows touching the day are listed", func() {
		t := s.T()

		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 9", 5000)
		day := s.day()
		member := s.token(t, identity.RoleMember)
		windowID := dbtest.CreateTestWindow(t, s.DB, resourceID, day.Add(9*time.Hour), day.Add(18*time.Hour))

		path := fmt.Sprintf("%s/%s/windows?date=%s", availabilityURL, resourceID, day.Format("2006-01-02"))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, member)
		require.Equal(t, http.StatusOK, w.Code)

		var windows []response.WindowResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &windows))
		require.Len(t, windows, 1)
		require.Equal(t, windowID, windows[0].ID)
	})
}
