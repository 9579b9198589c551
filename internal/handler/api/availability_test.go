//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"resource-booking/internal/domain/identity"
	"resource-booking/internal/handler/api"
	resdto "resource-booking/internal/handler/dto/response"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"
	"resource-booking/tests/common/builder"
	commonhttp "resource-booking/tests/common/httptest"
	commandsmock "resource-booking/tests/mock/commands"
	queriesmock "resource-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	availabilityCommands *commandsmock.MockAvailabilityCommands
	availabilityQueries  *queriesmock.MockAvailabilityQueries
	router               *gin.Engine
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.availabilityCommands = commandsmock.NewMockAvailabilityCommands(s.ctrl)
	s.availabilityQueries = queriesmock.NewMockAvailabilityQueries(s.ctrl)

	handler := api.NewAvailabilityHandler(s.availabilityCommands, s.availabilityQueries)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	authed := s.router.Group("/api", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_role", identity.RoleAdmin)
		c.Next()
	})
	authed.POST("/availability", handler.AddWindow)
	authed.DELETE("/availability/:id", handler.RemoveWindow)
	authed.GET("/availability/check", handler.CheckAvailability)
	authed.GET("/availability/:resourceId/slots", handler.GetFreeSlots)
	authed.GET("/availability/:resourceId/windows", handler.ListWindows)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestAddWindowCreated() {
	w := builder.NewWindowBuilder()
	created := w.BuildSnapshot()
	created.ID = uuid.New()

	s.availabilityCommands.EXPECT().
		AddWindow(gomock.Any(), commands.AddWindowParams{
			ResourceID:  w.ResourceID,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: true,
		}).
		Return(&created, nil)

	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/api/availability", map[string]any{
		"resource_id": w.ResourceID,
		"start_time":  w.StartTime,
		"end_time":    w.EndTime,
	}, "")

	var got resdto.WindowResponse
	commonhttp.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &got)
	s.Equal(created.ID, got.ID)
	s.True(got.IsAvailable)
}

func (s *AvailabilityHandlerTestSuite) TestAddWindowOverlapConflict() {
	w := builder.NewWindowBuilder()
	s.availabilityCommands.EXPECT().
		AddWindow(gomock.Any(), gomock.Any()).
		Return(nil, errs.ErrWindowOverlap)

	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/api/availability", map[string]any{
		"resource_id": w.ResourceID,
		"start_time":  w.StartTime,
		"end_time":    w.EndTime,
	}, "")

	commonhttp.AssertErrorResponse(s.T(), rec, http.StatusConflict, "overlaps")
}

func (s *AvailabilityHandlerTestSuite) TestRemoveWindowNoContent() {
	id := uuid.New()
	s.availabilityCommands.EXPECT().RemoveWindow(gomock.Any(), id).Return(nil)

	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/availability/"+id.String(), nil, "")

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *AvailabilityHandlerTestSuite) TestRemoveWindowNotFound() {
	id := uuid.New()
	s.availabilityCommands.EXPECT().RemoveWindow(gomock.Any(), id).Return(errs.ErrWindowNotFound)

	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/availability/"+id.String(), nil, "")

	commonhttp.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Window not found")
}

func (s *AvailabilityHandlerTestSuite) TestCheckAvailabilityOK() {
	resourceID := uuid.New()
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	s.availabilityQueries.EXPECT().
		CheckAvailability(gomock.Any(), resourceID, start, end).
		Return(&queries.AvailabilityCheck{
			Free:       true,
			Conflicts:  []queries.Conflict{},
			QuoteCents: 10000,
			Currency:   "usd",
		}, nil)

	path := fmt.Sprintf("/api/availability/check?resource_id=%s&start_time=%s&end_time=%s",
		resourceID,
		url.QueryEscape(start.Format(time.RFC3339)),
		url.QueryEscape(end.Format(time.RFC3339)))
	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")

	var got resdto.AvailabilityCheckResponse
	commonhttp.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
	s.True(got.Free)
	s.Equal(int64(10000), got.QuoteCents)
}

func (s *AvailabilityHandlerTestSuite) TestCheckAvailabilityMissingParams() {
	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/check", nil, "")

	commonhttp.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
}

func (s *AvailabilityHandlerTestSuite) TestGetFreeSlotsOK() {
	resourceID := uuid.New()
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	s.availabilityQueries.EXPECT().
		GetFreeSlots(gomock.Any(), resourceID, day, time.Hour).
		Return([]queries.FreeSlot{
			{StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour), CostCents: 5000},
		}, nil)

	path := fmt.Sprintf("/api/availability/%s/slots?date=2026-09-14&duration=60", resourceID)
	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")

	var got []resdto.FreeSlotResponse
	commonhttp.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
	s.Require().Len(got, 1)
	s.Equal(int64(5000), got[0].CostCents)
}

func (s *AvailabilityHandlerTestSuite) TestGetFreeSlotsBadDate() {
	resourceID := uuid.New()
	path := fmt.Sprintf("/api/availability/%s/slots?date=tomorrow&duration=60", resourceID)
	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")

	commonhttp.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date format")
}

func (s *AvailabilityHandlerTestSuite) TestListWindowsOK() {
	resourceID := uuid.New()
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	s.availabilityQueries.EXPECT().
		ListWindows(gomock.Any(), resourceID, day).
		Return([]queries.WindowView{
			{
				ID:          uuid.New(),
				ResourceID:  resourceID,
				StartTime:   day.Add(9 * time.Hour),
				EndTime:     day.Add(18 * time.Hour),
				IsAvailable: true,
			},
		}, nil)

	path := fmt.Sprintf("/api/availability/%s/windows?date=2026-09-14", resourceID)
	rec := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")

	var got []resdto.WindowResponse
	commonhttp.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
	s.Require().Len(got, 1)
	s.Equal(resourceID, got[0].ResourceID)
}
