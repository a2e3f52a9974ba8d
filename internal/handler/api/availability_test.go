//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"rental-booking/internal/handler/api"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/httptest"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	h := api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/api/availability/booked-dates", h.BookedDates)
	s.router.GET("/api/availability/options", h.Options)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestBookedDates() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().BookedDateRanges(gomock.Any()).Return([]queries.DateRangeView{
			{Start: "2026-10-20", End: "2026-10-22"},
			{Start: "2026-10-25", End: "2026-10-26"},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/booked-dates", nil, "")

		var body resdto.BookedDatesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Ranges, 2)
		s.Equal("2026-10-22", body.Ranges[0].End)
	})

	s.Run("success: empty calendar renders an empty list", func() {
		s.mockQueries.EXPECT().BookedDateRanges(gomock.Any()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/booked-dates", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq(`{"ranges":[]}`, rec.Body.String())
	})
}

func (s *AvailabilityHandlerTestSuite) TestOptions() {
	bbq, sauna := uuid.New(), uuid.New()

	s.Run("success: option ids are split and forwarded", func() {
		s.mockQueries.EXPECT().OptionAvailability(gomock.Any(), "2026-10-20", []uuid.UUID{bbq, sauna}).
			Return([]queries.OptionAvailabilityView{
				{OptionID: bbq, Name: "BBQ set", DailyLimit: 2, Remaining: 0, Available: false},
				{OptionID: sauna, Name: "Tent sauna", DailyLimit: 1, Remaining: 1, Available: true},
			}, nil).Times(1)

		url := "/api/availability/options?date=2026-10-20&optionIds=" + bbq.String() + ",%20" + sauna.String()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.OptionsAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2026-10-20", body.Date)
		s.Require().Len(body.Options, 2)
		s.False(body.Options[0].Available)
		s.Equal(1, body.Options[1].Remaining)
	})

	s.Run("success: no filter means every active option", func() {
		s.mockQueries.EXPECT().OptionAvailability(gomock.Any(), "2026-10-20", gomock.Nil()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/options?date=2026-10-20", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: malformed option id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/options?date=2026-10-20&optionIds=abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "comma separated UUIDs")
	})

	s.Run("error: bad date", func() {
		s.mockQueries.EXPECT().OptionAvailability(gomock.Any(), "20/10/2026", gomock.Any()).
			Return(nil, caldate.ErrMalformedDate).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/options?date=20/10/2026", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
