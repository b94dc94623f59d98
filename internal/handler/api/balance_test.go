//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"bookcore/internal/handler/api"
	"bookcore/internal/handler/middleware"
	"bookcore/internal/usecase/queries"
	"bookcore/tests/common/httptest"
	queriesmock "bookcore/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BalanceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockBalances *queriesmock.MockBalanceQueries
	handler      *api.BalanceHandler
}

func (s *BalanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBalances = queriesmock.NewMockBalanceQueries(s.mockCtrl)
	s.handler = api.NewBalanceHandler(s.mockBalances)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("tenant_id", uuid.New())
		c.Set("user_role", middleware.RoleStaff)
		c.Next()
	}

	s.router.GET("/customers/:id/balances/:serviceID", authMiddleware, s.handler.GetBalance)
}

func (s *BalanceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBalanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(BalanceHandlerTestSuite))
}

func (s *BalanceHandlerTestSuite) TestGetBalance() {
	customerID := uuid.New()
	serviceID := uuid.New()
	url := "/customers/" + customerID.String() + "/balances/" + serviceID.String()

	s.Run("success: returns 200 OK with remaining balance", func() {
		view := &queries.BalanceView{
			SubscriptionID: uuid.New(),
			CustomerID:     customerID,
			ServiceID:      serviceID,
			RemainingQty:   7,
			UpdatedAt:      time.Now(),
		}
		s.mockBalances.EXPECT().RemainingBalance(gomock.Any(), customerID, serviceID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(float64(7), body["remaining_qty"])
	})

	s.Run("error: 404 when no subscription exists", func() {
		s.mockBalances.EXPECT().RemainingBalance(gomock.Any(), customerID, serviceID).
			Return(nil, errors.New("no rows")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 400 on malformed customer id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/customers/nope/balances/"+serviceID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}
