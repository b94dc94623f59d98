package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	resdto "bookcore/internal/handler/dto/response"
	"bookcore/internal/handler/httperr"
	"bookcore/internal/usecase/queries"
)

type BalanceHandler struct {
	balances queries.BalanceQueries
}

func NewBalanceHandler(balances queries.BalanceQueries) *BalanceHandler {
	return &BalanceHandler{balances: balances}
}

// @Summary Get remaining package balance
// @Description Remaining pre-purchased occurrences for a customer and service
// @Tags balances
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param serviceID path string true "Service ID"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /customers/{id}/balances/{serviceID} [get]
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceID"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.balances.RemainingBalance(c.Request.Context(), customerID, serviceID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBalanceView(view))
}
