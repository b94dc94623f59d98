package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "bookcore/internal/handler/dto/request"
	resdto "bookcore/internal/handler/dto/response"
	"bookcore/internal/handler/httperr"
	"bookcore/internal/handler/middleware"
	"bookcore/internal/pkg/errs"
	"bookcore/internal/usecase/commands"
)

type HoldHandler struct {
	holds commands.HoldCommands
}

func NewHoldHandler(holds commands.HoldCommands) *HoldHandler {
	return &HoldHandler{holds: holds}
}

// @Summary Create hold
// @Description Place an advisory hold on slot capacity for the current session
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /holds [post]
func (h *HoldHandler) CreateHold(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("tenant missing from context"), "Unauthorized", nil)
		return
	}
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("session missing from context"), "Session identifier required", nil)
		return
	}

	var req reqdto.CreateHoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	hd, err := h.holds.Hold(c.Request.Context(), commands.HoldRequest{
		SlotID:    req.SlotID,
		TenantID:  tenantID,
		SessionID: sessionID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHold(hd))
}

// @Summary Release hold
// @Description Release a hold early; releasing an expired or missing hold succeeds
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /holds/{id} [delete]
func (h *HoldHandler) ReleaseHold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := h.holds.Release(c.Request.Context(), id); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
