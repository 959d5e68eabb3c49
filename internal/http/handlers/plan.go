package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/planbridge-backend/internal/http/response"
	"github.com/yungbote/planbridge-backend/internal/platform/apierr"
	"github.com/yungbote/planbridge-backend/internal/services"
)

type PlanHandler struct {
	plans services.PlanService
	opts  response.Options
}

func NewPlanHandler(plans services.PlanService, opts response.Options) *PlanHandler {
	return &PlanHandler{plans: plans, opts: opts}
}

// POST /api/plans
func (h *PlanHandler) Create(c *gin.Context) {
	in, err := services.DecodePlan(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.RespondCodedError(c, http.StatusRequestEntityTooLarge, apierr.CodeValidation, "request body too large")
			return
		}
		response.RespondCoded(c, h.opts, apierr.Validation(err))
		return
	}

	rootID, err := h.plans.Ingest(c.Request.Context(), in)
	if err != nil {
		response.RespondCoded(c, h.opts, err)
		return
	}
	response.RespondOK(c, gin.H{"root_sujet_id": rootID})
}

// GET /api/schema
func (h *PlanHandler) Schema(c *gin.Context) {
	response.RespondOK(c, services.ExamplePlan())
}
