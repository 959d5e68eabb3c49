package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/planbridge-backend/internal/http/response"
	"github.com/yungbote/planbridge-backend/internal/services"
)

type FeedbackHandler struct {
	feedback services.FeedbackService
	opts     response.Options
}

func NewFeedbackHandler(feedback services.FeedbackService, opts response.Options) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, opts: opts}
}

// POST /api/feedback
func (h *FeedbackHandler) Create(c *gin.Context) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.RespondMessageError(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		response.RespondMessageError(c, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		response.RespondMessageError(c, http.StatusBadRequest, "Invalid JSON: unexpected data after top-level value")
		return
	}
	payload, ok := body.(map[string]any)
	if !ok {
		response.RespondMessageError(c, http.StatusBadRequest, "Invalid JSON: expected an object")
		return
	}

	id, err := h.feedback.Ingest(c.Request.Context(), payload)
	if err != nil {
		response.RespondMessage(c, h.opts, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Feedback saved", "id": id})
}
