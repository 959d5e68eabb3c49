package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/planbridge-backend/internal/platform/apierr"
)

const hiddenDetail = "internal server error"

// MessageError is the flat {"error": "..."} body used by /api/feedback.
type MessageError struct {
	Error string `json:"error"`
}

// CodedError is the {"error": code, "detail": "..."} body used by /api/plans.
type CodedError struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Options control how much of an internal error reaches the client.
type Options struct {
	ExposeErrorDetail bool
}

func RespondMessageError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, MessageError{Error: msg})
}

func RespondCodedError(c *gin.Context, status int, code string, detail string) {
	c.AbortWithStatusJSON(status, CodedError{Error: code, Detail: detail})
}

// RespondMessage writes err as a MessageError. The error is attached to the
// gin context so the request logger records it.
func RespondMessage(c *gin.Context, opts Options, err error) {
	ae := apierr.From(err)
	_ = c.Error(err)
	RespondMessageError(c, ae.Status, detailFor(ae, opts))
}

// RespondCoded writes err as a CodedError. 5xx detail is hidden unless
// ExposeErrorDetail is set.
func RespondCoded(c *gin.Context, opts Options, err error) {
	ae := apierr.From(err)
	_ = c.Error(err)
	RespondCodedError(c, ae.Status, ae.Code, detailFor(ae, opts))
}

func detailFor(ae *apierr.Error, opts Options) string {
	if ae.Status >= http.StatusInternalServerError && !opts.ExposeErrorDetail {
		return hiddenDetail
	}
	return ae.Error()
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
