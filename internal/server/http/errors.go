package http

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "internal server error"

// statusFor is the single mapping from error kind to HTTP status.
func statusFor(k common.Kind) int {
	switch k {
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindAlreadyExists:
		return http.StatusConflict
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError aborts the request with the status and body for err.
// Unexpected errors are logged and answered with a generic message.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	kind := common.KindOf(err)
	msg := err.Error()
	if kind == common.KindUnexpected {
		s.logger.Error(c.Request.Context(), "request failed", "error", err, "path", c.FullPath())
		msg = internalErrorMessage
	}
	writeErrorStatus(c, statusFor(kind), msg)
}

func writeErrorStatus(c *gin.Context, status int, msg string) {
	body := errorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   msg,
	}
	respond(c, status, body, body)
	c.Abort()
}
