package http

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

const subjectKey = "subject"

// RequireToken rejects requests without a valid bearer token before any
// handler runs and stores the token subject for Subject.
func RequireToken(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			writeErrorStatusFor(c, fmt.Errorf("%w: authorization header required", common.ErrorUnauthorized))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], strings.TrimSpace(common.TokenPrefix)) || parts[1] == "" {
			writeErrorStatusFor(c, fmt.Errorf("%w: bearer token required", common.ErrorUnauthorized))
			return
		}

		subject, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			writeErrorStatusFor(c, err)
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// Subject returns the email of the authenticated caller, or "".
func Subject(c *gin.Context) string {
	return c.GetString(subjectKey)
}

func writeErrorStatusFor(c *gin.Context, err error) {
	writeErrorStatus(c, statusFor(common.KindOf(err)), err.Error())
}
