// middleware/auth.go

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nmhung1294/INT3505E-02-demo/auth"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
)

// Authentication runs every request through the auth gate before it reaches
// a handler. Rejected requests are answered with the gate's status and a
// JSON message body and never reach the handler. Public paths pass through
// without a principal.
func Authentication(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := auth.Request{
			Path:          c.Request.URL.Path,
			Cookies:       make(map[string]string, len(c.Request.Cookies())),
			Authorization: c.GetHeader("Authorization"),
		}
		for _, cookie := range c.Request.Cookies() {
			req.Cookies[cookie.Name] = cookie.Value
		}

		user, err := gate.Authenticate(c.Request.Context(), req)
		if err != nil {
			var rej *auth.RejectionError
			if errors.As(err, &rej) {
				logger.Warn("Request rejected by auth gate",
					zap.String("reason", string(rej.Reason)),
					zap.String("path", req.Path),
					zap.Error(rej.Err))
				c.AbortWithStatusJSON(rej.Status, gin.H{"message": rej.Message})
				return
			}
			logger.Error("Authentication failed", zap.Error(err), zap.String("path", req.Path))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		if user != nil {
			c.Set("currentUser", user)
			c.Set("userID", user.ID)
		}

		c.Next()
	}
}
