package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"tumblecup_admin/pkg"
)

// HeaderAdminSecret carries the shared console secret.
const HeaderAdminSecret = "X-Admin-Secret"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid admin secret", http.StatusUnauthorized)

// AdminAuth gates the management endpoints behind the shared secret: an
// exact string comparison, no sessions, no per-user identity. That weakness
// is inherited from the console's access model and deliberately not dressed
// up as anything stronger.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(HeaderAdminSecret)
		if secret == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Next()
	}
}
