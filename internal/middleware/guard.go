package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
	"github.com/chronic-risk-manager/community-health-frontend/internal/view"
)

// Guard gates every non-auth view behind session presence. The token is
// checked on each route evaluation, not at startup, so a session torn down
// by the 401 handler forces a redirect on the very next navigation.
func Guard(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if view.IsPublic(path) {
			c.Next()
			return
		}

		if store.Token() == "" {
			c.Redirect(http.StatusFound, view.Path(view.Login, 0))
			c.Abort()
			return
		}
		c.Next()
	}
}
