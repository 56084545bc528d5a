package middleware

import (
	"github.com/gin-gonic/gin"

	"fishtrade-backend/internal/domains/user"
	"fishtrade-backend/internal/shared/response"
)

// RequirePermission gates a route group on one permission tag. Admins pass
// every check regardless of their stored set. The denial is uniform: the
// caller never learns whether the role, the set or the token was at fault.
func RequirePermission(perm user.Permission) gin.HandlerFunc {
	return requireAny(perm)
}

// RequireAnyPermission passes when the caller holds at least one of the
// given tags. Report reads accept daily_report as well as the channel
// dashboard tags.
func RequireAnyPermission(perms ...user.Permission) gin.HandlerFunc {
	return requireAny(perms...)
}

func requireAny(perms ...user.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, ok := c.Get(CtxRole)
		if !ok {
			denyNoAccess(c)
			return
		}
		role := user.Role(roleVal.(string))

		var granted []string
		if v, ok := c.Get(CtxPermissions); ok {
			granted, _ = v.([]string)
		}

		for _, perm := range perms {
			if user.Grants(role, granted, perm) {
				c.Next()
				return
			}
		}

		denyNoAccess(c)
	}
}

func denyNoAccess(c *gin.Context) {
	response.Forbidden(c, "No access, please contact the developer")
	c.Abort()
}
