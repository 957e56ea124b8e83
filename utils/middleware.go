package utils

import (
	"github.com/kataras/iris/v12"
)

// RequireAdmin guards mutating and admin-only routes. Missing or invalid
// sessions get 401, a valid session without the admin flag gets 403.
func (s *Sessions) RequireAdmin(ctx iris.Context) {
	claims, _, ok := s.FromRequest(ctx)
	if !ok {
		JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "admin session required")
		return
	}
	if !claims.IsAdmin {
		JSONError(ctx, iris.StatusForbidden, "forbidden", "admin access required")
		return
	}
	// Make the acting admin available to downstream handlers
	ctx.Values().Set("adminID", claims.ID)
	ctx.Next()
}

// AdminID returns the acting admin's user id set by RequireAdmin.
func AdminID(ctx iris.Context) uint {
	if v := ctx.Values().Get("adminID"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
