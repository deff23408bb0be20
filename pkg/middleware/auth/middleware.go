package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/utils"
)

const USERKEY = "AUTH_USER_KEY"

func abort(ctx *gin.Context, c code.Code) {
	ctx.JSON(http.StatusUnauthorized, &common.Resp{
		Code:  c,
		Error: &common.Error{Msg: c.String()},
	})
	ctx.Abort()
}

// Auth validates the bearer token from the Authorization header, the
// access_token cookie or query parameter, and stores the claims on the
// request context.
func Auth() func(ctx *gin.Context) {
	return func(ctx *gin.Context) {
		cookie, _ := ctx.Cookie("access_token")
		header := ctx.GetHeader("Authorization")
		queryToken := ctx.Query("access_token")
		raw := utils.Or(header, cookie, queryToken)
		if raw == "" {
			abort(ctx, code.UnLogin)
			return
		}
		token := raw
		if parts := strings.SplitN(raw, " ", 2); len(parts) == 2 {
			if !strings.EqualFold(parts[0], "Bearer") {
				abort(ctx, code.UnLogin)
				return
			}
			token = parts[1]
		}
		claims, err := ParseToken(token)
		if err != nil {
			logger.Warnf(ctx, "token validation failed: %+v", err)
			abort(ctx, code.UnLogin)
			return
		}
		ctx.Set(USERKEY, claims)
		ctx.Next()
	}
}

// RequireRole guards coordinator-only routes. It must run after Auth.
func RequireRole(roles ...Role) func(ctx *gin.Context) {
	return func(ctx *gin.Context) {
		user := GetCurrentUser(ctx)
		if user == nil {
			abort(ctx, code.UnLogin)
			return
		}
		for _, r := range roles {
			if user.Role == r {
				ctx.Next()
				return
			}
		}
		ctx.JSON(http.StatusForbidden, &common.Resp{
			Code:  code.PermissionDenied,
			Error: &common.Error{Msg: code.PermissionDenied.String()},
		})
		ctx.Abort()
	}
}

func GetCurrentUser(ctx context.Context) *Claims {
	gCtx, ok := ctx.(*gin.Context)
	if !ok {
		return nil
	}
	user, exists := gCtx.Get(USERKEY)
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
