package login

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/internal/config"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/auth"
)

const tokenTTL = 12 * time.Hour

type Handle struct{}

func NewLogin() *Handle {
	return &Handle{}
}

type tokenReq struct {
	UserID string    `json:"user_id" binding:"required"`
	Name   string    `json:"name" binding:"required"`
	Role   auth.Role `json:"role" binding:"required"`
	Site   string    `json:"site"`
}

// Token issues a signed dev token. Production deployments mint tokens
// from the lab SSO gateway with the shared secret; this endpoint only
// answers in the dev environment.
func (h *Handle) Token(ctx *gin.Context) {
	if config.Global().Server.Env != "dev" {
		common.ReplyErr(ctx, code.PermissionDenied)
		return
	}

	req := &tokenReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	if req.Role != auth.RoleCoordinator && req.Role != auth.RoleTechnician {
		common.ReplyErr(ctx, code.ParamErr.WithMsgf("unknown role %q", req.Role))
		return
	}

	token, err := auth.IssueToken(&auth.Claims{
		UserID: req.UserID,
		Name:   req.Name,
		Role:   req.Role,
		Site:   req.Site,
	}, tokenTTL)
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	common.ReplyOk(ctx, gin.H{"access_token": token, "expires_in": int(tokenTTL.Seconds())})
}

// Me echoes the authenticated user's claims.
func (h *Handle) Me(ctx *gin.Context) {
	user := auth.GetCurrentUser(ctx)
	if user == nil {
		common.ReplyErr(ctx, code.UnLogin)
		return
	}
	common.ReplyOk(ctx, gin.H{
		"user_id": user.UserID,
		"name":    user.Name,
		"role":    user.Role,
		"site":    user.Site,
	})
}
