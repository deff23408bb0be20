package common

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
)

type Error struct {
	Msg string `json:"msg,omitempty"`
}

type Resp struct {
	Code  code.Code `json:"code"`
	Data  any       `json:"data,omitempty"`
	Error *Error    `json:"error,omitempty"`
}

// RespT is the typed envelope used when decoding replies from remote
// services.
type RespT[T any] struct {
	Code  code.Code `json:"code"`
	Data  T         `json:"data,omitempty"`
	Error *Error    `json:"error,omitempty"`
}

type PageReq struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

func (p *PageReq) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 || p.PageSize > 200 {
		p.PageSize = 20
	}
}

type PageResp[T any] struct {
	Items    T     `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	c, msg := code.From(err)
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	if msg == "" {
		msg = c.String()
	}
	ctx.JSON(http.StatusOK, &Resp{Code: c, Error: &Error{Msg: msg}})
}

// Reply collapses the usual (data, err) tail of a service call into one
// envelope write.
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ReplyOk(ctx, data...)
}
