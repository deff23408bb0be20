// Package tablestore talks to the hosted row-oriented table service the
// original deployment persists into. The client exposes the store's
// CRUD contract (insert, update-by-match, query-by-field, delete); the
// per-entity adapters in this package translate between the internal
// models and the store's row shapes so naming drift never leaks into
// the core.
package tablestore

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/RIPRED14/lotfiv7-sub001/internal/config"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
)

// Match is one column filter in the store's query syntax, e.g.
// {Field: "uuid", Expr: "eq.42f0..."}.
type Match struct {
	Field string
	Expr  string
}

func Eq(field string, value string) Match {
	return Match{Field: field, Expr: "eq." + value}
}

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	conf := config.Global().Store
	return NewClientWith(conf.Addr, conf.APIKey)
}

func NewClientWith(addr, apiKey string) *Client {
	c := resty.New().
		EnableTrace().
		SetBaseURL(addr).
		SetHeader("apikey", apiKey).
		SetHeader("Authorization", "Bearer "+apiKey)
	return &Client{http: c}
}

// Insert posts one row and decodes the stored representation (id, uuid
// and server defaults included) into `into`, a pointer to a row slice.
func (c *Client) Insert(ctx context.Context, table string, row any, into any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(row).
		SetResult(into).
		Post("/rest/v1/" + table)
	return c.check(ctx, "insert", table, resp, err)
}

// Update patches all rows matching `match` and decodes the updated rows
// into `into` when non-nil.
func (c *Client) Update(ctx context.Context, table string, match Match, patch any, into any) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam(match.Field, match.Expr).
		SetBody(patch)
	if into != nil {
		req.SetResult(into)
	}
	resp, err := req.Patch("/rest/v1/" + table)
	return c.check(ctx, "update", table, resp, err)
}

// Query reads rows matching every filter into `into`. An empty order is
// omitted. The returned total honours the service's exact row count,
// which may exceed len(rows) when the service pages the response.
func (c *Client) Query(ctx context.Context, table string, filters []Match, order string, into any) (int64, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "count=exact").
		SetResult(into)
	for _, f := range filters {
		req.SetQueryParam(f.Field, f.Expr)
	}
	if order != "" {
		req.SetQueryParam("order", order)
	}
	resp, err := req.Get("/rest/v1/" + table)
	if err := c.check(ctx, "query", table, resp, err); err != nil {
		return 0, err
	}
	return contentRangeTotal(resp.Header().Get("Content-Range")), nil
}

func (c *Client) Delete(ctx context.Context, table string, match Match) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(match.Field, match.Expr).
		Delete("/rest/v1/" + table)
	return c.check(ctx, "delete", table, resp, err)
}

func (c *Client) check(ctx context.Context, op, table string, resp *resty.Response, err error) error {
	if err != nil {
		logger.Errorf(ctx, "tablestore %s %s err: %+v", op, table, err)
		return code.RPCHttpErr.WithMsg(err.Error())
	}
	if resp.StatusCode() == http.StatusNotFound {
		return code.RecordNotFound
	}
	if resp.StatusCode() == http.StatusConflict {
		return code.DuplicateSampleNumber
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		logger.Errorf(ctx, "tablestore %s %s http code: %d body: %s",
			op, table, resp.StatusCode(), resp.String())
		return code.StoreUnavailable.WithMsgf("%s %s: status %d", op, table, resp.StatusCode())
	}
	return nil
}

// contentRangeTotal parses the "items 0-19/42" range header; -1 when
// the service did not count.
func contentRangeTotal(header string) int64 {
	idx := strings.LastIndex(header, "/")
	if idx < 0 || idx == len(header)-1 {
		return -1
	}
	total, err := strconv.ParseInt(header[idx+1:], 10, 64)
	if err != nil {
		return -1
	}
	return total
}
