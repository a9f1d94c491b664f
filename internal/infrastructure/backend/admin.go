package backend

import (
	"context"
	"net/http"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

func (c *Client) ListAccommodations(ctx context.Context, token string, q ports.ListQuery) (domain.List[domain.Accommodation], error) {
	var out domain.List[domain.Accommodation]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/admin/accomodations",
		path:   "/admin/accomodations",
		query:  listQuery(q, false),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) ListOwners(ctx context.Context, token string, q ports.ListQuery) (domain.List[domain.Staff], error) {
	var out domain.List[domain.Staff]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/admin/owners",
		path:   "/admin/owners",
		query:  listQuery(q, true),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) ApproveOwner(ctx context.Context, token string, ownerID int64) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/admin/owner/auth/{id}",
		path:   "/admin/owner/auth/" + id(ownerID),
		token:  token,
	})
}

func (c *Client) DenyOwner(ctx context.Context, token string, ownerID int64) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/admin/owner/deny/{id}",
		path:   "/admin/owner/deny/" + id(ownerID),
		token:  token,
	})
}
