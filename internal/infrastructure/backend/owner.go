package backend

import (
	"context"
	"net/http"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

type accommodationBody struct {
	OwnerID      int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Number       string `json:"number"`
	Introduction string `json:"introduction"`
}

func (c *Client) OwnerAccommodations(ctx context.Context, token string, ownerID int64) ([]domain.Accommodation, error) {
	var out domain.List[domain.Accommodation]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/owner/accomodation/{ownerId}",
		path:   "/owner/accomodation/" + id(ownerID),
		token:  token,
		out:    &out,
	})
	return out.Items, err
}

func (c *Client) CreateAccommodation(ctx context.Context, token string, ownerID int64, in ports.AccommodationInput) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/owner/accomodation",
		path:   "/owner/accomodation",
		token:  token,
		body: accommodationBody{
			OwnerID:      ownerID,
			Name:         in.Name,
			Address:      in.Address,
			Number:       in.Number,
			Introduction: in.Introduction,
		},
	})
}

func (c *Client) UpdateAccommodation(ctx context.Context, token string, accommodationID int64, in ports.AccommodationInput) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/owner/accomodation/{id}",
		path:   "/owner/accomodation/" + id(accommodationID),
		token:  token,
		body: accommodationBody{
			Name:         in.Name,
			Address:      in.Address,
			Number:       in.Number,
			Introduction: in.Introduction,
		},
	})
}

func (c *Client) ListManagers(ctx context.Context, token string, ownerID int64, q ports.ListQuery) (domain.List[domain.Staff], error) {
	var out domain.List[domain.Staff]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/owner/managers/{ownerId}",
		path:   "/owner/managers/" + id(ownerID),
		query:  listQuery(q, true),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) ApproveManager(ctx context.Context, token string, managerID int64) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/owner/manager/auth/{id}",
		path:   "/owner/manager/auth/" + id(managerID),
		token:  token,
	})
}

func (c *Client) DenyManager(ctx context.Context, token string, managerID int64) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/owner/manager/deny/{id}",
		path:   "/owner/manager/deny/" + id(managerID),
		token:  token,
	})
}
