package backend

import (
	"context"
	"net/http"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

type signupBody struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Gender bool   `json:"gender"`
	Job    string `json:"job"`
	Age    int    `json:"age"`
	MBTI   string `json:"mbti"`
	Region string `json:"region"`
}

type matchBody struct {
	PartyID int64 `json:"party_id"`
	UserID  int64 `json:"user_id_1"`
	PeerID  int64 `json:"user_id_2"`
}

func (c *Client) Signup(ctx context.Context, token string, in ports.SignupInput) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/user/signup",
		path:   "/user/signup",
		token:  token,
		body: signupBody{
			UserID: in.UserID,
			Name:   in.Name,
			Phone:  in.Phone,
			Gender: in.Gender,
			Job:    in.Job,
			Age:    in.Age,
			MBTI:   in.MBTI,
			Region: in.Region,
		},
	})
}

func (c *Client) Party(ctx context.Context, token string, partyID int64) (domain.Party, error) {
	var out domain.Party
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/user/party/{id}",
		path:   "/user/party/" + id(partyID),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) PartyUsers(ctx context.Context, token string, partyID int64) ([]domain.PartyMember, error) {
	var out domain.List[domain.PartyMember]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/user/partyInfo/{partyId}",
		path:   "/user/partyInfo/" + id(partyID),
		token:  token,
		out:    &out,
	})
	return out.Items, err
}

func (c *Client) SelectMatch(ctx context.Context, token string, sel domain.MatchSelection) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/user/match/select",
		path:   "/user/match/select",
		token:  token,
		body:   matchBody{PartyID: sel.PartyID, UserID: sel.UserID, PeerID: sel.TargetID},
	})
}
