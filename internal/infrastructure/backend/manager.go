package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

type partyBody struct {
	AccommodationID int64  `json:"accomodation_id,omitempty"`
	PartyDate       string `json:"partyDate"`
	Number          int    `json:"number"`
	PartyOpen       bool   `json:"partyOpen"`
	PartyTime       string `json:"partyTime"`
}

type participantBody struct {
	PartyID int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Age     int    `json:"age"`
	Gender  bool   `json:"gender"`
	MBTI    string `json:"mbti"`
	Region  string `json:"region"`
}

type teamBody struct {
	Data []teamEntry `json:"data"`
}

type teamEntry struct {
	ID   int64 `json:"id"`
	Team int   `json:"team"`
}

func (c *Client) RegistrableAccommodations(ctx context.Context, token string) ([]domain.Accommodation, error) {
	var out domain.List[domain.Accommodation]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/manager/getAccomodation",
		path:   "/manager/getAccomodation",
		token:  token,
		out:    &out,
	})
	return out.Items, err
}

func (c *Client) ListParties(ctx context.Context, token string, accommodationID int64, q ports.ListQuery) (domain.List[domain.Party], error) {
	var out domain.List[domain.Party]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/manager/parties/{accommodationId}",
		path:   "/manager/parties/" + id(accommodationID),
		query:  listQuery(q, true),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) CreateParty(ctx context.Context, token string, in ports.PartyInput) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/manager/party",
		path:   "/manager/party",
		token:  token,
		body: partyBody{
			AccommodationID: in.AccommodationID,
			PartyDate:       in.PartyDate,
			Number:          in.Number,
			PartyOpen:       in.PartyOpen,
			PartyTime:       in.PartyTime,
		},
	})
}

func (c *Client) UpdateParty(ctx context.Context, token string, partyID int64, in ports.PartyInput) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/manager/party/{id}",
		path:   "/manager/party/" + id(partyID),
		token:  token,
		body: partyBody{
			PartyDate: in.PartyDate,
			Number:    in.Number,
			PartyOpen: in.PartyOpen,
			PartyTime: in.PartyTime,
		},
	})
}

func (c *Client) DeleteParty(ctx context.Context, token string, partyID int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/manager/party/{id}",
		path:   "/manager/party/" + id(partyID),
		token:  token,
	})
}

func (c *Client) PartyParticipants(ctx context.Context, token string, partyID int64) (domain.List[domain.Participant], error) {
	var out domain.List[domain.Participant]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/manager/party/{id}",
		path:   "/manager/party/" + id(partyID),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) AddParticipant(ctx context.Context, token string, in ports.ParticipantInput) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/manager/participant",
		path:   "/manager/participant",
		token:  token,
		body: participantBody{
			PartyID: in.PartyID,
			Name:    in.Name,
			Phone:   in.Phone,
			Age:     in.Age,
			Gender:  in.Gender,
			MBTI:    in.MBTI,
			Region:  in.Region,
		},
	})
}

func (c *Client) DeleteParticipant(ctx context.Context, token string, participantID int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/manager/participant/{id}",
		path:   "/manager/participant/" + id(participantID),
		token:  token,
	})
}

func (c *Client) SetPartyOn(ctx context.Context, token string, partyID int64, on bool) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/manager/partyOn/{id}",
		path:   "/manager/partyOn/" + id(partyID),
		token:  token,
		body:   map[string]bool{"partyOn": on},
	})
}

// SetPartyUserOn takes the flag as a query parameter, unlike SetPartyOn.
func (c *Client) SetPartyUserOn(ctx context.Context, token string, userID int64, on bool) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/manager/partyUserOn/{id}",
		path:   "/manager/partyUserOn/" + id(userID),
		query:  url.Values{"partyOn": {strconv.FormatBool(on)}},
		token:  token,
	})
}

func (c *Client) StartMatch(ctx context.Context, token string, partyID int64) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/manager/party/matchStart/{id}",
		path:   "/manager/party/matchStart/" + id(partyID),
		token:  token,
	})
}

func (c *Client) PartyMembers(ctx context.Context, token string, partyID int64) ([]domain.PartyMember, error) {
	var out domain.List[domain.PartyMember]
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/manager/partyInfo/{id}",
		path:   "/manager/partyInfo/" + id(partyID),
		token:  token,
		out:    &out,
	})
	return out.Items, err
}

func (c *Client) AssignTeams(ctx context.Context, token string, assignments []domain.TeamAssignment) error {
	body := teamBody{Data: make([]teamEntry, 0, len(assignments))}
	for _, a := range assignments {
		body.Data = append(body.Data, teamEntry{ID: a.UserID, Team: a.Team})
	}
	return c.do(ctx, request{
		method: http.MethodPut,
		route:  "/manager/partyUserInfo",
		path:   "/manager/partyUserInfo",
		token:  token,
		body:   body,
	})
}
