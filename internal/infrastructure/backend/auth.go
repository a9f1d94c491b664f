package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type staffSignupBody struct {
	OwnerID     int64  `json:"owner_id,omitempty"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

type duplicateResponse struct {
	Duplicate bool `json:"duplicate"`
}

func signupFamily(family domain.Family) error {
	switch family {
	case domain.FamilyOwner, domain.FamilyManager:
		return nil
	default:
		return fmt.Errorf("%w: no signup for %q", domain.ErrInvalidInput, family)
	}
}

// StaffSignup creates an owner or manager account. The backend stores it with
// the unapproved role of its family.
func (c *Client) StaffSignup(ctx context.Context, family domain.Family, in ports.StaffSignupInput) error {
	if err := signupFamily(family); err != nil {
		return err
	}
	route := "/" + string(family) + "/signup"
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  route,
		path:   route,
		body: staffSignupBody{
			OwnerID:     in.OwnerID,
			Username:    in.Username,
			Password:    in.Password,
			Name:        in.Name,
			PhoneNumber: in.PhoneNumber,
		},
	})
}

// UsernameTaken runs the backend's duplicate-ID check of family.
func (c *Client) UsernameTaken(ctx context.Context, family domain.Family, username string) (bool, error) {
	if err := signupFamily(family); err != nil {
		return false, err
	}
	var out duplicateResponse
	route := "/" + string(family) + "/duplicate"
	err := c.do(ctx, request{
		method: http.MethodPost,
		route:  route,
		path:   route,
		query:  url.Values{"username": {username}},
		out:    &out,
	})
	return out.Duplicate, err
}

// Login exchanges console credentials for a bearer token. End users sign in
// through Kakao and have no password login.
func (c *Client) Login(ctx context.Context, family domain.Family, username, password string) (string, error) {
	switch family {
	case domain.FamilyAdmin, domain.FamilyOwner, domain.FamilyManager:
	default:
		return "", fmt.Errorf("%w: no password login for %q", domain.ErrInvalidCredentials, family)
	}

	var out tokenResponse
	route := "/" + string(family) + "/login"
	err := c.do(ctx, request{
		method: http.MethodPost,
		route:  route,
		path:   route,
		form:   url.Values{"username": {username}, "password": {password}},
		out:    &out,
	})
	if errors.Is(err, domain.ErrInvalidToken) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login %s: %w: empty access token", family, domain.ErrBackendUnavailable)
	}
	return out.AccessToken, nil
}
