package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pirates/party-console/internal/core/domain"
)

// Claims is what the console reads from a backend token.
type Claims struct {
	Role            domain.Role
	UserID          int64
	AccommodationID int64
	// PartyID is the party a Kakao user was checked into, 0 if none.
	PartyID int64
	// Profiled is false for a Kakao user who has not completed signup.
	Profiled  bool
	ExpiresAt time.Time
}

var expLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// TokenDecoder reads backend tokens. With a secret the HS256 signature is
// verified; without one the token is decoded unverified and only its expiry
// is checked.
type TokenDecoder struct {
	secret []byte
	now    func() time.Time
}

func NewTokenDecoder(secret string) *TokenDecoder {
	d := &TokenDecoder{now: time.Now}
	if secret != "" {
		d.secret = []byte(secret)
	}
	return d
}

// Decode returns domain.ErrInvalidToken for an undecodable, forged or expired
// token and domain.ErrUnknownRole for a role the console does not know.
func (d *TokenDecoder) Decode(token string) (Claims, error) {
	if token == "" {
		return Claims{}, fmt.Errorf("%w: empty token", domain.ErrInvalidToken)
	}

	mc := jwt.MapClaims{}
	var err error
	if d.secret != nil {
		// Expiry is checked below: the backend does not always send a numeric exp.
		_, err = jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return d.secret, nil
		}, jwt.WithoutClaimsValidation())
	} else {
		_, _, err = jwt.NewParser().ParseUnverified(token, mc)
	}
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, err := claimsFrom(mc)
	if err != nil {
		return Claims{}, err
	}
	if !claims.ExpiresAt.IsZero() && !d.now().Before(claims.ExpiresAt) {
		return Claims{}, fmt.Errorf("%w: expired at %s", domain.ErrInvalidToken, claims.ExpiresAt.Format(time.RFC3339))
	}
	return claims, nil
}

// claimsFrom accepts both token shapes: console logins put the claims at the
// top level, the Kakao callback nests the user under data[0].
func claimsFrom(mc jwt.MapClaims) (Claims, error) {
	var c Claims

	exp, err := expiry(mc["exp"])
	if err != nil {
		return Claims{}, err
	}
	c.ExpiresAt = exp

	src := map[string]any(mc)
	kakao := false
	if data, ok := mc["data"].([]any); ok && len(data) > 0 {
		if user, ok := data[0].(map[string]any); ok {
			src = user
			kakao = true
		}
	}

	roleName, _ := src["role"].(string)
	switch {
	case roleName != "":
		role, err := domain.ParseRole(roleName)
		if err != nil {
			return Claims{}, err
		}
		c.Role = role
	case kakao:
		c.Role = domain.RoleUser
	default:
		return Claims{}, fmt.Errorf("%w: no role claim", domain.ErrInvalidToken)
	}

	c.UserID = firstInt(src, "sub", "id", "user_id")
	if c.UserID <= 0 {
		return Claims{}, fmt.Errorf("%w: no user id claim", domain.ErrInvalidToken)
	}
	c.AccommodationID = firstInt(src, "accomodation_id", "accommodation_id")
	c.PartyID = firstInt(src, "party_id")
	c.Profiled = true
	if kakao {
		info, _ := src["userInfo"].([]any)
		c.Profiled = len(info) > 0
	}
	return c, nil
}

func firstInt(src map[string]any, keys ...string) int64 {
	for _, k := range keys {
		if n, ok := toInt(src[k]); ok {
			return n
		}
	}
	return 0
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func expiry(v any) (time.Time, error) {
	switch e := v.(type) {
	case nil:
		return time.Time{}, nil
	case float64:
		return time.Unix(int64(e), 0), nil
	case string:
		if n, err := strconv.ParseInt(e, 10, 64); err == nil {
			return time.Unix(n, 0), nil
		}
		for _, layout := range expLayouts {
			if t, err := time.ParseInLocation(layout, e, domain.BackendZone); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: unreadable exp claim %v", domain.ErrInvalidToken, v)
}
