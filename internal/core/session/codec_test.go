package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pirates/party-console/internal/core/domain"
)

func TestCodec_PlainPrincipalIsJSON(t *testing.T) {
	c := NewCodec("")
	require.False(t, c.Sealed())

	blob, err := c.EncodePrincipal(domain.Principal{
		Role:     domain.RoleAuthOwner,
		Token:    "tok",
		UserID:   7,
		Username: "kim",
	})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(blob), &raw))
	require.Equal(t, "AUTH_OWNER", raw["role"])
	require.Equal(t, "tok", raw["token"])
	require.EqualValues(t, 7, raw["user_id"])
}

func TestCodec_AcceptsPrefixedRole(t *testing.T) {
	p, err := NewCodec("").DecodePrincipal(`{"role":"ROLE_AUTH_MANAGER","token":"t","user_id":3}`)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAuthManager, p.Role)
}

func TestCodec_RejectsMalformedPrincipals(t *testing.T) {
	cases := map[string]string{
		"not json":        `{not json`,
		"unknown role":    `{"role":"ADMIN","token":"t","user_id":1}`,
		"role only":       `{"role":"USER"}`,
		"token only":      `{"token":"t"}`,
		"missing user id": `{"role":"USER","token":"t"}`,
		"anonymous name":  `{"username":"kim"}`,
	}
	c := NewCodec("")
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.DecodePrincipal(blob)
			require.ErrorIs(t, err, domain.ErrMalformedState)
		})
	}
}

func TestCodec_RejectsNameWithoutAccommodationID(t *testing.T) {
	_, err := NewCodec("").DecodeAccommodation(`{"accommodation_name":"Sea House"}`)
	require.ErrorIs(t, err, domain.ErrMalformedState)
}

func TestCodec_SealedRoundTrip(t *testing.T) {
	c := NewCodec("seal-secret")
	require.True(t, c.Sealed())

	in := domain.AccommodationContext{ID: 12, Name: "Sea House"}
	blob, err := c.EncodeAccommodation(in)
	require.NoError(t, err)
	require.NotContains(t, blob, "Sea House")

	out, err := c.DecodeAccommodation(blob)
	require.NoError(t, err)
	require.Equal(t, in, out)

	other, err := c.EncodeAccommodation(in)
	require.NoError(t, err)
	require.NotEqual(t, blob, other, "each seal uses a fresh nonce")
}

func TestCodec_SealedRejectsForeignBlobs(t *testing.T) {
	sealed := NewCodec("seal-secret")

	_, err := sealed.DecodeAccommodation(`{"accommodation_id":1}`)
	require.ErrorIs(t, err, domain.ErrMalformedState)

	blob, err := NewCodec("another-secret").EncodeAccommodation(domain.AccommodationContext{ID: 1})
	require.NoError(t, err)
	_, err = sealed.DecodeAccommodation(blob)
	require.ErrorIs(t, err, domain.ErrMalformedState)
}
