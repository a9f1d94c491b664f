package session

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/pirates/party-console/internal/core/domain"
)

const nonceSize = 24

// Codec turns session records into the strings kept in the store. With a seal
// key configured, every blob is a base64 secretbox (nonce followed by box).
type Codec struct {
	key *[32]byte
}

// NewCodec returns a plain JSON codec when secret is empty.
func NewCodec(secret string) *Codec {
	if secret == "" {
		return &Codec{}
	}
	key := blake2b.Sum256([]byte(secret))
	return &Codec{key: &key}
}

// Sealed reports whether blobs are encrypted.
func (c *Codec) Sealed() bool {
	return c.key != nil
}

func (c *Codec) EncodePrincipal(p domain.Principal) (string, error) {
	return c.encode(p)
}

// DecodePrincipal rejects anything that is not a complete record, including a
// principal with only some of its fields set.
func (c *Codec) DecodePrincipal(s string) (domain.Principal, error) {
	var p domain.Principal
	if err := c.decode(s, &p); err != nil {
		return domain.Principal{}, err
	}
	if err := p.Validate(); err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
	}
	return p, nil
}

func (c *Codec) EncodeAccommodation(a domain.AccommodationContext) (string, error) {
	return c.encode(a)
}

func (c *Codec) DecodeAccommodation(s string) (domain.AccommodationContext, error) {
	var a domain.AccommodationContext
	if err := c.decode(s, &a); err != nil {
		return domain.AccommodationContext{}, err
	}
	if err := a.Validate(); err != nil {
		return domain.AccommodationContext{}, err
	}
	return a, nil
}

func (c *Codec) encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode session record: %w", err)
	}
	if c.key == nil {
		return string(raw), nil
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("seal session record: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], raw, &nonce, c.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *Codec) decode(s string, v any) error {
	raw := []byte(s)
	if c.key != nil {
		sealed, err := base64.RawURLEncoding.DecodeString(s)
		if err != nil || len(sealed) < nonceSize+secretbox.Overhead {
			return domain.ErrMalformedState
		}
		var nonce [nonceSize]byte
		copy(nonce[:], sealed[:nonceSize])
		opened, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, c.key)
		if !ok {
			return domain.ErrMalformedState
		}
		raw = opened
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
	}
	return nil
}
