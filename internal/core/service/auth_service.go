package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/api/metrics"
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
	"github.com/pirates/party-console/internal/core/session"
)

// AuthService signs sessions in and out and keeps the principal in step with
// its token.
type AuthService struct {
	api    ports.BackendAPI
	tokens *TokenDecoder
	log    zerolog.Logger
}

func NewAuthService(api ports.BackendAPI, tokens *TokenDecoder, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, tokens: tokens, log: log}
}

// Login signs sess in through the login endpoint of family. The token must
// carry a role of that family.
func (s *AuthService) Login(ctx context.Context, sess *session.Container, family domain.Family, username, password string) (domain.Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	token, err := s.api.Login(ctx, family, username, password)
	if err != nil {
		return domain.Principal{}, err
	}
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("login %s: %w", family, err)
	}
	if claims.Role.Family() != family {
		s.log.Warn().Str("family", string(family)).Str("role", claims.Role.String()).Msg("login returned a role of another area")
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	p := domain.Principal{Role: claims.Role, Token: token, UserID: claims.UserID, Username: username}
	if err := s.apply(ctx, sess, p, claims); err != nil {
		return domain.Principal{}, err
	}
	s.log.Info().Str("session_id", sess.ID()).Str("role", p.Role.String()).Int64("user_id", p.UserID).Msg("signed in")
	return p, nil
}

// UsernameTaken runs the duplicate-ID check of the owner or manager signup.
func (s *AuthService) UsernameTaken(ctx context.Context, family domain.Family, username string) (bool, error) {
	if family != domain.FamilyOwner && family != domain.FamilyManager {
		return false, fmt.Errorf("signup %q: %w", family, domain.ErrInvalidInput)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return false, fmt.Errorf("username: %w", domain.ErrInvalidInput)
	}
	return s.api.UsernameTaken(ctx, family, username)
}

// StaffSignup creates an unapproved owner or manager account. A taken username
// is refused with domain.ErrUsernameTaken before anything is created.
func (s *AuthService) StaffSignup(ctx context.Context, family domain.Family, in ports.StaffSignupInput) error {
	in.Username = strings.TrimSpace(in.Username)
	taken, err := s.UsernameTaken(ctx, family, in.Username)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%s %q: %w", family, in.Username, domain.ErrUsernameTaken)
	}
	if family != domain.FamilyManager {
		in.OwnerID = 0
	}
	if err := s.api.StaffSignup(ctx, family, in); err != nil {
		return err
	}
	s.log.Info().Str("family", string(family)).Str("username", in.Username).Msg("account created, awaiting approval")
	return nil
}

// AdoptToken signs sess in with a token issued by the Kakao callback. The
// returned claims tell whether the user still has to complete signup.
func (s *AuthService) AdoptToken(ctx context.Context, sess *session.Container, token string) (Claims, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return Claims{}, err
	}
	if claims.Role != domain.RoleUser {
		return Claims{}, fmt.Errorf("%w: %s token on the user login", domain.ErrInvalidCredentials, claims.Role)
	}
	p := domain.Principal{Role: claims.Role, Token: token, UserID: claims.UserID}
	if err := s.apply(ctx, sess, p, claims); err != nil {
		return Claims{}, err
	}
	s.log.Info().Str("session_id", sess.ID()).Int64("user_id", p.UserID).Bool("profiled", claims.Profiled).Msg("user signed in")
	return claims, nil
}

// Refresh replaces the token of a signed-in session, e.g. after an owner was
// approved and logged in again elsewhere. The username is kept.
func (s *AuthService) Refresh(ctx context.Context, sess *session.Container, token string) (domain.Principal, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return domain.Principal{}, err
	}
	current := sess.Principal()
	p := domain.Principal{Role: claims.Role, Token: token, UserID: claims.UserID}
	if current.UserID == claims.UserID {
		p.Username = current.Username
	}
	if err := s.apply(ctx, sess, p, claims); err != nil {
		return domain.Principal{}, err
	}
	return p, nil
}

// Check decodes the session token. An expired or unreadable token signs the
// session out and yields domain.ErrInvalidToken. Anonymous sessions pass with
// zero claims.
func (s *AuthService) Check(ctx context.Context, sess *session.Container) (Claims, error) {
	p := sess.Principal()
	if p.IsAnonymous() {
		return Claims{}, nil
	}
	claims, err := s.tokens.Decode(p.Token)
	if err == nil && claims.UserID == p.UserID && claims.Role == p.Role {
		return claims, nil
	}
	if err == nil {
		err = fmt.Errorf("%w: token does not match the session principal", domain.ErrInvalidToken)
	}
	sess.ClearPrincipal(ctx)
	metrics.SessionsExpiredTotal.Inc()
	s.log.Info().Err(err).Str("session_id", sess.ID()).Msg("session token rejected, signed out")
	if !errors.Is(err, domain.ErrInvalidToken) {
		err = fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return Claims{}, err
}

func (s *AuthService) Logout(ctx context.Context, sess *session.Container) {
	sess.ClearPrincipal(ctx)
}

// EnsureAccommodationName fills in the accommodation name of an owner or
// manager session the first time a screen needs it. The result is dropped if
// ctx was cancelled meanwhile.
func (s *AuthService) EnsureAccommodationName(ctx context.Context, sess *session.Container) (domain.AccommodationContext, error) {
	acc := sess.Accommodation()
	if !acc.NeedsName() {
		return acc, nil
	}
	p := sess.Principal()

	var (
		candidates []domain.Accommodation
		err        error
	)
	switch p.Role.Family() {
	case domain.FamilyOwner:
		candidates, err = s.api.OwnerAccommodations(ctx, p.Token, p.UserID)
	case domain.FamilyManager:
		candidates, err = s.api.RegistrableAccommodations(ctx, p.Token)
	default:
		return acc, nil
	}
	if err != nil {
		return acc, fmt.Errorf("load accommodation name: %w", err)
	}
	if ctx.Err() != nil {
		return acc, context.Cause(ctx)
	}

	for _, a := range candidates {
		if a.ID != acc.ID {
			continue
		}
		named := domain.AccommodationContext{ID: a.ID, Name: a.Name}
		if err := sess.SetAccommodation(ctx, named); err != nil {
			return acc, err
		}
		return named, nil
	}
	return acc, fmt.Errorf("accommodation %d: %w", acc.ID, domain.ErrNotFound)
}

// apply stores p and, for owners and managers, the accommodation id from the
// token.
func (s *AuthService) apply(ctx context.Context, sess *session.Container, p domain.Principal, claims Claims) error {
	if err := sess.SetPrincipal(ctx, p); err != nil {
		return err
	}
	if !p.Role.HasAccommodation() {
		return nil
	}
	current := sess.Accommodation()
	if claims.AccommodationID <= 0 {
		if !current.IsZero() {
			sess.ClearAccommodation(ctx)
		}
		return nil
	}
	if current.ID == claims.AccommodationID {
		return nil
	}
	return sess.SetAccommodation(ctx, domain.AccommodationContext{ID: claims.AccommodationID})
}
