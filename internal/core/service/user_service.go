package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
	"github.com/pirates/party-console/internal/core/view"
)

// LoveSelect is the love-matching screen: who the user may pick and how long
// is left.
type LoveSelect struct {
	PartyID    int64                `json:"partyId"`
	Team       *int                 `json:"team"`
	Candidates []domain.PartyMember `json:"candidates"`
	Countdown  view.Countdown       `json:"countdown"`
	Started    bool                 `json:"started"`
}

// UserService backs the end-user screens.
type UserService struct {
	api    ports.UserAPI
	clock  *MatchClock
	window time.Duration
	log    zerolog.Logger
}

func NewUserService(api ports.UserAPI, clock *MatchClock, window time.Duration, log zerolog.Logger) *UserService {
	if window <= 0 {
		window = view.DefaultMatchWindow
	}
	return &UserService{api: api, clock: clock, window: window, log: log}
}

// Signup completes the profile of a Kakao user. The user id always comes
// from the session.
func (s *UserService) Signup(ctx context.Context, p domain.Principal, in ports.SignupInput) error {
	in.UserID = p.UserID
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Job = strings.TrimSpace(in.Job)
	in.MBTI = strings.ToUpper(strings.TrimSpace(in.MBTI))
	in.Region = strings.TrimSpace(in.Region)
	return s.api.Signup(ctx, p.Token, in)
}

// Party returns the party the user is checked into.
func (s *UserService) Party(ctx context.Context, p domain.Principal, partyID int64) (domain.Party, error) {
	if partyID <= 0 {
		return domain.Party{}, fmt.Errorf("no party: %w", domain.ErrNotFound)
	}
	return s.api.Party(ctx, p.Token, partyID)
}

func (s *UserService) PartyTeams(ctx context.Context, p domain.Principal, partyID int64) ([]view.TeamGroup, error) {
	members, err := s.api.PartyUsers(ctx, p.Token, partyID)
	if err != nil {
		return nil, err
	}
	return view.GroupByTeam(members), nil
}

// LoveSelect lists the members of the user's team of the other gender.
func (s *UserService) LoveSelect(ctx context.Context, p domain.Principal, partyID int64) (LoveSelect, error) {
	if partyID <= 0 {
		return LoveSelect{}, fmt.Errorf("no party: %w", domain.ErrNotFound)
	}
	members, err := s.api.PartyUsers(ctx, p.Token, partyID)
	if err != nil {
		return LoveSelect{}, err
	}
	startedAt, err := s.clock.StartedAt(ctx, partyID)
	if err != nil {
		return LoveSelect{}, err
	}

	self, candidates := matchCandidates(members, p.UserID)
	out := LoveSelect{
		PartyID:    partyID,
		Candidates: candidates,
		Countdown:  view.NewCountdown(startedAt, s.window, s.clock.Now()),
		Started:    !startedAt.IsZero(),
	}
	if self != nil {
		out.Team = self.Team
	}
	return out, nil
}

// matchCandidates finds userID among members and returns who that user may
// pick: the other members of the same team, minus those of the same gender.
// self is nil when userID is not in the party.
func matchCandidates(members []domain.PartyMember, userID int64) (*domain.PartyMember, []domain.PartyMember) {
	var self *domain.PartyMember
	for i := range members {
		if members[i].ID == userID {
			self = &members[i]
			break
		}
	}
	out := []domain.PartyMember{}
	if self == nil {
		return nil, out
	}
	for _, m := range members {
		if m.ID == self.ID || !sameTeam(m.Team, self.Team) {
			continue
		}
		if m.Gender != nil && self.Gender != nil && *m.Gender == *self.Gender {
			continue
		}
		out = append(out, m)
	}
	return self, out
}

// SelectMatch records the user's pick. Picks after the window closed are
// rejected with domain.ErrMatchWindowClosed, and a target the love-select
// screen would not offer with domain.ErrInvalidInput.
func (s *UserService) SelectMatch(ctx context.Context, p domain.Principal, partyID, targetID int64) error {
	if targetID <= 0 || targetID == p.UserID {
		return fmt.Errorf("match target %d: %w", targetID, domain.ErrInvalidInput)
	}
	startedAt, err := s.clock.StartedAt(ctx, partyID)
	if err != nil {
		return err
	}
	if view.NewCountdown(startedAt, s.window, s.clock.Now()).Expired {
		return domain.ErrMatchWindowClosed
	}
	members, err := s.api.PartyUsers(ctx, p.Token, partyID)
	if err != nil {
		return err
	}
	_, candidates := matchCandidates(members, p.UserID)
	if !slices.ContainsFunc(candidates, func(m domain.PartyMember) bool { return m.ID == targetID }) {
		return fmt.Errorf("match target %d is not a candidate: %w", targetID, domain.ErrInvalidInput)
	}
	sel := domain.MatchSelection{UserID: p.UserID, PartyID: partyID, TargetID: targetID}
	if err := s.api.SelectMatch(ctx, p.Token, sel); err != nil {
		return err
	}
	s.log.Info().Int64("party_id", partyID).Int64("user_id", p.UserID).Msg("match selected")
	return nil
}

func sameTeam(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
