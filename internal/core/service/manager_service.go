package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
	"github.com/pirates/party-console/internal/core/view"
)

// PartyDetail is a party with its registered guests.
type PartyDetail struct {
	PartyID      int64                `json:"partyId"`
	Participants []domain.Participant `json:"participants"`
	TotalCount   int                  `json:"totalCount"`
}

// ManagerService backs the party manager screens.
type ManagerService struct {
	api    ports.ManagerAPI
	clock  *MatchClock
	submit *Submitter
	log    zerolog.Logger
}

func NewManagerService(api ports.ManagerAPI, clock *MatchClock, submit *Submitter, log zerolog.Logger) *ManagerService {
	return &ManagerService{api: api, clock: clock, submit: submit, log: log}
}

// RegistrableAccommodations lists the guest houses a manager may apply to.
func (s *ManagerService) RegistrableAccommodations(ctx context.Context, p domain.Principal) ([]domain.Accommodation, error) {
	out, err := s.api.RegistrableAccommodations(ctx, p.Token)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Accommodation{}
	}
	return out, nil
}

// Parties lists the parties of the manager's accommodation.
func (s *ManagerService) Parties(ctx context.Context, p domain.Principal, acc domain.AccommodationContext, q ports.ListQuery) (ListPage[domain.Party], error) {
	if acc.ID <= 0 {
		return ListPage[domain.Party]{}, domain.ErrNoAccommodation
	}
	q = normalizeQuery(q)
	l, err := s.api.ListParties(ctx, p.Token, acc.ID, q)
	if err != nil {
		return ListPage[domain.Party]{}, err
	}
	return newListPage(l, q), nil
}

func (s *ManagerService) CreateParty(ctx context.Context, p domain.Principal, acc domain.AccommodationContext, in ports.PartyInput) error {
	if acc.ID <= 0 {
		return domain.ErrNoAccommodation
	}
	in.AccommodationID = acc.ID
	in.PartyDate = strings.TrimSpace(in.PartyDate)
	in.PartyTime = strings.TrimSpace(in.PartyTime)
	return s.api.CreateParty(ctx, p.Token, in)
}

func (s *ManagerService) UpdateParty(ctx context.Context, p domain.Principal, acc domain.AccommodationContext, partyID int64, in ports.PartyInput) error {
	if acc.ID <= 0 {
		return domain.ErrNoAccommodation
	}
	in.AccommodationID = acc.ID
	in.PartyDate = strings.TrimSpace(in.PartyDate)
	in.PartyTime = strings.TrimSpace(in.PartyTime)
	return s.api.UpdateParty(ctx, p.Token, partyID, in)
}

func (s *ManagerService) DeleteParty(ctx context.Context, sid string, p domain.Principal, partyID int64) error {
	return s.submit.Once(ctx, sid, "party-delete", partyID, func() error {
		return s.api.DeleteParty(ctx, p.Token, partyID)
	})
}

func (s *ManagerService) PartyDetail(ctx context.Context, p domain.Principal, partyID int64) (PartyDetail, error) {
	l, err := s.api.PartyParticipants(ctx, p.Token, partyID)
	if err != nil {
		return PartyDetail{}, err
	}
	items := l.Items
	if items == nil {
		items = []domain.Participant{}
	}
	total := l.TotalCount
	if total < len(items) {
		total = len(items)
	}
	return PartyDetail{PartyID: partyID, Participants: items, TotalCount: total}, nil
}

func (s *ManagerService) AddParticipant(ctx context.Context, p domain.Principal, in ports.ParticipantInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.MBTI = strings.ToUpper(strings.TrimSpace(in.MBTI))
	in.Region = strings.TrimSpace(in.Region)
	return s.api.AddParticipant(ctx, p.Token, in)
}

func (s *ManagerService) DeleteParticipant(ctx context.Context, sid string, p domain.Principal, participantID int64) error {
	return s.submit.Once(ctx, sid, "participant-delete", participantID, func() error {
		return s.api.DeleteParticipant(ctx, p.Token, participantID)
	})
}

// SetPartyOn opens or closes a party for check-in.
func (s *ManagerService) SetPartyOn(ctx context.Context, sid string, p domain.Principal, partyID int64, on bool) error {
	return s.submit.Once(ctx, sid, "party-on", partyID, func() error {
		return s.api.SetPartyOn(ctx, p.Token, partyID, on)
	})
}

// SetPartyUserOn admits or removes one guest from the running party.
func (s *ManagerService) SetPartyUserOn(ctx context.Context, sid string, p domain.Principal, userID int64, on bool) error {
	return s.submit.Once(ctx, sid, "party-user-on", userID, func() error {
		return s.api.SetPartyUserOn(ctx, p.Token, userID, on)
	})
}

// StartMatch opens the love-matching window of a party.
func (s *ManagerService) StartMatch(ctx context.Context, sid string, p domain.Principal, partyID int64) error {
	return s.submit.Once(ctx, sid, "match-start", partyID, func() error {
		if err := s.api.StartMatch(ctx, p.Token, partyID); err != nil {
			return err
		}
		startedAt, err := s.clock.Start(ctx, partyID)
		if err != nil {
			return err
		}
		s.log.Info().Int64("party_id", partyID).Time("started_at", startedAt).Msg("match started")
		return nil
	})
}

// PartyTeams returns the party users grouped by team.
func (s *ManagerService) PartyTeams(ctx context.Context, p domain.Principal, partyID int64) ([]view.TeamGroup, error) {
	members, err := s.api.PartyMembers(ctx, p.Token, partyID)
	if err != nil {
		return nil, err
	}
	return view.GroupByTeam(members), nil
}

func (s *ManagerService) AssignTeams(ctx context.Context, p domain.Principal, assignments []domain.TeamAssignment) error {
	for _, a := range assignments {
		if a.UserID <= 0 || a.Team <= 0 {
			return fmt.Errorf("team assignment %+v: %w", a, domain.ErrInvalidInput)
		}
	}
	if len(assignments) == 0 {
		return nil
	}
	return s.api.AssignTeams(ctx, p.Token, assignments)
}
