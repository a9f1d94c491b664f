package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

// OwnerService backs the guest-house owner screens.
type OwnerService struct {
	api    ports.OwnerAPI
	submit *Submitter
	log    zerolog.Logger
}

func NewOwnerService(api ports.OwnerAPI, submit *Submitter, log zerolog.Logger) *OwnerService {
	return &OwnerService{api: api, submit: submit, log: log}
}

func (s *OwnerService) Accommodations(ctx context.Context, p domain.Principal) ([]domain.Accommodation, error) {
	out, err := s.api.OwnerAccommodations(ctx, p.Token, p.UserID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Accommodation{}
	}
	return out, nil
}

func (s *OwnerService) CreateAccommodation(ctx context.Context, p domain.Principal, in ports.AccommodationInput) error {
	return s.api.CreateAccommodation(ctx, p.Token, p.UserID, trimAccommodation(in))
}

func (s *OwnerService) UpdateAccommodation(ctx context.Context, p domain.Principal, accommodationID int64, in ports.AccommodationInput) error {
	return s.api.UpdateAccommodation(ctx, p.Token, accommodationID, trimAccommodation(in))
}

func (s *OwnerService) Managers(ctx context.Context, p domain.Principal, q ports.ListQuery) (ListPage[domain.Staff], error) {
	q = normalizeQuery(q)
	l, err := s.api.ListManagers(ctx, p.Token, p.UserID, q)
	if err != nil {
		return ListPage[domain.Staff]{}, err
	}
	return newListPage(l, q), nil
}

func (s *OwnerService) ApproveManager(ctx context.Context, sid string, p domain.Principal, managerID int64) error {
	return s.submit.Once(ctx, sid, "manager-auth", managerID, func() error {
		return s.api.ApproveManager(ctx, p.Token, managerID)
	})
}

func (s *OwnerService) DenyManager(ctx context.Context, sid string, p domain.Principal, managerID int64) error {
	return s.submit.Once(ctx, sid, "manager-deny", managerID, func() error {
		return s.api.DenyManager(ctx, p.Token, managerID)
	})
}

func trimAccommodation(in ports.AccommodationInput) ports.AccommodationInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Number = strings.TrimSpace(in.Number)
	in.Introduction = strings.TrimSpace(in.Introduction)
	return in
}
