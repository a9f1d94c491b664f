package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
	"github.com/pirates/party-console/internal/core/view"
)

// ListPage is one page of a backend list together with its navigation state.
type ListPage[T any] struct {
	Items []T       `json:"data"`
	Page  view.Page `json:"page"`
}

func newListPage[T any](l domain.List[T], q ports.ListQuery) ListPage[T] {
	items := l.Items
	if items == nil {
		items = []T{}
	}
	return ListPage[T]{Items: items, Page: view.Paginate(l.TotalCount, q.Page, q.PageSize)}
}

func normalizeQuery(q ports.ListQuery) ports.ListQuery {
	q.Page, q.PageSize = view.NormalizePage(q.Page, q.PageSize)
	return q
}

// AdminService backs the super-admin screens.
type AdminService struct {
	api    ports.AdminAPI
	submit *Submitter
	log    zerolog.Logger
}

func NewAdminService(api ports.AdminAPI, submit *Submitter, log zerolog.Logger) *AdminService {
	return &AdminService{api: api, submit: submit, log: log}
}

func (s *AdminService) Accommodations(ctx context.Context, p domain.Principal, q ports.ListQuery) (ListPage[domain.Accommodation], error) {
	q = normalizeQuery(q)
	l, err := s.api.ListAccommodations(ctx, p.Token, q)
	if err != nil {
		return ListPage[domain.Accommodation]{}, err
	}
	return newListPage(l, q), nil
}

func (s *AdminService) Owners(ctx context.Context, p domain.Principal, q ports.ListQuery) (ListPage[domain.Staff], error) {
	q = normalizeQuery(q)
	l, err := s.api.ListOwners(ctx, p.Token, q)
	if err != nil {
		return ListPage[domain.Staff]{}, err
	}
	return newListPage(l, q), nil
}

func (s *AdminService) ApproveOwner(ctx context.Context, sid string, p domain.Principal, ownerID int64) error {
	return s.submit.Once(ctx, sid, "owner-auth", ownerID, func() error {
		return s.api.ApproveOwner(ctx, p.Token, ownerID)
	})
}

func (s *AdminService) DenyOwner(ctx context.Context, sid string, p domain.Principal, ownerID int64) error {
	return s.submit.Once(ctx, sid, "owner-deny", ownerID, func() error {
		return s.api.DenyOwner(ctx, p.Token, ownerID)
	})
}
