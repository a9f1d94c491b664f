package ports

import (
	"context"

	"github.com/pirates/party-console/internal/core/domain"
)

// ListQuery carries the table controls shared by the list screens.
type ListQuery struct {
	Page           int
	PageSize       int
	Name           string
	IsOldestOrders bool
}

// StaffSignupInput registers an owner or manager account. OwnerID is only
// sent for managers.
type StaffSignupInput struct {
	Username    string
	Password    string
	Name        string
	PhoneNumber string
	OwnerID     int64
}

// AuthAPI issues bearer tokens and creates console accounts. Each family logs
// in and signs up against its own endpoints.
type AuthAPI interface {
	Login(ctx context.Context, family domain.Family, username, password string) (token string, err error)
	StaffSignup(ctx context.Context, family domain.Family, in StaffSignupInput) error
	UsernameTaken(ctx context.Context, family domain.Family, username string) (bool, error)
}

// AccommodationInput is the editable part of an accommodation.
type AccommodationInput struct {
	Name         string
	Address      string
	Number       string
	Introduction string
}

// AdminAPI backs the super-admin screens.
type AdminAPI interface {
	ListAccommodations(ctx context.Context, token string, q ListQuery) (domain.List[domain.Accommodation], error)
	ListOwners(ctx context.Context, token string, q ListQuery) (domain.List[domain.Staff], error)
	ApproveOwner(ctx context.Context, token string, ownerID int64) error
	DenyOwner(ctx context.Context, token string, ownerID int64) error
}

// OwnerAPI backs the guest-house owner screens.
type OwnerAPI interface {
	OwnerAccommodations(ctx context.Context, token string, ownerID int64) ([]domain.Accommodation, error)
	CreateAccommodation(ctx context.Context, token string, ownerID int64, in AccommodationInput) error
	UpdateAccommodation(ctx context.Context, token string, accommodationID int64, in AccommodationInput) error
	ListManagers(ctx context.Context, token string, ownerID int64, q ListQuery) (domain.List[domain.Staff], error)
	ApproveManager(ctx context.Context, token string, managerID int64) error
	DenyManager(ctx context.Context, token string, managerID int64) error
}

// PartyInput is the editable part of a party.
type PartyInput struct {
	AccommodationID int64
	PartyDate       string
	Number          int
	PartyOpen       bool
	PartyTime       string
}

// ParticipantInput registers a guest for a party.
type ParticipantInput struct {
	PartyID int64
	Name    string
	Phone   string
	Age     int
	Gender  bool
	MBTI    string
	Region  string
}

// ManagerAPI backs the party manager screens.
type ManagerAPI interface {
	RegistrableAccommodations(ctx context.Context, token string) ([]domain.Accommodation, error)
	ListParties(ctx context.Context, token string, accommodationID int64, q ListQuery) (domain.List[domain.Party], error)
	CreateParty(ctx context.Context, token string, in PartyInput) error
	UpdateParty(ctx context.Context, token string, partyID int64, in PartyInput) error
	DeleteParty(ctx context.Context, token string, partyID int64) error
	PartyParticipants(ctx context.Context, token string, partyID int64) (domain.List[domain.Participant], error)
	AddParticipant(ctx context.Context, token string, in ParticipantInput) error
	DeleteParticipant(ctx context.Context, token string, participantID int64) error
	SetPartyOn(ctx context.Context, token string, partyID int64, on bool) error
	SetPartyUserOn(ctx context.Context, token string, userID int64, on bool) error
	StartMatch(ctx context.Context, token string, partyID int64) error
	PartyMembers(ctx context.Context, token string, partyID int64) ([]domain.PartyMember, error)
	AssignTeams(ctx context.Context, token string, assignments []domain.TeamAssignment) error
}

// SignupInput completes a user profile after the first social login.
type SignupInput struct {
	UserID int64
	Name   string
	Phone  string
	Gender bool
	Job    string
	Age    int
	MBTI   string
	Region string
}

// UserAPI backs the end-user screens.
type UserAPI interface {
	Signup(ctx context.Context, token string, in SignupInput) error
	Party(ctx context.Context, token string, partyID int64) (domain.Party, error)
	PartyUsers(ctx context.Context, token string, partyID int64) ([]domain.PartyMember, error)
	SelectMatch(ctx context.Context, token string, sel domain.MatchSelection) error
}

// ChatAPI backs the chat screens.
type ChatAPI interface {
	ChatRooms(ctx context.Context, token string, userID, partyID int64) ([]domain.ChatRoom, error)
	CreateChatRoom(ctx context.Context, token string, userID, peerID int64) (int64, error)
	Messages(ctx context.Context, token string, roomID int64) ([]domain.Message, error)
	SendMessage(ctx context.Context, token string, roomID, userID int64, content string) (domain.Message, error)
}

// BackendAPI is the full Pirates REST surface the console consumes.
type BackendAPI interface {
	AuthAPI
	AdminAPI
	OwnerAPI
	ManagerAPI
	UserAPI
	ChatAPI
}
