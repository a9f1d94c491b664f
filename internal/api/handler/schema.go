package handler

import (
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
	"github.com/pirates/party-console/internal/core/service"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type staffSignupRequest struct {
	Username        string `json:"username"        form:"username"         validate:"required,min=6,max=20,alphanum"`
	Password        string `json:"password"        form:"password"         validate:"required,min=6,max=20"`
	PasswordConfirm string `json:"passwordConfirm" form:"password_confirm" validate:"required,eqfield=Password"`
	Name            string `json:"name"            form:"name"             validate:"required,max=50"`
	PhoneNumber     string `json:"phoneNumber"     form:"phone"            validate:"required,numeric"`
	OwnerID         int64  `json:"owner_id"        form:"owner_id"         validate:"gte=0"`
}

func (r staffSignupRequest) input() ports.StaffSignupInput {
	return ports.StaffSignupInput{
		Username:    r.Username,
		Password:    r.Password,
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		OwnerID:     r.OwnerID,
	}
}

type accommodationRequest struct {
	Name         string `json:"name"         validate:"required,max=100"`
	Address      string `json:"address"      validate:"required,max=200"`
	Number       string `json:"number"`
	Introduction string `json:"introduction" validate:"max=2000"`
}

func (r accommodationRequest) input() ports.AccommodationInput {
	return ports.AccommodationInput{Name: r.Name, Address: r.Address, Number: r.Number, Introduction: r.Introduction}
}

type partyRequest struct {
	PartyDate string `json:"partyDate" validate:"required"`
	Number    int    `json:"number"    validate:"gte=0"`
	PartyOpen bool   `json:"partyOpen"`
	PartyTime string `json:"partyTime" validate:"required"`
}

func (r partyRequest) input() ports.PartyInput {
	return ports.PartyInput{PartyDate: r.PartyDate, Number: r.Number, PartyOpen: r.PartyOpen, PartyTime: r.PartyTime}
}

type participantRequest struct {
	PartyID int64  `json:"id"     validate:"required,gt=0"`
	Name    string `json:"name"   validate:"required"`
	Phone   string `json:"phone"  validate:"required,numeric"`
	Age     int    `json:"age"    validate:"gte=0"`
	Gender  bool   `json:"gender"`
	MBTI    string `json:"mbti"   validate:"omitempty,mbti"`
	Region  string `json:"region"`
}

func (r participantRequest) input() ports.ParticipantInput {
	return ports.ParticipantInput{
		PartyID: r.PartyID,
		Name:    r.Name,
		Phone:   r.Phone,
		Age:     r.Age,
		Gender:  r.Gender,
		MBTI:    r.MBTI,
		Region:  r.Region,
	}
}

// toggleRequest carries an explicit on/off switch; a missing value is an
// error rather than "off".
type toggleRequest struct {
	On *bool `json:"on" validate:"required"`
}

type teamAssignmentRequest struct {
	UserID int64 `json:"id"   validate:"required,gt=0"`
	Team   int   `json:"team" validate:"required,gt=0"`
}

type teamsRequest struct {
	Data []teamAssignmentRequest `json:"data" validate:"required,min=1,dive"`
}

func (r teamsRequest) assignments() []domain.TeamAssignment {
	out := make([]domain.TeamAssignment, 0, len(r.Data))
	for _, a := range r.Data {
		out = append(out, domain.TeamAssignment{UserID: a.UserID, Team: a.Team})
	}
	return out
}

type signupRequest struct {
	Name   string `json:"name"   form:"name"   validate:"required"`
	Phone  string `json:"phone"  form:"phone"  validate:"required,numeric"`
	Gender bool   `json:"gender" form:"gender"`
	Age    int    `json:"age"    form:"age"    validate:"required,gt=0"`
	Job    string `json:"job"    form:"job"`
	MBTI   string `json:"mbti"   form:"mbti"   validate:"omitempty,mbti"`
	Region string `json:"region" form:"region"`
}

func (r signupRequest) input() ports.SignupInput {
	return ports.SignupInput{
		Name:   r.Name,
		Phone:  r.Phone,
		Gender: r.Gender,
		Age:    r.Age,
		Job:    r.Job,
		MBTI:   r.MBTI,
		Region: r.Region,
	}
}

type matchSelectRequest struct {
	PartyID  int64 `json:"party_id"`
	TargetID int64 `json:"user_id_2" validate:"required,gt=0"`
}

type chatRoomRequest struct {
	PeerID int64 `json:"user_id_2" validate:"required,gt=0"`
}

type messageRequest struct {
	RoomID  int64  `json:"chat_room_id" validate:"required,gt=0"`
	Content string `json:"content"      validate:"required,max=1000"`
}

// --- Response types ---

type sessionResponse struct {
	Authenticated bool                         `json:"authenticated"`
	Role          string                       `json:"role,omitempty"`
	UserID        int64                        `json:"userId,omitempty"`
	Username      string                       `json:"username,omitempty"`
	Accommodation *domain.AccommodationContext `json:"accommodation,omitempty"`
	Home          string                       `json:"home"`
	Degraded      bool                         `json:"degraded"`
}

// houseResponse lists accommodations next to the one the session works on.
type houseResponse struct {
	Current        domain.AccommodationContext `json:"current"`
	Accommodations []domain.Accommodation      `json:"accommodations"`
}

type partiesResponse struct {
	Accommodation domain.AccommodationContext    `json:"accommodation"`
	Parties       service.ListPage[domain.Party] `json:"parties"`
}

type duplicateResponse struct {
	Username  string `json:"username"`
	Duplicate bool   `json:"duplicate"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}
