package domain

// Accommodation is a registered guest house.
type Accommodation struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Number       string   `json:"number,omitempty"`
	Introduction string   `json:"introduction,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	LoveCount    *int     `json:"loveCount,omitempty"`
	Date         string   `json:"date,omitempty"`
}

// Staff is an owner or manager row on the approval screens.
type Staff struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Date        string `json:"date,omitempty"`
	IsAuth      bool   `json:"isAuth"`
}

// Party is one evening event hosted at an accommodation.
type Party struct {
	ID        int64  `json:"id"`
	PartyDate string `json:"partyDate"`
	Number    int    `json:"number"`
	PartyOpen bool   `json:"partyOpen"`
	PartyTime string `json:"partyTime"`
}

// Participant is a guest registered by a manager for a party.
type Participant struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Age    *int   `json:"age,omitempty"`
	Gender bool   `json:"gender"`
	MBTI   string `json:"mbti,omitempty"`
	Region string `json:"region,omitempty"`
}

// PartyMember is a party user as listed on the team screens. Team is nil
// until the manager assigns one.
type PartyMember struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Gender *bool  `json:"gender,omitempty"`
	Team   *int   `json:"team,omitempty"`
}

// TeamAssignment moves one party user into a team.
type TeamAssignment struct {
	UserID int64 `json:"user_id"`
	Team   int   `json:"team"`
}

// ChatRoom is a one-to-one room as seen by the requesting user.
type ChatRoom struct {
	ID          int64     `json:"id"`
	PeerID      int64     `json:"user_id_2"`
	PeerGender  bool      `json:"gender"`
	PeerTeam    *int      `json:"team,omitempty"`
	PeerName    string    `json:"name"`
	LastMessage string    `json:"contents,omitempty"`
	LastAt      Timestamp `json:"date"`
	Unread      int       `json:"unreadCount"`
}

// Message is one chat line.
type Message struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	Timestamp  Timestamp `json:"timestamp"`
	UserID     int64     `json:"user_id"`
	ChatRoomID int64     `json:"chat_room_id"`
}

// MatchSelection is a user's pick during the love-matching window.
type MatchSelection struct {
	UserID   int64 `json:"user_id"`
	PartyID  int64 `json:"party_id"`
	TargetID int64 `json:"target_id"`
}

// List is a backend page of items with the total across all pages.
type List[T any] struct {
	Items      []T `json:"data"`
	TotalCount int `json:"totalCount"`
}
