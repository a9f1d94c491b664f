package backend

import (
	"context"
	"net/http"

	"github.com/pirates/party-console/internal/core/domain"
)

type chatRoomsBody struct {
	UserID  int64 `json:"user_id"`
	PartyID int64 `json:"party_id"`
}

type chatRoomCreate struct {
	User1ID int64 `json:"user1_id"`
	User2ID int64 `json:"user2_id"`
}

type chatRoomCreated struct {
	ID int64 `json:"id"`
}

type messageCreate struct {
	Content    string `json:"content"`
	UserID     int64  `json:"user_id"`
	ChatRoomID int64  `json:"chat_room_id"`
}

// ChatRooms lists the rooms of userID within a party, as served by the main
// API rather than the chat service.
func (c *Client) ChatRooms(ctx context.Context, token string, userID, partyID int64) ([]domain.ChatRoom, error) {
	var out domain.List[domain.ChatRoom]
	err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/user/chatRooms",
		path:   "/user/chatRooms",
		token:  token,
		body:   chatRoomsBody{UserID: userID, PartyID: partyID},
		out:    &out,
	})
	return out.Items, err
}

func (c *Client) CreateChatRoom(ctx context.Context, token string, userID, peerID int64) (int64, error) {
	var out chatRoomCreated
	err := c.do(ctx, request{
		method: http.MethodPost,
		chat:   true,
		route:  "/chat_rooms/",
		path:   "/chat_rooms/",
		token:  token,
		body:   chatRoomCreate{User1ID: userID, User2ID: peerID},
		out:    &out,
	})
	return out.ID, err
}

func (c *Client) Messages(ctx context.Context, token string, roomID int64) ([]domain.Message, error) {
	var out []domain.Message
	err := c.do(ctx, request{
		method: http.MethodGet,
		chat:   true,
		route:  "/messages/{roomId}",
		path:   "/messages/" + id(roomID),
		token:  token,
		out:    &out,
	})
	return out, err
}

func (c *Client) SendMessage(ctx context.Context, token string, roomID, userID int64, content string) (domain.Message, error) {
	var out domain.Message
	err := c.do(ctx, request{
		method: http.MethodPost,
		chat:   true,
		route:  "/messages/",
		path:   "/messages/",
		token:  token,
		body:   messageCreate{Content: content, UserID: userID, ChatRoomID: roomID},
		out:    &out,
	})
	return out, err
}
