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

// ChatRoomView is a chat room row with its display time.
type ChatRoomView struct {
	domain.ChatRoom
	TimeLabel string `json:"timeLabel"`
}

// MessageView is a chat line as shown to the user.
type MessageView struct {
	domain.Message
	Mine      bool   `json:"mine"`
	TimeLabel string `json:"timeLabel"`
}

// ChatService backs the chat screens.
type ChatService struct {
	api ports.ChatAPI
	log zerolog.Logger
}

func NewChatService(api ports.ChatAPI, log zerolog.Logger) *ChatService {
	return &ChatService{api: api, log: log}
}

func (s *ChatService) ChatRooms(ctx context.Context, p domain.Principal, partyID int64) ([]ChatRoomView, error) {
	rooms, err := s.api.ChatRooms(ctx, p.Token, p.UserID, partyID)
	if err != nil {
		return nil, err
	}
	out := make([]ChatRoomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, ChatRoomView{ChatRoom: r, TimeLabel: view.FormatChatTime(r.LastAt.Time)})
	}
	return out, nil
}

// CreateChatRoom opens a room with peerID and returns its id.
func (s *ChatService) CreateChatRoom(ctx context.Context, p domain.Principal, peerID int64) (int64, error) {
	if peerID <= 0 || peerID == p.UserID {
		return 0, fmt.Errorf("chat peer %d: %w", peerID, domain.ErrInvalidInput)
	}
	return s.api.CreateChatRoom(ctx, p.Token, p.UserID, peerID)
}

func (s *ChatService) Messages(ctx context.Context, p domain.Principal, roomID int64) ([]MessageView, error) {
	msgs, err := s.api.Messages(ctx, p.Token, roomID)
	if err != nil {
		return nil, err
	}
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageView{
			Message:   m,
			Mine:      m.UserID == p.UserID,
			TimeLabel: view.FormatChatTime(m.Timestamp.Time),
		})
	}
	return out, nil
}

func (s *ChatService) SendMessage(ctx context.Context, p domain.Principal, roomID int64, content string) (MessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return MessageView{}, fmt.Errorf("empty message: %w", domain.ErrInvalidInput)
	}
	m, err := s.api.SendMessage(ctx, p.Token, roomID, p.UserID, content)
	if err != nil {
		return MessageView{}, err
	}
	return MessageView{Message: m, Mine: true, TimeLabel: view.FormatChatTime(m.Timestamp.Time)}, nil
}
