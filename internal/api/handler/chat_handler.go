package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pirates/party-console/internal/api/middleware"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/service"
)

// ChatHandler serves the chat screens.
type ChatHandler struct {
	chat *service.ChatService
	nav  *navigation.Tracker
}

func NewChatHandler(chat *service.ChatService, nav *navigation.Tracker) *ChatHandler {
	return &ChatHandler{chat: chat, nav: nav}
}

// ChatRooms lists the user's chat rooms in the current party.
//
// @Summary      Chat rooms
// @Tags         chat
// @Produce      json
// @Success      200  {array}   service.ChatRoomView
// @Failure      409  {object}  errorResponse
// @Router       /user/chatRooms [get]
func (h *ChatHandler) ChatRooms(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	rooms, err := h.chat.ChatRooms(ctx, p, middleware.ClaimsFrom(c).PartyID)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// CreateChatRoom opens a room with another party user.
//
// @Summary      Open a chat room
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatRoomRequest  true  "Peer"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Router       /user/chatRooms [post]
func (h *ChatHandler) CreateChatRoom(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req chatRoomRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := h.chat.CreateChatRoom(c.Request().Context(), p, req.PeerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Messages lists the messages of a room.
//
// @Summary      Chat messages
// @Tags         chat
// @Produce      json
// @Param        chatRoomId  query     int  true  "Room id"
// @Success      200         {array}   service.MessageView
// @Failure      409         {object}  errorResponse
// @Router       /user/chat [get]
func (h *ChatHandler) Messages(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	roomID, err := queryID(c, "chatRoomId", "room")
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	msgs, err := h.chat.Messages(ctx, p, roomID)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, msgs)
}

// SendMessage posts a message to a room.
//
// @Summary      Send a message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      messageRequest  true  "Message"
// @Success      201   {object}  service.MessageView
// @Failure      400   {object}  errorResponse
// @Router       /user/chat [post]
func (h *ChatHandler) SendMessage(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req messageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.chat.SendMessage(c.Request().Context(), p, req.RoomID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}
