package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
	"github.com/divyandj/pdfchat-api/internal/core/ports"
)

// ChatHandler handles chat list, detail, and save requests for the
// authenticated caller.
type ChatHandler struct {
	service ports.ChatService
	log     zerolog.Logger
}

func NewChatHandler(service ports.ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{service: service, log: log}
}

// List returns the caller's chat summaries in insertion order.
//
// @Summary      List the caller's chats
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listChatsResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/chats [get]
func (h *ChatHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	summaries, err := h.service.ListChats(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "User not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, listChatsResponse{
		Message: "Chats retrieved successfully",
		Chats:   toSummaryResponses(summaries),
	})
}

// Get returns one chat with its full history. A chat id that exists under a
// different user yields the same 404 as one that exists nowhere.
//
// @Summary      Get a chat by id
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        chatId  path      string  true  "Chat id"
// @Success      200     {object}  getChatResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/chats/{chatId} [get]
func (h *ChatHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	chat, err := h.service.GetChat(c.Request().Context(), userID, c.Param("chatId"))
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Chat not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, getChatResponse{
		Message: "Chat retrieved successfully",
		Chat:    toDetailResponse(chat),
	})
}

// Save appends a chat snapshot. The acting identity is taken from the
// request body for compatibility with the shipped frontend, which decodes
// the token itself and echoes userId back. A body identity that disagrees
// with the token is logged so the gap stays visible in production.
//
// @Summary      Save a chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveChatRequest  true  "Chat snapshot"
// @Success      200   {object}  messageOnlyResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/chats [post]
func (h *ChatHandler) Save(c echo.Context) error {
	tokenUserID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req saveChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if req.UserID != tokenUserID {
		h.log.Warn().
			Str("token_user_id", tokenUserID).
			Str("body_user_id", req.UserID).
			Msg("save chat: body identity differs from token identity")
	}

	if _, err := h.service.SaveChat(c.Request().Context(), toSaveInput(req)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "User not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageOnlyResponse{Message: "Chat saved successfully"})
}
