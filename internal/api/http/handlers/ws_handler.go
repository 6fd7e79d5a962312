package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/realtime"
	"github.com/spec-kit/workdesk-service/internal/repository"
	"github.com/spec-kit/workdesk-service/internal/service"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// inboundFrame is one chat message sent over the socket.
type inboundFrame struct {
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// WSHandler upgrades connections into per-ticket chat rooms. Browsers cannot
// set an Authorization header on a websocket, so the token rides the query
// string.
type WSHandler struct {
	tokens        *auth.TokenManager
	accounts      repository.AccountRepository
	conversations *service.ConversationService
	hub           *realtime.Hub
	logger        *zap.Logger
}

// NewWSHandler constructs the handler.
func NewWSHandler(
	tokens *auth.TokenManager,
	accounts repository.AccountRepository,
	conversations *service.ConversationService,
	hub *realtime.Hub,
	logger *zap.Logger,
) *WSHandler {
	return &WSHandler{
		tokens:        tokens,
		accounts:      accounts,
		conversations: conversations,
		hub:           hub,
		logger:        logger,
	}
}

// Upgrade gates the route on a websocket upgrade request and authenticates
// before the protocol switch so rejects are plain HTTP errors.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	claims, err := h.tokens.ParseToken(c.Query("token"))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	account, err := h.accounts.GetByID(c.Context(), claims.AccountID)
	if err != nil {
		return apperrors.NewUnauthorized("account not found")
	}
	if err := h.conversations.Authorize(c.Context(), ticketID, account); err != nil {
		return err
	}

	c.Locals("ws_ticket_id", ticketID)
	c.Locals("ws_account", account)
	return c.Next()
}

// Serve runs the read loop for one connection.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ticketID, _ := conn.Locals("ws_ticket_id").(int64)
		account, _ := conn.Locals("ws_account").(*domain.Account)
		if ticketID == 0 || account == nil {
			_ = conn.Close()
			return
		}

		client := &realtime.Client{
			ID:       uuid.NewString(),
			TicketID: ticketID,
			Conn:     conn,
		}
		h.hub.Register(client)
		defer h.hub.Unregister(client)

		// cancelled when the connection goes away, so in-flight persistence
		// does not outlive the socket
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		for {
			var frame inboundFrame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			_, err := h.conversations.SendMessage(ctx, account, ticketID, service.SendMessageInput{
				Content:    frame.Content,
				Image:      frame.Image,
				SenderConn: client.ID,
			})
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if sendErr := client.Send(fiber.Map{
					"type":    "error",
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}); sendErr != nil {
					return
				}
			}
		}
	})
}
