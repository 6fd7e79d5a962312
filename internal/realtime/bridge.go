package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/domain"
	"github.com/spec-kit/workdesk-service/internal/events"
)

const messageChannelPattern = "ticket:*:messages"

func messageChannel(ticketID int64) string {
	return fmt.Sprintf("ticket:%d:messages", ticketID)
}

// WireMessage is the frame pushed to websocket clients and across Redis.
type WireMessage struct {
	Type      string    `json:"type"`
	TicketID  int64     `json:"ticket_id"`
	MessageID int64     `json:"message_id"`
	AccountID int64     `json:"account_id"`
	Fullname  string    `json:"fullname,omitempty"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// envelope wraps a WireMessage on the Redis channel. Origin identifies the
// publishing instance so it can skip frames it already delivered locally.
type envelope struct {
	Origin     string      `json:"origin"`
	SenderConn string      `json:"sender_conn,omitempty"`
	Message    WireMessage `json:"message"`
}

// Bridge connects the in-process dispatcher, the websocket hub and the Redis
// pub/sub channel so every instance sees every conversation message.
type Bridge struct {
	instanceID string
	hub        *Hub
	client     *redis.Client
	logger     *zap.Logger
}

// NewBridge builds a bridge with a unique instance identity.
func NewBridge(hub *Hub, client *redis.Client, logger *zap.Logger) *Bridge {
	return &Bridge{
		instanceID: uuid.NewString(),
		hub:        hub,
		client:     client,
		logger:     logger,
	}
}

// RegisterSubscribers attaches the bridge to the dispatcher.
func (b *Bridge) RegisterSubscribers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketMessageAdded, b.onMessageAdded)
}

// onMessageAdded delivers the new message to local rooms and relays it to the
// other instances over Redis.
func (b *Bridge) onMessageAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketMessageAddedPayload)
	if !ok || payload.Message == nil {
		return nil
	}
	wire := toWireMessage(payload.Message)
	b.hub.Broadcast(wire.TicketID, payload.SenderConn, wire)

	if b.client == nil {
		return nil
	}
	raw, err := json.Marshal(envelope{
		Origin:     b.instanceID,
		SenderConn: payload.SenderConn,
		Message:    wire,
	})
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, messageChannel(wire.TicketID), raw).Err(); err != nil {
		b.logger.Warn("redis message relay failed",
			zap.Int64("ticket_id", wire.TicketID),
			zap.Error(err))
		return err
	}
	return nil
}

// Run consumes the Redis channel until the context is canceled. Frames
// published by this instance are skipped; it already delivered them.
func (b *Bridge) Run(ctx context.Context) {
	if b.client == nil {
		return
	}
	sub := b.client.PSubscribe(ctx, messageChannelPattern)
	defer sub.Close() //nolint:errcheck

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.deliver(msg.Payload)
		}
	}
}

func (b *Bridge) deliver(raw string) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		b.logger.Warn("malformed relay frame", zap.Error(err))
		return
	}
	if env.Origin == b.instanceID {
		return
	}
	b.hub.Broadcast(env.Message.TicketID, env.SenderConn, env.Message)
}

func toWireMessage(msg *domain.TicketMessage) WireMessage {
	wire := WireMessage{
		Type:      "ticket_message",
		TicketID:  msg.TicketID,
		MessageID: msg.ID,
		AccountID: msg.AccountID,
		Content:   msg.Content,
		Image:     msg.Image,
		Kind:      string(msg.Kind),
		CreatedAt: msg.CreatedAt,
	}
	if msg.Account != nil {
		wire.Fullname = strings.TrimSpace(msg.Account.Fullname)
	}
	return wire
}
