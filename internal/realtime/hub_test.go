package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(zap.NewNop())

	a := &Client{ID: "a", TicketID: 1}
	b := &Client{ID: "b", TicketID: 1}
	c := &Client{ID: "c", TicketID: 2}

	hub.Register(a)
	hub.Register(b)
	hub.Register(c)

	assert.Equal(t, 2, hub.RoomSize(1))
	assert.Equal(t, 1, hub.RoomSize(2))

	hub.Unregister(a)
	assert.Equal(t, 1, hub.RoomSize(1))

	hub.Unregister(b)
	assert.Equal(t, 0, hub.RoomSize(1))

	// unregistering twice is harmless
	hub.Unregister(b)
	assert.Equal(t, 0, hub.RoomSize(1))
}

func TestHubRoomSizeUnknownTicket(t *testing.T) {
	hub := NewHub(zap.NewNop())
	assert.Equal(t, 0, hub.RoomSize(99))
}
