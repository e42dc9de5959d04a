package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func receive(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case msg := <-c.Send:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg, &env))
		return env
	case <-time.After(time.Second):
		require.Fail(t, "no message")
	}
	return Envelope{}
}

func TestHub_BroadcastAndDirect(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	ana := &Client{Hub: hub, Send: make(chan []byte, 4), UserID: uuid.New()}
	bia := &Client{Hub: hub, Send: make(chan []byte, 4), UserID: uuid.New()}
	hub.Register <- ana
	hub.Register <- bia

	require.NoError(t, hub.Broadcast(RefreshPayload{Tables: []string{"appointments"}, Generation: 3}, TypeDashboardRefresh))
	assert.Equal(t, TypeDashboardRefresh, receive(t, ana).Type)
	assert.Equal(t, TypeDashboardRefresh, receive(t, bia).Type)

	require.NoError(t, hub.SendMessageToUser(bia.UserID, GoalReachedPayload{Label: "Follow"}, TypeGoalReached))
	assert.Equal(t, TypeGoalReached, receive(t, bia).Type)
	select {
	case <-ana.Send:
		assert.Fail(t, "direct message leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, 2, hub.ConnectedUsers())
}
