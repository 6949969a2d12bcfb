package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/goat-relay/internal/domain"
)

// recordingHandler records every call and echoes events into the sender's room
type recordingHandler struct {
	mu          sync.Mutex
	hub         *Hub
	events      []domain.EventName
	disconnects []string
	err         error
}

func (r *recordingHandler) HandleEvent(connID string, event domain.EventName, data json.RawMessage) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	err := r.err
	r.mu.Unlock()

	if event == "echo" && r.hub != nil {
		r.hub.Emit(connID, "echo", json.RawMessage(data))
	}
	return err
}

func (r *recordingHandler) HandleDisconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disconnects = append(r.disconnects, connID)
}

func (r *recordingHandler) disconnectCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.disconnects)
}

// newMockClient creates a client without an actual websocket connection suitable for testing
func newMockClient(hub *Hub) *Client {
	return NewClient(hub, nil)
}

func startHub(t *testing.T) (*Hub, *recordingHandler, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil)
	handler := &recordingHandler{hub: hub}
	hub.SetHandler(handler)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})
	return hub, handler, cancel
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func readFrame(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var frame map[string]any
		require.NoError(t, json.Unmarshal(data, &frame), "invalid frame %s", data)
		return frame
	case <-time.After(time.Second):
		require.FailNow(t, "no frame received")
	}
	return nil
}

func expectNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		assert.Fail(t, "Expected no frame", "got %s", data)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)
	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.groups)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
	assert.NotNil(t, hub.inbound)
}

func TestHub_Register(t *testing.T) {
	hub, _, _ := startHub(t)

	client := newMockClient(hub)
	require.NoError(t, hub.Register(client))

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.mu.RLock()
	_, exists := hub.clients[client.ID]
	hub.mu.RUnlock()
	assert.True(t, exists, "Client ID not found in hub clients map")
}

func TestHub_UnregisterFiresDisconnectOnce(t *testing.T) {
	hub, handler, _ := startHub(t)

	client := newMockClient(hub)
	hub.Register(client)
	hub.Unregister(client)
	hub.Unregister(client)

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	waitFor(t, func() bool { return handler.disconnectCount() >= 1 })
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 1, handler.disconnectCount())
	_, ok := <-client.send
	assert.False(t, ok, "Expected send channel to be closed")
}

func TestHub_DispatchAcknowledges(t *testing.T) {
	hub, handler, _ := startHub(t)

	client := newMockClient(hub)
	hub.Register(client)

	hub.dispatch(client, domain.InboundFrame{Event: "echo", Data: json.RawMessage(`"hi"`), Ack: 7})

	echo := readFrame(t, client)
	assert.Equal(t, "echo", echo["event"])
	assert.Equal(t, "hi", echo["data"])

	ack := readFrame(t, client)
	assert.Equal(t, "ack", ack["event"])
	assert.Equal(t, float64(7), ack["ack"])
	assert.NotContains(t, ack, "error")

	handler.mu.Lock()
	handler.err = errors.New("wrapped: " + domain.ErrConflict.Error())
	handler.mu.Unlock()

	hub.dispatch(client, domain.InboundFrame{Event: "join", Ack: 8})
	ack = readFrame(t, client)
	assert.Equal(t, "internal error", ack["error"])
}

func TestHub_AckCarriesErrorText(t *testing.T) {
	hub, handler, _ := startHub(t)
	handler.err = domain.ErrProfanity

	client := newMockClient(hub)
	hub.Register(client)
	hub.dispatch(client, domain.InboundFrame{Event: "sendMessage", Ack: 1})

	ack := readFrame(t, client)
	assert.Equal(t, domain.ProfanityRejectionText, ack["error"])
}

func TestHub_EventRateLimit(t *testing.T) {
	hub, handler, _ := startHub(t)
	hub.SetEventLimit(rate.Limit(0.001), 1)

	client := newMockClient(hub)
	hub.Register(client)

	hub.dispatch(client, domain.InboundFrame{Event: "ping", Ack: 1})
	hub.dispatch(client, domain.InboundFrame{Event: "ping", Ack: 2})

	first := readFrame(t, client)
	second := readFrame(t, client)
	assert.NotContains(t, first, "error", "First event should pass")
	assert.Equal(t, "rate limit exceeded", second["error"])

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Len(t, handler.events, 1)
}

func TestHub_EmitRoomAndExcept(t *testing.T) {
	hub, _, _ := startHub(t)

	a, b, other := newMockClient(hub), newMockClient(hub), newMockClient(hub)
	for _, c := range []*Client{a, b, other} {
		hub.Register(c)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 3 })

	hub.Join(a.ID, "lobby")
	hub.Join(b.ID, "lobby")
	hub.Join(other.ID, "kitchen")

	hub.EmitRoom("lobby", domain.EventMessage, "all")
	for _, c := range []*Client{a, b} {
		assert.Equal(t, "all", readFrame(t, c)["data"])
	}
	expectNoFrame(t, other)

	hub.EmitRoomExcept("lobby", a.ID, domain.EventMessage, "others")
	assert.Equal(t, "others", readFrame(t, b)["data"])
	expectNoFrame(t, a)

	hub.Emit(other.ID, domain.EventMessage, "direct")
	assert.Equal(t, "direct", readFrame(t, other)["data"])
}

func TestHub_UnregisterLeavesGroup(t *testing.T) {
	hub, _, _ := startHub(t)

	a, b := newMockClient(hub), newMockClient(hub)
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Join(a.ID, "lobby")
	hub.Join(b.ID, "lobby")
	require.Equal(t, 2, hub.RoomSize("lobby"))

	hub.Unregister(a)
	waitFor(t, func() bool { return hub.RoomSize("lobby") == 1 })

	hub.Unregister(b)
	waitFor(t, func() bool { return hub.GroupCount() == 0 })
}

func TestHub_ShutdownDisconnectsEveryone(t *testing.T) {
	hub := NewHub(nil)
	handler := &recordingHandler{hub: hub}
	hub.SetHandler(handler)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	clients := []*Client{newMockClient(hub), newMockClient(hub)}
	for _, c := range clients {
		hub.Register(c)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	cancel()
	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		require.FailNow(t, "hub did not stop")
	}

	assert.Equal(t, 2, handler.disconnectCount())
	assert.ErrorIs(t, hub.Register(newMockClient(hub)), ErrHubClosed)
	assert.False(t, hub.dispatch(clients[0], domain.InboundFrame{Event: "ping"}), "Expected dispatch to fail after shutdown")
}

func TestHub_RaceCondition(t *testing.T) {
	hub, _, _ := startHub(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newMockClient(hub)
			hub.Register(c)
			hub.Join(c.ID, "chaos")
			hub.dispatch(c, domain.InboundFrame{Event: "ping"})
			hub.EmitRoom("chaos", domain.EventMessage, "x")
			hub.Unregister(c)
		}()
	}
	wg.Wait()

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	assert.Zero(t, hub.GroupCount())
}
