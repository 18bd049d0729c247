package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/impostor-backend/internal/config"
	"github.com/rocketscienceinc/impostor-backend/internal/protocol"
	"github.com/rocketscienceinc/impostor-backend/internal/registry"
	"github.com/rocketscienceinc/impostor-backend/internal/usecase"
	"github.com/rocketscienceinc/impostor-backend/internal/words"
)

type receivedEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	categories := words.Categories{"animals": {"cat", "dog"}}

	manager := usecase.NewGameManager(logger, registry.New(), categories, nil, config.Game{
		ResumeDelay: time.Second,
		LobbyDelay:  time.Second,
	})

	server := New(logger, manager)
	manager.SetEmitter(server)

	ts := httptest.NewServer(http.HandlerFunc(server.handleConnection))
	t.Cleanup(ts.Close)

	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(protocol.Message{Action: action, Payload: raw}))
}

func readEvent(t *testing.T, conn *websocket.Conn) receivedEvent {
	t.Helper()

	var event receivedEvent
	require.NoError(t, conn.ReadJSON(&event))

	return event
}

// readUntil reads events until the wanted one shows up, failing the test if
// it does not arrive within the read deadline.
func readUntil(t *testing.T, conn *websocket.Conn, wanted string) receivedEvent {
	t.Helper()

	for {
		event := readEvent(t, conn)
		if event.Event == wanted {
			return event
		}
	}
}

func TestServer_Connect(t *testing.T) {
	ts := newTestServer(t)

	// When: a client connects
	conn := dial(t, ts)

	// Then: the first event assigns it a player id
	event := readEvent(t, conn)
	require.Equal(t, protocol.EventConnected, event.Event)

	var payload protocol.ConnectedPayload
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.NotEmpty(t, payload.PlayerID)
}

func TestServer_CreateAndJoinRoom(t *testing.T) {
	ts := newTestServer(t)

	// Given: a connected client that creates a room
	alice := dial(t, ts)
	readUntil(t, alice, protocol.EventConnected)

	send(t, alice, protocol.ActionCreateRoom, protocol.CreateRoomPayload{
		Nickname: "Alice",
		RoomName: "kitchen",
	})

	// Then: Alice lands in the lobby and gets a snapshot with herself as host
	update := readUntil(t, alice, protocol.EventUpdateRoom)

	var snapshot protocol.RoomPayload
	require.NoError(t, json.Unmarshal(update.Payload, &snapshot))
	assert.Equal(t, "kitchen", snapshot.RoomName)
	assert.Len(t, snapshot.Players, 1)
	assert.Equal(t, []string{"animals"}, snapshot.AvailableCategories)

	readUntil(t, alice, protocol.EventJoinedLobby)

	// When: a second client joins the room
	bob := dial(t, ts)
	readUntil(t, bob, protocol.EventConnected)

	send(t, bob, protocol.ActionJoinRoom, protocol.JoinRoomPayload{
		Nickname: "Bob",
		RoomName: "kitchen",
	})
	readUntil(t, bob, protocol.EventJoinedLobby)

	// Then: Alice's next snapshot shows both players
	update = readUntil(t, alice, protocol.EventUpdateRoom)
	require.NoError(t, json.Unmarshal(update.Payload, &snapshot))
	assert.Len(t, snapshot.Players, 2)
}

func TestServer_JoinUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	conn := dial(t, ts)
	readUntil(t, conn, protocol.EventConnected)

	// When: the client joins a room that does not exist
	send(t, conn, protocol.ActionJoinRoom, protocol.JoinRoomPayload{
		Nickname: "Bob",
		RoomName: "attic",
	})

	// Then: a targeted error comes back
	event := readUntil(t, conn, protocol.EventErrorMsg)

	var payload protocol.ErrorPayload
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.NotEmpty(t, payload.Text)
}

func TestServer_UnknownActionIgnored(t *testing.T) {
	ts := newTestServer(t)

	conn := dial(t, ts)
	readUntil(t, conn, protocol.EventConnected)

	// When: the client sends garbage and an unknown action
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, conn, "teleport", struct{}{})

	// Then: the connection survives and still handles real commands
	send(t, conn, protocol.ActionCreateRoom, protocol.CreateRoomPayload{
		Nickname: "Alice",
		RoomName: "kitchen",
	})
	readUntil(t, conn, protocol.EventJoinedLobby)
}
