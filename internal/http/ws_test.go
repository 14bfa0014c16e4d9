package http

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"net/http/httptest"

	"github.com/mauv0809/clicky-block/internal/team"
)

func dialViewer(t *testing.T, ts *httptest.Server, teamID string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1)
	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("%s/api/connect/testgame/%s/ws", wsURL, teamID), nil)
	require.NoError(t, err)
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) team.Snapshot {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snapshot team.Snapshot
	require.NoError(t, conn.ReadJSON(&snapshot))
	return snapshot
}

func TestConnectHandlerInitialSnapshot(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()
	ts := httptest.NewServer(server)
	defer ts.Close()

	teamID, _ := joinPlayer(t, server, "alice")

	conn := dialViewer(t, ts, teamID)
	defer conn.Close()

	snapshot := readSnapshot(t, conn)
	assert.Equal(t, "stats", snapshot.Type)
	assert.Equal(t, "tbd", snapshot.Name)
}

func TestConnectHandlerClickBroadcast(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()
	ts := httptest.NewServer(server)
	defer ts.Close()

	teamID, _ := joinPlayer(t, server, "bob")

	conn := dialViewer(t, ts, teamID)
	defer conn.Close()
	readSnapshot(t, conn) // initial snapshot

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "click", "username": "bob"}))

	snapshot := readSnapshot(t, conn)
	require.Len(t, snapshot.Team, 1)
	assert.Equal(t, "bob", snapshot.Team[0].Username)
	assert.Equal(t, 1, snapshot.Team[0].Clicks)
}

func TestConnectHandlerHelloRefresh(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()
	ts := httptest.NewServer(server)
	defer ts.Close()

	teamID, _ := joinPlayer(t, server, "carol")

	conn := dialViewer(t, ts, teamID)
	defer conn.Close()
	readSnapshot(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "hello", "username": "carol"}))

	snapshot := readSnapshot(t, conn)
	assert.Equal(t, "stats", snapshot.Type)
}

func TestConnectHandlerBroadcastReachesAllViewers(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()
	ts := httptest.NewServer(server)
	defer ts.Close()

	teamID, _ := joinPlayer(t, server, "dave")

	first := dialViewer(t, ts, teamID)
	defer first.Close()
	second := dialViewer(t, ts, teamID)
	defer second.Close()
	readSnapshot(t, first)
	readSnapshot(t, second)

	require.NoError(t, first.WriteJSON(map[string]string{"type": "click", "username": "dave"}))

	for _, conn := range []*websocket.Conn{first, second} {
		snapshot := readSnapshot(t, conn)
		require.Len(t, snapshot.Team, 1)
		assert.Equal(t, 1, snapshot.Team[0].Clicks)
	}
}
