package team

import (
	"github.com/gorilla/websocket"
)

// Viewer is one live push connection to this team. It holds no durable
// state; a reconnecting viewer gets a fresh snapshot on attach.
type Viewer struct {
	conn *websocket.Conn
	send chan Snapshot
}

// NewViewer wraps an upgraded websocket connection.
func NewViewer(conn *websocket.Conn) *Viewer {
	return &Viewer{
		conn: conn,
		send: make(chan Snapshot, 8),
	}
}

// WritePump drains the send channel onto the wire. It returns when the
// channel is closed or the connection breaks.
func (v *Viewer) WritePump() {
	defer v.conn.Close()
	for snap := range v.send {
		if err := v.conn.WriteJSON(snap); err != nil {
			return
		}
	}
}

// Attach registers the viewer for broadcasts and queues the initial
// snapshot so a fresh connection sees current state immediately.
func (t *Team) Attach(v *Viewer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.viewers[v] = true
	if snap, err := t.snapshotLocked(); err == nil {
		v.send <- snap
	}
}

// Detach removes the viewer from the fan-out set. It is safe to call for a
// viewer that was already dropped.
func (t *Team) Detach(v *Viewer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.viewers[v] {
		delete(t.viewers, v)
		close(v.send)
	}
}

// Refresh queues a current snapshot to a single viewer. Used for the
// client's hello message after a reconnect.
func (t *Team) Refresh(v *Viewer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.viewers[v] {
		return
	}
	if snap, err := t.snapshotLocked(); err == nil {
		select {
		case v.send <- snap:
		default:
		}
	}
}
