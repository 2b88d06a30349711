package wire

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Connection is one live websocket socket, implementing registry.SeatWriter
// so the room's Broadcaster can push frames to it directly, grounded on
// gateway.Connection's per-socket write-mutex pattern (concurrent reader
// goroutine + broadcaster-driven writes must not interleave on one
// *websocket.Conn).
type Connection struct {
	conn *websocket.Conn
	wmu  sync.Mutex

	PlayerID string
	RoomID   string
	Seat     int // -1 until joined
}

func newConnection(c *websocket.Conn, playerID string) *Connection {
	return &Connection{conn: c, PlayerID: playerID, Seat: -1}
}

// WriteFrame implements registry.SeatWriter.
func (c *Connection) WriteFrame(payload []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) readFrame() (InboundFrame, error) {
	var f InboundFrame
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, err
	}
	return f, nil
}

func (c *Connection) close() {
	_ = c.conn.Close()
}
