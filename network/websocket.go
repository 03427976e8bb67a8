package network

import (
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/vt-tetris/terminal"
)

// websocketHandler upgrades each request into a queued session
func (t *Transport) websocketHandler() http.Handler {
	upgrader := websocket.Upgrader{
		HandshakeTimeout: t.config.HandshakeTimeout,
		ReadBufferSize:   t.config.ReadBufferSize,
		WriteBufferSize:  t.config.WriteBufferSize,
		CheckOrigin:      t.config.CheckOrigin,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("network: websocket upgrade from %s: %v", r.RemoteAddr, err)
			return
		}

		ws := newWSConn(conn, t.config.WriteTimeout)
		if !t.offer(r.RemoteAddr, terminal.NewStream("ws:"+r.RemoteAddr, ws)) {
			ws.Write([]byte(busyMessage))
			ws.closeWith(websocket.CloseTryAgainLater, "busy")
		}
	})
}

// wsConn presents a websocket as a byte stream.
// Text and binary frames are both accepted; output goes out as binary frames.
type wsConn struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	r io.Reader // current frame, read side only

	wmu    sync.Mutex
	closed bool
}

func newWSConn(conn *websocket.Conn, writeTimeout time.Duration) *wsConn {
	return &wsConn{conn: conn, writeTimeout: writeTimeout}
}

func (c *wsConn) Read(p []byte) (int, error) {
	for {
		if c.r == nil {
			mt, r, err := c.conn.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
					return 0, io.EOF
				}
				return 0, err
			}
			if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
				continue
			}
			c.r = r
		}

		n, err := c.r.Read(p)
		if err == io.EOF {
			c.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.closed {
		return 0, io.ErrClosedPipe
	}
	if c.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	return c.closeWith(websocket.CloseNormalClosure, "")
}

// closeWith sends a close frame then drops the connection
func (c *wsConn) closeWith(code int, text string) error {
	c.wmu.Lock()
	if c.closed {
		c.wmu.Unlock()
		return nil
	}
	c.closed = true
	c.wmu.Unlock()

	deadline := time.Now().Add(time.Second)
	c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
	return c.conn.Close()
}
