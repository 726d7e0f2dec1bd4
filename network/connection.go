package network

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrMalformedResponse is returned by ReadResponse when the client sent a
// frame that is not a valid response envelope. The connection itself is
// still usable; callers should skip the frame and keep reading.
var ErrMalformedResponse = fmt.Errorf("malformed response frame")

type Connection interface {
	WriteRequest(method string, params interface{}) error
	ReadResponse() (*Response, error)
	Close() error
	RemoteAddr() net.Addr
}

type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
	nextID    int64
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn, nextID: 1}
}

// WriteRequest marshals and sends one request frame. Request IDs are
// monotonic per connection, starting at 1.
func (c *WSConnection) WriteRequest(method string, params interface{}) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	req := Request{
		ID:     c.nextID,
		Method: method,
		Params: params,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}

	c.nextID++
	return nil
}

// ReadResponse blocks until the next client frame arrives. Transport errors
// are returned as-is; frames that do not parse yield ErrMalformedResponse.
func (c *WSConnection) ReadResponse() (*Response, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, ErrMalformedResponse
	}

	return &resp, nil
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
