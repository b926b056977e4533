package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/allape/openspin/spin"
	"github.com/allape/openspin/spin/session"
	"github.com/gorilla/websocket"
)

var ErrUnexpectedBinary = errors.New("unexpected binary message")

// WebsocketSpinClient carries frames as binary messages and everything else as JSON text.
type WebsocketSpinClient struct {
	Conn *websocket.Conn

	writeLocker sync.Locker
}

func (w *WebsocketSpinClient) ReadEvent() (spin.InputEvent, error) {
	messageType, data, err := w.Conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
			return spin.InputEvent{}, io.EOF
		}
		return spin.InputEvent{}, err
	}

	if messageType != websocket.TextMessage {
		return spin.InputEvent{}, fmt.Errorf("%w: %w", session.ErrBadEvent, ErrUnexpectedBinary)
	}

	var e spin.InputEvent
	err = json.Unmarshal(data, &e)
	if err != nil {
		return spin.InputEvent{}, fmt.Errorf("%w: %w", session.ErrBadEvent, err)
	}

	return e, nil
}

func (w *WebsocketSpinClient) WriteFrame(frame []byte) error {
	w.writeLocker.Lock()
	defer w.writeLocker.Unlock()
	return w.Conn.WriteMessage(websocket.BinaryMessage, frame)
}

func (w *WebsocketSpinClient) WriteMessage(m session.Message) error {
	w.writeLocker.Lock()
	defer w.writeLocker.Unlock()
	return w.Conn.WriteJSON(m)
}

func (w *WebsocketSpinClient) Close() error {
	return w.Conn.Close()
}

func Websocket2SpinClient(conn *websocket.Conn) *WebsocketSpinClient {
	return &WebsocketSpinClient{
		Conn:        conn,
		writeLocker: &sync.Mutex{},
	}
}
