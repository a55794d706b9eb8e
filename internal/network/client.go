package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"autobattler-client/internal/version"
	"autobattler-client/pkg/api"
	"autobattler-client/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// defaultJoinTimeout используется, если у контекста нет дедлайна.
const defaultJoinTimeout = 10 * time.Second

var (
	ErrRoomClosed = errors.New("room closed")
	ErrJoinFailed = errors.New("join failed")
)

// Client подключается к серверу комнат по WebSocket.
type Client struct {
	endpoint string
	codec    api.Codec
	dialer   *websocket.Dialer
	log      *logrus.Entry

	// OnJoin вызывается до запуска насосов комнаты: подписки через Tap
	// получают все сообщения начиная с первого STATE.
	OnJoin func(*Room)
}

func NewClient(endpoint string, codec api.Codec) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		codec:    codec,
		dialer: &websocket.Dialer{
			HandshakeTimeout: defaultJoinTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		},
		log: logger.Log.WithField("component", "network"),
	}
}

// roomURL: {endpoint}/rooms/{room}?codec={codec}
func (c *Client) roomURL(room string) (string, error) {
	u, err := url.Parse(c.endpoint + "/rooms/" + url.PathEscape(room))
	if err != nil {
		return "", fmt.Errorf("bad endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("codec", c.codec.Name())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// JoinOrCreate подключается к комнате (сервер создает ее при необходимости)
// и ждет JOIN с идентификатором сессии.
func (c *Client) JoinOrCreate(ctx context.Context, room string) (*Room, error) {
	target, err := c.roomURL(room)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("User-Agent", version.UserAgent())

	conn, resp, err := c.dialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: dial %s: %v (status %d)", ErrJoinFailed, room, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: dial %s: %v", ErrJoinFailed, room, err)
	}

	join, err := c.awaitJoin(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrJoinFailed, room, err)
	}

	r := newRoom(join.RoomID, join.SessionID, conn, c.codec)
	if r.id == "" {
		r.id = room
	}
	if c.OnJoin != nil {
		c.OnJoin(r)
	}
	r.start()

	c.log.WithFields(logrus.Fields{
		"room":    r.id,
		"session": r.sessionID,
		"codec":   c.codec.Name(),
	}).Info("joined room")
	return r, nil
}

// awaitJoin читает первый кадр. Сервер отвечает JOIN или ERROR.
func (c *Client) awaitJoin(ctx context.Context, conn *websocket.Conn) (api.ServerMessage, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultJoinTimeout)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return api.ServerMessage{}, err
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return api.ServerMessage{}, fmt.Errorf("waiting for JOIN: %w", err)
	}
	var msg api.ServerMessage
	if err := c.codec.Decode(data, &msg); err != nil {
		return api.ServerMessage{}, fmt.Errorf("decode JOIN: %w", err)
	}

	switch msg.Type {
	case api.TypeJoin:
		if err := msg.Validate(); err != nil {
			return api.ServerMessage{}, err
		}
		return msg, nil
	case api.TypeError:
		return api.ServerMessage{}, fmt.Errorf("server rejected join: %s", msg.Error)
	default:
		return api.ServerMessage{}, fmt.Errorf("expected JOIN, got %s", msg.Type)
	}
}
