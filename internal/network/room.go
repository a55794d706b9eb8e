package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"autobattler-client/pkg/api"
	"autobattler-client/pkg/logger"
	"autobattler-client/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

// frame - закодированная команда для writePump.
type frame struct {
	kind int
	data []byte
}

// Room - подключение к комнате. Чтение и запись идут в своих горутинах,
// наружу отдаются только каналы.
type Room struct {
	id        string
	sessionID string
	conn      *websocket.Conn
	codec     api.Codec

	messages chan api.ServerMessage
	outbound chan frame
	taps     *Broadcaster

	cancel    context.CancelFunc
	done      chan struct{}
	leaveOnce sync.Once

	errMu sync.Mutex
	err   error

	log *logrus.Entry
}

func newRoom(id, sessionID string, conn *websocket.Conn, codec api.Codec) *Room {
	return &Room{
		id:        id,
		sessionID: sessionID,
		conn:      conn,
		codec:     codec,
		messages:  make(chan api.ServerMessage, 64),
		outbound:  make(chan frame, 64),
		taps:      NewBroadcaster(),
		done:      make(chan struct{}),
		log:       logger.Log.WithFields(logrus.Fields{"component": "room", "room": id}),
	}
}

func (r *Room) ID() string        { return r.id }
func (r *Room) SessionID() string { return r.sessionID }

// Messages закрывается, когда соединение завершено. Причина - в Err().
func (r *Room) Messages() <-chan api.ServerMessage { return r.messages }

// Tap подписывает наблюдателя на копию входящих сообщений.
func (r *Room) Tap(name string) <-chan api.ServerMessage { return r.taps.Register(name) }

// Err возвращает причину закрытия. nil, если комната закрыта через Leave.
func (r *Room) Err() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	return r.err
}

func (r *Room) start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.readPump(gctx) })
	g.Go(func() error { return r.writePump(gctx) })

	go func() {
		err := g.Wait()
		r.errMu.Lock()
		r.err = err
		r.errMu.Unlock()
		if err != nil {
			r.log.WithError(err).Warn("room connection ended")
		}
		close(r.messages)
		r.taps.Close()
		close(r.done)
	}()
}

// Send отправляет команду серверу. Каждой команде присваивается свой id.
func (r *Room) Send(command string, payload any) error {
	cmd, err := api.NewCommand(utils.GenerateID(), command, payload)
	if err != nil {
		return fmt.Errorf("command %s: %w", command, err)
	}
	data, err := r.codec.Encode(cmd)
	if err != nil {
		return fmt.Errorf("encode %s: %w", command, err)
	}
	kind := websocket.TextMessage
	if r.codec.Binary() {
		kind = websocket.BinaryMessage
	}

	select {
	case r.outbound <- frame{kind: kind, data: data}:
		r.log.WithFields(logrus.Fields{"command": command, "id": cmd.ID}).Debug("command queued")
		return nil
	case <-r.done:
		return ErrRoomClosed
	}
}

// Leave закрывает соединение и ждет завершения обеих горутин.
func (r *Room) Leave() error {
	r.leaveOnce.Do(func() {
		r.log.Info("leaving room")
		r.cancel()
	})
	<-r.done
	return nil
}

// readPump читает кадры сервера и отдает их циклу событий клиента.
func (r *Room) readPump(ctx context.Context) error {
	r.conn.SetReadLimit(maxMessageSize)
	if err := r.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}
	r.conn.SetPongHandler(func(string) error {
		return r.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := r.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("%w: %v", ErrRoomClosed, err)
			}
			return fmt.Errorf("read: %w", err)
		}

		var msg api.ServerMessage
		if err := r.codec.Decode(data, &msg); err != nil {
			r.log.WithError(err).Warn("undecodable frame skipped")
			continue
		}
		if err := msg.Validate(); err != nil {
			r.log.WithError(err).WithField("type", msg.Type).Warn("invalid message skipped")
			continue
		}

		r.taps.Broadcast(msg)
		select {
		case r.messages <- msg:
		case <-ctx.Done():
			return nil
		}
	}
}

// writePump отправляет команды + Ping. При отмене контекста закрывает
// соединение, что разблокирует readPump.
func (r *Room) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := r.conn.Close(); err != nil {
			r.log.WithError(err).Debug("close websocket connection")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "leave")
			if err := r.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil &&
				!errors.Is(err, websocket.ErrCloseSent) {
				r.log.WithError(err).Debug("write close message failed")
			}
			return nil

		case f := <-r.outbound:
			if err := r.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := r.conn.WriteMessage(f.kind, f.data); err != nil {
				return fmt.Errorf("write: %w", err)
			}

		case <-ticker.C:
			if err := r.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := r.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}
