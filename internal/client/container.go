package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autobattler-client/internal/domain"
	"autobattler-client/internal/projection"
	"autobattler-client/internal/replica"
	"autobattler-client/pkg/api"
	"autobattler-client/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrRoomClosed = errors.New("room connection closed")
	ErrStopped    = errors.New("container stopped")
)

// View - сцена, в которую проецируется документ.
type View interface {
	projection.Renderer
	projection.Surfaces
}

type Options struct {
	// JoinTimeout - сколько ждать лобби после kick-out
	JoinTimeout time.Duration
	// OnLobby получает комнату лобби после успешного kick-out.
	// Если не задан, лобби сразу покидается.
	OnLobby func(Room)
}

// Status - снимок состояния контейнера для отладки.
type Status struct {
	RoomID    string
	SessionID string
	Spectated string
	Ready     bool
	Players   []string
	Document  *replica.Document
}

// GameContainer владеет документом, роутером и сценой одной комнаты.
// Все события обрабатываются в горутине Run, по одному, в порядке получения.
type GameContainer struct {
	room    Room
	joiner  Joiner
	doc     *replica.Document
	router  *projection.Router
	emitter *projection.Emitter
	opts    Options

	intents chan domain.Intent
	inspect chan func()
	stopped chan struct{}

	log *logrus.Entry
}

// defaultJoinTimeout - если в Options таймаут не задан.
const defaultJoinTimeout = 10 * time.Second

func NewGameContainer(room Room, joiner Joiner, view View, opts Options) *GameContainer {
	if opts.JoinTimeout <= 0 {
		opts.JoinTimeout = defaultJoinTimeout
	}
	doc := replica.NewDocument()
	router := projection.NewRouter(projection.NewIdentity(room.SessionID()), view, view, doc)
	projection.NewBinder(router).BindDocument(doc)

	return &GameContainer{
		room:    room,
		joiner:  joiner,
		doc:     doc,
		router:  router,
		emitter: projection.NewEmitter(room, router),
		opts:    opts,
		intents: make(chan domain.Intent),
		inspect: make(chan func()),
		stopped: make(chan struct{}),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "container",
			"room":      room.ID(),
			"session":   room.SessionID(),
		}),
	}
}

// Run - цикл событий. Возвращает nil, если комната закрыта штатно или
// клиент ушел в лобби после kick-out.
func (c *GameContainer) Run(ctx context.Context) error {
	defer close(c.stopped)
	c.log.Info("container started")

	messages := c.room.Messages()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				if err := c.room.Err(); err != nil {
					return fmt.Errorf("%w: %v", ErrRoomClosed, err)
				}
				c.log.Info("room closed")
				return nil
			}
			if c.handleMessage(ctx, msg) {
				return nil
			}

		case in := <-c.intents:
			if err := c.emitter.Emit(in); err != nil {
				c.log.WithError(err).WithField("intent", in.Kind).Warn("intent failed")
			}

		case fn := <-c.inspect:
			fn()
		}
	}
}

// Submit передает намерение пользователя в цикл событий.
func (c *GameContainer) Submit(ctx context.Context, in domain.Intent) error {
	select {
	case c.intents <- in:
		return nil
	case <-c.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Inspect выполняет fn внутри цикла событий. Пока fn работает, документ
// и сцена не меняются.
func (c *GameContainer) Inspect(ctx context.Context, fn func(Status)) error {
	done := make(chan struct{})
	job := func() {
		defer close(done)
		fn(c.status())
	}

	select {
	case c.inspect <- job:
	case <-c.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *GameContainer) status() Status {
	return Status{
		RoomID:    c.room.ID(),
		SessionID: c.room.SessionID(),
		Spectated: c.router.Spectated(),
		Ready:     c.router.Ready(),
		Players:   c.doc.Players().Keys(),
		Document:  c.doc,
	}
}

// handleMessage возвращает true, если контейнер должен завершиться.
func (c *GameContainer) handleMessage(ctx context.Context, msg api.ServerMessage) bool {
	switch msg.Type {
	case api.TypeJoin:
		c.log.WithField("session", msg.SessionID).Debug("join acknowledged")

	case api.TypeState:
		c.applyPatches(msg)
		if !c.router.Ready() {
			c.router.MarkReady()
			// Поля документа до готовности не проецировались
			c.doc.Root().TriggerAll()
			c.log.WithField("players", c.doc.Players().Len()).Info("document ready")
		}

	case api.TypePatch:
		c.applyPatches(msg)

	case api.TypeMessage:
		return c.handleNamed(ctx, msg)

	case api.TypeError:
		c.log.WithField("error", msg.Error).Error("server error")
	}
	return false
}

func (c *GameContainer) applyPatches(msg api.ServerMessage) {
	if err := c.doc.Apply(msg.Patches); err != nil {
		c.log.WithError(err).WithField("seq", msg.Seq).Warn("some patches were skipped")
	}
}

func (c *GameContainer) handleNamed(ctx context.Context, msg api.ServerMessage) bool {
	switch msg.Name {
	case domain.MessageDragDropFailed:
		var p api.DragDropFailedPayload
		if err := msg.DecodePayload(&p); err != nil {
			c.log.WithError(err).Warn("bad DragDropFailed payload")
			return false
		}
		if p.UpdateBoard {
			c.router.RefreshBoard()
		}
		if p.UpdateItems {
			c.router.RefreshItem(p.Field)
		}
		return false

	case domain.MessageKickOut:
		return c.kickOut(ctx)

	default:
		c.log.WithField("name", msg.Name).Debug("unhandled message")
		return false
	}
}

// kickOut - единственное ожидание в цикле: подключение к лобби с таймаутом.
// Ошибка показывается пользователю, соединение с комнатой остается.
func (c *GameContainer) kickOut(ctx context.Context) bool {
	c.log.Info("kicked out, joining lobby")

	jctx, cancel := context.WithTimeout(ctx, c.opts.JoinTimeout)
	defer cancel()

	lobby, err := c.joiner.JoinOrCreate(jctx, domain.LobbyRoom)
	if err != nil {
		c.log.WithError(err).Warn("lobby join failed")
		c.router.ShowError(fmt.Sprintf("could not join %s: %v", domain.LobbyRoom, err))
		return false
	}

	if err := c.room.Leave(); err != nil {
		c.log.WithError(err).Warn("leave after kick-out")
	}
	if c.opts.OnLobby != nil {
		c.opts.OnLobby(lobby)
	} else if err := lobby.Leave(); err != nil {
		c.log.WithError(err).Warn("leave lobby")
	}
	return true
}
