package projection

import (
	"errors"
	"fmt"

	"autobattler-client/internal/domain"
	"autobattler-client/pkg/api"
	"autobattler-client/pkg/logger"

	"github.com/sirupsen/logrus"
)

//go:generate go tool mockgen -destination=./mocks/emitter_mock.go -package=mocks . Sender,Spectator

var ErrUnknownIntent = errors.New("unknown intent")

// Sender отправляет команду серверу. Реализуется комнатой транспорта.
type Sender interface {
	Send(command string, payload any) error
}

// Spectator переключает отображаемого игрока локально.
type Spectator interface {
	Spectate(playerID string) bool
}

// commandFunc строит имя команды и payload по намерению.
type commandFunc func(in domain.Intent) (string, any)

var intentCommands = map[domain.IntentKind]commandFunc{
	domain.IntentShopClick: func(in domain.Intent) (string, any) {
		return domain.CommandShop, api.ShopPayload{ID: in.ShopID}
	},
	domain.IntentRefreshClick: func(domain.Intent) (string, any) {
		return domain.CommandRefresh, api.EmptyPayload{}
	},
	domain.IntentLockClick: func(domain.Intent) (string, any) {
		return domain.CommandLock, api.EmptyPayload{}
	},
	domain.IntentLevelClick: func(domain.Intent) (string, any) {
		return domain.CommandLevelUp, api.EmptyPayload{}
	},
	domain.IntentDragDrop: func(in domain.Intent) (string, any) {
		return domain.CommandDragDrop, api.DetailPayload{Detail: in.Detail}
	},
	domain.IntentSellDrop: func(in domain.Intent) (string, any) {
		return domain.CommandSellDrop, api.DetailPayload{Detail: in.Detail}
	},
}

// Emitter переводит локальные намерения пользователя в команды серверу.
type Emitter struct {
	sender    Sender
	spectator Spectator
	log       *logrus.Entry
}

func NewEmitter(sender Sender, spectator Spectator) *Emitter {
	return &Emitter{
		sender:    sender,
		spectator: spectator,
		log:       logger.Log.WithField("component", "emitter"),
	}
}

// Emit обрабатывает одно намерение. player-click не уходит в сеть.
// Ошибки отправки возвращаются как есть, повторов нет.
func (e *Emitter) Emit(in domain.Intent) error {
	if in.Kind == domain.IntentPlayerClick {
		if !e.spectator.Spectate(in.PlayerID) {
			e.log.WithField("player", in.PlayerID).Debug("spectate ignored")
		}
		return nil
	}

	build, ok := intentCommands[in.Kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIntent, in.Kind)
	}
	command, payload := build(in)
	e.log.WithFields(logrus.Fields{"intent": in.Kind, "command": command}).Debug("emit")
	return e.sender.Send(command, payload)
}
