package client

import (
	"context"

	"autobattler-client/pkg/api"
)

//go:generate go tool mockgen -destination=./mocks/room_mock.go -package=mocks . Room,Joiner

// Room - подключение к комнате сервера, как его видит контейнер.
// Messages закрывается при разрыве, причина - в Err (nil после Leave).
type Room interface {
	ID() string
	SessionID() string
	Messages() <-chan api.ServerMessage
	Send(command string, payload any) error
	Leave() error
	Err() error
}

// Joiner подключает к комнате по имени, создавая ее при необходимости.
type Joiner interface {
	JoinOrCreate(ctx context.Context, room string) (Room, error)
}

// JoinerFunc позволяет использовать функцию как Joiner.
type JoinerFunc func(ctx context.Context, room string) (Room, error)

func (f JoinerFunc) JoinOrCreate(ctx context.Context, room string) (Room, error) {
	return f(ctx, room)
}
