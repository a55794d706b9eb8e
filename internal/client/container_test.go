package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"autobattler-client/internal/client"
	"autobattler-client/internal/client/mocks"
	"autobattler-client/internal/domain"
	"autobattler-client/internal/scene"
	"autobattler-client/pkg/api"

	"go.uber.org/mock/gomock"
)

type fixture struct {
	room      *mocks.MockRoom
	joiner    *mocks.MockJoiner
	scene     *scene.Scene
	messages  chan api.ServerMessage
	container *client.GameContainer
	done      chan error
	cancel    context.CancelFunc
}

func newFixture(t *testing.T, opts client.Options) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		room:     mocks.NewMockRoom(ctrl),
		joiner:   mocks.NewMockJoiner(ctrl),
		scene:    scene.New(),
		messages: make(chan api.ServerMessage),
		done:     make(chan error, 1),
	}
	f.room.EXPECT().ID().Return("game").AnyTimes()
	f.room.EXPECT().SessionID().Return("me").AnyTimes()
	f.room.EXPECT().Messages().Return((<-chan api.ServerMessage)(f.messages)).AnyTimes()

	f.scene.Build()
	f.container = client.NewGameContainer(f.room, f.joiner, f.scene, opts)

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	go func() { f.done <- f.container.Run(ctx) }()
	t.Cleanup(cancel)
	return f
}

func (f *fixture) send(msg api.ServerMessage) { f.messages <- msg }

func (f *fixture) inspect(t *testing.T, fn func(client.Status)) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.container.Inspect(ctx, fn); err != nil {
		t.Fatalf("inspect: %v", err)
	}
}

func (f *fixture) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-f.done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func stateMessage() api.ServerMessage {
	return api.ServerMessage{Type: api.TypeState, Patches: []api.Patch{
		{Op: api.OpChange, Path: nil, Changes: []api.FieldChange{{Field: "phase", Value: "PICK"}}},
		{Op: api.OpAdd, Path: []string{"players"}, Key: "me", Changes: []api.FieldChange{
			{Field: "name", Value: "Red"}, {Field: "money", Value: 10.0}, {Field: "board", Value: "b0"},
		}},
		{Op: api.OpAdd, Path: []string{"players"}, Key: "rival", Changes: []api.FieldChange{
			{Field: "board", Value: "b1"},
		}},
	}}
}

func TestContainer_StateThenPatch(t *testing.T) {
	f := newFixture(t, client.Options{})
	f.send(stateMessage())
	f.send(api.ServerMessage{Type: api.TypePatch, Seq: 2, Patches: []api.Patch{
		{Op: api.OpChange, Path: []string{"players", "me"}, Changes: []api.FieldChange{{Field: "money", Value: 12.0}}},
		{Op: api.OpChange, Path: []string{"players", "ghost"}, Changes: []api.FieldChange{{Field: "money", Value: 1.0}}},
	}})

	f.inspect(t, func(s client.Status) {
		if !s.Ready || s.SessionID != "me" || len(s.Players) != 2 {
			t.Errorf("status = %+v", s)
		}
		snap := f.scene.Snapshot()
		if snap.Money.Money != 12.0 {
			t.Errorf("money = %v", snap.Money.Money)
		}
		// Фаза пришла в снимке до готовности и показана после него
		if snap.HUD.Phase != "PICK" {
			t.Errorf("phase = %v", snap.HUD.Phase)
		}
	})

	f.room.EXPECT().Err().Return(nil)
	close(f.messages)
	if err := f.wait(t); err != nil {
		t.Errorf("Run = %v, want nil on clean close", err)
	}
}

func TestContainer_IntentsReachRoom(t *testing.T) {
	f := newFixture(t, client.Options{})
	f.send(stateMessage())

	sent := make(chan struct{})
	f.room.EXPECT().Send("shop", api.ShopPayload{ID: 2}).DoAndReturn(func(string, any) error {
		close(sent)
		return nil
	})

	ctx := context.Background()
	if err := f.container.Submit(ctx, domain.Intent{Kind: domain.IntentShopClick, ShopID: 2}); err != nil {
		t.Fatal(err)
	}
	<-sent

	if err := f.container.Submit(ctx, domain.Intent{Kind: domain.IntentPlayerClick, PlayerID: "rival"}); err != nil {
		t.Fatal(err)
	}
	f.inspect(t, func(s client.Status) {
		if s.Spectated != "rival" {
			t.Errorf("spectated = %q", s.Spectated)
		}
		if b := f.scene.Snapshot().Board; b.PlayerID != "rival" || b.Board != "b1" {
			t.Errorf("board = %+v", b)
		}
	})
}

func TestContainer_DragDropFailed(t *testing.T) {
	f := newFixture(t, client.Options{})
	f.send(stateMessage())

	var before int
	f.inspect(t, func(client.Status) { before = f.scene.Snapshot().Board.Rebuilds })

	f.send(api.ServerMessage{
		Type:    api.TypeMessage,
		Name:    domain.MessageDragDropFailed,
		Payload: []byte(`{"updateBoard":true,"updateItems":true,"field":"item2"}`),
	})
	f.inspect(t, func(client.Status) {
		if got := f.scene.Snapshot().Board.Rebuilds; got != before+1 {
			t.Errorf("rebuilds = %d, want %d", got, before+1)
		}
	})
}

func TestContainer_KickOutMovesToLobby(t *testing.T) {
	ctrl := gomock.NewController(t)
	lobby := mocks.NewMockRoom(ctrl)

	var handed client.Room
	f := newFixture(t, client.Options{
		JoinTimeout: time.Second,
		OnLobby:     func(r client.Room) { handed = r },
	})
	f.joiner.EXPECT().JoinOrCreate(gomock.Any(), domain.LobbyRoom).Return(lobby, nil)
	f.room.EXPECT().Leave().Return(nil)

	f.send(api.ServerMessage{Type: api.TypeMessage, Name: domain.MessageKickOut})
	if err := f.wait(t); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if handed != lobby {
		t.Error("lobby room was not handed over")
	}
}

func TestContainer_KickOutFailureShowsError(t *testing.T) {
	f := newFixture(t, client.Options{JoinTimeout: time.Second})
	f.joiner.EXPECT().JoinOrCreate(gomock.Any(), domain.LobbyRoom).Return(nil, errors.New("lobby is full"))

	f.send(api.ServerMessage{Type: api.TypeMessage, Name: domain.MessageKickOut})
	f.inspect(t, func(client.Status) {
		errs := f.scene.Snapshot().HUD.Errors
		if len(errs) != 1 {
			t.Errorf("errors = %v", errs)
		}
	})

	f.cancel()
	if err := f.wait(t); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestContainer_RoomDropIsReported(t *testing.T) {
	f := newFixture(t, client.Options{})
	f.room.EXPECT().Err().Return(errors.New("read: connection reset"))
	close(f.messages)

	if err := f.wait(t); !errors.Is(err, client.ErrRoomClosed) {
		t.Errorf("Run = %v, want ErrRoomClosed", err)
	}
	if err := f.container.Submit(context.Background(), domain.Intent{Kind: domain.IntentLockClick}); !errors.Is(err, client.ErrStopped) {
		t.Errorf("Submit after stop = %v", err)
	}
}
