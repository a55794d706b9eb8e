package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"autobattler-client/internal/client"
	"autobattler-client/internal/replica"
	"autobattler-client/internal/scene"
	"autobattler-client/pkg/api"
)

// inspectorFunc выполняет fn сразу, без цикла событий.
type inspectorFunc func(ctx context.Context, fn func(client.Status)) error

func (f inspectorFunc) Inspect(ctx context.Context, fn func(client.Status)) error { return f(ctx, fn) }

func newTestServer(t *testing.T, inspect inspectorFunc) *httptest.Server {
	t.Helper()
	sc := scene.New()
	sc.Build()
	sc.UpdatePhase("PICK")

	srv := httptest.NewServer(New(":0", NewDebugHandler(inspect, sc)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func sampleStatus(t *testing.T) client.Status {
	t.Helper()
	doc := replica.NewDocument()
	err := doc.Apply([]api.Patch{
		{Op: api.OpAdd, Path: []string{"players"}, Key: "me", Changes: []api.FieldChange{{Field: "money", Value: 7.0}}},
		{Op: api.OpChange, Path: []string{"players", "me", "experienceManager"}, Changes: []api.FieldChange{{Field: "level", Value: 3.0}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return client.Status{RoomID: "game", SessionID: "me", Spectated: "me", Ready: true, Players: []string{"me"}, Document: doc}
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestServer_HealthAndVersion(t *testing.T) {
	srv := newTestServer(t, func(ctx context.Context, fn func(client.Status)) error { return nil })

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("health = %d", resp.StatusCode)
	}

	var info map[string]any
	if code := getJSON(t, srv.URL+"/version", &info); code != http.StatusOK {
		t.Fatalf("version = %d", code)
	}
	if info["name"] != "autobattler-client" {
		t.Errorf("version info = %v", info)
	}
}

func TestDebug_StatusSceneAndPlayers(t *testing.T) {
	status := sampleStatus(t)
	srv := newTestServer(t, func(ctx context.Context, fn func(client.Status)) error {
		fn(status)
		return nil
	})

	var st map[string]any
	if code := getJSON(t, srv.URL+"/debug/status", &st); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if st["sessionId"] != "me" || st["ready"] != true {
		t.Errorf("status = %v", st)
	}

	var snap scene.Snapshot
	if code := getJSON(t, srv.URL+"/debug/scene", &snap); code != http.StatusOK {
		t.Fatalf("scene = %d", code)
	}
	if snap.HUD.Phase != "PICK" || len(snap.Surfaces) == 0 {
		t.Errorf("scene = %+v", snap)
	}

	var players []struct {
		ID         string         `json:"id"`
		Fields     map[string]any `json:"fields"`
		Experience map[string]any `json:"experience"`
	}
	if code := getJSON(t, srv.URL+"/debug/players", &players); code != http.StatusOK {
		t.Fatalf("players = %d", code)
	}
	if len(players) != 1 || players[0].Fields["money"] != 7.0 || players[0].Experience["level"] != 3.0 {
		t.Errorf("players = %+v", players)
	}
}

func TestDebug_EmptyPlayersIsArray(t *testing.T) {
	srv := newTestServer(t, func(ctx context.Context, fn func(client.Status)) error {
		fn(client.Status{Document: replica.NewDocument()})
		return nil
	})
	resp, err := http.Get(srv.URL + "/debug/players")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]" {
		t.Errorf("body = %q", buf.String())
	}
}

func TestDebug_StoppedContainer(t *testing.T) {
	srv := newTestServer(t, func(ctx context.Context, fn func(client.Status)) error {
		return client.ErrStopped
	})
	if code := getJSON(t, srv.URL+"/debug/status", nil); code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", code)
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- New("127.0.0.1:0", nil).Run(ctx) }()
	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Run = %v", err)
	}
}
