package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"autobattler-client/internal/client"
	"autobattler-client/internal/domain"
	"autobattler-client/internal/replica"
	"autobattler-client/internal/scene"
)

// inspectTimeout - сколько ждать цикл событий клиента.
const inspectTimeout = 2 * time.Second

// Inspector - доступ к состоянию внутри цикла событий клиента.
type Inspector interface {
	Inspect(ctx context.Context, fn func(client.Status)) error
}

// DebugHandler отдает внутреннее состояние клиента
type DebugHandler struct {
	inspector Inspector
	scene     *scene.Scene
}

func NewDebugHandler(inspector Inspector, sc *scene.Scene) *DebugHandler {
	return &DebugHandler{inspector: inspector, scene: sc}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/status", h.handleStatus)
	mux.HandleFunc("/debug/scene", h.handleScene)
	mux.HandleFunc("/debug/players", h.handlePlayers)
}

func (h *DebugHandler) inspect(w http.ResponseWriter, r *http.Request, fn func(client.Status)) bool {
	ctx, cancel := context.WithTimeout(r.Context(), inspectTimeout)
	defer cancel()

	if err := h.inspector.Inspect(ctx, fn); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		http.Error(w, err.Error(), status)
		return false
	}
	return true
}

// /debug/status - комната, сессия, за кем наблюдаем
func (h *DebugHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	type StatusView struct {
		RoomID    string   `json:"roomId"`
		SessionID string   `json:"sessionId"`
		Spectated string   `json:"spectated"`
		Ready     bool     `json:"ready"`
		Players   []string `json:"players"`
	}

	var view StatusView
	if !h.inspect(w, r, func(s client.Status) {
		view = StatusView{
			RoomID:    s.RoomID,
			SessionID: s.SessionID,
			Spectated: s.Spectated,
			Ready:     s.Ready,
			Players:   s.Players,
		}
	}) {
		return
	}
	writeJSON(w, view)
}

// /debug/scene - что сейчас отрисовано
func (h *DebugHandler) handleScene(w http.ResponseWriter, r *http.Request) {
	var snap scene.Snapshot
	if !h.inspect(w, r, func(client.Status) { snap = h.scene.Snapshot() }) {
		return
	}
	writeJSON(w, snap)
}

// /debug/players - поля игроков в документе, включая вложенные структуры
func (h *DebugHandler) handlePlayers(w http.ResponseWriter, r *http.Request) {
	type PlayerView struct {
		ID         string         `json:"id"`
		Fields     map[string]any `json:"fields"`
		Experience map[string]any `json:"experience,omitempty"`
		Simulation map[string]any `json:"simulation,omitempty"`
	}

	var players []PlayerView
	if !h.inspect(w, r, func(s client.Status) {
		s.Document.Players().Each(func(id string, e *replica.Entity) {
			players = append(players, PlayerView{
				ID:         id,
				Fields:     e.Fields(),
				Experience: childFields(e, domain.ChildExperience),
				Simulation: childFields(e, domain.ChildSimulation),
			})
		})
	}) {
		return
	}
	if players == nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, players)
}

func childFields(e *replica.Entity, name string) map[string]any {
	child := e.Child(name)
	if child == nil {
		return nil
	}
	fields := child.Fields()
	if len(fields) == 0 {
		return nil
	}
	return fields
}
