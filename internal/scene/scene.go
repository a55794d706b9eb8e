package scene

import (
	"maps"

	"autobattler-client/internal/domain"
	"autobattler-client/internal/projection"
	"autobattler-client/pkg/logger"

	"github.com/sirupsen/logrus"
)

// RosterEntry - строка списка игроков.
type RosterEntry struct {
	ID     string `json:"id"`
	Name   any    `json:"name,omitempty"`
	Avatar any    `json:"avatar,omitempty"`
	Money  any    `json:"money,omitempty"`
	Life   any    `json:"life,omitempty"`
	Level  any    `json:"level,omitempty"`
}

// Combatant - покемон на поле боя.
type Combatant struct {
	Team   string         `json:"team"`
	Key    string         `json:"key"`
	Fields map[string]any `json:"fields"`
	Items  map[string]any `json:"items,omitempty"`
}

type MoneyWidget struct {
	Money        any `json:"money"`
	Streak       any `json:"streak"`
	Interest     any `json:"interest"`
	BattleResult any `json:"battleResult"`
}

type ShopWidget struct {
	Refreshes  int `json:"refreshes"`
	LockRedraw int `json:"lockRedraws"`
	Level      any `json:"level"`
	Experience any `json:"experience"`
	ExpNeeded  any `json:"expNeeded"`
}

type BoardWidget struct {
	PlayerID string `json:"playerId"`
	Board    any    `json:"board"`
	Rebuilds int    `json:"rebuilds"`
}

type BattleWidget struct {
	PlayerID   string                           `json:"playerId"`
	Combatants map[string]map[string]*Combatant `json:"combatants"` // владелец -> CombatantID
}

type HUDWidget struct {
	Time         any      `json:"time"`
	CountDown    any      `json:"countDown"`
	Phase        any      `json:"phase"`
	StageLevel   any      `json:"stageLevel"`
	OpponentName any      `json:"opponentName"`
	BoardSize    any      `json:"boardSize"`
	MaxBoardSize any      `json:"maxBoardSize"`
	Errors       []string `json:"errors,omitempty"`
}

// Scene - безголовая сцена игры. Хранит то, что отрисовала бы настоящая
// сцена, и реализует projection.Renderer и projection.Surfaces.
//
// Сцена принадлежит циклу событий клиента и не потокобезопасна.
type Scene struct {
	surfaces map[projection.Surface]bool

	money     MoneyWidget
	roster    map[string]*RosterEntry
	order     []string
	shop      ShopWidget
	board     BoardWidget
	battle    BattleWidget
	weather   string
	hazards   map[domain.Hazard]bool
	synergies map[string]any
	items     map[string]any
	hud       HUDWidget

	log *logrus.Entry
}

var _ projection.Renderer = (*Scene)(nil)
var _ projection.Surfaces = (*Scene)(nil)

func New() *Scene {
	s := &Scene{
		surfaces: make(map[projection.Surface]bool),
		log:      logger.Log.WithField("component", "scene"),
	}
	s.reset()
	return s
}

func (s *Scene) reset() {
	s.money = MoneyWidget{}
	s.roster = make(map[string]*RosterEntry)
	s.order = nil
	s.shop = ShopWidget{}
	s.board = BoardWidget{}
	s.battle = BattleWidget{Combatants: make(map[string]map[string]*Combatant)}
	s.weather = ""
	s.hazards = make(map[domain.Hazard]bool)
	s.synergies = make(map[string]any)
	s.items = make(map[string]any)
	s.hud = HUDWidget{}
}

// Has - nil-безопасная проверка: у несуществующей сцены нет поверхностей.
func (s *Scene) Has(surface projection.Surface) bool {
	if s == nil {
		return false
	}
	return s.surfaces[surface]
}

// Build создает поверхности. Без аргументов создаются все.
func (s *Scene) Build(surfaces ...projection.Surface) {
	if len(surfaces) == 0 {
		surfaces = projection.AllSurfaces()
	}
	for _, sf := range surfaces {
		s.surfaces[sf] = true
	}
	s.log.WithField("surfaces", surfaces).Debug("scene built")
}

// Destroy убирает поверхности. Без аргументов сцена уничтожается целиком
// вместе с содержимым виджетов.
func (s *Scene) Destroy(surfaces ...projection.Surface) {
	if len(surfaces) == 0 {
		s.surfaces = make(map[projection.Surface]bool)
		s.reset()
		s.log.Debug("scene destroyed")
		return
	}
	for _, sf := range surfaces {
		delete(s.surfaces, sf)
	}
}

// Roster возвращает строки списка игроков в порядке появления.
func (s *Scene) Roster() []RosterEntry {
	out := make([]RosterEntry, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.roster[id]; ok {
			out = append(out, *e)
		}
	}
	return out
}

// Snapshot - состояние виджетов для отладки.
type Snapshot struct {
	Surfaces  []string       `json:"surfaces"`
	Money     MoneyWidget    `json:"money"`
	Roster    []RosterEntry  `json:"roster"`
	Shop      ShopWidget     `json:"shop"`
	Board     BoardWidget    `json:"board"`
	Battle    BattleWidget   `json:"battle"`
	Weather   string         `json:"weather"`
	Hazards   []string       `json:"hazards"`
	Synergies map[string]any `json:"synergies"`
	Items     map[string]any `json:"items"`
	HUD       HUDWidget      `json:"hud"`
}

// Snapshot копирует изменяемые карты виджетов: снимок читается вне цикла событий.
// Значения полей приходят из документа и не меняются на месте.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Money:     s.money,
		Roster:    s.Roster(),
		Shop:      s.shop,
		Board:     s.board,
		Battle:    s.battle.clone(),
		Weather:   s.weather,
		Synergies: maps.Clone(s.synergies),
		Items:     maps.Clone(s.items),
		HUD:       s.hud,
	}
	for _, sf := range projection.AllSurfaces() {
		if s.surfaces[sf] {
			snap.Surfaces = append(snap.Surfaces, sf.String())
		}
	}
	for _, h := range []domain.Hazard{domain.HazardRedRocks, domain.HazardBlueRocks, domain.HazardRedSpikes, domain.HazardBlueSpikes} {
		if s.hazards[h] {
			snap.Hazards = append(snap.Hazards, h.String())
		}
	}
	return snap
}

func (b BattleWidget) clone() BattleWidget {
	out := BattleWidget{PlayerID: b.PlayerID, Combatants: make(map[string]map[string]*Combatant, len(b.Combatants))}
	for owner, team := range b.Combatants {
		copied := make(map[string]*Combatant, len(team))
		for id, c := range team {
			copied[id] = &Combatant{Team: c.Team, Key: c.Key, Fields: maps.Clone(c.Fields), Items: maps.Clone(c.Items)}
		}
		out.Combatants[owner] = copied
	}
	return out
}
