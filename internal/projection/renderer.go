package projection

import "autobattler-client/internal/domain"

// Surface - поверхность отрисовки, на которую может писать обработчик.
// Поверхности создаются и уничтожаются сценой независимо от потока
// изменений, поэтому перед каждой проекцией их наличие проверяет Guard.
type Surface uint8

const (
	SurfaceScene Surface = iota
	SurfaceMoney
	SurfaceRoster
	SurfaceShop
	SurfaceBoard
	SurfaceBattle
	SurfaceWeather
	SurfaceHazards
	SurfaceSynergies
	SurfaceItems
	SurfaceHUD
)

var surfaceNames = map[Surface]string{
	SurfaceScene:     "scene",
	SurfaceMoney:     "money",
	SurfaceRoster:    "roster",
	SurfaceShop:      "shop",
	SurfaceBoard:     "board",
	SurfaceBattle:    "battle",
	SurfaceWeather:   "weather",
	SurfaceHazards:   "hazards",
	SurfaceSynergies: "synergies",
	SurfaceItems:     "items",
	SurfaceHUD:       "hud",
}

// AllSurfaces перечисляет поверхности в порядке объявления.
func AllSurfaces() []Surface {
	out := make([]Surface, 0, len(surfaceNames))
	for s := SurfaceScene; s <= SurfaceHUD; s++ {
		out = append(out, s)
	}
	return out
}

func (s Surface) String() string {
	if name, ok := surfaceNames[s]; ok {
		return name
	}
	return "unknown"
}

// Surfaces - реестр существующих поверхностей.
type Surfaces interface {
	Has(s Surface) bool
}

// MoneyView - блок денег своего игрока.
type MoneyView interface {
	UpdateMoney(value any)
	UpdateStreak(value any)
	UpdateInterest(value any)
	UpdateBattleResult(value any)
}

// RosterView - список всех игроков комнаты.
type RosterView interface {
	AddPlayer(playerID string, fields map[string]any)
	RemovePlayer(playerID string)
	UpdateRosterMoney(playerID string, value any)
	UpdateRosterLife(playerID string, value any)
	UpdateRosterLevel(playerID string, value any)
}

// ShopView - магазин, кнопки блокировки и повышения уровня.
type ShopView interface {
	RefreshShop()
	RefreshLock()
	UpdateLevel(value any)
	UpdateExperience(value any)
	UpdateExpNeeded(value any)
}

// BoardView - доска игрока, за которым сейчас наблюдает клиент.
type BoardView interface {
	RebuildBoard(playerID string, board any)
	RefreshBoard()
	Spectate(playerID string, board any)
}

// BattleView - бой: покемоны обеих команд и их предметы.
// Покемон определяется тройкой (игрок, команда, слот).
type BattleView interface {
	AddCombatant(playerID, team, key string, fields map[string]any)
	RemoveCombatant(playerID, team, key string)
	ChangeCombatant(playerID, team, key, field string, value any)
	ChangeCombatantItems(playerID, team, key, slot string, value any)
	SetBattlePlayer(playerID string)
}

type WeatherView interface {
	AddRain()
	AddSun()
	AddSandstorm()
	ClearWeather()
}

type HazardView interface {
	AddHazard(h domain.Hazard)
	ClearHazard(h domain.Hazard)
}

type SynergyView interface {
	UpdateSynergy(name string, value any)
}

type ItemsView interface {
	UpdateItem(slot string, value any)
	RefreshItem(slot string)
}

// HUDView - текстовые метки сцены и пользовательские ошибки.
type HUDView interface {
	UpdateTime(value any)
	DisplayCountDown(value any)
	UpdatePhase(value any)
	UpdateStageLevel(value any)
	UpdateOpponentName(value any)
	UpdateBoardSize(value any)
	UpdateMaxBoardSize(value any)
	ShowError(message string)
}

// Renderer - все точки вызова, которые слой проекции использует в сцене.
type Renderer interface {
	MoneyView
	RosterView
	ShopView
	BoardView
	BattleView
	WeatherView
	HazardView
	SynergyView
	ItemsView
	HUDView
}
