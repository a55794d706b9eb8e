package projection

import (
	"autobattler-client/internal/domain"
	"autobattler-client/internal/replica"
	"autobattler-client/pkg/utils"
)

const (
	// opponentNameLimit - сколько символов имени соперника помещается в метку.
	opponentNameLimit = 10
	// countdownThreshold - с какого значения таймера показывается обратный отсчет.
	countdownThreshold = 5
)

// --- Игрок ---

func handleMoney(r *Router, ev Event) {
	if r.identity.IsSelf(ev.Owner) && r.guard.Allow(SurfaceMoney) {
		r.view.UpdateMoney(ev.Change.Value)
	}
	r.view.UpdateRosterMoney(ev.Owner, ev.Change.Value)
}

func handleStreak(r *Router, ev Event) {
	r.view.UpdateStreak(ev.Change.Value)
}

func handleInterest(r *Router, ev Event) {
	r.view.UpdateInterest(ev.Change.Value)
}

func handleLastBattleResult(r *Router, ev Event) {
	r.view.UpdateBattleResult(ev.Change.Value)
}

func handleOpponentName(r *Router, ev Event) {
	value := ev.Change.Value
	if name, ok := value.(string); ok {
		value = utils.Truncate(name, opponentNameLimit)
	}
	r.view.UpdateOpponentName(value)
}

func handleShop(r *Router, ev Event) {
	r.view.RefreshShop()
}

func handleBoard(r *Router, ev Event) {
	if r.spectated != ev.Owner {
		return
	}
	r.view.RebuildBoard(ev.Owner, ev.Change.Value)
}

func handleBoardSize(r *Router, ev Event) {
	r.view.UpdateBoardSize(ev.Change.Value)
}

func handleLife(r *Router, ev Event) {
	r.view.UpdateRosterLife(ev.Owner, ev.Change.Value)
}

func handleShopLocked(r *Router, ev Event) {
	r.view.RefreshLock()
}

func playerAppeared(r *Router, m Member, e *replica.Entity) {
	r.view.AddPlayer(m.Key, e.Fields())
}

func playerRemoved(r *Router, m Member, _ *replica.Entity) {
	r.view.RemovePlayer(m.Key)
}

// --- Опыт ---

// handleLevel: уровень влияет и на лимит доски, поэтому свой игрок
// обновляет и бейдж, и метку максимального размера доски.
func handleLevel(r *Router, ev Event) {
	if r.identity.IsSelf(ev.Owner) && r.guard.Allow(SurfaceShop, SurfaceHUD) {
		r.view.UpdateLevel(ev.Change.Value)
		r.view.UpdateMaxBoardSize(ev.Change.Value)
	}
	r.view.UpdateRosterLevel(ev.Owner, ev.Change.Value)
}

func handleExperience(r *Router, ev Event) {
	r.view.UpdateExperience(ev.Change.Value)
}

func handleExpNeeded(r *Router, ev Event) {
	r.view.UpdateExpNeeded(ev.Change.Value)
}

// --- Синергии, инвентарь ---

func handleSynergy(r *Router, ev Event) {
	r.view.UpdateSynergy(ev.Change.Field, ev.Change.Value)
}

func handleInventory(r *Router, ev Event) {
	r.view.UpdateItem(ev.Change.Field, ev.Change.Value)
}

// --- Симуляция ---

func handleClimate(r *Router, ev Event) {
	name, _ := ev.Change.Value.(string)
	switch domain.ParseClimate(name) {
	case domain.ClimateRain:
		r.view.AddRain()
	case domain.ClimateSun:
		r.view.AddSun()
	case domain.ClimateSandstorm:
		r.view.AddSandstorm()
	case domain.ClimateNeutral:
		r.view.ClearWeather()
	default:
		// Неизвестная погода: ничего не меняем
	}
}

func handleHazard(r *Router, ev Event) {
	hazard := domain.HazardForField(ev.Change.Field)
	if utils.Truthy(ev.Change.Value) {
		r.view.AddHazard(hazard)
	} else {
		r.view.ClearHazard(hazard)
	}
}

// --- Бой ---

func combatantAppeared(r *Router, m Member, e *replica.Entity) {
	r.view.AddCombatant(m.Owner, m.Team, m.Key, e.Fields())
}

func combatantRemoved(r *Router, m Member, _ *replica.Entity) {
	r.view.RemoveCombatant(m.Owner, m.Team, m.Key)
}

func handleCombatant(r *Router, ev Event) {
	r.view.ChangeCombatant(ev.Owner, ev.Team, ev.Member, ev.Change.Field, ev.Change.Value)
}

func handleCombatantItems(r *Router, ev Event) {
	r.view.ChangeCombatantItems(ev.Owner, ev.Team, ev.Member, ev.Change.Field, ev.Change.Value)
}

// --- Документ ---

func handleRoundTime(r *Router, ev Event) {
	r.view.UpdateTime(ev.Change.Value)
	if n, ok := utils.AsNumber(ev.Change.Value); ok && n <= countdownThreshold && n >= 0 {
		r.view.DisplayCountDown(ev.Change.Value)
	}
}

func handlePhase(r *Router, ev Event) {
	r.view.UpdatePhase(ev.Change.Value)
}

func handleStageLevel(r *Router, ev Event) {
	r.view.UpdateStageLevel(ev.Change.Value)
}
