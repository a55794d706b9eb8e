package projection

import "autobattler-client/internal/domain"

var (
	playerSurfaces = []Surface{SurfaceScene, SurfaceRoster}
	moneySurfaces  = []Surface{SurfaceScene, SurfaceRoster, SurfaceMoney}
	shopSurfaces   = []Surface{SurfaceScene, SurfaceRoster, SurfaceShop}
	boardSurfaces  = []Surface{SurfaceScene, SurfaceRoster, SurfaceBoard}
	hudSurfaces    = []Surface{SurfaceScene, SurfaceRoster, SurfaceHUD}
	battleSurfaces = []Surface{SurfaceScene, SurfaceBattle}
)

// registerRoutes - единственное место, где описано, какое поле куда проецируется.
func (r *Router) registerRoutes() {
	// Игрок
	r.handle(domain.KindPlayer, domain.FieldMoney, playerSurfaces, handleMoney)
	r.handle(domain.KindPlayer, domain.FieldStreak, moneySurfaces, selfOnly(handleStreak))
	r.handle(domain.KindPlayer, domain.FieldInterest, moneySurfaces, selfOnly(handleInterest))
	r.handle(domain.KindPlayer, domain.FieldLastBattleResult, moneySurfaces, selfOnly(handleLastBattleResult))
	r.handle(domain.KindPlayer, domain.FieldOpponentName, hudSurfaces, selfOnly(handleOpponentName))
	r.handle(domain.KindPlayer, domain.FieldShop, shopSurfaces, selfOnly(handleShop))
	r.handle(domain.KindPlayer, domain.FieldBoard, boardSurfaces, handleBoard)
	r.handle(domain.KindPlayer, domain.FieldBoardSize, hudSurfaces, selfOnly(handleBoardSize))
	r.handle(domain.KindPlayer, domain.FieldLife, playerSurfaces, handleLife)
	r.handle(domain.KindPlayer, domain.FieldShopLocked, shopSurfaces, selfOnly(handleShopLocked))
	// Имя и аватар читаются списком игроков при добавлении.
	r.ignore(domain.KindPlayer, domain.FieldID, domain.FieldName, domain.FieldAvatar)

	// Опыт
	r.handle(domain.KindExperience, domain.FieldLevel, playerSurfaces, handleLevel)
	r.handle(domain.KindExperience, domain.FieldExperience, []Surface{SurfaceScene, SurfaceShop}, selfOnly(handleExperience))
	r.handle(domain.KindExperience, domain.FieldExpNeeded, []Surface{SurfaceScene, SurfaceShop}, selfOnly(handleExpNeeded))

	// Синергии и инвентарь
	r.handle(domain.KindSynergies, domain.FieldAny, []Surface{SurfaceScene, SurfaceSynergies}, selfOnly(handleSynergy))
	r.handle(domain.KindInventory, domain.FieldAny, []Surface{SurfaceScene, SurfaceItems}, selfOnly(handleInventory))

	// Симуляция
	r.handle(domain.KindSimulation, domain.FieldClimate, []Surface{SurfaceScene, SurfaceWeather}, selfOnly(handleClimate))
	for _, field := range []string{domain.FieldRedRocks, domain.FieldBlueRocks, domain.FieldRedSpikes, domain.FieldBlueSpikes} {
		r.handle(domain.KindSimulation, field, []Surface{SurfaceScene, SurfaceHazards}, selfOnly(handleHazard))
	}

	// Бой
	r.handle(domain.KindCombatant, domain.FieldAny, battleSurfaces, handleCombatant)
	r.handle(domain.KindItems, domain.FieldAny, battleSurfaces, handleCombatantItems)

	// Документ
	r.handleDocument(domain.FieldRoundTime, handleRoundTime)
	r.handleDocument(domain.FieldPhase, handlePhase)
	r.handleDocument(domain.FieldStageLevel, handleStageLevel)

	// Появление и исчезновение элементов коллекций
	r.members[domain.KindPlayer] = memberRoute{
		surfaces: playerSurfaces,
		appeared: playerAppeared,
		removed:  playerRemoved,
	}
	r.members[domain.KindCombatant] = memberRoute{
		surfaces: battleSurfaces,
		appeared: combatantAppeared,
		removed:  combatantRemoved,
	}
}

// selfOnly пропускает событие только для своего игрока.
func selfOnly(h HandlerFunc) HandlerFunc {
	return func(r *Router, ev Event) {
		if !r.identity.IsSelf(ev.Owner) {
			return
		}
		h(r, ev)
	}
}
