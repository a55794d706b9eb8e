package scene

import (
	"autobattler-client/internal/domain"

	"github.com/sirupsen/logrus"
)

// --- Деньги ---

func (s *Scene) UpdateMoney(v any)        { s.money.Money = v }
func (s *Scene) UpdateStreak(v any)       { s.money.Streak = v }
func (s *Scene) UpdateInterest(v any)     { s.money.Interest = v }
func (s *Scene) UpdateBattleResult(v any) { s.money.BattleResult = v }

// --- Список игроков ---

func (s *Scene) AddPlayer(playerID string, fields map[string]any) {
	if _, ok := s.roster[playerID]; !ok {
		s.order = append(s.order, playerID)
	}
	s.roster[playerID] = &RosterEntry{
		ID:     playerID,
		Name:   fields[domain.FieldName],
		Avatar: fields[domain.FieldAvatar],
		Money:  fields[domain.FieldMoney],
		Life:   fields[domain.FieldLife],
	}
	s.log.WithField("player", playerID).Debug("player added")
}

func (s *Scene) RemovePlayer(playerID string) {
	delete(s.roster, playerID)
	for i, id := range s.order {
		if id == playerID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	delete(s.battle.Combatants, playerID)
	s.log.WithField("player", playerID).Debug("player removed")
}

// rosterEntry: строки нет, если игрок уже ушел, тогда изменение теряется.
func (s *Scene) rosterEntry(playerID string) *RosterEntry {
	e, ok := s.roster[playerID]
	if !ok {
		s.log.WithField("player", playerID).Trace("roster entry missing")
	}
	return e
}

func (s *Scene) UpdateRosterMoney(playerID string, v any) {
	if e := s.rosterEntry(playerID); e != nil {
		e.Money = v
	}
}

func (s *Scene) UpdateRosterLife(playerID string, v any) {
	if e := s.rosterEntry(playerID); e != nil {
		e.Life = v
	}
}

func (s *Scene) UpdateRosterLevel(playerID string, v any) {
	if e := s.rosterEntry(playerID); e != nil {
		e.Level = v
	}
}

// --- Магазин ---

func (s *Scene) RefreshShop()           { s.shop.Refreshes++ }
func (s *Scene) RefreshLock()           { s.shop.LockRedraw++ }
func (s *Scene) UpdateLevel(v any)      { s.shop.Level = v }
func (s *Scene) UpdateExperience(v any) { s.shop.Experience = v }
func (s *Scene) UpdateExpNeeded(v any)  { s.shop.ExpNeeded = v }

// --- Доска ---

func (s *Scene) RebuildBoard(playerID string, board any) {
	s.board.PlayerID = playerID
	s.board.Board = board
	s.board.Rebuilds++
}

func (s *Scene) RefreshBoard() {
	s.board.Rebuilds++
}

// Spectate очищает доску и строит ее заново для другого игрока.
func (s *Scene) Spectate(playerID string, board any) {
	s.board = BoardWidget{PlayerID: playerID, Board: board, Rebuilds: s.board.Rebuilds + 1}
	s.log.WithField("player", playerID).Debug("spectating")
}

// --- Бой ---

// CombatantID - ключ покемона в бою игрока. Слоты уникальны только внутри команды.
func CombatantID(team, key string) string { return team + "/" + key }

func (s *Scene) AddCombatant(playerID, team, key string, fields map[string]any) {
	combatants, ok := s.battle.Combatants[playerID]
	if !ok {
		combatants = make(map[string]*Combatant)
		s.battle.Combatants[playerID] = combatants
	}
	combatants[CombatantID(team, key)] = &Combatant{Team: team, Key: key, Fields: fields, Items: make(map[string]any)}
}

func (s *Scene) RemoveCombatant(playerID, team, key string) {
	if combatants, ok := s.battle.Combatants[playerID]; ok {
		delete(combatants, CombatantID(team, key))
	}
}

func (s *Scene) combatant(playerID, team, key string) *Combatant {
	c := s.battle.Combatants[playerID][CombatantID(team, key)]
	if c == nil {
		s.log.WithFields(logrus.Fields{"player": playerID, "team": team, "key": key}).Trace("combatant missing")
	}
	return c
}

func (s *Scene) ChangeCombatant(playerID, team, key, field string, v any) {
	if c := s.combatant(playerID, team, key); c != nil {
		if c.Fields == nil {
			c.Fields = make(map[string]any)
		}
		c.Fields[field] = v
	}
}

func (s *Scene) ChangeCombatantItems(playerID, team, key, slot string, v any) {
	if c := s.combatant(playerID, team, key); c != nil {
		c.Items[slot] = v
	}
}

func (s *Scene) SetBattlePlayer(playerID string) { s.battle.PlayerID = playerID }

// BattleOf возвращает покемонов игрока по CombatantID.
func (s *Scene) BattleOf(playerID string) map[string]*Combatant {
	return s.battle.Combatants[playerID]
}

// --- Погода и ловушки ---

func (s *Scene) AddRain()      { s.weather = domain.ClimateRain.String() }
func (s *Scene) AddSun()       { s.weather = domain.ClimateSun.String() }
func (s *Scene) AddSandstorm() { s.weather = domain.ClimateSandstorm.String() }
func (s *Scene) ClearWeather() { s.weather = "" }

func (s *Scene) AddHazard(h domain.Hazard)   { s.hazards[h] = true }
func (s *Scene) ClearHazard(h domain.Hazard) { delete(s.hazards, h) }

// --- Синергии и предметы ---

func (s *Scene) UpdateSynergy(name string, v any) { s.synergies[name] = v }
func (s *Scene) UpdateItem(slot string, v any)    { s.items[slot] = v }

func (s *Scene) RefreshItem(slot string) {
	s.log.WithField("slot", slot).Debug("item slot redrawn")
}

// --- HUD ---

func (s *Scene) UpdateTime(v any)         { s.hud.Time = v }
func (s *Scene) DisplayCountDown(v any)   { s.hud.CountDown = v }
func (s *Scene) UpdatePhase(v any)        { s.hud.Phase = v }
func (s *Scene) UpdateStageLevel(v any)   { s.hud.StageLevel = v }
func (s *Scene) UpdateOpponentName(v any) { s.hud.OpponentName = v }
func (s *Scene) UpdateBoardSize(v any)    { s.hud.BoardSize = v }
func (s *Scene) UpdateMaxBoardSize(v any) { s.hud.MaxBoardSize = v }

func (s *Scene) ShowError(message string) {
	s.hud.Errors = append(s.hud.Errors, message)
	s.log.WithField("message", message).Warn("error shown to user")
}
