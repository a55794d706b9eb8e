package domain

import "strings"

// FieldAny - поле-шаблон для сущностей с открытым набором ключей
// (синергии, инвентарь, покемоны, предметы).
const FieldAny = "*"

// Поля документа
const (
	FieldRoundTime  = "roundTime"
	FieldPhase      = "phase"
	FieldStageLevel = "stageLevel"
)

// Поля игрока
const (
	FieldID               = "id"
	FieldName             = "name"
	FieldAvatar           = "avatar"
	FieldMoney            = "money"
	FieldStreak           = "streak"
	FieldInterest         = "interest"
	FieldLastBattleResult = "lastBattleResult"
	FieldOpponentName     = "opponentName"
	FieldShop             = "shop"
	FieldBoard            = "board"
	FieldBoardSize        = "boardSize"
	FieldLife             = "life"
	FieldShopLocked       = "shopLocked"
)

// Поля опыта
const (
	FieldLevel      = "level"
	FieldExperience = "experience"
	FieldExpNeeded  = "expNeeded"
)

// Поля симуляции
const (
	FieldClimate    = "climate"
	FieldRedRocks   = "redRocks"
	FieldBlueRocks  = "blueRocks"
	FieldRedSpikes  = "redSpikes"
	FieldBlueSpikes = "blueSpikes"
)

// schemaFields - известные поля каждого типа сущности.
// Открытые сущности описываются одним FieldAny.
var schemaFields = map[Kind][]string{
	KindDocument: {FieldRoundTime, FieldPhase, FieldStageLevel},
	KindPlayer: {
		FieldID, FieldName, FieldAvatar, FieldMoney, FieldStreak, FieldInterest,
		FieldLastBattleResult, FieldOpponentName, FieldShop, FieldBoard,
		FieldBoardSize, FieldLife, FieldShopLocked,
	},
	KindExperience: {FieldLevel, FieldExperience, FieldExpNeeded},
	KindSynergies:  {FieldAny},
	KindInventory:  {FieldAny},
	KindSimulation: {FieldClimate, FieldRedRocks, FieldBlueRocks, FieldRedSpikes, FieldBlueSpikes},
	KindCombatant:  {FieldAny},
	KindItems:      {FieldAny},
}

// SchemaFields возвращает копию списка известных полей сущности.
func SchemaFields(k Kind) []string {
	return append([]string(nil), schemaFields[k]...)
}

// Climate - погода на поле боя
type Climate uint8

const (
	ClimateUnknown Climate = iota
	ClimateRain
	ClimateSun
	ClimateSandstorm
	ClimateNeutral
)

var climateStringToValue = map[string]Climate{
	"RAIN":      ClimateRain,
	"SUN":       ClimateSun,
	"SANDSTORM": ClimateSandstorm,
	"NEUTRAL":   ClimateNeutral,
}

var climateValueToString = map[Climate]string{
	ClimateRain:      "RAIN",
	ClimateSun:       "SUN",
	ClimateSandstorm: "SANDSTORM",
	ClimateNeutral:   "NEUTRAL",
}

// ParseClimate конвертирует значение поля climate.
// Сервер присылает значения в верхнем регистре, сравнение точное.
func ParseClimate(s string) Climate {
	if val, ok := climateStringToValue[s]; ok {
		return val
	}
	return ClimateUnknown
}

func (c Climate) String() string {
	if val, ok := climateValueToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// Hazard - ловушки на входе поля боя
type Hazard uint8

const (
	HazardUnknown Hazard = iota
	HazardRedRocks
	HazardBlueRocks
	HazardRedSpikes
	HazardBlueSpikes
)

var hazardFields = map[string]Hazard{
	FieldRedRocks:   HazardRedRocks,
	FieldBlueRocks:  HazardBlueRocks,
	FieldRedSpikes:  HazardRedSpikes,
	FieldBlueSpikes: HazardBlueSpikes,
}

// HazardForField возвращает ловушку, за которую отвечает поле симуляции.
func HazardForField(field string) Hazard {
	if val, ok := hazardFields[field]; ok {
		return val
	}
	return HazardUnknown
}

func (h Hazard) String() string {
	for field, val := range hazardFields {
		if val == h {
			return strings.ToUpper(field)
		}
	}
	return "UNKNOWN"
}
