package domain

// Kind - тип сущности реплицируемого документа
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDocument
	KindPlayer
	KindExperience
	KindSynergies
	KindInventory
	KindSimulation
	KindCombatant
	KindItems
)

// Маппинг для логов Kind -> String
var kindToString = map[Kind]string{
	KindDocument:   "DOCUMENT",
	KindPlayer:     "PLAYER",
	KindExperience: "EXPERIENCE",
	KindSynergies:  "SYNERGIES",
	KindInventory:  "INVENTORY",
	KindSimulation: "SIMULATION",
	KindCombatant:  "COMBATANT",
	KindItems:      "ITEMS",
}

// String реализует интерфейс Stringer (для логов)
func (k Kind) String() string {
	if val, ok := kindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Shape описывает статическую форму сущности: вложенные структуры
// (создаются вместе с родителем) и коллекции (наполняются через add/remove).
type Shape struct {
	Children    map[string]Kind
	Collections map[string]Kind
}

// Имена вложенных структур и коллекций, как они приходят в путях патчей.
const (
	CollectionPlayers = "players"
	CollectionBlue    = "blueTeam"
	CollectionRed     = "redTeam"

	ChildExperience = "experienceManager"
	ChildSynergies  = "synergies"
	ChildInventory  = "stuff"
	ChildSimulation = "simulation"
	ChildItems      = "items"
)

var shapes = map[Kind]Shape{
	KindDocument: {
		Collections: map[string]Kind{CollectionPlayers: KindPlayer},
	},
	KindPlayer: {
		Children: map[string]Kind{
			ChildExperience: KindExperience,
			ChildSynergies:  KindSynergies,
			ChildInventory:  KindInventory,
			ChildSimulation: KindSimulation,
		},
	},
	KindSimulation: {
		Collections: map[string]Kind{
			CollectionBlue: KindCombatant,
			CollectionRed:  KindCombatant,
		},
	},
	KindCombatant: {
		Children: map[string]Kind{ChildItems: KindItems},
	},
}

// ShapeOf возвращает форму сущности. Листовые сущности имеют пустую форму.
func ShapeOf(k Kind) Shape {
	return shapes[k]
}
