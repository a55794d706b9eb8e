package domain

import "strings"

// IntentKind - Внутренний числовой идентификатор намерения пользователя (клик, drag-n-drop)
type IntentKind uint8

const (
	IntentUnknown IntentKind = iota
	IntentShopClick
	IntentRefreshClick
	IntentLockClick
	IntentLevelClick
	IntentDragDrop
	IntentSellDrop
	IntentPlayerClick
)

// Маппинг для конвертации имени UI-события -> Domain
var intentStringToKind = map[string]IntentKind{
	"shop-click":    IntentShopClick,
	"refresh-click": IntentRefreshClick,
	"lock-click":    IntentLockClick,
	"level-click":   IntentLevelClick,
	"drag-drop":     IntentDragDrop,
	"sell-drop":     IntentSellDrop,
	"player-click":  IntentPlayerClick,
}

var intentKindToString = map[IntentKind]string{
	IntentShopClick:    "shop-click",
	IntentRefreshClick: "refresh-click",
	IntentLockClick:    "lock-click",
	IntentLevelClick:   "level-click",
	IntentDragDrop:     "drag-drop",
	IntentSellDrop:     "sell-drop",
	IntentPlayerClick:  "player-click",
}

// ParseIntent конвертирует имя UI-события в IntentKind
func ParseIntent(s string) IntentKind {
	// Делаем нечувствительным к регистру для надежности
	lower := strings.ToLower(strings.TrimSpace(s))
	if val, ok := intentStringToKind[lower]; ok {
		return val
	}
	return IntentUnknown
}

func (k IntentKind) String() string {
	if val, ok := intentKindToString[k]; ok {
		return val
	}
	return "unknown"
}

// Intent - локальное намерение пользователя.
// Заполняются только поля, нужные конкретному виду намерения.
type Intent struct {
	Kind     IntentKind
	ShopID   int            // shop-click
	PlayerID string         // player-click
	Detail   map[string]any // drag-drop, sell-drop
}

// Имена исходящих команд серверу
const (
	CommandShop     = "shop"
	CommandRefresh  = "refresh"
	CommandLock     = "lock"
	CommandLevelUp  = "levelUp"
	CommandDragDrop = "dragDrop"
	CommandSellDrop = "sellDrop"
)

// Имена входящих сообщений, которые приходят не как диффы состояния
const (
	MessageDragDropFailed = "DragDropFailed"
	MessageKickOut        = "kick-out"
)

// LobbyRoom - комната, в которую переходит клиент после kick-out
const LobbyRoom = "lobby"
