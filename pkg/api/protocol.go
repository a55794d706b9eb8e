package api

import (
	"encoding/json"
	"fmt"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	TypeJoin    = "JOIN"    // назначение sessionId после подключения
	TypeState   = "STATE"   // полный снимок документа (патчи от пустого состояния)
	TypePatch   = "PATCH"   // очередная пачка изменений
	TypeMessage = "MESSAGE" // именованное сообщение (kick-out, DragDropFailed)
	TypeError   = "ERROR"
)

// ServerMessage это корневой объект, который сервер отправляет клиенту.
type ServerMessage struct {
	// Type один из Type* выше.
	Type string `json:"type"`

	// SessionID идентификатор подключения. Приходит в JOIN и больше не меняется.
	SessionID string `json:"sessionId,omitempty"`

	// RoomID идентификатор комнаты (JOIN).
	RoomID string `json:"roomId,omitempty"`

	// Seq порядковый номер пачки. Клиент его только логирует.
	Seq uint64 `json:"seq,omitempty"`

	// Patches изменения документа в порядке применения (STATE, PATCH).
	Patches []Patch `json:"patches,omitempty"`

	// Name и Payload заполнены для MESSAGE.
	Name    string          `json:"name,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`

	// Error текст ошибки сервера (ERROR).
	Error string `json:"error,omitempty"`
}

// PatchOp - вид изменения
type PatchOp string

const (
	OpAdd    PatchOp = "add"
	OpChange PatchOp = "change"
	OpRemove PatchOp = "remove"
)

// Patch описывает одно изменение реплицируемого документа.
//
// Path - путь от корня документа. Для change он указывает на сущность
// (например ["players", "abc", "experienceManager"]), для add/remove - на
// коллекцию (["players", "abc", "simulation", "blueTeam"]), а Key - на
// элемент внутри нее.
type Patch struct {
	Op      PatchOp       `json:"op"`
	Path    []string      `json:"path"`
	Key     string        `json:"key,omitempty"`
	Changes []FieldChange `json:"changes,omitempty"`
}

// FieldChange - новое значение одного поля. Value не валидируется клиентом.
type FieldChange struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// DragDropFailedPayload - сервер отклонил drag-n-drop, клиенту нужно перерисовать виды.
type DragDropFailedPayload struct {
	UpdateBoard bool   `json:"updateBoard"`
	UpdateItems bool   `json:"updateItems"`
	Field       string `json:"field,omitempty"` // слот предмета
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// ID уникальный идентификатор команды (для корреляции в логах сервера).
	ID string `json:"id"`

	// Command название команды (shop, refresh, lock, levelUp, dragDrop, sellDrop).
	Command string `json:"command"`

	// Payload JSON-объект с данными. Его структура зависит от Command.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// ShopPayload покупка покемона из слота магазина.
type ShopPayload struct {
	ID int `json:"id"`
}

// DetailPayload используется для dragDrop и sellDrop.
// Detail прокидывается серверу как есть.
type DetailPayload struct {
	Detail map[string]any `json:"detail"`
}

// EmptyPayload для команд без данных (refresh, lock, levelUp).
type EmptyPayload struct{}

// DecodePayload разбирает Payload именованного сообщения.
// Payload всегда JSON, даже если кадр пришел в msgpack.
func (m ServerMessage) DecodePayload(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Name, err)
	}
	return nil
}
