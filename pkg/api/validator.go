package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p ShopPayload) Validate() error {
	if p.ID < 0 {
		return errors.New("shop slot cannot be negative")
	}
	return nil
}

func (p DetailPayload) Validate() error {
	if p.Detail == nil {
		return errors.New("detail is required")
	}
	return nil
}

func (m ServerMessage) Validate() error {
	switch m.Type {
	case TypeJoin:
		if m.SessionID == "" {
			return errors.New("join without sessionId")
		}
	case TypeState, TypePatch, TypeError:
	case TypeMessage:
		if m.Name == "" {
			return errors.New("message without name")
		}
	default:
		return errors.New("unknown message type")
	}
	return nil
}

// Validate проверяет форму патча. Содержимое значений не проверяется.
func (p Patch) Validate() error {
	if len(p.Path) == 0 && p.Op != OpChange {
		return errors.New("patch path is empty")
	}
	switch p.Op {
	case OpAdd, OpRemove:
		if p.Key == "" {
			return errors.New("add/remove patch without key")
		}
	case OpChange:
		if len(p.Changes) == 0 {
			return errors.New("change patch without changes")
		}
	default:
		return errors.New("unknown patch op")
	}
	return nil
}
