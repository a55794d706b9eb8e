package replica

import (
	"errors"
	"fmt"

	"autobattler-client/internal/domain"
	"autobattler-client/pkg/api"
)

var (
	ErrBadPath      = errors.New("path does not resolve")
	ErrUnknownKey   = errors.New("unknown collection key")
	ErrDuplicateKey = errors.New("duplicate collection key")
)

// Document - локальное зеркало авторитетного состояния комнаты.
// Пишет в него только транспорт через Apply, слой проекции только читает.
type Document struct {
	root *Entity
}

func NewDocument() *Document {
	return &Document{root: newEntity(domain.KindDocument, "")}
}

func (d *Document) Root() *Entity { return d.root }

// Players - коллекция игроков по их id.
func (d *Document) Players() *Collection {
	return d.root.Collection(domain.CollectionPlayers)
}

// Player возвращает игрока или nil.
func (d *Document) Player(id string) *Entity {
	return d.Players().Get(id)
}

// Apply применяет пачку патчей строго по порядку. Слушатели вызываются
// синхронно, поэтому add элемента полностью обработан до следующего патча.
// Некорректные патчи пропускаются, остальные применяются; ошибки объединяются.
func (d *Document) Apply(patches []api.Patch) error {
	var errs []error
	for i, patch := range patches {
		if err := d.applyOne(patch); err != nil {
			errs = append(errs, fmt.Errorf("apply patch %d (%s %v): %w", i, patch.Op, patch.Path, err))
		}
	}
	return errors.Join(errs...)
}

func (d *Document) applyOne(patch api.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	switch patch.Op {
	case api.OpChange:
		target, err := d.resolveEntity(patch.Path)
		if err != nil {
			return err
		}
		target.apply(patch.Changes)

	case api.OpAdd:
		coll, err := d.resolveCollection(patch.Path)
		if err != nil {
			return err
		}
		if coll.Get(patch.Key) != nil {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, patch.Key)
		}
		member := newEntity(coll.Kind(), patch.Key)
		member.seed(patch.Changes)
		coll.add(patch.Key, member)

	case api.OpRemove:
		coll, err := d.resolveCollection(patch.Path)
		if err != nil {
			return err
		}
		if coll.Get(patch.Key) == nil {
			return fmt.Errorf("%w: %q", ErrUnknownKey, patch.Key)
		}
		coll.remove(patch.Key)
	}
	return nil
}

// resolve проходит путь от корня. Результат - сущность или коллекция
// (если путь заканчивается на имени коллекции).
func (d *Document) resolve(path []string) (*Entity, *Collection, error) {
	cur := d.root
	for i := 0; i < len(path); i++ {
		seg := path[i]
		if child := cur.Child(seg); child != nil {
			cur = child
			continue
		}
		coll := cur.Collection(seg)
		if coll == nil {
			return nil, nil, fmt.Errorf("%w: segment %q", ErrBadPath, seg)
		}
		if i == len(path)-1 {
			return nil, coll, nil
		}
		i++
		member := coll.Get(path[i])
		if member == nil {
			return nil, nil, fmt.Errorf("%w: %q in %q", ErrUnknownKey, path[i], seg)
		}
		cur = member
	}
	return cur, nil, nil
}

func (d *Document) resolveEntity(path []string) (*Entity, error) {
	e, _, err := d.resolve(path)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: expected entity", ErrBadPath)
	}
	return e, nil
}

func (d *Document) resolveCollection(path []string) (*Collection, error) {
	_, c, err := d.resolve(path)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: expected collection", ErrBadPath)
	}
	return c, nil
}
