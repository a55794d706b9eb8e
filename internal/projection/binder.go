package projection

import (
	"sort"

	"autobattler-client/internal/domain"
	"autobattler-client/internal/replica"
)

// Binder рекурсивно навешивает слушателей на документ и передает их события роутеру.
//
// Контекст владельца (id игрока, команда и ключ покемона) фиксируется в замыкании при
// привязке, поэтому обработчику не нужно подниматься по графу вверх.
// Повторная привязка переназначает слушателей и не дублирует события.
type Binder struct {
	router    *Router
	announced map[*replica.Entity]struct{}
}

func NewBinder(router *Router) *Binder {
	return &Binder{
		router:    router,
		announced: make(map[*replica.Entity]struct{}),
	}
}

// BindDocument привязывает корень документа и все уже существующие элементы.
func (b *Binder) BindDocument(doc *replica.Document) {
	b.Bind(doc.Root(), Member{})
}

// Bind привязывает сущность, ее вложенные структуры и коллекции.
// scope - ближайший элемент коллекции над сущностью: игрок или покемон его команды.
func (b *Binder) Bind(e *replica.Entity, scope Member) {
	kind := e.Kind()
	e.OnChange(func(changes []replica.Change) {
		for _, c := range changes {
			b.router.Route(kind, Event{Owner: scope.Owner, Team: scope.Team, Member: scope.Key, Entity: e, Change: c})
		}
	})

	shape := domain.ShapeOf(kind)
	for _, name := range sortedNames(shape.Children) {
		if child := e.Child(name); child != nil {
			b.Bind(child, scope)
		}
	}
	for _, name := range sortedNames(shape.Collections) {
		if coll := e.Collection(name); coll != nil {
			b.bindCollection(coll, name, scope.Owner)
		}
	}
}

func (b *Binder) bindCollection(coll *replica.Collection, name, owner string) {
	kind := coll.Kind()
	coll.OnAdd(func(e *replica.Entity, key string) {
		b.bindMember(e, memberOf(kind, name, owner, key))
	})
	coll.OnRemove(func(e *replica.Entity, key string) {
		b.router.Disappeared(kind, memberOf(kind, name, owner, key), e)
		delete(b.announced, e)
	})
	coll.Each(func(key string, e *replica.Entity) {
		b.bindMember(e, memberOf(kind, name, owner, key))
	})
}

// bindMember: сначала слушатели, потом "появился", и только для нового элемента.
func (b *Binder) bindMember(e *replica.Entity, m Member) {
	kind := e.Kind()
	scope := m
	if kind == domain.KindPlayer {
		scope = Member{Owner: m.Owner}
	}
	b.Bind(e, scope)

	if _, ok := b.announced[e]; ok {
		return
	}
	b.announced[e] = struct{}{}
	b.router.Appeared(kind, m, e)

	// Начальные значения полей игрока пришли вместе с add без событий.
	if kind == domain.KindPlayer {
		triggerTree(e)
	}
}

// memberOf: для игрока владелец - он сам, покемон принадлежит команде-коллекции.
// Ключи уникальны только внутри коллекции, у синей и красной команд слоты совпадают.
func memberOf(kind domain.Kind, collection, owner, key string) Member {
	if kind == domain.KindPlayer {
		return Member{Owner: key, Key: key}
	}
	return Member{Owner: owner, Team: collection, Key: key}
}

// triggerTree повторно сообщает текущие значения сущности и ее вложенных структур.
func triggerTree(e *replica.Entity) {
	e.TriggerAll()
	for _, name := range sortedNames(domain.ShapeOf(e.Kind()).Children) {
		if child := e.Child(name); child != nil {
			triggerTree(child)
		}
	}
}

func sortedNames(m map[string]domain.Kind) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
