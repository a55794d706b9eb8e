package replica

import (
	"reflect"

	"autobattler-client/internal/domain"
	"autobattler-client/pkg/api"
)

// Change - изменение одного поля сущности, как его видят слушатели.
type Change struct {
	Field    string
	Value    any
	Previous any
}

// Entity - зеркало одной сущности реплицируемого документа.
//
// Слушатели назначаются, а не добавляются: повторный OnChange заменяет
// предыдущий обработчик. Entity не потокобезопасна и принадлежит циклу
// событий клиента.
type Entity struct {
	kind        domain.Kind
	key         string
	fields      map[string]any
	order       []string // порядок первого появления полей, для TriggerAll
	children    map[string]*Entity
	collections map[string]*Collection
	onChange    func([]Change)
	detached    bool
}

// newEntity создает сущность вместе со всей ее статической формой.
func newEntity(kind domain.Kind, key string) *Entity {
	e := &Entity{
		kind:   kind,
		key:    key,
		fields: make(map[string]any),
	}

	shape := domain.ShapeOf(kind)
	if len(shape.Children) > 0 {
		e.children = make(map[string]*Entity, len(shape.Children))
		for name, childKind := range shape.Children {
			e.children[name] = newEntity(childKind, name)
		}
	}
	if len(shape.Collections) > 0 {
		e.collections = make(map[string]*Collection, len(shape.Collections))
		for name, memberKind := range shape.Collections {
			e.collections[name] = newCollection(memberKind)
		}
	}
	return e
}

func (e *Entity) Kind() domain.Kind { return e.kind }

// Key - ключ сущности в родительской коллекции (для игрока это его id).
func (e *Entity) Key() string { return e.key }

// Detached сообщает, что сущность удалена из документа.
func (e *Entity) Detached() bool { return e.detached }

// Get возвращает текущее значение поля.
func (e *Entity) Get(field string) (any, bool) {
	v, ok := e.fields[field]
	return v, ok
}

// Fields возвращает копию текущих значений полей.
func (e *Entity) Fields() map[string]any {
	out := make(map[string]any, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Child возвращает вложенную структуру или nil, если у сущности ее нет.
func (e *Entity) Child(name string) *Entity {
	return e.children[name]
}

// Collection возвращает коллекцию или nil, если у сущности ее нет.
func (e *Entity) Collection(name string) *Collection {
	return e.collections[name]
}

// OnChange назначает слушателя изменений полей.
func (e *Entity) OnChange(fn func([]Change)) {
	e.onChange = fn
}

// TriggerAll повторно сообщает слушателю текущие значения всех полей.
func (e *Entity) TriggerAll() {
	if e.onChange == nil || len(e.order) == 0 {
		return
	}
	changes := make([]Change, 0, len(e.order))
	for _, field := range e.order {
		v := e.fields[field]
		changes = append(changes, Change{Field: field, Value: v, Previous: v})
	}
	e.onChange(changes)
}

// seed записывает начальные значения без уведомления слушателей.
func (e *Entity) seed(changes []api.FieldChange) {
	for _, fc := range changes {
		e.store(fc.Field, fc.Value)
	}
}

// apply записывает значения и уведомляет слушателя только о реально изменившихся полях.
func (e *Entity) apply(changes []api.FieldChange) {
	var fired []Change
	for _, fc := range changes {
		prev, existed := e.fields[fc.Field]
		if existed && sameValue(prev, fc.Value) {
			continue
		}
		e.store(fc.Field, fc.Value)
		fired = append(fired, Change{Field: fc.Field, Value: fc.Value, Previous: prev})
	}
	if len(fired) > 0 && e.onChange != nil {
		e.onChange(fired)
	}
}

func (e *Entity) store(field string, value any) {
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = value
}

func sameValue(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
