package replica

import "autobattler-client/internal/domain"

// Collection - коллекция сущностей по ключу (игроки, команды покемонов).
type Collection struct {
	kind     domain.Kind
	members  map[string]*Entity
	keys     []string
	onAdd    func(*Entity, string)
	onRemove func(*Entity, string)
}

func newCollection(kind domain.Kind) *Collection {
	return &Collection{
		kind:    kind,
		members: make(map[string]*Entity),
	}
}

// Kind - тип элементов коллекции.
func (c *Collection) Kind() domain.Kind { return c.kind }

func (c *Collection) Len() int { return len(c.members) }

func (c *Collection) Get(key string) *Entity {
	return c.members[key]
}

// Keys возвращает ключи в порядке добавления.
func (c *Collection) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Each обходит элементы в порядке добавления.
func (c *Collection) Each(fn func(key string, e *Entity)) {
	for _, key := range c.Keys() {
		if e, ok := c.members[key]; ok {
			fn(key, e)
		}
	}
}

// OnAdd назначает слушателя добавления элемента.
func (c *Collection) OnAdd(fn func(*Entity, string)) {
	c.onAdd = fn
}

// OnRemove назначает слушателя удаления элемента.
func (c *Collection) OnRemove(fn func(*Entity, string)) {
	c.onRemove = fn
}

func (c *Collection) add(key string, e *Entity) {
	c.members[key] = e
	c.keys = append(c.keys, key)
	if c.onAdd != nil {
		c.onAdd(e, key)
	}
}

func (c *Collection) remove(key string) {
	e, ok := c.members[key]
	if !ok {
		return
	}
	if c.onRemove != nil {
		c.onRemove(e, key)
	}
	delete(c.members, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	e.detached = true
}
