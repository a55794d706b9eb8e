package projection

import (
	"autobattler-client/internal/domain"
	"autobattler-client/internal/replica"
	"autobattler-client/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Event - одно изменение поля, уже привязанное к контексту владельца.
type Event struct {
	Owner  string // id игрока-владельца, "" для полей документа
	Team   string // коллекция покемона (blueTeam/redTeam), "" выше команд
	Member string // ключ ближайшего элемента коллекции ниже игрока (покемон)
	Entity *replica.Entity
	Change replica.Change
}

// HandlerFunc - обработчик одной пары (тип сущности, поле).
type HandlerFunc func(r *Router, ev Event)

// Member - элемент коллекции в контексте владельца.
type Member struct {
	Owner string
	Team  string
	Key   string
}

// MemberHandlerFunc - обработчик появления/исчезновения элемента коллекции.
type MemberHandlerFunc func(r *Router, m Member, e *replica.Entity)

type routeKey struct {
	kind  domain.Kind
	field string
}

type route struct {
	surfaces  []Surface
	needReady bool
	handle    HandlerFunc
}

type memberRoute struct {
	surfaces []Surface
	appeared MemberHandlerFunc
	removed  MemberHandlerFunc
}

// Router - таблица диспетчеризации изменений документа по обработчикам.
type Router struct {
	identity  Identity
	guard     Guard
	view      Renderer
	doc       *replica.Document
	spectated string
	ready     bool

	routes  map[routeKey]route
	members map[domain.Kind]memberRoute
	ignored map[routeKey]struct{}
	log     *logrus.Entry
}

func NewRouter(identity Identity, view Renderer, surfaces Surfaces, doc *replica.Document) *Router {
	r := &Router{
		identity:  identity,
		guard:     NewGuard(surfaces),
		view:      view,
		doc:       doc,
		spectated: identity.SessionID(),
		routes:    make(map[routeKey]route),
		members:   make(map[domain.Kind]memberRoute),
		ignored:   make(map[routeKey]struct{}),
		log:       logger.Log.WithField("component", "router"),
	}
	r.registerRoutes()
	return r
}

func (r *Router) Identity() Identity { return r.identity }

// Spectated - id игрока, чья доска и бой сейчас показаны.
func (r *Router) Spectated() string { return r.spectated }

// MarkReady отмечает, что первый снимок документа получен.
// До этого изменения полей документа не проецируются.
func (r *Router) MarkReady() { r.ready = true }

func (r *Router) Ready() bool { return r.ready }

func (r *Router) handle(kind domain.Kind, field string, surfaces []Surface, h HandlerFunc) {
	r.routes[routeKey{kind: kind, field: field}] = route{surfaces: surfaces, handle: h}
}

func (r *Router) handleDocument(field string, h HandlerFunc) {
	r.routes[routeKey{kind: domain.KindDocument, field: field}] = route{
		surfaces:  []Surface{SurfaceScene, SurfaceHUD},
		needReady: true,
		handle:    h,
	}
}

func (r *Router) ignore(kind domain.Kind, fields ...string) {
	for _, f := range fields {
		r.ignored[routeKey{kind: kind, field: f}] = struct{}{}
	}
}

// Route находит обработчик для изменения и вызывает его.
// Возвращает true, если обработчик был вызван.
func (r *Router) Route(kind domain.Kind, ev Event) (handled bool) {
	rt, ok := r.routes[routeKey{kind: kind, field: ev.Change.Field}]
	if !ok {
		rt, ok = r.routes[routeKey{kind: kind, field: domain.FieldAny}]
	}
	if !ok {
		r.log.WithFields(logrus.Fields{"kind": kind, "field": ev.Change.Field}).Trace("no route")
		return false
	}
	if rt.needReady && !r.ready {
		return false
	}
	if !r.guard.Allow(rt.surfaces...) {
		r.log.WithFields(logrus.Fields{"kind": kind, "field": ev.Change.Field}).Trace("surface absent, change dropped")
		return false
	}

	defer r.recoverHandler(kind, ev.Change.Field, &handled)
	rt.handle(r, ev)
	return true
}

// Appeared вызывается связывателем после привязки нового элемента коллекции.
func (r *Router) Appeared(kind domain.Kind, m Member, e *replica.Entity) (handled bool) {
	mr, ok := r.members[kind]
	if !ok || mr.appeared == nil || !r.guard.Allow(mr.surfaces...) {
		return false
	}
	defer r.recoverHandler(kind, "+"+m.Key, &handled)
	mr.appeared(r, m, e)
	return true
}

// Disappeared вызывается перед удалением элемента коллекции.
func (r *Router) Disappeared(kind domain.Kind, m Member, e *replica.Entity) (handled bool) {
	mr, ok := r.members[kind]
	if !ok || mr.removed == nil || !r.guard.Allow(mr.surfaces...) {
		return false
	}
	defer r.recoverHandler(kind, "-"+m.Key, &handled)
	mr.removed(r, m, e)
	return true
}

// Spectate переключает доску и бой на другого игрока. Только локально.
func (r *Router) Spectate(playerID string) bool {
	if !r.guard.Allow(SurfaceScene, SurfaceBoard, SurfaceBattle) || r.doc == nil {
		return false
	}
	player := r.doc.Player(playerID)
	if player == nil {
		return false
	}
	board, _ := player.Get(domain.FieldBoard)

	r.spectated = playerID
	r.view.Spectate(playerID, board)
	r.view.SetBattlePlayer(playerID)
	return true
}

// RefreshBoard перерисовывает текущую доску (после отказа сервера в drag-n-drop).
func (r *Router) RefreshBoard() {
	if r.guard.Allow(SurfaceScene, SurfaceBoard) {
		r.view.RefreshBoard()
	}
}

// RefreshItem перерисовывает слот предмета своего игрока.
func (r *Router) RefreshItem(slot string) {
	if r.guard.Allow(SurfaceScene, SurfaceItems) {
		r.view.RefreshItem(slot)
	}
}

// ShowError показывает пользователю ошибку, если есть где.
func (r *Router) ShowError(message string) {
	if r.guard.Allow(SurfaceScene, SurfaceHUD) {
		r.view.ShowError(message)
	}
}

// recoverHandler не дает панике сцены выйти в цикл доставки событий.
// После паники событие считается необработанным.
func (r *Router) recoverHandler(kind domain.Kind, field string, handled *bool) {
	if p := recover(); p != nil {
		*handled = false
		r.log.WithFields(logrus.Fields{
			"kind":  kind,
			"field": field,
			"panic": p,
		}).Error("projection handler panicked")
	}
}
