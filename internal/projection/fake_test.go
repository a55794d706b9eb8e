package projection

import (
	"fmt"

	"autobattler-client/internal/domain"
	"autobattler-client/internal/replica"
	"autobattler-client/pkg/api"
)

// recorder записывает вызовы сцены в виде строк "Метод(аргументы)".
type recorder struct {
	calls []string
	panic string // метод, который должен паниковать
}

func (r *recorder) rec(method string, args ...any) {
	if method == r.panic {
		panic("boom in " + method)
	}
	call := method + "("
	for i, a := range args {
		if i > 0 {
			call += ","
		}
		call += fmt.Sprint(a)
	}
	r.calls = append(r.calls, call+")")
}

func (r *recorder) reset() { r.calls = nil }

func (r *recorder) UpdateMoney(v any) { r.rec("UpdateMoney", v) }
func (r *recorder) UpdateStreak(v any) { r.rec("UpdateStreak", v) }
func (r *recorder) UpdateInterest(v any) { r.rec("UpdateInterest", v) }
func (r *recorder) UpdateBattleResult(v any) { r.rec("UpdateBattleResult", v) }
func (r *recorder) AddPlayer(id string, _ map[string]any) { r.rec("AddPlayer", id) }
func (r *recorder) RemovePlayer(id string) { r.rec("RemovePlayer", id) }
func (r *recorder) UpdateRosterMoney(id string, v any) { r.rec("UpdateRosterMoney", id, v) }
func (r *recorder) UpdateRosterLife(id string, v any) { r.rec("UpdateRosterLife", id, v) }
func (r *recorder) UpdateRosterLevel(id string, v any) { r.rec("UpdateRosterLevel", id, v) }
func (r *recorder) RefreshShop() { r.rec("RefreshShop") }
func (r *recorder) RefreshLock() { r.rec("RefreshLock") }
func (r *recorder) UpdateLevel(v any) { r.rec("UpdateLevel", v) }
func (r *recorder) UpdateExperience(v any) { r.rec("UpdateExperience", v) }
func (r *recorder) UpdateExpNeeded(v any) { r.rec("UpdateExpNeeded", v) }
func (r *recorder) RebuildBoard(id string, b any) { r.rec("RebuildBoard", id, b) }
func (r *recorder) RefreshBoard() { r.rec("RefreshBoard") }
func (r *recorder) Spectate(id string, b any) { r.rec("Spectate", id, b) }
func (r *recorder) AddCombatant(id, team, key string, _ map[string]any) {
	r.rec("AddCombatant", id, team, key)
}
func (r *recorder) RemoveCombatant(id, team, key string) { r.rec("RemoveCombatant", id, team, key) }
func (r *recorder) ChangeCombatant(id, team, key, field string, v any) {
	r.rec("ChangeCombatant", id, team, key, field, v)
}
func (r *recorder) ChangeCombatantItems(id, team, key, slot string, v any) {
	r.rec("ChangeCombatantItems", id, team, key, slot, v)
}
func (r *recorder) SetBattlePlayer(id string) { r.rec("SetBattlePlayer", id) }
func (r *recorder) AddRain() { r.rec("AddRain") }
func (r *recorder) AddSun() { r.rec("AddSun") }
func (r *recorder) AddSandstorm() { r.rec("AddSandstorm") }
func (r *recorder) ClearWeather() { r.rec("ClearWeather") }
func (r *recorder) AddHazard(h domain.Hazard) { r.rec("AddHazard", h) }
func (r *recorder) ClearHazard(h domain.Hazard) { r.rec("ClearHazard", h) }
func (r *recorder) UpdateSynergy(name string, v any) { r.rec("UpdateSynergy", name, v) }
func (r *recorder) UpdateItem(slot string, v any) { r.rec("UpdateItem", slot, v) }
func (r *recorder) RefreshItem(slot string) { r.rec("RefreshItem", slot) }
func (r *recorder) UpdateTime(v any) { r.rec("UpdateTime", v) }
func (r *recorder) DisplayCountDown(v any) { r.rec("DisplayCountDown", v) }
func (r *recorder) UpdatePhase(v any) { r.rec("UpdatePhase", v) }
func (r *recorder) UpdateStageLevel(v any) { r.rec("UpdateStageLevel", v) }
func (r *recorder) UpdateOpponentName(v any) { r.rec("UpdateOpponentName", v) }
func (r *recorder) UpdateBoardSize(v any) { r.rec("UpdateBoardSize", v) }
func (r *recorder) UpdateMaxBoardSize(v any) { r.rec("UpdateMaxBoardSize", v) }
func (r *recorder) ShowError(message string) { r.rec("ShowError", message) }

// surfaceSet - реестр поверхностей, по умолчанию все существуют.
type surfaceSet map[Surface]bool

func allSurfaces() surfaceSet {
	s := surfaceSet{}
	for _, v := range AllSurfaces() {
		s[v] = true
	}
	return s
}

func (s surfaceSet) Has(v Surface) bool { return s[v] }

type harness struct {
	doc      *replica.Document
	view     *recorder
	surfaces surfaceSet
	router   *Router
	binder   *Binder
}

const selfID = "me"

// fataler - общее у *testing.T и *rapid.T.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func newHarness(t fataler) *harness {
	t.Helper()
	h := &harness{
		doc:      replica.NewDocument(),
		view:     &recorder{},
		surfaces: allSurfaces(),
	}
	h.router = NewRouter(NewIdentity(selfID), h.view, h.surfaces, h.doc)
	h.binder = NewBinder(h.router)
	h.binder.BindDocument(h.doc)
	h.router.MarkReady()
	return h
}

func (h *harness) apply(t fataler, patches ...api.Patch) {
	t.Helper()
	if err := h.doc.Apply(patches); err != nil {
		t.Fatalf("apply: %v", err)
	}
}

// --- построители патчей ---

func addPlayer(id string, changes ...api.FieldChange) api.Patch {
	return api.Patch{Op: api.OpAdd, Path: []string{domain.CollectionPlayers}, Key: id, Changes: changes}
}

func removePlayer(id string) api.Patch {
	return api.Patch{Op: api.OpRemove, Path: []string{domain.CollectionPlayers}, Key: id}
}

func set(field string, value any) api.FieldChange {
	return api.FieldChange{Field: field, Value: value}
}

func changeAt(path []string, changes ...api.FieldChange) api.Patch {
	return api.Patch{Op: api.OpChange, Path: path, Changes: changes}
}

func playerPath(id string, rest ...string) []string {
	return append([]string{domain.CollectionPlayers, id}, rest...)
}

func teamPath(id, team string) []string {
	return playerPath(id, domain.ChildSimulation, team)
}

func assertCalls(t fataler, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %q, want %q", got, want)
		}
	}
}
