package projection

import (
	"testing"

	"autobattler-client/internal/domain"
	"autobattler-client/internal/replica"
	"autobattler-client/pkg/api"
)

func TestBinder_ExistingPlayersAnnouncedOnBind(t *testing.T) {
	doc := replica.NewDocument()
	if err := doc.Apply([]api.Patch{addPlayer("rival", set("money", 3), set("life", 100))}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	view := &recorder{}
	r := NewRouter(NewIdentity(selfID), view, allSurfaces(), doc)
	NewBinder(r).BindDocument(doc)

	assertCalls(t, view.calls, "AddPlayer(rival)", "UpdateRosterMoney(rival,3)", "UpdateRosterLife(rival,100)")
}

func TestBinder_PlayerAddRemove(t *testing.T) {
	h := newHarness(t)
	h.apply(t, addPlayer("rival", set("name", "Misty")))
	assertCalls(t, h.view.calls, "AddPlayer(rival)")

	h.view.reset()
	h.apply(t, removePlayer("rival"))
	assertCalls(t, h.view.calls, "RemovePlayer(rival)")
}

func TestBinder_RebindIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.apply(t, addPlayer(selfID))
	h.view.reset()

	h.binder.BindDocument(h.doc)
	h.binder.BindDocument(h.doc)
	assertCalls(t, h.view.calls)

	h.apply(t, changeAt(playerPath(selfID), set("money", 5)))
	assertCalls(t, h.view.calls, "UpdateMoney(5)", "UpdateRosterMoney(me,5)")
}

// Покемон, добавленный и измененный в одной пачке: сначала появление, потом изменение.
func TestBinder_CombatantBoundOnAdd(t *testing.T) {
	h := newHarness(t)
	h.apply(t, addPlayer("rival"))
	h.view.reset()

	blue := teamPath("rival", domain.CollectionBlue)
	combatant := append(blue, "c1")
	h.apply(t,
		api.Patch{Op: api.OpAdd, Path: blue, Key: "c1", Changes: []api.FieldChange{set("hp", 100)}},
		changeAt(combatant, set("hp", 80)),
		changeAt(append(combatant, "items"), set("item0", "ORAN")),
		api.Patch{Op: api.OpRemove, Path: blue, Key: "c1"},
	)
	assertCalls(t, h.view.calls,
		"AddCombatant(rival,blueTeam,c1)",
		"ChangeCombatant(rival,blueTeam,c1,hp,80)",
		"ChangeCombatantItems(rival,blueTeam,c1,item0,ORAN)",
		"RemoveCombatant(rival,blueTeam,c1)",
	)
}

// Слот "0" есть в обеих командах: события красного не задевают синего.
func TestBinder_SameSlotInBothTeams(t *testing.T) {
	h := newHarness(t)
	h.apply(t, addPlayer(selfID))
	h.view.reset()

	blue := teamPath(selfID, domain.CollectionBlue)
	red := teamPath(selfID, domain.CollectionRed)
	h.apply(t,
		api.Patch{Op: api.OpAdd, Path: blue, Key: "0", Changes: []api.FieldChange{set("name", "PIKACHU")}},
		api.Patch{Op: api.OpAdd, Path: red, Key: "0", Changes: []api.FieldChange{set("name", "EEVEE")}},
		changeAt(append(red, "0"), set("hp", 10)),
		changeAt(append(blue, "0", domain.ChildItems), set("item0", "ORAN")),
		api.Patch{Op: api.OpRemove, Path: red, Key: "0"},
	)
	assertCalls(t, h.view.calls,
		"AddCombatant(me,blueTeam,0)",
		"AddCombatant(me,redTeam,0)",
		"ChangeCombatant(me,redTeam,0,hp,10)",
		"ChangeCombatantItems(me,blueTeam,0,item0,ORAN)",
		"RemoveCombatant(me,redTeam,0)",
	)
}

func TestBinder_CombatantWithoutBattleSurface(t *testing.T) {
	h := newHarness(t)
	h.apply(t, addPlayer(selfID))
	h.view.reset()
	h.surfaces[SurfaceBattle] = false

	h.apply(t,
		api.Patch{Op: api.OpAdd, Path: teamPath(selfID, domain.CollectionRed), Key: "c1"},
		changeAt(append(teamPath(selfID, domain.CollectionRed), "c1"), set("hp", 80)),
	)
	assertCalls(t, h.view.calls)
}
