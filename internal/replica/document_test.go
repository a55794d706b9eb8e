package replica

import (
	"errors"
	"fmt"
	"testing"

	"autobattler-client/internal/domain"
	"autobattler-client/pkg/api"
)

func addPlayer(id string) api.Patch {
	return api.Patch{Op: api.OpAdd, Path: []string{domain.CollectionPlayers}, Key: id}
}

func change(path []string, field string, value any) api.Patch {
	return api.Patch{Op: api.OpChange, Path: path, Changes: []api.FieldChange{{Field: field, Value: value}}}
}

func TestDocument_AddCreatesShape(t *testing.T) {
	doc := NewDocument()
	if err := doc.Apply([]api.Patch{addPlayer("p1")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := doc.Player("p1")
	if p == nil {
		t.Fatal("player p1 not created")
	}
	for _, name := range []string{domain.ChildExperience, domain.ChildSynergies, domain.ChildInventory, domain.ChildSimulation} {
		if p.Child(name) == nil {
			t.Errorf("player child %s missing", name)
		}
	}
	sim := p.Child(domain.ChildSimulation)
	if sim.Collection(domain.CollectionBlue) == nil || sim.Collection(domain.CollectionRed) == nil {
		t.Error("simulation teams missing")
	}
	if p.Collection(domain.CollectionBlue) != nil {
		t.Error("player must not own a team collection")
	}
}

func TestDocument_ListenerOrder(t *testing.T) {
	doc := NewDocument()
	var log []string

	doc.Players().OnAdd(func(p *Entity, key string) {
		log = append(log, "add "+key)
		p.OnChange(func(changes []Change) {
			for _, c := range changes {
				log = append(log, fmt.Sprintf("change %s=%v", c.Field, c.Value))
			}
		})
	})
	doc.Players().OnRemove(func(p *Entity, key string) {
		log = append(log, "remove "+key)
	})

	err := doc.Apply([]api.Patch{
		addPlayer("p1"),
		change([]string{"players", "p1"}, "money", 10),
		change([]string{"players", "p1"}, "money", 10),
		change([]string{"players", "p1"}, "money", 7),
		{Op: api.OpRemove, Path: []string{"players"}, Key: "p1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"add p1", "change money=10", "change money=7", "remove p1"}
	if fmt.Sprint(log) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", log, want)
	}
	if doc.Player("p1") != nil {
		t.Error("p1 still present after remove")
	}
}

func TestDocument_NestedCombatantPath(t *testing.T) {
	doc := NewDocument()
	team := []string{"players", "p1", "simulation", "blueTeam"}
	err := doc.Apply([]api.Patch{
		addPlayer("p1"),
		{Op: api.OpAdd, Path: team, Key: "c1", Changes: []api.FieldChange{{Field: "hp", Value: 100}}},
		change(append(team, "c1"), "hp", 80),
		change(append(team, "c1", "items"), "0", "LEFTOVERS"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := doc.Player("p1").Child("simulation").Collection("blueTeam").Get("c1")
	if c == nil {
		t.Fatal("combatant not created")
	}
	if hp, _ := c.Get("hp"); hp != 80 {
		t.Errorf("hp = %v, want 80", hp)
	}
	if item, _ := c.Child("items").Get("0"); item != "LEFTOVERS" {
		t.Errorf("item = %v", item)
	}
}

func TestDocument_BadPatchesAreSkipped(t *testing.T) {
	doc := NewDocument()
	err := doc.Apply([]api.Patch{
		addPlayer("p1"),
		addPlayer("p1"),
		change([]string{"players", "ghost"}, "money", 1),
		change([]string{"nowhere"}, "x", 1),
		{Op: api.OpRemove, Path: []string{"players"}, Key: "ghost"},
		change([]string{"players", "p1"}, "life", 100),
	})

	if err == nil {
		t.Fatal("expected joined error")
	}
	for _, target := range []error{ErrDuplicateKey, ErrUnknownKey, ErrBadPath} {
		if !errors.Is(err, target) {
			t.Errorf("error %v does not wrap %v", err, target)
		}
	}
	if life, _ := doc.Player("p1").Get("life"); life != 100 {
		t.Errorf("valid patch after bad ones not applied, life = %v", life)
	}
}

func TestEntity_TriggerAllAndReassign(t *testing.T) {
	doc := NewDocument()
	_ = doc.Apply([]api.Patch{
		{Op: api.OpAdd, Path: []string{"players"}, Key: "p1", Changes: []api.FieldChange{
			{Field: "money", Value: 5},
			{Field: "life", Value: 100},
		}},
	})
	p := doc.Player("p1")

	first, second := 0, 0
	p.OnChange(func(changes []Change) { first += len(changes) })
	p.OnChange(func(changes []Change) { second += len(changes) })

	p.TriggerAll()
	if first != 0 || second != 2 {
		t.Errorf("first=%d second=%d, want 0 and 2", first, second)
	}

	var fields []string
	p.OnChange(func(changes []Change) {
		for _, c := range changes {
			fields = append(fields, c.Field)
		}
	})
	p.TriggerAll()
	if fmt.Sprint(fields) != "[money life]" {
		t.Errorf("TriggerAll order = %v", fields)
	}
}
