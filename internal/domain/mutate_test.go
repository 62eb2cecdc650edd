package domain

import (
	"reflect"
	"testing"
)

func TestToggleAllergenInvolution(t *testing.T) {
	r := DefaultRecipe()
	r = ToggleAllergen(r, "gluten")
	if !r.HasAllergen("gluten") {
		t.Fatalf("toggle did not add allergen")
	}
	r2 := ToggleAllergen(ToggleAllergen(r, "lacteos"), "lacteos")
	if !reflect.DeepEqual(r.Allergens, r2.Allergens) {
		t.Fatalf("double toggle changed the set: %v vs %v", r.Allergens, r2.Allergens)
	}
}

func TestToggleAllergenIgnoresUnknownID(t *testing.T) {
	r := DefaultRecipe()
	r2 := ToggleAllergen(r, "kriptonita")
	if !reflect.DeepEqual(r.Allergens, r2.Allergens) {
		t.Fatalf("unknown id altered the allergen set")
	}
}

func TestAddListItemRespectsCaps(t *testing.T) {
	r := DefaultRecipe()
	for i := 0; i < MaxIngredients+5; i++ {
		r, _ = AddListItem(r, ListIngredients)
	}
	if len(r.Ingredients) != MaxIngredients {
		t.Fatalf("ingredients grew past cap: %d", len(r.Ingredients))
	}
	r2, added := AddListItem(r, ListIngredients)
	if added {
		t.Fatalf("add at cap reported success")
	}
	if !reflect.DeepEqual(r, r2) {
		t.Fatalf("add at cap changed the record")
	}

	s := DefaultRecipe()
	for i := 0; i < MaxSteps+5; i++ {
		s, _ = AddListItem(s, ListSteps)
	}
	if len(s.Steps) != MaxSteps {
		t.Fatalf("steps grew past cap: %d", len(s.Steps))
	}
}

func TestRemoveListItemKeepsFloor(t *testing.T) {
	r := DefaultRecipe()
	r = RemoveListItem(r, ListIngredients, 0)
	if len(r.Ingredients) != MinIngredients {
		t.Fatalf("removal dropped ingredients below floor: %d", len(r.Ingredients))
	}
	r = RemoveListItem(r, ListSteps, 0)
	if len(r.Steps) != MinSteps {
		t.Fatalf("removal dropped steps below floor: %d", len(r.Steps))
	}

	r, _ = AddListItem(r, ListSteps)
	r = SetStep(r, 1, "emplatar")
	r = RemoveListItem(r, ListSteps, 0)
	if len(r.Steps) != 1 || r.Steps[0] != "emplatar" {
		t.Fatalf("wrong element removed: %v", r.Steps)
	}
}

func TestRemoveListItemOutOfRangeIsNoOp(t *testing.T) {
	r := DefaultRecipe()
	r, _ = AddListItem(r, ListIngredients)
	r2 := RemoveListItem(r, ListIngredients, 7)
	if !reflect.DeepEqual(r, r2) {
		t.Fatalf("out-of-range removal changed the record")
	}
}

func TestMutatorsDoNotAliasInput(t *testing.T) {
	r := DefaultRecipe()
	r2 := SetField(r, FieldTitle, "Gazpacho")
	if r.Title == r2.Title {
		t.Fatalf("input mutated")
	}
	r3 := ToggleAllergen(r2, "apio")
	if r2.HasAllergen("apio") {
		t.Fatalf("toggle mutated its input")
	}
	r4, _ := AddListItem(r3, ListSteps)
	r4 = SetStep(r4, 1, "triturar")
	if len(r3.Steps) != 1 {
		t.Fatalf("add/set mutated the previous record: %v", r3.Steps)
	}
}

func TestFieldByNameCoversSnapshotKeys(t *testing.T) {
	for _, name := range []string{"titulo", "categoria", "raciones", "tiempoPreparacion", "tiempoCoccion", "dificultad", "temperatura", "caducidad", "conservacion", "coste", "notas"} {
		if _, ok := FieldByName(name); !ok {
			t.Fatalf("field %q not resolvable", name)
		}
	}
	if _, ok := FieldByName("nope"); ok {
		t.Fatalf("unknown field resolved")
	}
}

func TestParseIngredient(t *testing.T) {
	ing := ParseIngredient("200 g Harina de trigo")
	if ing.IsLegacy() || ing.Quantity != "200" || string(ing.Unit) != "g" || ing.Name != "Harina de trigo" {
		t.Fatalf("structured parse = %+v", ing)
	}
	ing = ParseIngredient("Un chorrito de aceite")
	if !ing.IsLegacy() || ing.Legacy != "Un chorrito de aceite" {
		t.Fatalf("free text should stay legacy: %+v", ing)
	}
	// An unknown second token is not a unit.
	if !ParseIngredient("dos tazas arroz").IsLegacy() {
		t.Fatalf("unknown unit must fall back to legacy")
	}
}
