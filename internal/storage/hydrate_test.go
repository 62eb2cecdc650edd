package storage

import (
	"encoding/json"
	"testing"

	"fichagen/internal/domain"
)

func snapFromJSON(t *testing.T, s string) snapshot {
	t.Helper()
	var snap snapshot
	if err := json.Unmarshal([]byte(s), &snap); err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	return snap
}

func TestHydrateEmptySnapshotYieldsDefaults(t *testing.T) {
	got := hydrate(domain.DefaultRecipe(), snapshot{})
	want := domain.DefaultRecipe()
	if got.Title != want.Title || got.ShelfLife != want.ShelfLife || len(got.Steps) != 1 {
		t.Fatalf("empty snapshot did not keep defaults: %+v", got)
	}
}

func TestHydrateDistinguishesEmptyFromAbsent(t *testing.T) {
	snap := snapFromJSON(t, `{"titulo":"","notas":""}`)
	got := hydrate(domain.DefaultRecipe(), snap)
	if got.Title != "" {
		t.Fatalf("explicit empty title overridden by default: %q", got.Title)
	}
	if got.Category != domain.DefaultRecipe().Category {
		t.Fatalf("absent category lost its default: %q", got.Category)
	}
}

func TestHydrateDropsUnknownAllergensAndDuplicates(t *testing.T) {
	snap := snapFromJSON(t, `{"alergenos":["gluten","misterio","gluten","soja"]}`)
	got := hydrate(domain.DefaultRecipe(), snap)
	if len(got.Allergens) != 2 || !got.HasAllergen("gluten") || !got.HasAllergen("soja") {
		t.Fatalf("allergen set not sanitized: %v", got.Allergens)
	}
}

func TestHydrateClampsOversizedLists(t *testing.T) {
	steps := make([]string, 0, domain.MaxSteps+10)
	for i := 0; i < domain.MaxSteps+10; i++ {
		steps = append(steps, "paso")
	}
	b, _ := json.Marshal(map[string]any{"pasos": steps})
	got := hydrate(domain.DefaultRecipe(), snapFromJSON(t, string(b)))
	if len(got.Steps) != domain.MaxSteps {
		t.Fatalf("steps not clamped: %d", len(got.Steps))
	}
}

func TestHydrateRestoresListFloors(t *testing.T) {
	snap := snapFromJSON(t, `{"ingredientes":[],"pasos":[]}`)
	got := hydrate(domain.DefaultRecipe(), snap)
	if len(got.Ingredients) != 1 || len(got.Steps) != 1 {
		t.Fatalf("empty stored lists must fall back to one blank element: %d/%d",
			len(got.Ingredients), len(got.Steps))
	}
}
