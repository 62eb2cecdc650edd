package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fichagen/internal/domain"
)

func allowAll(string) bool { return true }
func denyAll(string) bool  { return false }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), allowAll)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestLoadWithoutSnapshotReturnsDefaults(t *testing.T) {
	s := newTestStore(t)
	got := s.Load()
	if !reflect.DeepEqual(got, domain.DefaultRecipe()) {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	r := domain.DefaultRecipe()
	r = domain.SetField(r, domain.FieldTitle, "Arroz a banda")
	r = domain.SetField(r, domain.FieldCost, "3.80")
	r = domain.ToggleAllergen(r, "pescado")
	r = domain.SetIngredient(r, 0, domain.Ingredient{Quantity: "400", Unit: "g", Name: "Arroz"})
	s.Save(r)

	got := s.Load()
	if got.Title != "Arroz a banda" || got.Cost != "3.80" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if !got.HasAllergen("pescado") {
		t.Fatalf("round trip lost allergens")
	}
	if got.Ingredients[0].Name != "Arroz" {
		t.Fatalf("round trip lost ingredients: %+v", got.Ingredients)
	}
}

func TestSaveStripsImageAndLoadNeverRestoresIt(t *testing.T) {
	s := newTestStore(t)
	r := domain.DefaultRecipe()
	r = domain.SetField(r, domain.FieldImage, "data:image/png;base64,AAAA")
	s.Save(r)

	raw, err := os.ReadFile(s.SnapshotPath())
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if strings.Contains(string(raw), "imagen") {
		t.Fatalf("snapshot contains image field: %s", raw)
	}

	// Even a hand-edited snapshot with an image key must not restore one.
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	m["imagen"] = "data:image/png;base64,BBBB"
	edited, _ := json.Marshal(m)
	if err := os.WriteFile(s.SnapshotPath(), edited, 0o644); err != nil {
		t.Fatalf("rewrite snapshot: %v", err)
	}
	if got := s.Load(); got.Image != "" {
		t.Fatalf("image restored from snapshot: %q", got.Image)
	}
}

func TestLoadCorruptedSnapshotFallsBackToDefaults(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.SnapshotPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt snapshot: %v", err)
	}
	got := s.Load()
	if !reflect.DeepEqual(got, domain.DefaultRecipe()) {
		t.Fatalf("corrupted snapshot did not yield defaults: %+v", got)
	}
}

func TestLoadMergesStaleSnapshotOverDefaults(t *testing.T) {
	s := newTestStore(t)
	// A stale snapshot written before some fields existed.
	stale := `{"titulo":"Crema de calabaza","ingredientes":["calabaza","nata"]}`
	if err := os.WriteFile(s.SnapshotPath(), []byte(stale), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	got := s.Load()
	if got.Title != "Crema de calabaza" {
		t.Fatalf("stored field lost: %q", got.Title)
	}
	if got.ShelfLife != "24h" || got.Difficulty != domain.DifficultyMedium {
		t.Fatalf("missing fields did not keep defaults: %+v", got)
	}
	if len(got.Ingredients) != 2 || !got.Ingredients[0].IsLegacy() {
		t.Fatalf("legacy ingredients not normalized: %+v", got.Ingredients)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, denyAll)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	r := domain.SetField(domain.DefaultRecipe(), domain.FieldTitle, "Fideuà")
	s.Save(r)

	if _, ok := s.Reset(); ok {
		t.Fatalf("reset proceeded despite negative confirmation")
	}
	if got := s.Load(); got.Title != "Fideuà" {
		t.Fatalf("declined reset altered the snapshot: %q", got.Title)
	}

	s.confirm = allowAll
	got, ok := s.Reset()
	if !ok {
		t.Fatalf("confirmed reset did not proceed")
	}
	if !reflect.DeepEqual(got, domain.DefaultRecipe()) {
		t.Fatalf("reset did not restore defaults")
	}
	if _, err := os.Stat(s.SnapshotPath()); !os.IsNotExist(err) {
		t.Fatalf("reset left snapshot on disk")
	}
}

func TestAutosaveCrashSnapshotWritesFile(t *testing.T) {
	s := newTestStore(t)
	r := domain.SetField(domain.DefaultRecipe(), domain.FieldTitle, "Torrija")
	path, err := s.AutosaveCrashSnapshot(r)
	if err != nil {
		t.Fatalf("AutosaveCrashSnapshot: %v", err)
	}
	if filepath.Dir(path) != filepath.Dir(s.SnapshotPath()) {
		t.Fatalf("crash snapshot outside data dir: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read crash snapshot: %v", err)
	}
	if !strings.Contains(string(b), "Torrija") {
		t.Fatalf("crash snapshot misses record data: %s", b)
	}
}
