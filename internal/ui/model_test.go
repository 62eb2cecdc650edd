/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fichagen/internal/domain"
	"fichagen/internal/export"
	"fichagen/internal/layout"
	"fichagen/internal/sheet"
	"fichagen/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	st, err := storage.NewStore(dir, func(string) bool { return true })
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	brand := sheet.Brand{Name: "MØKKA", Slogan: "real coffee · real food"}
	exp := export.New(export.Options{OutDir: dir, Brand: brand})
	return NewModel(domain.DefaultRecipe(), st, exp, brand)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	panic("unknown key " + s)
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		out, _ := m.Update(msg)
		var ok bool
		m, ok = out.(Model)
		if !ok {
			t.Fatalf("Update returned %T", out)
		}
	}
	return m
}

func TestResizeSwitchesLayout(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 1024, Height: 40})
	if m.det.Mode() != layout.Desktop {
		t.Fatalf("wide terminal should be desktop")
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	if m.det.Mode() != layout.Mobile {
		t.Fatalf("narrow terminal should be mobile")
	}
}

func TestZoomKeysAndWheel(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("+"))
	if m.zoom.Level() != 110 {
		t.Fatalf("after +: %d", m.zoom.Level())
	}
	m = update(t, m, key("0"))
	if m.zoom.Level() != 100 {
		t.Fatalf("after 0: %d", m.zoom.Level())
	}

	wheelUp := tea.MouseMsg{Button: tea.MouseButtonWheelUp, Ctrl: true}
	m = update(t, m, wheelUp)
	if m.zoom.Level() != 110 {
		t.Fatalf("ctrl+wheel up: %d", m.zoom.Level())
	}
	plain := tea.MouseMsg{Button: tea.MouseButtonWheelUp}
	m = update(t, m, plain)
	if m.zoom.Level() != 110 {
		t.Fatalf("bare wheel must not zoom: %d", m.zoom.Level())
	}
}

func TestEnumCycle(t *testing.T) {
	m := newTestModel(t)
	// Move the cursor to the difficulty row.
	for m.rows[m.cursor].field != domain.FieldDifficulty {
		m = update(t, m, key("down"))
	}
	before := m.rec.Difficulty
	m = update(t, m, key("right"))
	if m.rec.Difficulty == before {
		t.Fatalf("right should cycle the difficulty")
	}
	if !m.hist.CanUndo() {
		t.Fatalf("enum cycle should be undoable")
	}
}

func TestEditTitle(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("enter")) // cursor starts on the title row
	if m.state != stateEdit {
		t.Fatalf("state = %v, want edit", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	m = update(t, m, key("enter"))
	if m.state != stateForm {
		t.Fatalf("state = %v after commit", m.state)
	}
	if !strings.Contains(m.rec.Title, "X") {
		t.Fatalf("title = %q", m.rec.Title)
	}
}

func TestAllergenPanelToggle(t *testing.T) {
	m := newTestModel(t)
	for m.rows[m.cursor].kind != rowAllergens {
		m = update(t, m, key("down"))
	}
	m = update(t, m, key("enter"))
	if m.state != stateAllergens {
		t.Fatalf("state = %v, want allergens", m.state)
	}
	m = update(t, m, key("space"))
	if !m.rec.HasAllergen(domain.Allergens[0].ID) {
		t.Fatalf("first allergen should toggle on")
	}
	m = update(t, m, key("space"))
	if m.rec.HasAllergen(domain.Allergens[0].ID) {
		t.Fatalf("second toggle should clear it")
	}
	m = update(t, m, key("esc"))
	if m.state != stateForm {
		t.Fatalf("esc should return to the form")
	}
}

func TestListAddEditRemove(t *testing.T) {
	m := newTestModel(t)
	for m.rows[m.cursor].kind != rowList || m.rows[m.cursor].list != domain.ListIngredients {
		m = update(t, m, key("down"))
	}
	m = update(t, m, key("enter"))
	if m.state != stateList {
		t.Fatalf("state = %v, want list", m.state)
	}
	n := len(m.rec.Ingredients)
	m = update(t, m, key("a"))
	if len(m.rec.Ingredients) != n+1 {
		t.Fatalf("add did not grow the list")
	}
	m = update(t, m, key("enter"))
	for _, r := range "200 g Harina" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = update(t, m, key("enter"))
	ing := m.rec.Ingredients[m.listCursor]
	if ing.Quantity != "200" || string(ing.Unit) != "g" || ing.Name != "Harina" {
		t.Fatalf("edited ingredient = %+v", ing)
	}
	m = update(t, m, key("d"))
	if len(m.rec.Ingredients) != n {
		t.Fatalf("remove did not shrink the list")
	}
	// The floor: removals stop at one entry.
	for i := 0; i < 10; i++ {
		m = update(t, m, key("d"))
	}
	if len(m.rec.Ingredients) != domain.MinIngredients {
		t.Fatalf("floor violated: %d entries", len(m.rec.Ingredients))
	}
}

func TestConfirmResetFlow(t *testing.T) {
	m := newTestModel(t)
	m.rec = domain.SetField(m.rec, domain.FieldTitle, "Algo")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.state != stateConfirmReset {
		t.Fatalf("ctrl+r should ask for confirmation")
	}
	m = update(t, m, key("n"))
	if m.rec.Title != "Algo" {
		t.Fatalf("declined reset must keep the record")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = update(t, m, key("s"))
	if m.rec.Title != domain.DefaultRecipe().Title {
		t.Fatalf("confirmed reset should restore defaults, title = %q", m.rec.Title)
	}
}

func TestPreviewContent(t *testing.T) {
	m := newTestModel(t)
	m.rec = domain.SetField(m.rec, domain.FieldTitle, "Paella")
	out := renderPreview(previewDoc(m), m.zoom.Factor(), m.zoom.Level())
	if !strings.Contains(out, "PAELLA") {
		t.Fatalf("preview missing the title:\n%s", out)
	}
	if !strings.Contains(out, "100%") {
		t.Fatalf("preview missing the zoom badge")
	}
}

func previewDoc(m Model) sheet.Document {
	return sheet.Render(m.rec, m.brand)
}
