/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fichagen/internal/domain"
	"fichagen/internal/export"
	"fichagen/internal/ingest"
	"fichagen/internal/layout"
	"fichagen/internal/sheet"
	"fichagen/internal/storage"
	"fichagen/internal/undo"
)

type viewState int

const (
	stateForm viewState = iota
	stateEdit
	stateList
	stateAllergens
	stateImage
	statePreview
	stateConfirmReset
)

type rowKind int

const (
	rowText rowKind = iota
	rowEnum
	rowList
	rowAllergens
	rowImage
)

// row is one navigable entry of the form column.
type row struct {
	label   string
	kind    rowKind
	field   domain.Field // rowText
	options []string     // rowEnum, cycled with left/right
	list    domain.List  // rowList
}

func formRows() []row {
	return []row{
		{label: "Título", kind: rowText, field: domain.FieldTitle},
		{label: "Categoría", kind: rowText, field: domain.FieldCategory},
		{label: "Raciones", kind: rowText, field: domain.FieldServings},
		{label: "Preparación (min)", kind: rowText, field: domain.FieldPrepMinutes},
		{label: "Cocción (min)", kind: rowText, field: domain.FieldCookMinutes},
		{label: "Dificultad", kind: rowEnum, field: domain.FieldDifficulty, options: enumStrings(domain.Difficulties)},
		{label: "Temperatura", kind: rowEnum, field: domain.FieldTemperature, options: enumStrings(domain.Temperatures)},
		{label: "Caducidad", kind: rowEnum, field: domain.FieldShelfLife, options: domain.ShelfLifeOptions},
		{label: "Conservación", kind: rowEnum, field: domain.FieldConservation, options: enumStrings(domain.Conservations)},
		{label: "Coste/pax", kind: rowText, field: domain.FieldCost},
		{label: "Notas del chef", kind: rowText, field: domain.FieldNotes},
		{label: "Imagen", kind: rowImage},
		{label: "Alérgenos", kind: rowAllergens},
		{label: "Ingredientes", kind: rowList, list: domain.ListIngredients},
		{label: "Pasos", kind: rowList, list: domain.ListSteps},
	}
}

func enumStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

// Model is the Bubble Tea model of the sheet editor.
type Model struct {
	rec   domain.Recipe
	store *storage.Store
	exp   *export.Exporter
	hist  *undo.History
	det   *layout.Detector
	zoom  layout.Zoom
	brand sheet.Brand

	rows   []row
	cursor int
	state  viewState
	input  textinput.Model

	listCursor int  // selected item inside the active rowList
	algCursor  int  // selected catalog entry in the allergen panel
	editList   bool // the pending text edit targets a list item

	status string
	dirty  bool
}

// NewModel builds the editor around the loaded record.
func NewModel(rec domain.Recipe, st *storage.Store, exp *export.Exporter, brand sheet.Brand) Model {
	ti := textinput.New()
	ti.CharLimit = domain.MaxStepLen
	ti.Width = 48
	return Model{
		rec:   rec,
		store: st,
		exp:   exp,
		hist:  undo.NewHistory(undo.Config{}),
		det:   layout.NewDetector(layout.BreakpointPx, layout.DefaultColumns),
		brand: brand,
		rows:  formRows(),
		input: ti,
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.det.Resize(msg.Width)
		return m, nil

	case tea.MouseMsg:
		// Ctrl+wheel zooms the preview; a bare wheel is left to the
		// terminal scrollback.
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.zoom.Wheel(-1, msg.Ctrl)
		case tea.MouseButtonWheelDown:
			m.zoom.Wheel(1, msg.Ctrl)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateEdit || m.state == stateImage {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings first; text entry states get the raw key instead.
	if m.state != stateEdit && m.state != stateImage {
		switch msg.String() {
		case "ctrl+c", "q":
			if msg.String() == "q" && m.state != stateForm {
				break
			}
			m.store.Save(m.rec)
			return m, tea.Quit
		case "ctrl+s":
			m.store.Save(m.rec)
			m.dirty = false
			m.status = "Guardado"
			return m, nil
		case "ctrl+e":
			return m.export("pdf")
		case "ctrl+p":
			if err := m.exp.Print(m.rec); err != nil {
				m.status = errorStyle.Render("Error al imprimir: " + err.Error())
			} else {
				m.status = "Enviado a impresión"
			}
			return m, nil
		case "ctrl+b":
			msg, path, err := m.exp.Share(m.rec)
			if err != nil {
				m.status = errorStyle.Render("Error al compartir: " + err.Error())
			} else {
				m.status = msg + " → " + path
			}
			return m, nil
		case "ctrl+z":
			var out domain.Recipe
			if ok, err := m.hist.Undo(m.rec, &out); err == nil && ok {
				m.rec = out
				m.dirty = true
				m.status = "Deshecho"
			}
			return m, nil
		case "ctrl+y":
			var out domain.Recipe
			if ok, err := m.hist.Redo(m.rec, &out); err == nil && ok {
				m.rec = out
				m.dirty = true
				m.status = "Rehecho"
			}
			return m, nil
		case "ctrl+r":
			m.state = stateConfirmReset
			return m, nil
		case "+":
			m.zoom.Increase()
			return m, nil
		case "-":
			m.zoom.Decrease()
			return m, nil
		case "0":
			m.zoom.Reset()
			return m, nil
		}
	}

	switch m.state {
	case stateForm:
		return m.keyForm(msg)
	case stateEdit:
		return m.keyEdit(msg)
	case stateList:
		return m.keyList(msg)
	case stateAllergens:
		return m.keyAllergens(msg)
	case stateImage:
		return m.keyImage(msg)
	case statePreview:
		if msg.String() == "esc" || msg.String() == "p" {
			m.state = stateForm
		}
		return m, nil
	case stateConfirmReset:
		switch msg.String() {
		case "y", "s":
			m.push()
			m.rec = domain.DefaultRecipe()
			m.store.Save(m.rec)
			m.status = "Formulario restablecido"
		}
		m.state = stateForm
		return m, nil
	}
	return m, nil
}

func (m Model) keyForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.rows[m.cursor]
	switch msg.String() {
	case "up", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "tab":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "left", "right":
		if r.kind == rowEnum {
			m.push()
			m.rec = domain.SetField(m.rec, r.field, cycle(r.options, m.fieldValue(r), msg.String() == "right"))
			m.dirty = true
		}
	case "p":
		if m.det.Mode() == layout.Mobile {
			m.state = statePreview
		}
	case "enter":
		switch r.kind {
		case rowText:
			m.input.SetValue(m.fieldValue(r))
			m.input.CharLimit = limitFor(r.field)
			m.input.Focus()
			m.state = stateEdit
			return m, textinput.Blink
		case rowEnum:
			m.push()
			m.rec = domain.SetField(m.rec, r.field, cycle(r.options, m.fieldValue(r), true))
			m.dirty = true
		case rowList:
			m.listCursor = 0
			m.state = stateList
		case rowAllergens:
			m.algCursor = 0
			m.state = stateAllergens
		case rowImage:
			m.input.SetValue("")
			m.input.CharLimit = 0
			m.input.Focus()
			m.state = stateImage
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) keyEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		r := m.rows[m.cursor]
		m.push()
		if m.editList {
			if r.list == domain.ListIngredients {
				m.rec = domain.SetIngredient(m.rec, m.listCursor, domain.ParseIngredient(m.input.Value()))
			} else {
				m.rec = domain.SetStep(m.rec, m.listCursor, m.input.Value())
			}
			m.editList = false
			m.input.Blur()
			m.dirty = true
			m.state = stateList
			return m, nil
		}
		m.rec = domain.SetField(m.rec, r.field, m.input.Value())
		m.dirty = true
		m.input.Blur()
		m.state = stateForm
	case "esc":
		m.input.Blur()
		if m.editList {
			m.editList = false
			m.state = stateList
		} else {
			m.state = stateForm
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) keyList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.rows[m.cursor]
	n := m.listLen(r.list)
	switch msg.String() {
	case "esc":
		m.state = stateForm
	case "up":
		if m.listCursor > 0 {
			m.listCursor--
		}
	case "down":
		if m.listCursor < n-1 {
			m.listCursor++
		}
	case "a":
		m.push()
		var ok bool
		m.rec, ok = domain.AddListItem(m.rec, r.list)
		if !ok {
			m.status = errorStyle.Render("Límite de la lista alcanzado")
		} else {
			m.listCursor = m.listLen(r.list) - 1
			m.dirty = true
		}
	case "d":
		m.push()
		m.rec = domain.RemoveListItem(m.rec, r.list, m.listCursor)
		if m.listCursor >= m.listLen(r.list) {
			m.listCursor = m.listLen(r.list) - 1
		}
		if m.listCursor < 0 {
			m.listCursor = 0
		}
		m.dirty = true
	case "enter":
		if n == 0 {
			return m, nil
		}
		m.input.SetValue(m.listItemText(r.list, m.listCursor))
		if r.list == domain.ListIngredients {
			m.input.CharLimit = domain.MaxIngredientLen
		} else {
			m.input.CharLimit = domain.MaxStepLen
		}
		m.input.Focus()
		m.editList = true
		m.state = stateEdit
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) keyAllergens(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateForm
	case "up":
		if m.algCursor > 0 {
			m.algCursor--
		}
	case "down":
		if m.algCursor < len(domain.Allergens)-1 {
			m.algCursor++
		}
	case " ", "enter":
		m.push()
		m.rec = domain.ToggleAllergen(m.rec, domain.Allergens[m.algCursor].ID)
		m.dirty = true
	}
	return m, nil
}

func (m Model) keyImage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.state = stateForm
		if path == "" {
			m.push()
			m.rec.Image = ""
			m.status = "Imagen eliminada"
			m.dirty = true
			return m, nil
		}
		uri, err := ingest.Ingest(context.Background(), path)
		if err != nil {
			m.status = errorStyle.Render(err.Error())
			return m, nil
		}
		m.push()
		m.rec.Image = uri
		m.status = "Imagen añadida"
		m.dirty = true
	case "esc":
		m.input.Blur()
		m.state = stateForm
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) export(format string) (tea.Model, tea.Cmd) {
	var (
		path string
		err  error
	)
	if format == "png" {
		path, err = m.exp.PNG(m.rec)
	} else {
		path, err = m.exp.PDF(m.rec)
	}
	if err != nil {
		m.status = errorStyle.Render("Error al exportar: " + err.Error())
	} else {
		m.status = "Exportado: " + path
	}
	return m, nil
}

// push records the pre-edit state for undo.
func (m *Model) push() { _ = m.hist.Push(m.rec) }

func (m Model) fieldValue(r row) string {
	switch r.field {
	case domain.FieldTitle:
		return m.rec.Title
	case domain.FieldCategory:
		return m.rec.Category
	case domain.FieldServings:
		return m.rec.Servings
	case domain.FieldPrepMinutes:
		return m.rec.PrepMinutes
	case domain.FieldCookMinutes:
		return m.rec.CookMinutes
	case domain.FieldDifficulty:
		return string(m.rec.Difficulty)
	case domain.FieldTemperature:
		return string(m.rec.Temperature)
	case domain.FieldShelfLife:
		return m.rec.ShelfLife
	case domain.FieldConservation:
		return string(m.rec.Conservation)
	case domain.FieldCost:
		return m.rec.Cost
	case domain.FieldNotes:
		return m.rec.Notes
	}
	return ""
}

func (m Model) listLen(l domain.List) int {
	if l == domain.ListIngredients {
		return len(m.rec.Ingredients)
	}
	return len(m.rec.Steps)
}

func (m Model) listItemText(l domain.List, i int) string {
	if i < 0 || i >= m.listLen(l) {
		return ""
	}
	if l == domain.ListSteps {
		return m.rec.Steps[i]
	}
	ing := m.rec.Ingredients[i]
	if !ing.Present() {
		return ""
	}
	if ing.IsLegacy() {
		return ing.Legacy
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", ing.Quantity, ing.Unit, ing.Name))
}

func cycle(options []string, current string, forward bool) string {
	if len(options) == 0 {
		return current
	}
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(options)
	} else {
		idx = (idx - 1 + len(options)) % len(options)
	}
	return options[idx]
}

func limitFor(f domain.Field) int {
	if lim := domain.FieldLimit(f); lim > 0 {
		return lim
	}
	return 64
}

