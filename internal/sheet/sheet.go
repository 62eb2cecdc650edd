/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package sheet projects a recipe record into the A4 technical-sheet
// document. Render is the single source of truth for the document layout:
// the interactive preview, the CLI text output and the export rasterizer all
// consume the same Document, which guarantees visual parity between what the
// user edits and what gets exported.
package sheet

import (
	"fmt"
	"strings"

	"fichagen/internal/domain"
)

// A4 page size in pixels at 96 DPI.
const (
	PageWidthPx  = 794
	PageHeightPx = 1123
)

// Placeholder strings of the rendered document.
const (
	NoDataDash         = "—"
	NoPhotoLabel       = "SIN FOTO"
	NoAllergensLabel   = "Sin alérgenos declarados"
	NoIngredientsLabel = "Sin ingredientes"
	NoStepsLabel       = "Sin pasos definidos"
	SheetCaption       = "FICHA TÉCNICA"
)

// Brand is the fixed branding block printed on header and footer.
type Brand struct {
	Name     string
	Slogan   string
	Address  string
	LogoPath string
}

// Param is one cell of the 2x3 parameter grid.
type Param struct {
	Label     string
	Value     string
	Bold      bool
	Highlight bool
}

// Chip is one declared allergen shown in the chip row.
type Chip struct {
	Number int
	Icon   string
	Label  string
}

// IngredientLine is a rendered ingredient entry. Legacy free-text entries
// render name-only.
type IngredientLine struct {
	Quantity string // "200 g" or the em-dash placeholder; empty for legacy
	Name     string
	Legacy   bool
}

// StepLine is a numbered procedure entry.
type StepLine struct {
	Number int
	Text   string
}

// Document is the fixed-layout A4 technical sheet.
type Document struct {
	Brand    Brand
	Title    string
	Category string

	ImageURI string // empty means the SIN FOTO placeholder

	Params       [6]Param
	Allergens    []Chip // empty means the no-allergens placeholder
	Conservation string

	Ingredients []IngredientLine // empty means the no-ingredients placeholder
	Steps       []StepLine       // empty means the no-steps placeholder
	Notes       string           // empty means the notes block is omitted

	Address string
	Caption string
}

// Render projects the record into the document. It is pure: no I/O, no
// mutation of the input.
func Render(r domain.Recipe, b Brand) Document {
	doc := Document{
		Brand:    b,
		Title:    fallback(r.Title, "NOMBRE DEL PLATO"),
		Category: fallback(r.Category, "Categoría"),
		ImageURI: r.Image,
		Address:  b.Address,
		Caption:  SheetCaption,
	}

	total := ParseMinutes(r.PrepMinutes) + ParseMinutes(r.CookMinutes)
	cost := "0.00€"
	if strings.TrimSpace(r.Cost) != "" {
		cost = r.Cost + "€"
	}
	doc.Params = [6]Param{
		{Label: "RACIONES", Value: fallback(r.Servings, NoDataDash)},
		{Label: "TIEMPO TOTAL", Value: fmt.Sprintf("%d'", total)},
		{Label: "DIFICULTAD", Value: fallback(string(r.Difficulty), string(domain.DifficultyMedium)), Bold: true},
		{Label: "TEMPERATURA", Value: fallback(string(r.Temperature), string(domain.TemperatureHot)), Bold: true},
		{Label: "CADUCIDAD", Value: fallback(r.ShelfLife, "24h")},
		{Label: "COSTE PAX", Value: cost, Highlight: true},
	}

	for _, id := range r.Allergens {
		if a, ok := domain.AllergenByID(id); ok {
			doc.Allergens = append(doc.Allergens, Chip{Number: a.Number, Icon: a.Icon, Label: a.Label})
		}
	}
	doc.Conservation = fallback(string(r.Conservation), string(domain.ConservationRefrigerated))

	for _, ing := range r.Ingredients {
		if !ing.Present() {
			continue
		}
		if ing.IsLegacy() {
			doc.Ingredients = append(doc.Ingredients, IngredientLine{Name: ing.Legacy, Legacy: true})
			continue
		}
		qty := NoDataDash
		if strings.TrimSpace(ing.Quantity) != "" {
			qty = strings.TrimSpace(ing.Quantity + " " + string(ing.Unit))
		}
		doc.Ingredients = append(doc.Ingredients, IngredientLine{Quantity: qty, Name: ing.Name})
	}

	n := 0
	for _, step := range r.Steps {
		if strings.TrimSpace(step) == "" {
			continue
		}
		n++
		doc.Steps = append(doc.Steps, StepLine{Number: n, Text: step})
	}

	doc.Notes = r.Notes
	return doc
}

// ParseMinutes parses user-entered minutes leniently: leading decimal digits
// count, anything else parses as zero.
func ParseMinutes(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	ok := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		ok = true
		n = n*10 + int(r-'0')
	}
	if !ok {
		return 0
	}
	return n
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
