/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the recipe record and the pure mutators operating on
// it. The record serializes to the same JSON shape the snapshot file uses, so
// field tags carry the original Spanish key names.
package domain

import (
	"encoding/json"
	"strings"
)

// Difficulty is the four-step difficulty scale of a dish.
type Difficulty string

const (
	DifficultyLow      Difficulty = "Baja"
	DifficultyMedium   Difficulty = "Media"
	DifficultyHigh     Difficulty = "Alta"
	DifficultyCritical Difficulty = "Crítica"
)

// Temperature is the serving-temperature band.
type Temperature string

const (
	TemperatureAmbient Temperature = "Ambiente"
	TemperatureCold    Temperature = "Fría (4-8°C)"
	TemperatureHot     Temperature = "Caliente (65°C+)"
	TemperatureWarm    Temperature = "Templada (15-20°C)"
)

// Conservation is the storage method of the finished dish.
type Conservation string

const (
	ConservationRefrigerated Conservation = "Refrigeración"
	ConservationFrozen       Conservation = "Congelación"
	ConservationAmbient      Conservation = "Temperatura ambiente"
	ConservationVacuum       Conservation = "Vacío"
	ConservationModifiedAtm  Conservation = "Atmósfera modificada"
)

// Unit is an ingredient measurement unit from the fixed selector list.
type Unit string

// List and text limits enforced across the record lifecycle.
const (
	MaxIngredients = 30
	MaxSteps       = 20
	MinIngredients = 1
	MinSteps       = 1

	MaxTitleLen      = 100
	MaxCategoryLen   = 50
	MaxIngredientLen = 200
	MaxStepLen       = 500
	MaxNotesLen      = 1000
)

// Ingredient is a tagged variant: either a legacy free-text line carried over
// from older snapshots, or a structured quantity/unit/name triple. Legacy
// entries render name-only; new entries are always structured.
type Ingredient struct {
	Legacy   string
	Quantity string
	Unit     Unit
	Name     string
}

// IsLegacy reports whether the ingredient is a pre-structured text line.
func (i Ingredient) IsLegacy() bool { return i.Legacy != "" }

// DisplayName returns the name shown on the sheet.
func (i Ingredient) DisplayName() string {
	if i.IsLegacy() {
		return i.Legacy
	}
	return i.Name
}

// Present reports whether the ingredient counts as filled in: a non-blank
// name (or legacy text). Quantity or unit alone do not count.
func (i Ingredient) Present() bool {
	return strings.TrimSpace(i.DisplayName()) != ""
}

type structuredIngredient struct {
	Quantity string `json:"cantidad"`
	Unit     Unit   `json:"unidad"`
	Name     string `json:"nombre"`
}

// MarshalJSON keeps legacy entries as plain strings and structured entries as
// objects, matching the snapshot format.
func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.IsLegacy() {
		return json.Marshal(i.Legacy)
	}
	return json.Marshal(structuredIngredient{Quantity: i.Quantity, Unit: i.Unit, Name: i.Name})
}

// UnmarshalJSON normalizes the two snapshot shapes into the tagged variant.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*i = Ingredient{Legacy: s}
		return nil
	}
	var obj structuredIngredient
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*i = Ingredient{Quantity: obj.Quantity, Unit: obj.Unit, Name: obj.Name}
	return nil
}

// Recipe is the single structured entity holding all user-entered data for
// one technical sheet. Numeric-ish fields stay as entered text; parsing is
// lenient and happens at render time.
type Recipe struct {
	Title        string       `json:"titulo"`
	Category     string       `json:"categoria"`
	Image        string       `json:"imagen,omitempty"` // data URI, never persisted
	Servings     string       `json:"raciones"`
	PrepMinutes  string       `json:"tiempoPreparacion"`
	CookMinutes  string       `json:"tiempoCoccion"`
	Difficulty   Difficulty   `json:"dificultad"`
	Temperature  Temperature  `json:"temperatura"`
	ShelfLife    string       `json:"caducidad"`
	Conservation Conservation `json:"conservacion"`
	Cost         string       `json:"coste"`
	Allergens    []string     `json:"alergenos"`
	Ingredients  []Ingredient `json:"ingredientes"`
	Steps        []string     `json:"pasos"`
	Notes        string       `json:"notas"`
}

// DefaultRecipe returns the initial record of a fresh session.
func DefaultRecipe() Recipe {
	return Recipe{
		Title:        "Nombre del Plato",
		Category:     "Categoría",
		Servings:     "1",
		PrepMinutes:  "0",
		CookMinutes:  "0",
		Difficulty:   DifficultyMedium,
		Temperature:  TemperatureAmbient,
		ShelfLife:    "24h",
		Conservation: ConservationRefrigerated,
		Cost:         "0.00",
		Allergens:    []string{},
		Ingredients:  []Ingredient{{Unit: "g"}},
		Steps:        []string{""},
		Notes:        "",
	}
}

// Clone returns a deep copy. Mutators operate on clones so the previous
// record stays untouched (copy-on-write).
func (r Recipe) Clone() Recipe {
	c := r
	c.Allergens = append([]string(nil), r.Allergens...)
	c.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	c.Steps = append([]string(nil), r.Steps...)
	return c
}

// HasAllergen reports whether the allergen id is declared.
func (r Recipe) HasAllergen(id string) bool {
	for _, a := range r.Allergens {
		if a == id {
			return true
		}
	}
	return false
}
