/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "strings"

// Pure mutators: each returns a new record and leaves the input untouched.
// Committing the result to the store is the caller's responsibility.
// Validation of scalar values lives in the input layer, not here.

// Field addresses a scalar attribute of the record.
type Field int

const (
	FieldTitle Field = iota
	FieldCategory
	FieldImage
	FieldServings
	FieldPrepMinutes
	FieldCookMinutes
	FieldDifficulty
	FieldTemperature
	FieldShelfLife
	FieldConservation
	FieldCost
	FieldNotes
)

var fieldNames = map[string]Field{
	"titulo":            FieldTitle,
	"categoria":         FieldCategory,
	"imagen":            FieldImage,
	"raciones":          FieldServings,
	"tiempoPreparacion": FieldPrepMinutes,
	"tiempoCoccion":     FieldCookMinutes,
	"dificultad":        FieldDifficulty,
	"temperatura":       FieldTemperature,
	"caducidad":         FieldShelfLife,
	"conservacion":      FieldConservation,
	"coste":             FieldCost,
	"notas":             FieldNotes,
}

// FieldByName resolves the snapshot key name of a scalar field, as used by
// the CLI `set` command.
func FieldByName(name string) (Field, bool) {
	f, ok := fieldNames[name]
	return f, ok
}

// FieldLimit returns the maximum accepted length in characters for a free
// text field, or 0 when no limit applies. Input layers enforce this before
// calling SetField so snapshots stay within the schema bounds.
func FieldLimit(f Field) int {
	switch f {
	case FieldTitle:
		return MaxTitleLen
	case FieldCategory:
		return MaxCategoryLen
	case FieldNotes:
		return MaxNotesLen
	}
	return 0
}

// SetField replaces one scalar attribute wholesale.
func SetField(r Recipe, f Field, value string) Recipe {
	c := r.Clone()
	switch f {
	case FieldTitle:
		c.Title = value
	case FieldCategory:
		c.Category = value
	case FieldImage:
		c.Image = value
	case FieldServings:
		c.Servings = value
	case FieldPrepMinutes:
		c.PrepMinutes = value
	case FieldCookMinutes:
		c.CookMinutes = value
	case FieldDifficulty:
		c.Difficulty = Difficulty(value)
	case FieldTemperature:
		c.Temperature = Temperature(value)
	case FieldShelfLife:
		c.ShelfLife = value
	case FieldConservation:
		c.Conservation = Conservation(value)
	case FieldCost:
		c.Cost = value
	case FieldNotes:
		c.Notes = value
	}
	return c
}

// List addresses one of the two ordered sequences of the record.
type List int

const (
	ListIngredients List = iota
	ListSteps
)

func (l List) cap() int {
	if l == ListIngredients {
		return MaxIngredients
	}
	return MaxSteps
}

func (l List) floor() int {
	if l == ListIngredients {
		return MinIngredients
	}
	return MinSteps
}

func (l List) len(r Recipe) int {
	if l == ListIngredients {
		return len(r.Ingredients)
	}
	return len(r.Steps)
}

// Len returns the current length of the list in r.
func (l List) Len(r Recipe) int { return l.len(r) }

// SetStep replaces the step at index. Index must be within bounds; the form
// layer guards this at the call site.
func SetStep(r Recipe, index int, text string) Recipe {
	c := r.Clone()
	c.Steps[index] = text
	return c
}

// SetIngredient replaces the ingredient at index. Index must be within
// bounds; the form layer guards this at the call site. Editing a legacy
// entry converts it to a structured one.
func SetIngredient(r Recipe, index int, ing Ingredient) Recipe {
	c := r.Clone()
	c.Ingredients[index] = ing
	return c
}

// AddListItem appends a blank element: an empty quantity/default-unit/empty
// name triple for ingredients, an empty string for steps. At the cap the
// record is returned unchanged and added is false.
func AddListItem(r Recipe, l List) (out Recipe, added bool) {
	if l.len(r) >= l.cap() {
		return r, false
	}
	c := r.Clone()
	if l == ListIngredients {
		c.Ingredients = append(c.Ingredients, Ingredient{Unit: "g"})
	} else {
		c.Steps = append(c.Steps, "")
	}
	return c, true
}

// RemoveListItem removes the element at index unless that would drop the
// list below its floor, in which case the record is returned unchanged.
func RemoveListItem(r Recipe, l List, index int) Recipe {
	if l.len(r) <= l.floor() || index < 0 || index >= l.len(r) {
		return r
	}
	c := r.Clone()
	if l == ListIngredients {
		c.Ingredients = append(c.Ingredients[:index], c.Ingredients[index+1:]...)
	} else {
		c.Steps = append(c.Steps[:index], c.Steps[index+1:]...)
	}
	return c
}

// ParseIngredient interprets an edited ingredient line. A line of the form
// "cantidad unidad nombre" where the second token is a catalog unit becomes
// a structured entry; anything else is kept as legacy free text.
func ParseIngredient(s string) Ingredient {
	parts := strings.Fields(s)
	if len(parts) >= 3 {
		for _, u := range Units {
			if parts[1] == string(u) {
				return Ingredient{
					Quantity: parts[0],
					Unit:     u,
					Name:     strings.Join(parts[2:], " "),
				}
			}
		}
	}
	return Ingredient{Legacy: strings.TrimSpace(s)}
}

// ToggleAllergen adds the id if absent and removes it if present. Ids not in
// the regulatory catalog are ignored, keeping the set well-formed.
func ToggleAllergen(r Recipe, id string) Recipe {
	if _, ok := AllergenByID(id); !ok {
		return r
	}
	c := r.Clone()
	for i, a := range c.Allergens {
		if a == id {
			c.Allergens = append(c.Allergens[:i], c.Allergens[i+1:]...)
			return c
		}
	}
	c.Allergens = append(c.Allergens, id)
	return c
}
