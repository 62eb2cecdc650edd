/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import "fichagen/internal/domain"

// snapshot mirrors the persisted JSON with pointer fields so absent keys are
// distinguishable from empty values. There is deliberately no image field:
// the snapshot never carries one and a stray "imagen" key is dropped here,
// which is the schema-evolution contract for stale data.
type snapshot struct {
	Title        *string              `json:"titulo"`
	Category     *string              `json:"categoria"`
	Servings     *string              `json:"raciones"`
	PrepMinutes  *string              `json:"tiempoPreparacion"`
	CookMinutes  *string              `json:"tiempoCoccion"`
	Difficulty   *string              `json:"dificultad"`
	Temperature  *string              `json:"temperatura"`
	ShelfLife    *string              `json:"caducidad"`
	Conservation *string              `json:"conservacion"`
	Cost         *string              `json:"coste"`
	Allergens    *[]string            `json:"alergenos"`
	Ingredients  *[]domain.Ingredient `json:"ingredientes"`
	Steps        *[]string            `json:"pasos"`
	Notes        *string              `json:"notas"`
}

// hydrate overlays the stored snapshot onto defaults field by field, so
// fields introduced after the snapshot was written keep their defaults.
// List floors and caps and allergen catalog membership are re-established,
// guarding against hand-edited or stale files.
func hydrate(def domain.Recipe, snap snapshot) domain.Recipe {
	r := def.Clone()
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.Title, snap.Title)
	set(&r.Category, snap.Category)
	set(&r.Servings, snap.Servings)
	set(&r.PrepMinutes, snap.PrepMinutes)
	set(&r.CookMinutes, snap.CookMinutes)
	set(&r.ShelfLife, snap.ShelfLife)
	set(&r.Cost, snap.Cost)
	set(&r.Notes, snap.Notes)
	if snap.Difficulty != nil {
		r.Difficulty = domain.Difficulty(*snap.Difficulty)
	}
	if snap.Temperature != nil {
		r.Temperature = domain.Temperature(*snap.Temperature)
	}
	if snap.Conservation != nil {
		r.Conservation = domain.Conservation(*snap.Conservation)
	}
	if snap.Allergens != nil {
		r.Allergens = r.Allergens[:0]
		for _, id := range *snap.Allergens {
			if _, ok := domain.AllergenByID(id); ok && !r.HasAllergen(id) {
				r.Allergens = append(r.Allergens, id)
			}
		}
	}
	if snap.Ingredients != nil && len(*snap.Ingredients) > 0 {
		ings := *snap.Ingredients
		if len(ings) > domain.MaxIngredients {
			ings = ings[:domain.MaxIngredients]
		}
		r.Ingredients = append([]domain.Ingredient(nil), ings...)
	}
	if snap.Steps != nil && len(*snap.Steps) > 0 {
		steps := *snap.Steps
		if len(steps) > domain.MaxSteps {
			steps = steps[:domain.MaxSteps]
		}
		r.Steps = append([]string(nil), steps...)
	}
	// The image never survives persistence.
	r.Image = ""
	return r
}
