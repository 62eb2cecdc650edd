/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Allergen is one entry of the fixed catalog of declarable allergens per
// Regulation (EU) 1169/2011. Numbers 1-14 are stable regulatory identifiers.
type Allergen struct {
	ID          string
	Number      int
	Label       string
	Icon        string
	Description string
}

// Allergens is the complete 14-entry regulatory catalog, in number order.
var Allergens = []Allergen{
	{ID: "gluten", Number: 1, Label: "Gluten", Icon: "🌾", Description: "Cereales con gluten (trigo, centeno, cebada, avena, espelta, kamut)"},
	{ID: "crustaceos", Number: 2, Label: "Crustáceos", Icon: "🦞", Description: "Crustáceos y productos a base de crustáceos"},
	{ID: "huevos", Number: 3, Label: "Huevos", Icon: "🥚", Description: "Huevos y productos a base de huevo"},
	{ID: "pescado", Number: 4, Label: "Pescado", Icon: "🐟", Description: "Pescado y productos a base de pescado"},
	{ID: "cacahuetes", Number: 5, Label: "Cacahuetes", Icon: "🥜", Description: "Cacahuetes y productos a base de cacahuetes"},
	{ID: "soja", Number: 6, Label: "Soja", Icon: "🫘", Description: "Soja y productos a base de soja"},
	{ID: "lacteos", Number: 7, Label: "Lácteos", Icon: "🥛", Description: "Leche y derivados (incluida la lactosa)"},
	{ID: "frutos-cascara", Number: 8, Label: "Frutos de Cáscara", Icon: "🌰", Description: "Almendras, avellanas, nueces, anacardos, pacanas, nueces de Brasil, pistachos, macadamia"},
	{ID: "apio", Number: 9, Label: "Apio", Icon: "🥬", Description: "Apio y productos derivados"},
	{ID: "mostaza", Number: 10, Label: "Mostaza", Icon: "🌶️", Description: "Mostaza y productos derivados"},
	{ID: "sesamo", Number: 11, Label: "Sésamo", Icon: "⚪", Description: "Granos de sésamo y productos a base de sésamo"},
	{ID: "sulfitos", Number: 12, Label: "Sulfitos", Icon: "🧪", Description: "Dióxido de azufre y sulfitos (>10 mg/kg o 10 mg/l en SO₂)"},
	{ID: "altramuces", Number: 13, Label: "Altramuces", Icon: "🌿", Description: "Altramuces y productos a base de altramuces"},
	{ID: "moluscos", Number: 14, Label: "Moluscos", Icon: "🦪", Description: "Moluscos y productos a base de moluscos"},
}

// AllergenByID looks up a catalog entry.
func AllergenByID(id string) (Allergen, bool) {
	for _, a := range Allergens {
		if a.ID == id {
			return a, true
		}
	}
	return Allergen{}, false
}

// Units lists the selectable measurement units, in selector order.
var Units = []Unit{"g", "kg", "ml", "l", "u", "ud.", "mg", "c.s.", "c/n"}

// Difficulties lists the selectable difficulty levels.
var Difficulties = []Difficulty{DifficultyLow, DifficultyMedium, DifficultyHigh, DifficultyCritical}

// Temperatures lists the selectable serving-temperature bands.
var Temperatures = []Temperature{TemperatureAmbient, TemperatureCold, TemperatureHot, TemperatureWarm}

// Conservations lists the selectable storage methods.
var Conservations = []Conservation{
	ConservationRefrigerated,
	ConservationFrozen,
	ConservationAmbient,
	ConservationVacuum,
	ConservationModifiedAtm,
}

// ShelfLifeOptions are the predefined expiry choices.
var ShelfLifeOptions = []string{"24h", "48h", "72h", "1 semana", "2 semanas", "1 mes", "3 meses", "6 meses"}

// DishCategories are the predefined dish families.
var DishCategories = []string{
	"Entrantes",
	"Ensaladas",
	"Sopas y Cremas",
	"Carnes",
	"Pescados",
	"Arroces",
	"Pastas",
	"Postres",
	"Panadería",
	"Bebidas",
	"Salsas",
	"Guarniciones",
}
