/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sheet

import (
	"fmt"
	"strings"
)

// FormatText renders the document as plain text for terminal output. The
// section order matches the printed sheet.
func FormatText(doc Document) string {
	var b strings.Builder

	rule := strings.Repeat("=", 52)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "%s  %s\n", doc.Brand.Name, doc.Brand.Slogan)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "%s\n", doc.Title)
	fmt.Fprintf(&b, "%s\n\n", doc.Category)

	if doc.ImageURI == "" {
		fmt.Fprintf(&b, "[%s]\n\n", NoPhotoLabel)
	} else {
		b.WriteString("[foto adjunta]\n\n")
	}

	for _, p := range doc.Params {
		fmt.Fprintf(&b, "%-14s %s\n", p.Label, p.Value)
	}
	b.WriteString("\n")

	b.WriteString("ALÉRGENOS\n")
	if len(doc.Allergens) == 0 {
		fmt.Fprintf(&b, "  %s\n", NoAllergensLabel)
	} else {
		for _, c := range doc.Allergens {
			fmt.Fprintf(&b, "  %2d %s %s\n", c.Number, c.Icon, c.Label)
		}
	}
	fmt.Fprintf(&b, "CONSERVACIÓN: %s\n\n", doc.Conservation)

	b.WriteString("INGREDIENTES\n")
	if len(doc.Ingredients) == 0 {
		fmt.Fprintf(&b, "  %s\n", NoIngredientsLabel)
	} else {
		for _, ing := range doc.Ingredients {
			if ing.Legacy {
				fmt.Fprintf(&b, "  %s\n", ing.Name)
				continue
			}
			fmt.Fprintf(&b, "  %-10s %s\n", ing.Quantity, ing.Name)
		}
	}
	b.WriteString("\n")

	b.WriteString("ELABORACIÓN\n")
	if len(doc.Steps) == 0 {
		fmt.Fprintf(&b, "  %s\n", NoStepsLabel)
	} else {
		for _, s := range doc.Steps {
			fmt.Fprintf(&b, "  %d. %s\n", s.Number, s.Text)
		}
	}

	if strings.TrimSpace(doc.Notes) != "" {
		fmt.Fprintf(&b, "\nNOTAS DEL CHEF\n  %s\n", doc.Notes)
	}

	fmt.Fprintf(&b, "\n%s\n%s · %s · %s\n", rule, doc.Brand.Name, doc.Address, doc.Caption)
	return b.String()
}
