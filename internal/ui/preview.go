/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"strings"

	"fichagen/internal/sheet"
)

// basePreviewCols is the preview width at 100% zoom.
const basePreviewCols = 46

// renderPreview paints the document as a bordered terminal card. The zoom
// factor scales the card width, which is the terminal stand-in for page
// magnification.
func renderPreview(doc sheet.Document, zoomFactor float64, zoomLevel int) string {
	w := int(float64(basePreviewCols) * zoomFactor)
	if w < 24 {
		w = 24
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(doc.Brand.Name) + "  " + dimStyle.Render(doc.Brand.Slogan) + "\n")
	b.WriteString(titleStyle.Render(strings.ToUpper(doc.Title)) + "\n")
	b.WriteString(accentStyle.Render(doc.Category) + "\n\n")

	if doc.ImageURI == "" {
		b.WriteString(dimStyle.Render("["+sheet.NoPhotoLabel+"]") + "\n\n")
	} else {
		b.WriteString(dimStyle.Render("[foto adjunta]") + "\n\n")
	}

	for i := 0; i < len(doc.Params); i += 2 {
		left := fmt.Sprintf("%s %s", labelStyle.Render(doc.Params[i].Label), valueStyle.Render(doc.Params[i].Value))
		right := fmt.Sprintf("%s %s", labelStyle.Render(doc.Params[i+1].Label), valueStyle.Render(doc.Params[i+1].Value))
		b.WriteString(left + "   " + right + "\n")
	}
	b.WriteString("\n")

	b.WriteString(accentStyle.Render("ALÉRGENOS") + "\n")
	if len(doc.Allergens) == 0 {
		b.WriteString(dimStyle.Render(sheet.NoAllergensLabel) + "\n")
	} else {
		var chips []string
		for _, c := range doc.Allergens {
			chips = append(chips, chipStyle.Render(fmt.Sprintf("%d %s", c.Number, c.Label)))
		}
		b.WriteString(strings.Join(chips, " ") + "\n")
	}
	b.WriteString(labelStyle.Render("CONSERVACIÓN: ") + valueStyle.Render(doc.Conservation) + "\n\n")

	b.WriteString(accentStyle.Render("INGREDIENTES") + "\n")
	if len(doc.Ingredients) == 0 {
		b.WriteString(dimStyle.Render(sheet.NoIngredientsLabel) + "\n")
	}
	for _, ing := range doc.Ingredients {
		if ing.Legacy {
			b.WriteString(valueStyle.Render(ing.Name) + "\n")
			continue
		}
		b.WriteString(accentStyle.Render(fmt.Sprintf("%-8s", ing.Quantity)) + valueStyle.Render(ing.Name) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(accentStyle.Render("ELABORACIÓN") + "\n")
	if len(doc.Steps) == 0 {
		b.WriteString(dimStyle.Render(sheet.NoStepsLabel) + "\n")
	}
	for _, st := range doc.Steps {
		b.WriteString(accentStyle.Render(fmt.Sprintf("%d. ", st.Number)) + valueStyle.Render(st.Text) + "\n")
	}

	if strings.TrimSpace(doc.Notes) != "" {
		b.WriteString("\n" + accentStyle.Render("NOTAS DEL CHEF") + "\n")
		b.WriteString(valueStyle.Render(doc.Notes) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render(doc.Address) + "\n" + accentStyle.Render(doc.Caption))

	card := previewBorder.Width(w).Render(b.String())
	header := dimStyle.Render(fmt.Sprintf("vista previa · %d%%", zoomLevel))
	return header + "\n" + card
}
