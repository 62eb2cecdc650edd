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

	"github.com/charmbracelet/lipgloss"

	"fichagen/internal/domain"
	"fichagen/internal/layout"
	"fichagen/internal/sheet"
)

func (m Model) View() string {
	var body string
	switch {
	case m.state == stateList || (m.state == stateEdit && m.editList):
		body = m.viewList()
	case m.state == stateAllergens:
		body = m.viewAllergens()
	case m.state == statePreview:
		body = renderPreview(sheet.Render(m.rec, m.brand), m.zoom.Factor(), m.zoom.Level())
	case m.state == stateConfirmReset:
		body = m.viewConfirmReset()
	default:
		body = m.viewForm()
	}

	if m.state != statePreview && m.det.Mode() == layout.Desktop {
		preview := renderPreview(sheet.Render(m.rec, m.brand), m.zoom.Factor(), m.zoom.Level())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", preview)
	}

	return body + "\n" + m.statusBar()
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ficha Técnica") + "  " + dimStyle.Render(m.brand.Name) + "\n\n")
	for i, r := range m.rows {
		marker := "  "
		label := labelStyle.Render(r.label)
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			label = selectedStyle.Render(r.label)
		}
		value := m.rowValue(r)
		if i == m.cursor && (m.state == stateEdit || m.state == stateImage) && !m.editList {
			value = m.input.View()
		}
		fmt.Fprintf(&b, "%s%-28s %s\n", marker, label, value)
	}
	return b.String()
}

func (m Model) rowValue(r row) string {
	switch r.kind {
	case rowText, rowEnum:
		return valueStyle.Render(truncate(m.fieldValue(r), 40))
	case rowImage:
		if m.rec.Image == "" {
			return dimStyle.Render("sin imagen")
		}
		return valueStyle.Render("adjunta")
	case rowAllergens:
		if len(m.rec.Allergens) == 0 {
			return dimStyle.Render(sheet.NoAllergensLabel)
		}
		return valueStyle.Render(fmt.Sprintf("%d declarados", len(m.rec.Allergens)))
	case rowList:
		return dimStyle.Render(fmt.Sprintf("%d elementos", m.listLen(r.list)))
	}
	return ""
}

func (m Model) viewList() string {
	r := m.rows[m.cursor]
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.label) + "\n\n")
	n := m.listLen(r.list)
	if n == 0 {
		b.WriteString(dimStyle.Render("(vacío)") + "\n")
	}
	for i := 0; i < n; i++ {
		marker := "  "
		text := truncate(m.listItemText(r.list, i), 70)
		switch {
		case i == m.listCursor && m.state == stateEdit && m.editList:
			marker = accentStyle.Render("> ")
			text = m.input.View()
		case i == m.listCursor:
			marker = accentStyle.Render("> ")
			text = selectedStyle.Render(text)
		case text == "":
			text = dimStyle.Render("(en blanco)")
		}
		fmt.Fprintf(&b, "%s%2d. %s\n", marker, i+1, text)
	}
	b.WriteString("\n" + dimStyle.Render("enter editar · a añadir · d borrar · esc volver"))
	return b.String()
}

func (m Model) viewAllergens() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Alérgenos (Reglamento UE 1169/2011)") + "\n\n")
	for i, a := range domain.Allergens {
		marker := "  "
		check := "[ ]"
		if m.rec.HasAllergen(a.ID) {
			check = accentStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %2d. %s %s", check, a.Number, a.Icon, a.Label)
		if i == m.algCursor {
			marker = accentStyle.Render("> ")
			line = selectedStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("espacio alternar · esc volver"))
	return b.String()
}

func (m Model) viewConfirmReset() string {
	return errorStyle.Render("¿Borrar formulario? Se perderán los datos actuales.") +
		"\n\n" + dimStyle.Render("s/y confirmar · cualquier otra tecla cancelar")
}

func (m Model) statusBar() string {
	dirty := ""
	if m.dirty {
		dirty = accentStyle.Render("● ")
	}
	hints := "ctrl+s guardar · ctrl+e exportar · ctrl+p imprimir · ctrl+b compartir · ctrl+z deshacer · ctrl+r borrar · q salir"
	if m.det.Mode() == layout.Mobile {
		hints = "p vista previa · " + hints
	}
	left := dirty + m.status
	if left == "" {
		left = dimStyle.Render(m.det.Mode().String())
	}
	return statusStyle.Render(" "+left+"  ") + dimStyle.Render(hints)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
