/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui is the interactive terminal editor: a form column with a live
// sheet preview, backed by the same render path the exporter uses.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"fichagen/internal/domain"
	"fichagen/internal/export"
	applog "fichagen/internal/log"
	"fichagen/internal/sheet"
	"fichagen/internal/storage"
)

// App owns the editor lifecycle, including the crash recovery loop.
type App struct {
	store *storage.Store
	exp   *export.Exporter
	brand sheet.Brand
	log   *slog.Logger
}

func NewApp(st *storage.Store, exp *export.Exporter, brand sheet.Brand) *App {
	return &App{store: st, exp: exp, brand: brand, log: applog.WithComponent("ui")}
}

// Run starts the editor on the persisted record. A panic inside the event
// loop autosaves the in-memory state and shows a recovery prompt offering a
// restart instead of taking the terminal down.
func (a *App) Run() error {
	rec := a.store.Load()
	for {
		_, err := a.runOnce(rec)
		if err == nil {
			return nil
		}
		var pe *panicError
		if !errors.As(err, &pe) {
			return err
		}
		if path, saveErr := a.store.AutosaveCrashSnapshot(pe.rec); saveErr == nil {
			a.log.Info("autosaved record after ui panic", "path", path)
		}
		if !a.askRetry(pe) {
			return fmt.Errorf("editor crashed: %v", pe.value)
		}
		rec = pe.rec
	}
}

type panicError struct {
	value any
	rec   domain.Recipe
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }

func (a *App) runOnce(rec domain.Recipe) (final domain.Recipe, err error) {
	m := NewModel(rec, a.store, a.exp, a.brand)
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("ui panic", "panic", r, "stack", string(debug.Stack()))
			err = &panicError{value: r, rec: rec}
		}
	}()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	out, err := p.Run()
	if err != nil {
		return rec, err
	}
	if fm, ok := out.(Model); ok {
		return fm.rec, nil
	}
	return rec, nil
}

// askRetry shows the recovery prompt after the terminal has been restored.
func (a *App) askRetry(pe *panicError) bool {
	fmt.Fprintf(os.Stderr, "El editor se ha cerrado por un error interno: %v\n", pe.value)
	retry := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("¿Reintentar? Los datos se han guardado.").
			Affirmative("Sí").
			Negative("No").
			Value(&retry),
	))
	if err := form.Run(); err != nil {
		return false
	}
	return retry
}
