/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage owns the persisted recipe snapshot and the ficha archive.
// The snapshot is one namespaced JSON file in the user data dir holding the
// current recipe minus its image; restore overlays it onto defaults so new
// fields survive stale data.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fichagen/internal/domain"
	applog "fichagen/internal/log"
)

// SnapshotFileName is the namespaced key the current recipe persists under.
const SnapshotFileName = "mokka_receta_actual.json"

// ConfirmFunc answers a destructive-action prompt. Returning false aborts
// the action. Test doubles substitute a non-interactive function here.
type ConfirmFunc func(prompt string) bool

const resetPrompt = "¿Borrar formulario? Se perderán los datos actuales."

// Store persists the single recipe record. Mutation happens elsewhere; the
// store only loads, saves and resets whole snapshots.
type Store struct {
	dir     string
	path    string
	confirm ConfirmFunc
	log     *slog.Logger
}

// NewStore creates a store rooted at dir. A nil confirm installs the
// interactive blocking prompt.
func NewStore(dir string, confirm ConfirmFunc) (*Store, error) {
	if dir == "" {
		return nil, errors.New("data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if confirm == nil {
		confirm = InteractiveConfirm
	}
	return &Store{
		dir:     dir,
		path:    filepath.Join(dir, SnapshotFileName),
		confirm: confirm,
		log:     applog.WithComponent("storage"),
	}, nil
}

// SnapshotPath returns the snapshot file location.
func (s *Store) SnapshotPath() string { return s.path }

// Load reconstructs the record from the persisted snapshot overlaid onto
// defaults. Corrupted or missing data falls back to defaults and is logged;
// Load never fails to the caller. The restored image is always unset.
func (s *Store) Load() domain.Recipe {
	def := domain.DefaultRecipe()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("snapshot unreadable, using defaults", slog.Any("err", err))
		}
		return def
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("snapshot corrupted, using defaults", slog.Any("err", err))
		return def
	}
	return hydrate(def, snap)
}

// Save persists the record minus its image. Failures are logged and absorbed
// so a full disk or read-only home never interrupts the session.
func (s *Store) Save(r domain.Recipe) {
	c := r.Clone()
	c.Image = ""
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		s.log.Error("marshal snapshot failed", slog.Any("err", err))
		return
	}
	data = append(data, '\n')
	if err := writeFileSync(s.path, data); err != nil {
		s.log.Error("write snapshot failed", slog.Any("err", err), slog.String("path", s.path))
	}
}

// Reset asks for confirmation and, on yes, restores defaults and erases the
// snapshot. The returned bool reports whether the reset happened.
func (s *Store) Reset() (domain.Recipe, bool) {
	if !s.confirm(resetPrompt) {
		return domain.Recipe{}, false
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("remove snapshot failed", slog.Any("err", err))
	}
	return domain.DefaultRecipe(), true
}

// AutosaveCrashSnapshot writes the record to a timestamped file next to the
// snapshot so a panic never loses the session. Used by the crash boundary.
func (s *Store) AutosaveCrashSnapshot(r domain.Recipe) (string, error) {
	c := r.Clone()
	c.Image = ""
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal crash snapshot: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(s.dir, fmt.Sprintf("crash-%s.json", stamp))
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash snapshot: %w", err)
	}
	return path, nil
}

// writeFileSync writes to a temp file in the target directory, fsyncs, then
// renames over the destination.
func writeFileSync(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	// Windows cannot rename over an existing file.
	if _, serr := os.Stat(path); serr == nil {
		_ = os.Remove(path)
	}
	return os.Rename(tmpName, path)
}
