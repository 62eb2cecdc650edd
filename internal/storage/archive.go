/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fichagen/internal/domain"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// ArchiveFileName is the embedded database holding saved fichas.
	ArchiveFileName = "archivo.sqlite"

	// archiveSchemaVersion tracks the local SQLite schema. Bump on
	// breaking changes and migrate in ensureArchiveSchema.
	archiveSchemaVersion = 1
)

// ArchiveEntry is one saved ficha summary row.
type ArchiveEntry struct {
	ID        int64
	Title     string
	Category  string
	CreatedAt time.Time
}

// Archive is the per-user history of explicitly saved fichas.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the archive database under dir, enables
// WAL mode and ensures the schema exists.
func OpenArchive(dir string) (*Archive, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data dir is required")
	}
	path := filepath.ToSlash(filepath.Join(dir, ArchiveFileName))
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Embedded usage: a single connection avoids writer contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureArchiveSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

// Close releases the underlying database.
func (a *Archive) Close() error { return a.db.Close() }

func ensureArchiveSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS fichas (
			id         INTEGER PRIMARY KEY,
			title      TEXT NOT NULL,
			category   TEXT NOT NULL,
			payload    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_fichas_title ON fichas(title);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure archive schema: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES('schema_version', ?)
		 ON CONFLICT(key) DO NOTHING`, fmt.Sprint(archiveSchemaVersion)); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// SaveFicha archives the record (minus image) and returns its row id.
func (a *Archive) SaveFicha(ctx context.Context, r domain.Recipe) (int64, error) {
	c := r.Clone()
	c.Image = ""
	payload, err := json.Marshal(c)
	if err != nil {
		return 0, fmt.Errorf("marshal ficha: %w", err)
	}
	res, err := a.db.ExecContext(ctx,
		`INSERT INTO fichas(title, category, payload, created_at) VALUES(?, ?, ?, ?)`,
		c.Title, c.Category, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert ficha: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ficha id: %w", err)
	}
	return id, nil
}

// ListFichas returns the most recent entries, newest first. limit <= 0 means
// no limit.
func (a *Archive) ListFichas(ctx context.Context, limit int) ([]ArchiveEntry, error) {
	q := `SELECT id, title, category, created_at FROM fichas ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return a.queryEntries(ctx, q, args...)
}

// SearchFichas matches the query against title and category,
// case-insensitively.
func (a *Archive) SearchFichas(ctx context.Context, query string) ([]ArchiveEntry, error) {
	pat := "%" + strings.TrimSpace(query) + "%"
	return a.queryEntries(ctx,
		`SELECT id, title, category, created_at FROM fichas
		 WHERE title LIKE ? COLLATE NOCASE OR category LIKE ? COLLATE NOCASE
		 ORDER BY id DESC`, pat, pat)
}

// LoadFicha restores an archived record through the same hydrate contract as
// the snapshot, so stale payloads merge onto current defaults.
func (a *Archive) LoadFicha(ctx context.Context, id int64) (domain.Recipe, error) {
	var payload string
	err := a.db.QueryRowContext(ctx, `SELECT payload FROM fichas WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Recipe{}, fmt.Errorf("ficha %d not found", id)
	}
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("load ficha: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return domain.Recipe{}, fmt.Errorf("parse ficha payload: %w", err)
	}
	return hydrate(domain.DefaultRecipe(), snap), nil
}

func (a *Archive) queryEntries(ctx context.Context, q string, args ...any) ([]ArchiveEntry, error) {
	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query fichas: %w", err)
	}
	defer rows.Close()
	var out []ArchiveEntry
	for rows.Next() {
		var e ArchiveEntry
		var created string
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
