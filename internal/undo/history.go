/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"encoding/json"
	"sync"
	"time"
)

// snapshot is one reversible record state. Size is the marshaled byte count,
// used for the memory cap.
type snapshot struct {
	blob []byte
	ts   time.Time
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; the oldest entries are pruned when exceeded.
	MaxBytes int
	// MaxDepth limits the number of kept snapshots (0 means unlimited).
	MaxDepth int
	// MinInterval coalesces snapshots captured within the interval,
	// replacing the previous one instead of pushing a new entry.
	MinInterval time.Duration
}

// History is an in-memory undo/redo stack over a single record. Push the
// state before each edit; Undo and Redo exchange the current state against
// the stacks. It is safe for concurrent use.
type History struct {
	cfg Config
	mu  sync.Mutex

	undo []snapshot
	redo []snapshot

	totalBytes int
}

func NewHistory(cfg Config) *History {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 4 * 1024 * 1024 // 4 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &History{cfg: cfg}
}

// Push records the state before an edit. A push within MinInterval of the
// previous one replaces it, so rapid keystrokes coalesce into one step.
// Any push invalidates the redo stack.
func (h *History) Push(state any) error { return h.PushAt(state, time.Now()) }

// PushAt is Push with an explicit capture time.
func (h *History) PushAt(state any, ts time.Time) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	s := snapshot{blob: blob, ts: ts}
	if n := len(h.undo); n > 0 && ts.Sub(h.undo[n-1].ts) < h.cfg.MinInterval {
		h.totalBytes += len(blob) - len(h.undo[n-1].blob)
		h.undo[n-1] = s
	} else {
		h.undo = append(h.undo, s)
		h.totalBytes += len(blob)
	}
	h.redo = nil
	h.enforceCapsLocked()
	return nil
}

// Undo pops the last snapshot into out and pushes the current state onto
// the redo stack. It reports false when there is nothing to undo.
func (h *History) Undo(current, out any) (bool, error) {
	cur, err := json.Marshal(current)
	if err != nil {
		return false, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.undo)
	if n == 0 {
		return false, nil
	}
	s := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.totalBytes -= len(s.blob)
	h.redo = append(h.redo, snapshot{blob: cur, ts: time.Now()})
	return true, json.Unmarshal(s.blob, out)
}

// Redo pops the last undone state into out and pushes the current state
// back onto the undo stack.
func (h *History) Redo(current, out any) (bool, error) {
	cur, err := json.Marshal(current)
	if err != nil {
		return false, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.redo)
	if n == 0 {
		return false, nil
	}
	s := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, snapshot{blob: cur, ts: time.Now()})
	h.totalBytes += len(cur)
	h.enforceCapsLocked()
	return true, json.Unmarshal(s.blob, out)
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// Clear drops both stacks to free memory.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo = nil, nil
	h.totalBytes = 0
}

// Stats returns current sizes for diagnostics.
func (h *History) Stats() (totalBytes, depth int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalBytes, len(h.undo)
}

func (h *History) enforceCapsLocked() {
	if h.cfg.MaxDepth > 0 && len(h.undo) > h.cfg.MaxDepth {
		drop := len(h.undo) - h.cfg.MaxDepth
		for i := 0; i < drop; i++ {
			h.totalBytes -= len(h.undo[i].blob)
		}
		h.undo = append([]snapshot{}, h.undo[drop:]...)
	}
	for h.cfg.MaxBytes > 0 && h.totalBytes > h.cfg.MaxBytes && len(h.undo) > 1 {
		h.totalBytes -= len(h.undo[0].blob)
		h.undo = h.undo[1:]
	}
}
