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
	"testing"
	"time"

	"fichagen/internal/domain"
)

func pushTitled(t *testing.T, h *History, title string, ts time.Time) {
	t.Helper()
	r := domain.DefaultRecipe()
	r.Title = title
	if err := h.PushAt(r, ts); err != nil {
		t.Fatalf("push: %v", err)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(Config{MinInterval: time.Millisecond})
	base := time.Now()
	pushTitled(t, h, "v1", base)
	pushTitled(t, h, "v2", base.Add(time.Second))

	cur := domain.DefaultRecipe()
	cur.Title = "v3"

	var got domain.Recipe
	ok, err := h.Undo(cur, &got)
	if err != nil || !ok {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if got.Title != "v2" {
		t.Fatalf("undo returned %q, want v2", got.Title)
	}
	if !h.CanRedo() {
		t.Fatalf("redo should be available after undo")
	}

	var back domain.Recipe
	ok, err = h.Redo(got, &back)
	if err != nil || !ok {
		t.Fatalf("redo: ok=%v err=%v", ok, err)
	}
	if back.Title != "v3" {
		t.Fatalf("redo returned %q, want v3", back.Title)
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory(Config{})
	var out domain.Recipe
	ok, err := h.Undo(domain.DefaultRecipe(), &out)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if ok {
		t.Fatalf("undo on an empty history should report false")
	}
}

func TestCoalescing(t *testing.T) {
	h := NewHistory(Config{MinInterval: 250 * time.Millisecond})
	base := time.Now()
	pushTitled(t, h, "a", base)
	pushTitled(t, h, "ab", base.Add(50*time.Millisecond))
	pushTitled(t, h, "abc", base.Add(100*time.Millisecond))
	if _, depth := h.Stats(); depth != 1 {
		t.Fatalf("rapid pushes should coalesce, depth = %d", depth)
	}
	pushTitled(t, h, "abcd", base.Add(time.Second))
	if _, depth := h.Stats(); depth != 2 {
		t.Fatalf("push after the interval should stack, depth = %d", depth)
	}
}

func TestPushInvalidatesRedo(t *testing.T) {
	h := NewHistory(Config{MinInterval: time.Millisecond})
	base := time.Now()
	pushTitled(t, h, "v1", base)

	var out domain.Recipe
	if ok, _ := h.Undo(domain.DefaultRecipe(), &out); !ok {
		t.Fatalf("undo failed")
	}
	pushTitled(t, h, "v2", base.Add(time.Second))
	if h.CanRedo() {
		t.Fatalf("a new push must clear the redo stack")
	}
}

func TestDepthCap(t *testing.T) {
	h := NewHistory(Config{MaxDepth: 3, MinInterval: time.Millisecond})
	base := time.Now()
	for i := 0; i < 10; i++ {
		pushTitled(t, h, "v", base.Add(time.Duration(i)*time.Second))
	}
	if _, depth := h.Stats(); depth != 3 {
		t.Fatalf("depth = %d, want 3", depth)
	}
}

func TestByteCapPrunesOldest(t *testing.T) {
	h := NewHistory(Config{MaxBytes: 600, MinInterval: time.Millisecond})
	base := time.Now()
	for i := 0; i < 20; i++ {
		pushTitled(t, h, "registro bastante largo para ocupar bytes", base.Add(time.Duration(i)*time.Second))
	}
	bytes, depth := h.Stats()
	if depth >= 20 {
		t.Fatalf("byte cap did not prune, depth = %d", depth)
	}
	if depth < 1 {
		t.Fatalf("pruning must keep at least one snapshot")
	}
	if bytes > 600+400 {
		t.Fatalf("accounting way over cap: %d bytes", bytes)
	}
}

func TestClear(t *testing.T) {
	h := NewHistory(Config{MinInterval: time.Millisecond})
	pushTitled(t, h, "v1", time.Now())
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("clear left stacks behind")
	}
	if bytes, depth := h.Stats(); bytes != 0 || depth != 0 {
		t.Fatalf("clear left accounting: %d bytes, depth %d", bytes, depth)
	}
}
