/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"strings"
	"testing"

	"fichagen/internal/domain"
)

func TestCheckFieldValueRejectsOverlongNotes(t *testing.T) {
	long := strings.Repeat("a", domain.MaxNotesLen+1)
	if err := checkFieldValue("notas", domain.FieldNotes, long); err == nil {
		t.Fatalf("notes beyond %d chars must be rejected", domain.MaxNotesLen)
	}
	ok := strings.Repeat("a", domain.MaxNotesLen)
	if err := checkFieldValue("notas", domain.FieldNotes, ok); err != nil {
		t.Fatalf("notes at the bound must pass: %v", err)
	}
}

func TestCheckFieldValueCountsRunes(t *testing.T) {
	// Multi-byte text at the bound is still within the limit.
	v := strings.Repeat("ñ", domain.MaxTitleLen)
	if err := checkFieldValue("titulo", domain.FieldTitle, v); err != nil {
		t.Fatalf("rune-count bound: %v", err)
	}
	if err := checkFieldValue("titulo", domain.FieldTitle, v+"ñ"); err == nil {
		t.Fatalf("title beyond %d runes must be rejected", domain.MaxTitleLen)
	}
}

func TestCheckFieldValueUnlimitedFields(t *testing.T) {
	if err := checkFieldValue("raciones", domain.FieldServings, strings.Repeat("9", 5000)); err != nil {
		t.Fatalf("fields without a bound must pass: %v", err)
	}
}
