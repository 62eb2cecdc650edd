/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"github.com/charmbracelet/huh"
)

// InteractiveConfirm blocks on a terminal yes/no prompt. It is the default
// ConfirmFunc; headless callers and tests inject their own.
func InteractiveConfirm(prompt string) bool {
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Sí").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false
	}
	return ok
}
