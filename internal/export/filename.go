/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import "strings"

// sanitizeTitle returns the title used for filenames and print jobs: every
// rune outside ASCII letters and digits becomes an underscore. Only a truly
// empty title falls back to "Receta"; whitespace sanitizes like any other
// character.
func sanitizeTitle(title string) string {
	if title == "" {
		return "Receta"
	}
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Filename builds the export file name, e.g. "Ficha_Pa_lla_Deluxe_.pdf".
func Filename(title, ext string) string {
	return "Ficha_" + sanitizeTitle(title) + "." + ext
}
