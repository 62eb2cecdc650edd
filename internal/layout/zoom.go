/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

// Zoom bounds in percent.
const (
	ZoomMin     = 50
	ZoomMax     = 150
	ZoomStep    = 10
	ZoomInitial = 100
)

// Zoom is the preview magnification controller. All operations clamp to
// [ZoomMin, ZoomMax]; the zero value is ready to use at ZoomInitial.
type Zoom struct {
	level int
}

// Level returns the current magnification in percent.
func (z *Zoom) Level() int {
	if z.level == 0 {
		return ZoomInitial
	}
	return z.level
}

// Factor returns the magnification as a scale factor, 1.0 at 100%.
func (z *Zoom) Factor() float64 { return float64(z.Level()) / 100 }

// Increase steps the zoom up and reports whether the level changed.
func (z *Zoom) Increase() bool { return z.set(z.Level() + ZoomStep) }

// Decrease steps the zoom down and reports whether the level changed.
func (z *Zoom) Decrease() bool { return z.set(z.Level() - ZoomStep) }

// Reset restores the initial magnification.
func (z *Zoom) Reset() { z.level = ZoomInitial }

// Wheel applies one scroll event. The event only zooms while the modifier
// key is held; otherwise it is left to the surrounding scroll surface and
// Wheel reports false. Negative delta scrolls up, which zooms in; any other
// delta zooms out.
func (z *Zoom) Wheel(delta int, modifierHeld bool) bool {
	if !modifierHeld {
		return false
	}
	if delta < 0 {
		return z.Increase()
	}
	return z.Decrease()
}

func (z *Zoom) set(level int) bool {
	if level < ZoomMin {
		level = ZoomMin
	}
	if level > ZoomMax {
		level = ZoomMax
	}
	changed := level != z.Level()
	z.level = level
	return changed
}
