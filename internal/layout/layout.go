/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout holds the viewport mode detector and the preview zoom
// controller shared by the interactive UI.
package layout

// Mode is the active layout of the editing surface.
type Mode int

const (
	// Desktop places the form and the live preview side by side.
	Desktop Mode = iota
	// Mobile stacks the form full-width and moves the preview into a modal.
	Mobile
)

func (m Mode) String() string {
	if m == Mobile {
		return "mobile"
	}
	return "desktop"
}

// BreakpointPx is the classic width threshold below which the surface
// switches to the stacked mobile layout.
const BreakpointPx = 768

// DefaultColumns is assumed when the surface width is not yet known.
const DefaultColumns = 96

// Detector classifies a surface width against a breakpoint. The mode is
// known from construction on, there is no undecided state.
type Detector struct {
	breakpoint int
	width      int
}

// NewDetector returns a detector for the given breakpoint and initial width.
// A non-positive breakpoint falls back to BreakpointPx.
func NewDetector(breakpoint, width int) *Detector {
	if breakpoint <= 0 {
		breakpoint = BreakpointPx
	}
	return &Detector{breakpoint: breakpoint, width: width}
}

// Resize records a new surface width and reports whether the mode changed.
func (d *Detector) Resize(width int) bool {
	before := d.Mode()
	d.width = width
	return d.Mode() != before
}

// Width returns the last recorded surface width.
func (d *Detector) Width() int { return d.width }

// Mode returns the layout for the current width.
func (d *Detector) Mode() Mode {
	if d.width < d.breakpoint {
		return Mobile
	}
	return Desktop
}
