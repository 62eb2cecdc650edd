/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import "testing"

func TestDetectorModes(t *testing.T) {
	d := NewDetector(BreakpointPx, 1024)
	if d.Mode() != Desktop {
		t.Fatalf("1024 wide should be desktop, got %v", d.Mode())
	}
	if changed := d.Resize(640); !changed {
		t.Fatalf("crossing the breakpoint should report a change")
	}
	if d.Mode() != Mobile {
		t.Fatalf("640 wide should be mobile, got %v", d.Mode())
	}
	if changed := d.Resize(700); changed {
		t.Fatalf("resize within mobile should not report a change")
	}
	// Exactly at the breakpoint counts as desktop.
	d.Resize(BreakpointPx)
	if d.Mode() != Desktop {
		t.Fatalf("width == breakpoint should be desktop")
	}
}

func TestDetectorDefaultBreakpoint(t *testing.T) {
	d := NewDetector(0, DefaultColumns)
	if d.Mode() != Mobile {
		t.Fatalf("96 columns against the 768px default should be mobile")
	}
}

func TestZoomSteps(t *testing.T) {
	var z Zoom
	if z.Level() != ZoomInitial {
		t.Fatalf("zero value level = %d, want %d", z.Level(), ZoomInitial)
	}
	if !z.Increase() || z.Level() != 110 {
		t.Fatalf("after increase level = %d", z.Level())
	}
	z.Reset()
	if !z.Decrease() || z.Level() != 90 {
		t.Fatalf("after decrease level = %d", z.Level())
	}
	if z.Factor() != 0.9 {
		t.Fatalf("factor = %v", z.Factor())
	}
}

func TestZoomSaturation(t *testing.T) {
	var z Zoom
	for i := 0; i < 20; i++ {
		z.Increase()
	}
	if z.Level() != ZoomMax {
		t.Fatalf("level = %d, want max %d", z.Level(), ZoomMax)
	}
	if z.Increase() {
		t.Fatalf("increase at max should report no change")
	}
	for i := 0; i < 20; i++ {
		z.Decrease()
	}
	if z.Level() != ZoomMin {
		t.Fatalf("level = %d, want min %d", z.Level(), ZoomMin)
	}
	if z.Decrease() {
		t.Fatalf("decrease at min should report no change")
	}
}

func TestZoomWheel(t *testing.T) {
	var z Zoom
	if z.Wheel(-1, false) {
		t.Fatalf("wheel without modifier must not zoom")
	}
	if z.Level() != ZoomInitial {
		t.Fatalf("level changed without modifier")
	}
	if !z.Wheel(-1, true) || z.Level() != 110 {
		t.Fatalf("wheel up with modifier: level = %d", z.Level())
	}
	if !z.Wheel(1, true) || z.Level() != 100 {
		t.Fatalf("wheel down with modifier: level = %d", z.Level())
	}
	if !z.Wheel(0, true) || z.Level() != 90 {
		t.Fatalf("zero delta zooms out: level = %d", z.Level())
	}
}
