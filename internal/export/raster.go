/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	_ "image/jpeg"
	_ "image/png"

	"fichagen/internal/sheet"
)

// Sheet palette.
var (
	colInk       = color.RGBA{26, 26, 26, 255}
	colMuted     = color.RGBA{110, 110, 110, 255}
	colAccent    = color.RGBA{140, 90, 40, 255}
	colRule      = color.RGBA{210, 205, 198, 255}
	colPanel     = color.RGBA{244, 241, 236, 255}
	colHighlight = color.RGBA{250, 238, 215, 255}
	colWhite     = color.RGBA{255, 255, 255, 255}
)

// rasterize paints the document onto a white A4 canvas at the given scale
// factor. Layout is fixed; overflowing text is truncated per line rather
// than reflowed, matching the printed sheet. logo may be nil.
func rasterize(doc sheet.Document, scale int, logo image.Image) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w := sheet.PageWidthPx * scale
	h := sheet.PageHeightPx * scale
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: colWhite}, image.Point{}, draw.Src)

	c := &canvas{img: img, scale: scale, margin: 40}
	c.header(doc)
	c.photoAndParams(doc)
	c.allergens(doc)
	c.columns(doc)
	c.notes(doc)
	c.footer(doc, logo)
	return img
}

// canvas tracks the vertical flow cursor in unscaled page units.
type canvas struct {
	img    *image.RGBA
	scale  int
	margin int
	y      int
}

func (c *canvas) width() int { return sheet.PageWidthPx }

func (c *canvas) header(doc sheet.Document) {
	c.y = c.margin
	c.text(c.margin, c.y, doc.Brand.Name, colInk, 2)
	c.text(c.margin, c.y+24, doc.Brand.Slogan, colMuted, 1)
	c.text(c.margin, c.y+52, strings.ToUpper(doc.Title), colInk, 2)
	c.text(c.margin, c.y+76, doc.Category, colAccent, 1)
	c.y += 96
	c.rule(c.y)
	c.y += 14
}

func (c *canvas) photoAndParams(doc sheet.Document) {
	photoW, photoH := 300, 200
	x0 := c.margin
	if doc.ImageURI != "" {
		if photo, err := decodeDataURI(doc.ImageURI); err == nil {
			c.image(photo, x0, c.y, photoW, photoH)
		} else {
			c.photoPlaceholder(x0, photoW, photoH)
		}
	} else {
		c.photoPlaceholder(x0, photoW, photoH)
	}

	// 2x3 grid to the right of the photo.
	gx := x0 + photoW + 24
	cellW := (c.width() - c.margin - gx - 12) / 2
	cellH := 60
	for i, p := range doc.Params {
		cx := gx + (i%2)*(cellW+12)
		cy := c.y + (i/2)*(cellH+8)
		bg := colPanel
		if p.Highlight {
			bg = colHighlight
		}
		c.fill(cx, cy, cellW, cellH, bg)
		c.text(cx+10, cy+10, p.Label, colMuted, 1)
		size := 1
		if p.Bold {
			size = 2
		}
		c.text(cx+10, cy+30, p.Value, colInk, size)
	}
	c.y += photoH + 18
}

func (c *canvas) photoPlaceholder(x, w, h int) {
	c.fill(x, c.y, w, h, colPanel)
	c.text(x+w/2-30, c.y+h/2-6, sheet.NoPhotoLabel, colMuted, 1)
}

func (c *canvas) allergens(doc sheet.Document) {
	c.text(c.margin, c.y, "ALÉRGENOS", colAccent, 1)
	c.y += 20
	if len(doc.Allergens) == 0 {
		c.text(c.margin, c.y, sheet.NoAllergensLabel, colMuted, 1)
		c.y += 22
	} else {
		x := c.margin
		for _, chip := range doc.Allergens {
			label := fmt.Sprintf("%d %s", chip.Number, chip.Label)
			chipW := 7*len(label) + 20
			c.fill(x, c.y-4, chipW, 22, colHighlight)
			c.text(x+10, c.y, label, colInk, 1)
			x += chipW + 8
			if x > c.width()-c.margin-120 {
				x = c.margin
				c.y += 28
			}
		}
		c.y += 30
	}
	c.text(c.margin, c.y, "CONSERVACIÓN: "+doc.Conservation, colInk, 1)
	c.y += 24
	c.rule(c.y)
	c.y += 14
}

func (c *canvas) columns(doc sheet.Document) {
	top := c.y
	colW := (c.width() - 2*c.margin - 24) / 2

	// Left: ingredients.
	y := top
	c.text(c.margin, y, "INGREDIENTES", colAccent, 1)
	y += 22
	if len(doc.Ingredients) == 0 {
		c.text(c.margin, y, sheet.NoIngredientsLabel, colMuted, 1)
		y += 18
	}
	for _, ing := range doc.Ingredients {
		if ing.Legacy {
			c.text(c.margin, y, ing.Name, colInk, 1)
		} else {
			c.text(c.margin, y, ing.Quantity, colAccent, 1)
			c.text(c.margin+90, y, ing.Name, colInk, 1)
		}
		y += 18
	}
	left := y

	// Right: numbered steps.
	x := c.margin + colW + 24
	y = top
	c.text(x, y, "ELABORACIÓN", colAccent, 1)
	y += 22
	if len(doc.Steps) == 0 {
		c.text(x, y, sheet.NoStepsLabel, colMuted, 1)
		y += 18
	}
	for _, st := range doc.Steps {
		c.text(x, y, fmt.Sprintf("%d.", st.Number), colAccent, 1)
		for i, line := range wrap(st.Text, colW/8) {
			c.text(x+22, y+i*16, line, colInk, 1)
		}
		y += 16*len(wrap(st.Text, colW/8)) + 8
	}
	if y < left {
		y = left
	}
	c.y = y + 10
}

func (c *canvas) notes(doc sheet.Document) {
	if strings.TrimSpace(doc.Notes) == "" {
		return
	}
	c.rule(c.y)
	c.y += 14
	c.text(c.margin, c.y, "NOTAS DEL CHEF", colAccent, 1)
	c.y += 20
	for _, line := range wrap(doc.Notes, (c.width()-2*c.margin)/8) {
		c.text(c.margin, c.y, line, colInk, 1)
		c.y += 16
	}
}

// footer paints the dark brand band. The logo arrives pre-whitened so it
// stays legible on the band.
func (c *canvas) footer(doc sheet.Document, logo image.Image) {
	bandH := 48
	y := sheet.PageHeightPx - bandH
	c.fill(0, y, c.width(), bandH, colInk)
	x := c.margin
	if logo != nil {
		c.image(logo, x, y+8, 32, 32)
		x += 44
	}
	c.text(x, y+18, doc.Brand.Name+" · "+doc.Address, colWhite, 1)
	c.text(c.width()-c.margin-110, y+18, doc.Caption, colHighlight, 1)
}

// text draws a string with the built-in bitmap face. size is an integer
// pixel multiplier; the coordinates are in unscaled page units.
func (c *canvas) text(x, y int, s string, col color.RGBA, size int) {
	mag := size * c.scale
	face := basicfont.Face7x13
	line := image.NewRGBA(image.Rect(0, 0, 7*len([]rune(s))+7, 16))
	d := font.Drawer{
		Dst:  line,
		Src:  &image.Uniform{C: col},
		Face: face,
		Dot:  fixed.P(0, 12),
	}
	d.DrawString(s)
	// Nearest-neighbour blow-up onto the destination.
	b := line.Bounds()
	ox, oy := x*c.scale, y*c.scale
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			src := line.RGBAAt(px, py)
			if src.A == 0 {
				continue
			}
			for dy := 0; dy < mag; dy++ {
				for dx := 0; dx < mag; dx++ {
					c.img.SetRGBA(ox+px*mag+dx, oy+py*mag+dy, src)
				}
			}
		}
	}
}

func (c *canvas) fill(x, y, w, h int, col color.RGBA) {
	s := c.scale
	r := image.Rect(x*s, y*s, (x+w)*s, (y+h)*s)
	draw.Draw(c.img, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *canvas) rule(y int) {
	c.fill(c.margin, y, c.width()-2*c.margin, 1, colRule)
}

// image scales src into the box with a nearest-neighbour fit.
func (c *canvas) image(src image.Image, x, y, w, h int) {
	s := c.scale
	dstW, dstH := w*s, h*s
	b := src.Bounds()
	for dy := 0; dy < dstH; dy++ {
		sy := b.Min.Y + dy*b.Dy()/dstH
		for dx := 0; dx < dstW; dx++ {
			sx := b.Min.X + dx*b.Dx()/dstW
			c.img.Set(x*s+dx, y*s+dy, src.At(sx, sy))
		}
	}
}

// decodeDataURI decodes a base64 data URI into an image.
func decodeDataURI(uri string) (image.Image, error) {
	i := strings.Index(uri, ";base64,")
	if !strings.HasPrefix(uri, "data:") || i < 0 {
		return nil, fmt.Errorf("not a base64 data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(uri[i+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode embedded image: %w", err)
	}
	return img, nil
}

// whitenLogo returns a copy of the logo with every opaque pixel forced to
// pure white, so a dark logo stays legible on the dark footer band.
// Transparent pixels are untouched.
func whitenLogo(src image.Image) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			out.SetRGBA(x, y, color.RGBA{255, 255, 255, uint8(a >> 8)})
		}
	}
	return out
}

// wrap splits s into lines of at most width runes, breaking on spaces when
// possible.
func wrap(s string, width int) []string {
	if width < 8 {
		width = 8
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len([]rune(cur))+1+len([]rune(w)) <= width {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}
