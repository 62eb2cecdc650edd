/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export turns a recipe into the printable technical sheet: it
// rasterizes the rendered document to an A4 bitmap, wraps the bitmap in a
// single-page PDF and delivers the result to disk, the printer spooler or a
// share message.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf"

	"fichagen/internal/domain"
	ilog "fichagen/internal/log"
	"fichagen/internal/sheet"
)

// A4 page size in millimetres, portrait.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

// Options controls the export pipeline. Zero values fall back to the
// print-quality defaults.
type Options struct {
	OutDir      string      // destination for Download; default "exports"
	Scale       int         // raster supersampling factor; default 2
	JPEGQuality int         // page bitmap quality; default 95
	Brand       sheet.Brand // header/footer branding
}

// Exporter runs the export pipeline. Exports are serialized: a second
// request blocks until the running one finishes rather than racing it.
type Exporter struct {
	mu   sync.Mutex
	opts Options
	log  *slog.Logger
}

// New returns an exporter with defaults applied.
func New(opts Options) *Exporter {
	if opts.OutDir == "" {
		opts.OutDir = "exports"
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 95
	}
	return &Exporter{opts: opts, log: ilog.WithComponent("export")}
}

// PDF renders the recipe and writes the technical sheet PDF into OutDir.
// It returns the written path.
func (e *Exporter) PDF(r domain.Recipe) (path string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.recoverStage("pdf", &err)

	data, err := e.assemble(r)
	if err != nil {
		return "", err
	}
	return e.write(Filename(r.Title, "pdf"), data)
}

// PNG renders the recipe and writes the raw page bitmap into OutDir.
func (e *Exporter) PNG(r domain.Recipe) (path string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.recoverStage("png", &err)

	img := e.raster(r)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return e.write(Filename(r.Title, "png"), buf.Bytes())
}

// Print assembles the PDF into a temporary file and hands it to the system
// print spooler under the sanitized sheet title.
func (e *Exporter) Print(r domain.Recipe) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.recoverStage("print", &err)

	data, err := e.assemble(r)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp("", "ficha-print-*.pdf")
	if err != nil {
		return fmt.Errorf("create spool file: %w", err)
	}
	// The spool file is torn down whether the spooler accepted it or not.
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write spool file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close spool file: %w", err)
	}
	return spool(tmp.Name(), sanitizeTitle(r.Title))
}

// ShareMessage is the text a share action carries alongside the sheet.
func ShareMessage(title string) string {
	if strings.TrimSpace(title) == "" {
		title = "Receta"
	}
	return "Ficha Técnica: " + title
}

// Share exports the sheet and returns the share message with the written
// path. There is no OS share sheet to hand off to, so sharing always falls
// back to the download path.
func (e *Exporter) Share(r domain.Recipe) (msg, path string, err error) {
	path, err = e.PDF(r)
	if err != nil {
		return "", "", err
	}
	return ShareMessage(r.Title), path, nil
}

// raster runs the prepare and rasterize stages: brand logo whitening, then
// the document paint. A broken logo is logged and skipped, never fatal.
func (e *Exporter) raster(r domain.Recipe) *image.RGBA {
	var logo image.Image
	brand := e.opts.Brand
	if brand.LogoPath != "" {
		l, err := e.loadLogo(brand.LogoPath)
		if err != nil {
			e.log.Warn("logo unusable, exporting without it", "path", brand.LogoPath, "error", err)
		} else {
			logo = l
		}
	}
	doc := sheet.Render(r, brand)
	return rasterize(doc, e.opts.Scale, logo)
}

func (e *Exporter) loadLogo(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return whitenLogo(img), nil
}

// encodeStart marks the raster-to-encode stage boundary; it is swapped in
// tests to fault a running pipeline.
var encodeStart = func() {}

// assemble runs rasterize, encode and PDF assembly, returning the PDF bytes.
func (e *Exporter) assemble(r domain.Recipe) ([]byte, error) {
	img := e.raster(r)
	encodeStart()

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, img, &jpeg.Options{Quality: e.opts.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode page bitmap: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(sanitizeTitle(r.Title), true)
	pdf.SetAuthor(e.opts.Brand.Name, true)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(jpg.Bytes()))
	pdf.ImageOptions("page", 0, 0, pageWidthMM, pageHeightMM, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("assemble pdf: %w", err)
	}
	return out.Bytes(), nil
}

// write places the finished artifact in OutDir with a durable rename.
func (e *Exporter) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(e.opts.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure out dir: %w", err)
	}
	path := filepath.Join(e.opts.OutDir, name)
	tmp, err := os.CreateTemp(e.opts.OutDir, ".ficha-*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("place artifact: %w", err)
	}
	cleanup = false
	e.log.Info("export written", "path", path, "bytes", len(data))
	return path, nil
}

// recoverStage converts a panic anywhere in a pipeline stage into an error,
// so an export failure never takes the application down.
func (e *Exporter) recoverStage(stage string, err *error) {
	if rec := recover(); rec != nil {
		e.log.Error("export panicked", "stage", stage, "panic", rec)
		*err = fmt.Errorf("export %s: %v", stage, rec)
	}
}
