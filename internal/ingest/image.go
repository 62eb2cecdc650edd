/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ingest validates uploaded dish photos and converts them to a
// self-contained data URI for embedding in the sheet.
package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"

	// Register the allowed decoders for image.DecodeConfig.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	applog "fichagen/internal/log"
)

// MaxImageBytes is the upload ceiling (50 MiB).
const MaxImageBytes = 50 << 20

// allowedTypes is the fixed MIME allow-list. The type is sniffed from
// content, not taken from the file extension.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidationError carries a user-facing rejection reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	errUnsupportedType = &ValidationError{Reason: "Tipo de archivo no permitido. Use: JPG, PNG o WebP"}
	errTooLarge        = &ValidationError{Reason: "La imagen es demasiado grande. Máximo permitido: 50MB"}
)

// Validate checks size and sniffed media type against the allow-list.
// A nil error means the payload is acceptable.
func Validate(size int64, head []byte) error {
	if size > MaxImageBytes {
		return errTooLarge
	}
	if !allowedTypes[http.DetectContentType(head)] {
		return errUnsupportedType
	}
	return nil
}

// Ingest reads the image at path, validates it and returns a data URI
// embedding the original bytes. Reading the file is the one real blocking
// I/O of the application, hence the context.
func Ingest(ctx context.Context, path string) (string, error) {
	l := applog.WithComponent("ingest")

	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := Validate(fi.Size(), data); err != nil {
		l.Warn("image rejected", slog.String("path", path), slog.String("reason", err.Error()))
		return "", err
	}
	// A sniffable header can still hide a truncated payload; make sure the
	// image actually decodes before embedding it.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		l.Warn("image undecodable", slog.String("path", path), slog.Any("err", err))
		return "", errUnsupportedType
	}

	mime := http.DetectContentType(data)
	uri := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
	l.Debug("image ingested", slog.String("mime", mime), slog.Int("bytes", len(data)))
	return uri, nil
}
