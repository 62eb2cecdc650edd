/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"fichagen/internal/config"
	"fichagen/internal/crash"
	"fichagen/internal/domain"
	"fichagen/internal/export"
	"fichagen/internal/ingest"
	applog "fichagen/internal/log"
	"fichagen/internal/sheet"
	"fichagen/internal/storage"
	"fichagen/internal/telemetry"
	"fichagen/internal/ui"
	"fichagen/internal/version"
)

func usage() {
	fmt.Println("Ficha Técnica — generador de fichas de receta")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fichagen version|-v|--version              Show version")
	fmt.Println("  fichagen show                              Print the current sheet as text")
	fmt.Println("  fichagen set <campo> <valor>               Set a field (titulo, categoria, raciones, ...)")
	fmt.Println("  fichagen ing add | rm <n> | set <n> <txt>  Edit the ingredient list (1-based)")
	fmt.Println("  fichagen step add | rm <n> | set <n> <txt> Edit the procedure list (1-based)")
	fmt.Println("  fichagen allergen <id>                     Toggle an allergen (gluten, lacteos, ...)")
	fmt.Println("  fichagen image <ruta> | clear              Attach or remove the photo")
	fmt.Println("  fichagen export pdf|png                    Export the sheet")
	fmt.Println("  fichagen print                             Send the sheet to the printer")
	fmt.Println("  fichagen share                             Export and print the share message")
	fmt.Println("  fichagen reset                             Clear the form (asks for confirmation)")
	fmt.Println("  fichagen archive save|list|search <q>|load <id>")
	fmt.Println("  fichagen ui                                Launch the interactive editor")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	telemetry.Init(cfg.Telemetry)
	dataDir, err := config.DataDir()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	var confirm storage.ConfirmFunc
	if !cfg.General.ConfirmPrompts {
		confirm = func(string) bool { return true }
	}
	st, err := storage.NewStore(dataDir, confirm)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	rec := st.Load()
	defer func() { crash.Recover(st, rec) }()

	outDir := cfg.Export.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(dataDir, outDir)
	}
	brand := sheet.Brand{
		Name:     cfg.Brand.Name,
		Slogan:   cfg.Brand.Slogan,
		Address:  cfg.Brand.Address,
		LogoPath: cfg.Brand.LogoPath,
	}
	exp := export.New(export.Options{
		OutDir:      outDir,
		Scale:       cfg.Export.Scale,
		JPEGQuality: cfg.Export.JPEGQuality,
		Brand:       brand,
	})

	args := os.Args
	if len(args) < 2 {
		usage()
		return
	}

	ctx := context.Background()
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())

	case "show":
		fmt.Print(sheet.FormatText(sheet.Render(rec, brand)))

	case "set":
		if len(args) < 4 {
			fmt.Println("set requires <campo> and <valor>")
			os.Exit(2)
		}
		f, ok := domain.FieldByName(args[2])
		if !ok {
			fmt.Printf("Campo desconocido: %s\n", args[2])
			os.Exit(2)
		}
		value := strings.Join(args[3:], " ")
		if err := checkFieldValue(args[2], f, value); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		rec = domain.SetField(rec, f, value)
		st.Save(rec)
		fmt.Printf("%s actualizado\n", args[2])

	case "ing":
		rec = listCommand(st, rec, domain.ListIngredients, args[2:])

	case "step":
		rec = listCommand(st, rec, domain.ListSteps, args[2:])

	case "allergen":
		if len(args) < 3 {
			fmt.Println("allergen requires <id>")
			os.Exit(2)
		}
		if _, ok := domain.AllergenByID(args[2]); !ok {
			fmt.Printf("Alérgeno desconocido: %s\n", args[2])
			os.Exit(2)
		}
		rec = domain.ToggleAllergen(rec, args[2])
		st.Save(rec)
		state := "retirado"
		if rec.HasAllergen(args[2]) {
			state = "declarado"
		}
		fmt.Printf("%s %s\n", args[2], state)

	case "image":
		if len(args) < 3 {
			fmt.Println("image requires <ruta> or clear")
			os.Exit(2)
		}
		if args[2] == "clear" {
			rec.Image = ""
			st.Save(rec)
			fmt.Println("Imagen eliminada")
			break
		}
		uri, err := ingest.Ingest(ctx, args[2])
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		rec.Image = uri
		st.Save(rec)
		fmt.Println("Imagen añadida (no se persiste con el borrador)")

	case "export":
		format := "pdf"
		if len(args) > 2 {
			format = args[2]
		}
		var path string
		var err error
		action := telemetry.ActionExportPDF
		start := time.Now()
		switch format {
		case "pdf":
			path, err = exp.PDF(rec)
		case "png":
			path, err = exp.PNG(rec)
			action = telemetry.ActionExportPNG
		default:
			fmt.Printf("Formato desconocido: %s\n", format)
			os.Exit(2)
		}
		if err != nil {
			l.Error("export failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		telemetry.Record(action, time.Since(start))
		telemetry.Flush(ctx)
		fmt.Println("Exportado:", path)

	case "print":
		start := time.Now()
		if err := exp.Print(rec); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		telemetry.Record(telemetry.ActionPrint, time.Since(start))
		telemetry.Flush(ctx)
		fmt.Println("Enviado a impresión")

	case "share":
		start := time.Now()
		msg, path, err := exp.Share(rec)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		telemetry.Record(telemetry.ActionShare, time.Since(start))
		telemetry.Flush(ctx)
		fmt.Println(msg)
		fmt.Println("Archivo:", path)

	case "reset":
		fresh, ok := st.Reset()
		if !ok {
			fmt.Println("Cancelado")
			return
		}
		rec = fresh
		fmt.Println("Formulario restablecido")

	case "archive":
		archiveCommand(ctx, st, dataDir, rec, args[2:])

	case "ui":
		app := ui.NewApp(st, exp, brand)
		if err := app.Run(); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}

	default:
		usage()
		os.Exit(2)
	}
}

// checkFieldValue rejects free-text values beyond the field's length bound
// before they can reach a snapshot.
func checkFieldValue(name string, f domain.Field, value string) error {
	if lim := domain.FieldLimit(f); lim > 0 && utf8.RuneCountInString(value) > lim {
		return fmt.Errorf("Valor demasiado largo para %s (máximo %d caracteres)", name, lim)
	}
	return nil
}

func listCommand(st *storage.Store, rec domain.Recipe, l domain.List, args []string) domain.Recipe {
	name := "Paso"
	if l == domain.ListIngredients {
		name = "Ingrediente"
	}
	if len(args) < 1 {
		fmt.Println("expected add, rm <n> or set <n> <texto>")
		os.Exit(2)
	}
	switch args[0] {
	case "add":
		out, ok := domain.AddListItem(rec, l)
		if !ok {
			fmt.Println("Límite de la lista alcanzado")
			os.Exit(1)
		}
		rec = out
		st.Save(rec)
		fmt.Printf("%s %d añadido\n", name, l.Len(rec))

	case "rm":
		idx := parseIndex(args, 1)
		out := domain.RemoveListItem(rec, l, idx)
		if l.Len(out) == l.Len(rec) {
			fmt.Println("No se puede eliminar (índice fuera de rango o mínimo alcanzado)")
			os.Exit(1)
		}
		rec = out
		st.Save(rec)
		fmt.Printf("%s %d eliminado\n", name, idx+1)

	case "set":
		idx := parseIndex(args, 1)
		if idx < 0 || idx >= l.Len(rec) {
			fmt.Println("Índice fuera de rango")
			os.Exit(1)
		}
		text := strings.Join(args[2:], " ")
		if l == domain.ListIngredients {
			rec = domain.SetIngredient(rec, idx, domain.ParseIngredient(text))
		} else {
			rec = domain.SetStep(rec, idx, text)
		}
		st.Save(rec)
		fmt.Printf("%s %d actualizado\n", name, idx+1)

	default:
		fmt.Println("expected add, rm <n> or set <n> <texto>")
		os.Exit(2)
	}
	return rec
}

func parseIndex(args []string, pos int) int {
	if len(args) <= pos {
		fmt.Println("missing index")
		os.Exit(2)
	}
	n, err := strconv.Atoi(args[pos])
	if err != nil || n < 1 {
		fmt.Printf("Índice inválido: %s\n", args[pos])
		os.Exit(2)
	}
	return n - 1
}

func archiveCommand(ctx context.Context, st *storage.Store, dataDir string, rec domain.Recipe, args []string) {
	arch, err := storage.OpenArchive(dataDir)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer arch.Close()

	if len(args) < 1 {
		fmt.Println("expected save, list, search <q> or load <id>")
		os.Exit(2)
	}
	switch args[0] {
	case "save":
		id, err := arch.SaveFicha(ctx, rec)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Ficha guardada en el archivo con id %d\n", id)

	case "list":
		entries, err := arch.ListFichas(ctx, 50)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		printEntries(entries)

	case "search":
		if len(args) < 2 {
			fmt.Println("search requires <q>")
			os.Exit(2)
		}
		entries, err := arch.SearchFichas(ctx, strings.Join(args[1:], " "))
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		printEntries(entries)

	case "load":
		if len(args) < 2 {
			fmt.Println("load requires <id>")
			os.Exit(2)
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Printf("Id inválido: %s\n", args[1])
			os.Exit(2)
		}
		loaded, err := arch.LoadFicha(ctx, id)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		st.Save(loaded)
		fmt.Printf("Ficha %d cargada: %s\n", id, loaded.Title)

	default:
		fmt.Println("expected save, list, search <q> or load <id>")
		os.Exit(2)
	}
}

func printEntries(entries []storage.ArchiveEntry) {
	if len(entries) == 0 {
		fmt.Println("(archivo vacío)")
		return
	}
	for _, e := range entries {
		fmt.Printf("%4d  %-40s %-20s %s\n", e.ID, e.Title, e.Category, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
