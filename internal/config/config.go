/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the
// user scope. Environment variables are treated as read-only overrides at
// runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	// ConfirmPrompts gates destructive-action confirmations (recipe reset).
	ConfirmPrompts bool   `yaml:"confirm_prompts"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark"
}

// BrandConfig carries the fixed branding printed on every sheet header and
// footer. Defaults reproduce the Møkka house style.
type BrandConfig struct {
	Name    string `yaml:"name"`
	Slogan  string `yaml:"slogan"`
	Address string `yaml:"address"`
	// LogoPath points at a PNG with transparency; empty disables the logo.
	LogoPath string `yaml:"logo_path"`
}

type ExportConfig struct {
	// OutDir receives generated PDFs and PNGs. Relative paths resolve
	// against the user data dir.
	OutDir string `yaml:"out_dir"`
	// Scale is the raster pixel density multiplier (2 = 1588x2246 for A4).
	Scale int `yaml:"scale"`
	// JPEGQuality is the embedded page bitmap quality, 1-100.
	JPEGQuality int `yaml:"jpeg_quality"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// TelemetryConfig controls the opt-in usage metrics and crash uploads.
// Everything is off by default; without an endpoint nothing is ever sent.
type TelemetryConfig struct {
	OptIn     bool   `yaml:"opt_in"`
	EventsURL string `yaml:"events_url"`
	CrashURL  string `yaml:"crash_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
	Debug     bool   `yaml:"debug"`
}

type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	General       GeneralConfig   `yaml:"general"`
	Brand         BrandConfig     `yaml:"brand"`
	Export        ExportConfig    `yaml:"export"`
	Logging       LoggingConfig   `yaml:"logging"`
	Telemetry     TelemetryConfig `yaml:"telemetry"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{ConfirmPrompts: true, Theme: "system"},
		Brand: BrandConfig{
			Name:    "MØKKA",
			Slogan:  "real coffee · real food",
			Address: "Carrer Riu Volga, 7, 12005 Castelló de la Plana",
		},
		Export:    ExportConfig{OutDir: "exports", Scale: 2, JPEGQuality: 95},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
		Telemetry: TelemetryConfig{TimeoutMS: 1500},
	}
}

// Env var names used as overrides.
const (
	EnvOutDir         = "FICHA_EXPORT_DIR"
	EnvExportScale    = "FICHA_EXPORT_SCALE"
	EnvConfirmPrompts = "FICHA_CONFIRM_PROMPTS"
	EnvBrandLogo      = "FICHA_BRAND_LOGO"
	EnvLogLevel       = "FICHA_LOG_LEVEL"
	EnvLogFormat      = "FICHA_LOG_FORMAT"
	EnvLogSource      = "FICHA_LOG_SOURCE"
	EnvLogFile        = "FICHA_LOG_FILE"

	EnvTelemetryOptIn   = "FICHA_TELEMETRY_OPT_IN"
	EnvTelemetryURL     = "FICHA_TELEMETRY_URL"
	EnvCrashUploadURL   = "FICHA_CRASH_UPLOAD_URL"
	EnvTelemetryTimeout = "FICHA_TELEMETRY_TIMEOUT_MS"
	EnvTelemetryDebug   = "FICHA_TELEMETRY_DEBUG"
)

// DataDir returns the per-user directory holding the snapshot, archive and
// default export output.
func DataDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Fichagen")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Fichagen")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".local", "share", "fichagen")
	}
	if base == "" {
		return "", errors.New("cannot resolve data directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Fichagen")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Fichagen")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "fichagen")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. A missing or unreadable file is not an error.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, rerr := os.ReadFile(path); rerr == nil {
		var fileCfg AppConfig
		if uerr := yaml.Unmarshal(data, &fileCfg); uerr == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from the file so user preferences persist
	dst.General.ConfirmPrompts = src.General.ConfirmPrompts
	if strings.TrimSpace(src.General.Theme) != "" {
		dst.General.Theme = src.General.Theme
	}
	if strings.TrimSpace(src.Brand.Name) != "" {
		dst.Brand.Name = src.Brand.Name
	}
	if strings.TrimSpace(src.Brand.Slogan) != "" {
		dst.Brand.Slogan = src.Brand.Slogan
	}
	if strings.TrimSpace(src.Brand.Address) != "" {
		dst.Brand.Address = src.Brand.Address
	}
	if strings.TrimSpace(src.Brand.LogoPath) != "" {
		dst.Brand.LogoPath = strings.TrimSpace(src.Brand.LogoPath)
	}
	if strings.TrimSpace(src.Export.OutDir) != "" {
		dst.Export.OutDir = src.Export.OutDir
	}
	if src.Export.Scale > 0 {
		dst.Export.Scale = src.Export.Scale
	}
	if src.Export.JPEGQuality > 0 {
		dst.Export.JPEGQuality = src.Export.JPEGQuality
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	dst.Telemetry.OptIn = src.Telemetry.OptIn
	dst.Telemetry.Debug = src.Telemetry.Debug
	if strings.TrimSpace(src.Telemetry.EventsURL) != "" {
		dst.Telemetry.EventsURL = strings.TrimSpace(src.Telemetry.EventsURL)
	}
	if strings.TrimSpace(src.Telemetry.CrashURL) != "" {
		dst.Telemetry.CrashURL = strings.TrimSpace(src.Telemetry.CrashURL)
	}
	if src.Telemetry.TimeoutMS > 0 {
		dst.Telemetry.TimeoutMS = src.Telemetry.TimeoutMS
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOutDir)); v != "" {
		cfg.Export.OutDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportScale)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Export.Scale = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvConfirmPrompts)); v != "" {
		cfg.General.ConfirmPrompts = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvBrandLogo)); v != "" {
		cfg.Brand.LogoPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.Telemetry.OptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryURL)); v != "" {
		cfg.Telemetry.EventsURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCrashUploadURL)); v != "" {
		cfg.Telemetry.CrashURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryTimeout)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Telemetry.TimeoutMS = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryDebug)); v != "" {
		cfg.Telemetry.Debug = parseBool(v)
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
