/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package telemetry reports which sheet-delivery actions run and how long
// they take, plus optional crash uploads. Strictly opt-in via the telemetry
// section of the app config; recipe content is never attached.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"fichagen/internal/config"
	applog "fichagen/internal/log"
	"fichagen/internal/version"
)

// Action identifies a counted delivery action. These are the only event
// names the client ever sends.
type Action string

const (
	ActionExportPDF Action = "export_pdf"
	ActionExportPNG Action = "export_png"
	ActionPrint     Action = "print"
	ActionShare     Action = "share"
)

// event is the wire payload for one recorded action.
type event struct {
	Action     Action `json:"action"`
	Timestamp  string `json:"ts"`
	Version    string `json:"version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	DurationMS int64  `json:"duration_ms"`
}

// Client sends events in the background and never blocks or fails the
// caller; a send error just drops the event.
type Client struct {
	cfg config.TelemetryConfig
	log *slog.Logger
	cli *http.Client
	wg  sync.WaitGroup
}

// New constructs a client from the telemetry section of the app config.
func New(cfg config.TelemetryConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	return &Client{
		cfg: cfg,
		log: applog.WithComponent("telemetry"),
		cli: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether actions will actually be sent: opt-in plus a
// configured events endpoint.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Record posts one delivery action with its elapsed time. Safe on a nil
// client.
func (c *Client) Record(a Action, elapsed time.Duration) {
	if !c.Enabled() || a == "" {
		return
	}
	ev := event{
		Action:     a,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Version:    version.String(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		DurationMS: elapsed.Milliseconds(),
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.post(c.cfg.EventsURL, "application/json", mustJSON(ev))
	}()
}

// Flush waits for in-flight sends, bounded by ctx and a short deadline.
func (c *Client) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	case <-time.After(500 * time.Millisecond):
	}
}

// UploadCrash posts an already-serialized crash report if opt-in and a crash
// endpoint is configured. The report is plain text without recipe data.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	body := append([]byte(nil), report...)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", body)
	}()
}

func (c *Client) post(url, contentType string, body []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.cli.Do(req)
	if err != nil {
		if c.cfg.Debug {
			c.log.Debug("telemetry send failed", slog.Any("err", err))
		}
		return
	}
	_ = resp.Body.Close()
	if c.cfg.Debug {
		c.log.Debug("telemetry sent", slog.String("url", url))
	}
}

func mustJSON(v any) []byte {
	buf, _ := json.Marshal(v)
	return buf
}

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// Init installs the package-level default client. Called once from main
// after the app config is loaded; before that every package-level call is
// a no-op.
func Init(cfg config.TelemetryConfig) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = New(cfg)
}

func def() *Client {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultClient
}

// Record posts an action through the default client.
func Record(a Action, elapsed time.Duration) { def().Record(a, elapsed) }

// UploadCrash posts a crash report through the default client.
func UploadCrash(report []byte) { def().UploadCrash(report) }

// Flush drains the default client.
func Flush(ctx context.Context) { def().Flush(ctx) }
