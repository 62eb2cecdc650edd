/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fichagen/internal/config"
)

func TestDisabledByDefault(t *testing.T) {
	c := New(config.Defaults().Telemetry)
	if c.Enabled() {
		t.Fatalf("telemetry must be disabled without opt-in")
	}
	// Must be a no-op, not a panic or a block.
	c.Record(ActionExportPDF, time.Second)
}

func TestOptInWithoutURLDropsEvents(t *testing.T) {
	c := New(config.TelemetryConfig{OptIn: true})
	if c.Enabled() {
		t.Fatalf("opt-in without an endpoint must stay disabled")
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	c.Record(ActionPrint, 0)
	c.UploadCrash([]byte("informe"))
	c.Flush(context.Background())
}

func TestRecordDelivery(t *testing.T) {
	var mu sync.Mutex
	var got []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var ev map[string]any
		if err := json.Unmarshal(body, &ev); err != nil {
			t.Errorf("bad event payload: %v", err)
		}
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
	}))
	defer srv.Close()

	c := New(config.TelemetryConfig{OptIn: true, EventsURL: srv.URL, TimeoutMS: 1000})
	c.Record(ActionExportPDF, 1200*time.Millisecond)
	c.Flush(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("event never delivered")
		}
		time.Sleep(10 * time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	if got[0]["action"] != string(ActionExportPDF) {
		t.Fatalf("event = %v", got[0])
	}
	if got[0]["duration_ms"] != float64(1200) {
		t.Fatalf("duration_ms = %v", got[0]["duration_ms"])
	}
	if got[0]["version"] == "" || got[0]["os"] == "" {
		t.Fatalf("event missing ambient fields: %v", got[0])
	}
}

func TestCrashUpload(t *testing.T) {
	done := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		done <- body
	}))
	defer srv.Close()

	c := New(config.TelemetryConfig{OptIn: true, CrashURL: srv.URL, TimeoutMS: 1000})
	c.UploadCrash([]byte("informe"))

	select {
	case body := <-done:
		if string(body) != "informe" {
			t.Fatalf("crash body = %q", body)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("crash report never uploaded")
	}
}

func TestCrashUploadDisabled(t *testing.T) {
	hit := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- struct{}{}
	}))
	defer srv.Close()

	c := New(config.TelemetryConfig{OptIn: false, CrashURL: srv.URL, TimeoutMS: 1000})
	c.UploadCrash([]byte("informe"))
	select {
	case <-hit:
		t.Fatalf("crash upload must not fire without opt-in")
	case <-time.After(200 * time.Millisecond):
	}
}
