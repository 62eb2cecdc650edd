package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandlerFormatsOneLine(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{level: slog.LevelDebug, w: &buf}
	l := slog.New(h).With(slog.String("component", "test"))

	l.Info("hello", slog.Int("n", 3), slog.Bool("ok", true))

	out := buf.String()
	if !strings.Contains(out, "INF hello") {
		t.Fatalf("missing level/message in output: %q", out)
	}
	for _, want := range []string{"component=test", "n=3", "ok=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single line, got %q", out)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{level: slog.LevelWarn, w: &buf}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error should be enabled at warn level")
	}
}

func TestConsoleHandlerGroupsPrefixKeys(t *testing.T) {
	var buf bytes.Buffer
	var h slog.Handler = &consoleHandler{level: slog.LevelDebug, w: &buf}
	h = h.WithGroup("export").WithAttrs([]slog.Attr{slog.String("kind", "pdf")})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "done", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(buf.String(), "export.kind=pdf") {
		t.Fatalf("grouped attr not prefixed: %q", buf.String())
	}
}

func TestFanoutDeliversToAllHandlers(t *testing.T) {
	var a, b bytes.Buffer
	f := &fanout{hs: []slog.Handler{
		&consoleHandler{level: slog.LevelDebug, w: &a},
		&consoleHandler{level: slog.LevelDebug, w: &b},
	}}
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "ping", 0)
	if err := f.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(a.String(), "ping") || !strings.Contains(b.String(), "ping") {
		t.Fatalf("fanout missed a handler: a=%q b=%q", a.String(), b.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
