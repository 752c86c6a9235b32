// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newSlogTestLogger(buf *bytes.Buffer) *slog.Logger {
	zl := zerolog.New(buf).Level(zerolog.TraceLevel)
	return slog.New(NewSlogHandlerWithLogger(zl))
}

func TestSlogHandlerLevels(t *testing.T) {
	tests := []struct {
		name      string
		logFunc   func(l *slog.Logger)
		wantLevel string
	}{
		{"debug", func(l *slog.Logger) { l.Debug("msg") }, `"level":"debug"`},
		{"info", func(l *slog.Logger) { l.Info("msg") }, `"level":"info"`},
		{"warn", func(l *slog.Logger) { l.Warn("msg") }, `"level":"warn"`},
		{"error", func(l *slog.Logger) { l.Error("msg") }, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newSlogTestLogger(&buf)

			tt.logFunc(logger)

			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("expected %s in output: %s", tt.wantLevel, buf.String())
			}
		})
	}
}

func TestSlogHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newSlogTestLogger(&buf)

	logger.Info("attrs",
		slog.String("service", "http"),
		slog.Int("port", 8080),
		slog.Bool("ready", true),
	)

	output := buf.String()
	for _, want := range []string{`"service":"http"`, `"port":8080`, `"ready":true`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.TraceLevel)
	handler := NewSlogHandlerWithLogger(zl).WithAttrs([]slog.Attr{
		slog.String("supervisor", "affinitas"),
	})

	slog.New(handler).Info("supervised")

	if !strings.Contains(buf.String(), `"supervisor":"affinitas"`) {
		t.Errorf("expected pre-configured attr in output: %s", buf.String())
	}
}

func TestSlogHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.TraceLevel)
	handler := NewSlogHandlerWithLogger(zl).WithGroup("service")

	slog.New(handler).Info("grouped", slog.String("name", "gc"))

	if !strings.Contains(buf.String(), `"service.name":"gc"`) {
		t.Errorf("expected group-prefixed key in output: %s", buf.String())
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	zl := zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel)
	handler := NewSlogHandlerWithLogger(zl)

	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger := NewSlogLogger()
	logger.Info("bridged message")

	if !strings.Contains(buf.String(), "bridged message") {
		t.Errorf("expected bridged message in output: %s", buf.String())
	}
}
