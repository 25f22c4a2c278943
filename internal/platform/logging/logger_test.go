package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type category string

func (c category) String() string { return "category:" + string(c) }

func TestLogger_WritesKeyValueFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.InfoContext(context.Background(), "standings recomputed",
		"category", category("men"),
		"teams", 4,
		"error", errors.New("boom"),
		"dangling",
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if got := fields["category"]; got != "category:men" {
		t.Fatalf("unexpected category field: %v", got)
	}
	if got := fields["teams"]; got != int64(4) {
		t.Fatalf("unexpected teams field: %v (%T)", got, got)
	}
	if got := fields["error"]; got != "boom" {
		t.Fatalf("unexpected error field: %v", got)
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var logger *Logger
	logger.Info("hello")

	if logs.Len() != 1 {
		t.Fatalf("expected default logger to receive entry, got %d", logs.Len())
	}
}

func TestLogger_MirrorReceivesEnabledEntries(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("skipped")
	logger.InfoContext(context.Background(), "kept", "category", "men")

	if len(got) != 1 || got[0] != "info:kept" {
		t.Fatalf("unexpected mirrored entries: %v", got)
	}
}
