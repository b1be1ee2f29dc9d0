package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  grant_id  ", Value: "  project-iset  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "grant_id" || fields[0].String != "project-iset" {
		t.Fatalf("unexpected grant field: %+v", fields[0])
	}

	empty := StringFields()
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Logging through the fallback must not panic.
	enriched.Info("another log")
}

func TestGrantFields(t *testing.T) {
	fields := GrantFields("  workbc-grant  ", "WorkBC")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldGrantID || fields[0].String != "workbc-grant" {
		t.Fatalf("unexpected id field: %+v", fields[0])
	}

	if fields[1].Key != FieldOrganization || fields[1].String != "WorkBC" {
		t.Fatalf("unexpected organization field: %+v", fields[1])
	}

	if empty := GrantFields("", ""); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithGrant(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithGrant(logger, "project-iset", "Northwest Indigenous Council").Info("saved")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldGrantID] != "project-iset" {
		t.Fatalf("expected grant id project-iset, got %q", ctx[FieldGrantID])
	}
	if ctx[FieldOrganization] != "Northwest Indigenous Council" {
		t.Fatalf("unexpected organization %q", ctx[FieldOrganization])
	}

	if WithGrant(nil, "a", "b") == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
}

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		json, debug bool
	}{
		{false, false},
		{true, true},
	} {
		log, err := New(tt.json, tt.debug)
		if err != nil {
			t.Fatalf("New(%v, %v): %v", tt.json, tt.debug, err)
		}
		if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Fatalf("debug enabled = %v, want %v", got, tt.debug)
		}
	}
}
