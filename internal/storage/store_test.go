package storage

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/grantmatch/internal/listing"
	"github.com/spigell/grantmatch/internal/profile"
)

func TestStoreMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing", "store.json"), nil)

	if _, ok, err := s.GetItem(ProfileKey); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
	if err := s.RemoveItem(ProfileKey); err != nil {
		t.Fatalf("removing from a missing store should succeed: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("read-only calls must not create the store file")
	}
}

func TestStoreEmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	keys, err := New(path, nil).Keys()
	if err != nil || len(keys) != 0 {
		t.Fatalf("expected no keys, got %v %v", keys, err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	s := New(path, zap.New(core))

	if err := s.SetItem("b", "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetItem("a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened := New(path, nil)
	if v, ok, err := reopened.GetItem("a"); err != nil || !ok || v != "1" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}
	keys, _ := reopened.Keys()
	if !slices.Equal(keys, []string{"a", "b"}) {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := reopened.RemoveItem("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.GetItem("a"); ok {
		t.Fatalf("expected a to be removed")
	}

	entries := observed.FilterMessage("store saved").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 save entries, got %d", len(entries))
	}
	if entries[0].ContextMap()["path"] != path {
		t.Fatalf("expected path field on log entries")
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".store_*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := New(path, nil)
	if _, _, err := s.GetItem(ProfileKey); err == nil {
		t.Fatalf("expected decode error")
	}
	if err := s.SetItem("a", "1"); err == nil {
		t.Fatalf("expected writes to refuse a corrupt store")
	}
}

func TestProfileRecords(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"), nil)

	p, err := s.LoadProfile()
	if err != nil || p != profile.Default() {
		t.Fatalf("expected default profile, got %+v %v", p, err)
	}

	p.Province = "British Columbia"
	p.Trade = "Electrician"
	if err := s.SaveProfile(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.LoadProfile()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != p {
		t.Fatalf("expected %+v, got %+v", p, loaded)
	}

	if err := s.ResetProfile(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if loaded, _ := s.LoadProfile(); loaded != profile.Default() {
		t.Fatalf("expected default profile after reset")
	}
}

func TestLoadProfileHydratesPartialRecords(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"), nil)
	if err := s.SetItem(ProfileKey, `{"province":"BC","householdSize":4,"legacyField":"x"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	p, err := s.LoadProfile()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Province != "BC" || p.HouseholdSize != "4" || p.Trade != "" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestStateAndChecklistRecords(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"), nil)

	state, err := s.LoadState()
	if err != nil || len(state) != 0 {
		t.Fatalf("expected empty state, got %v %v", state, err)
	}
	state.ToggleSaved("project-iset")
	state.MarkApplied("youth-work-in-trades")
	if err := s.SaveState(state); err != nil {
		t.Fatalf("save state: %v", err)
	}

	loaded, err := s.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if loaded.Get("project-iset") != (listing.Flags{Saved: true}) || !loaded.Get("youth-work-in-trades").Applied {
		t.Fatalf("unexpected state %v", loaded)
	}

	if err := s.SaveChecklist("project-iset", []string{"eligibility-0", "document-1"}); err != nil {
		t.Fatalf("save checklist: %v", err)
	}
	keys, err := s.LoadChecklist("project-iset")
	if err != nil || !slices.Equal(keys, []string{"eligibility-0", "document-1"}) {
		t.Fatalf("unexpected checklist %v %v", keys, err)
	}

	if err := s.SaveChecklist("project-iset", nil); err != nil {
		t.Fatalf("clear checklist: %v", err)
	}
	if _, ok, _ := s.GetItem(ChecklistKey("project-iset")); ok {
		t.Fatalf("expected empty checklist to be removed")
	}
}
