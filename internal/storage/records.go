package storage

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/listing"
	"github.com/spigell/grantmatch/internal/profile"
)

const (
	// ProfileKey holds the profile JSON object.
	ProfileKey = "@profile_data"
	// GrantStateKey holds the saved/applied flags by grant id.
	GrantStateKey = "@grant_state"

	checklistKeyPrefix = "@apply_checklist/"
)

// ChecklistKey is where the ticked apply boxes for a grant are kept.
func ChecklistKey(grantID string) string {
	return checklistKeyPrefix + grantID
}

// LoadProfile returns the stored profile hydrated over the defaults. Nothing
// stored yields the default profile.
func (s *Store) LoadProfile() (profile.Profile, error) {
	raw, ok, err := s.GetItem(ProfileKey)
	if err != nil || !ok || raw == "" {
		return profile.Default(), err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return profile.Default(), fmt.Errorf("decode stored profile: %w", err)
	}

	return profile.FromMap(data)
}

// SaveProfile persists p in full.
func (s *Store) SaveProfile(p profile.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.SetItem(ProfileKey, string(raw)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	s.logger.Debug("profile saved", zap.Float64("completion", p.Completion()))
	return nil
}

// ResetProfile forgets the stored profile.
func (s *Store) ResetProfile() error {
	if err := s.RemoveItem(ProfileKey); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}

// LoadState returns the saved/applied flags. Nothing stored yields an empty,
// writable state.
func (s *Store) LoadState() (listing.State, error) {
	state := listing.State{}
	if err := s.loadJSON(GrantStateKey, &state); err != nil {
		return listing.State{}, err
	}
	if state == nil {
		state = listing.State{}
	}
	return state, nil
}

// SaveState persists the saved/applied flags.
func (s *Store) SaveState(state listing.State) error {
	return s.saveJSON(GrantStateKey, state)
}

// LoadChecklist returns the ticked apply box keys for a grant.
func (s *Store) LoadChecklist(grantID string) ([]string, error) {
	var keys []string
	if err := s.loadJSON(ChecklistKey(grantID), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// SaveChecklist persists the ticked apply box keys for a grant. An empty list
// removes the entry.
func (s *Store) SaveChecklist(grantID string, keys []string) error {
	if len(keys) == 0 {
		return s.RemoveItem(ChecklistKey(grantID))
	}
	return s.saveJSON(ChecklistKey(grantID), keys)
}

func (s *Store) loadJSON(key string, out any) error {
	raw, ok, err := s.GetItem(key)
	if err != nil || !ok || raw == "" {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.SetItem(key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
