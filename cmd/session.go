package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/grants"
	"github.com/spigell/grantmatch/internal/listing"
	"github.com/spigell/grantmatch/internal/logger"
	"github.com/spigell/grantmatch/internal/payload"
	"github.com/spigell/grantmatch/internal/profile"
	"github.com/spigell/grantmatch/internal/storage"
)

// session bundles what every command needs once flags and config are parsed.
type session struct {
	logger  *zap.Logger
	config  *Config
	store   *storage.Store
	catalog *grants.Catalog
}

func newSession() *session {
	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zl.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	catalog := grants.Default()
	if config.CatalogFile != "" {
		catalog, err = grants.LoadFile(config.CatalogFile)
		if err != nil {
			zl.Fatal("loading the catalog", zap.String(logger.FieldPath, config.CatalogFile), zap.Error(err))
		}
	}
	zl.Debug("catalog ready", zap.Int("grants", catalog.Len()))

	return &session{
		logger:  zl,
		config:  config,
		store:   storage.New(config.StoreFile, zl),
		catalog: catalog,
	}
}

// profile returns the profile commands evaluate against. A profile that cannot
// be read falls back to the default one.
func (s *session) profile() profile.Profile {
	if s.config.ProfileFile != "" {
		p, err := readProfileFile(s.config.ProfileFile)
		if err != nil {
			s.logger.Warn("reading the profile file, using the default profile",
				zap.String(logger.FieldPath, s.config.ProfileFile),
				zap.Error(err),
			)
			return profile.Default()
		}
		return p
	}

	p, err := s.store.LoadProfile()
	if err != nil {
		s.logger.Warn("loading the stored profile, using the default profile", zap.Error(err))
		return profile.Default()
	}
	return p
}

// storedProfile is the profile the profile subcommands edit. Unlike profile
// it never reads profile-file, and a stored record that cannot be read is fatal.
func (s *session) storedProfile() profile.Profile {
	s.warnShadowed()

	p, err := loadEditableProfile(s.store)
	if err != nil {
		s.logger.Fatal("loading the stored profile", zap.Error(err), zap.String(logger.FieldPath, s.store.Path()))
	}
	return p
}

func (s *session) warnShadowed() {
	if s.config.ProfileFile != "" {
		s.logger.Warn("profile-file is set, edits go to the store and are shadowed by it",
			zap.String(logger.FieldPath, s.config.ProfileFile),
		)
	}
}

// loadEditableProfile reads the profile an edit starts from. A record that
// cannot be read is an error so the edit never replaces it with defaults.
func loadEditableProfile(store *storage.Store) (profile.Profile, error) {
	p, err := store.LoadProfile()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("refusing to edit an unreadable stored profile: %w", err)
	}
	return p, nil
}

func (s *session) saveProfile(p profile.Profile) {
	if err := s.store.SaveProfile(p); err != nil {
		s.logger.Fatal("saving the profile", zap.Error(err))
	}
}

func (s *session) state() listing.State {
	state, err := s.store.LoadState()
	if err != nil {
		s.logger.Fatal("loading saved and applied grants", zap.Error(err))
	}
	return state
}

func (s *session) saveState(state listing.State) {
	if err := s.store.SaveState(state); err != nil {
		s.logger.Fatal("saving saved and applied grants", zap.Error(err))
	}
}

func (s *session) grant(id string) *grants.Grant {
	g, ok := s.catalog.GetByID(id)
	if !ok {
		s.logger.Fatal("grant not found", zap.String(logger.FieldGrantID, id))
	}
	return g
}

func readProfileFile(path string) (profile.Profile, error) {
	raw, err := payload.Load(payload.Source{Name: "profile", File: path})
	if err != nil {
		return profile.Default(), err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return profile.Default(), fmt.Errorf("decode profile file: %w", err)
	}

	return profile.FromMap(data)
}
