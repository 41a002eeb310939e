// Package seed loads the music catalog from its JSON file and can generate
// synthetic users, follows and listens for recommendation testing.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/tunegraph/backend/internal/logger"
	"github.com/tunegraph/backend/internal/models"
	"github.com/tunegraph/backend/internal/store"
	"github.com/tunegraph/backend/internal/validation"
	"go.uber.org/zap"
)

// LoadCatalogFile reads a musics JSON file of the form
// {"m1": ["jazz", "old school"], "m2": ["samba", "60s"]} into the catalog.
func LoadCatalogFile(catalog *store.CatalogStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read musics file: %w", err)
	}

	var entries map[string][]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("failed to parse musics file %s: %w", path, err)
	}

	loaded := 0
	for musicID, genres := range entries {
		if !validation.ValidID(musicID) {
			return loaded, fmt.Errorf("invalid music id %q in %s", musicID, path)
		}
		for _, genre := range genres {
			if !validation.ValidGenre(genre) {
				return loaded, fmt.Errorf("invalid genre %q for music %s", genre, musicID)
			}
		}
		if err := catalog.Put(&models.Music{ID: musicID, Genres: genres}); err != nil {
			return loaded, err
		}
		loaded++
	}

	logger.Log.Info("Catalog loaded",
		zap.String("path", path),
		zap.Int("musics", loaded),
	)
	return loaded, nil
}

// Seeder generates synthetic social data against the stores.
type Seeder struct {
	users   *store.UserStore
	catalog *store.CatalogStore
}

// NewSeeder creates a seeder. Seeds the generator so repeated runs differ.
func NewSeeder(users *store.UserStore, catalog *store.CatalogStore) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{users: users, catalog: catalog}
}

// SeedDev populates the stores with synthetic users, follow edges and listen
// events. The catalog must already be loaded.
func (s *Seeder) SeedDev(userCount, followsPerUser, listensPerUser int) error {
	musicIDs := s.catalog.AllMusicIDs()
	if len(musicIDs) == 0 {
		return fmt.Errorf("catalog is empty, load musics before seeding")
	}

	userIDs := make([]string, 0, userCount)
	for i := 0; i < userCount; i++ {
		userIDs = append(userIDs, fmt.Sprintf("%s%d", gofakeit.Username(), i))
	}

	logger.Log.Info("Seeding follows...")
	for _, from := range userIDs {
		for i := 0; i < followsPerUser; i++ {
			to := userIDs[gofakeit.Number(0, len(userIDs)-1)]
			if to == from {
				continue
			}
			if err := s.users.Follow(from, to); err != nil {
				return fmt.Errorf("failed to seed follow: %w", err)
			}
		}
	}

	logger.Log.Info("Seeding listens...")
	for _, userID := range userIDs {
		for i := 0; i < listensPerUser; i++ {
			musicID := musicIDs[gofakeit.Number(0, len(musicIDs)-1)]
			if err := s.users.Listen(userID, musicID); err != nil {
				return fmt.Errorf("failed to seed listen: %w", err)
			}
		}
	}

	logger.Log.Info("Seeding complete",
		zap.Int("users", s.users.Count()),
		zap.Int("musics", len(musicIDs)),
	)
	return nil
}
