package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tunegraph/backend/internal/logger"
	"github.com/tunegraph/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogStore indexes musics by id and by genre. Musics are loaded at boot
// (or by the seeder) and immutable afterwards, so readers can share the
// reverse index without copying.
type CatalogStore struct {
	mu      sync.RWMutex
	musics  map[string]*models.Music
	reverse map[string][]string // genre -> sorted music ids, nil until built
	db      *gorm.DB
}

// NewCatalogStore creates an empty catalog.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{musics: make(map[string]*models.Music)}
}

// AttachDB enables write-through persistence.
func (s *CatalogStore) AttachDB(db *gorm.DB) {
	s.db = db
}

// Hydrate loads all persisted musics into the in-memory index.
func (s *CatalogStore) Hydrate() error {
	if s.db == nil {
		return nil
	}

	var musics []models.Music
	if err := s.db.Find(&musics).Error; err != nil {
		return fmt.Errorf("failed to load musics: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range musics {
		m := musics[i]
		s.musics[m.ID] = &m
	}
	s.reverse = nil

	logger.Log.Info("Catalog hydrated", zap.Int("musics", len(musics)))
	return nil
}

// Put adds or replaces a catalog entry. Every music must carry at least one
// genre.
func (s *CatalogStore) Put(music *models.Music) error {
	if music.ID == "" {
		return fmt.Errorf("music id must not be empty")
	}
	if len(music.Genres) == 0 {
		return fmt.Errorf("music %s has no genres", music.ID)
	}

	s.mu.Lock()
	s.musics[music.ID] = music
	s.reverse = nil
	s.mu.Unlock()

	if s.db != nil {
		err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(music).Error
		if err != nil {
			return fmt.Errorf("failed to persist music %s: %w", music.ID, err)
		}
	}
	return nil
}

// FindByID returns the music for the given id, or false if unknown.
func (s *CatalogStore) FindByID(id string) (*models.Music, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	music, ok := s.musics[id]
	return music, ok
}

// AllMusicIDs returns every catalog id in ascending order.
func (s *CatalogStore) AllMusicIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.musics))
	for id := range s.musics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every catalog entry in ascending id order.
func (s *CatalogStore) All() []*models.Music {
	ids := s.AllMusicIDs()

	s.mu.RLock()
	defer s.mu.RUnlock()
	musics := make([]*models.Music, 0, len(ids))
	for _, id := range ids {
		musics = append(musics, s.musics[id])
	}
	return musics
}

// Count returns the catalog size.
func (s *CatalogStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.musics)
}

// ReverseGenreIndex maps each genre to the ascending list of music ids tagged
// with it. Built once and reused until the catalog changes. Callers must not
// mutate the returned map.
func (s *CatalogStore) ReverseGenreIndex() map[string][]string {
	s.mu.RLock()
	if s.reverse != nil {
		defer s.mu.RUnlock()
		return s.reverse
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reverse == nil {
		reverse := make(map[string][]string)
		for id, music := range s.musics {
			for _, genre := range music.Genres {
				reverse[genre] = append(reverse[genre], id)
			}
		}
		for genre := range reverse {
			sort.Strings(reverse[genre])
		}
		s.reverse = reverse
	}
	return s.reverse
}

// Clear removes every catalog entry.
func (s *CatalogStore) Clear() error {
	s.mu.Lock()
	s.musics = make(map[string]*models.Music)
	s.reverse = nil
	s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Where("1 = 1").Delete(&models.Music{}).Error; err != nil {
			return fmt.Errorf("failed to clear persisted musics: %w", err)
		}
	}
	return nil
}
