// Package store holds the in-memory user and catalog stores the
// recommendation engine reads from. The in-memory maps are authoritative;
// when a database handle is attached, writes are mirrored through GORM so a
// restart can rehydrate.
package store

import "github.com/tunegraph/backend/internal/models"

// UserReader is the read contract the engine consumes. A reader returned by
// Snapshot is immutable: all lookups observe one version of the user set.
type UserReader interface {
	FindByID(id string) (*models.User, bool)
	AllUserIDs() []string
}

// CatalogReader is the read contract over the music catalog.
type CatalogReader interface {
	FindByID(id string) (*models.Music, bool)
	AllMusicIDs() []string
	ReverseGenreIndex() map[string][]string
}
