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

// UserStore indexes users by id. Follow and listen create users lazily; the
// engine never sees a user id that is not in the index.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
	db    *gorm.DB // optional write-through mirror
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

// AttachDB enables write-through persistence and is only called during boot,
// before the store serves traffic.
func (s *UserStore) AttachDB(db *gorm.DB) {
	s.db = db
}

// Hydrate loads all persisted users into the in-memory index.
func (s *UserStore) Hydrate() error {
	if s.db == nil {
		return nil
	}

	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range users {
		u := users[i]
		if u.Follows == nil {
			u.Follows = make(map[string]bool)
		}
		if u.Listens == nil {
			u.Listens = make(map[string]int)
		}
		s.users[u.ID] = &u
	}

	logger.Log.Info("User store hydrated", zap.Int("users", len(users)))
	return nil
}

// FindByID returns a copy of the user, or false if the id is unknown.
func (s *UserStore) FindByID(id string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return user.Clone(), true
}

// AllUserIDs returns every indexed user id in ascending order.
func (s *UserStore) AllUserIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of indexed users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Follow records that from follows to. Both users are created if absent.
// Re-following is a no-op.
func (s *UserStore) Follow(fromID, toID string) error {
	s.mu.Lock()
	from := s.getOrCreateLocked(fromID)
	s.getOrCreateLocked(toID)
	from.Follows[toID] = true
	fromCopy := from.Clone()
	toCopy := s.users[toID].Clone()
	s.mu.Unlock()

	return s.persist(fromCopy, toCopy)
}

// Listen increments the user's play count for a music, creating the user on
// first contact. Counts only ever grow, so the map never holds a zero.
func (s *UserStore) Listen(userID, musicID string) error {
	s.mu.Lock()
	user := s.getOrCreateLocked(userID)
	user.Listens[musicID]++
	userCopy := user.Clone()
	s.mu.Unlock()

	return s.persist(userCopy)
}

// Clear removes every user. Mirrors the bulk reset used by acceptance runs.
func (s *UserStore) Clear() error {
	s.mu.Lock()
	s.users = make(map[string]*models.User)
	s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to clear persisted users: %w", err)
		}
	}
	return nil
}

// Snapshot returns an immutable view of the full user set. One recommendation
// request does all its reads against a single snapshot, so a follow or listen
// landing mid-computation is ordered entirely before or after it.
func (s *UserStore) Snapshot() UserReader {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[string]*models.User, len(s.users))
	for id, u := range s.users {
		users[id] = u.Clone()
	}
	return &userSnapshot{users: users}
}

func (s *UserStore) getOrCreateLocked(id string) *models.User {
	if user, ok := s.users[id]; ok {
		return user
	}
	user := models.NewUser(id)
	s.users[id] = user
	return user
}

func (s *UserStore) persist(users ...*models.User) error {
	if s.db == nil {
		return nil
	}
	for _, u := range users {
		err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(u).Error
		if err != nil {
			return fmt.Errorf("failed to persist user %s: %w", u.ID, err)
		}
	}
	return nil
}

// userSnapshot is a frozen copy of the user index.
type userSnapshot struct {
	users map[string]*models.User
}

func (s *userSnapshot) FindByID(id string) (*models.User, bool) {
	user, ok := s.users[id]
	return user, ok
}

func (s *userSnapshot) AllUserIDs() []string {
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
