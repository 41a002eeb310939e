package models

import (
	"database/sql/driver"
	"strings"
	"time"
)

// StringArray is a custom type for PostgreSQL text[] that implements Scanner and Valuer
type StringArray []string

// Scan implements the sql.Scanner interface for reading from database
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	// PostgreSQL returns text[] as a string like "{value1,value2,value3}"
	str, ok := value.(string)
	if !ok {
		if bytes, ok := value.([]byte); ok {
			str = string(bytes)
		} else {
			*a = nil
			return nil
		}
	}

	str = strings.TrimPrefix(str, "{")
	str = strings.TrimSuffix(str, "}")

	if str == "" {
		*a = []string{}
		return nil
	}

	// Split by comma (genre labels never contain commas)
	*a = strings.Split(str, ",")
	return nil
}

// Value implements the driver.Valuer interface for writing to database
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	if len(a) == 0 {
		return "{}", nil
	}
	return "{" + strings.Join(a, ",") + "}", nil
}

// User is a listener account: who they follow and how often they played each
// music. Users are created lazily by the first follow or listen that names them.
type User struct {
	ID string `gorm:"primaryKey" json:"userId"`

	// Follows is the directed "followedUsers" relation, keyed by user id.
	Follows map[string]bool `gorm:"type:jsonb;serializer:json" json:"followedUsers"`

	// Listens maps music id to play count. Counts are always positive; a
	// repeat listen increments, never inserts a zero.
	Listens map[string]int `gorm:"type:jsonb;serializer:json" json:"musics"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser returns a user with empty follow and listen sets, not yet saved.
func NewUser(id string) *User {
	return &User{
		ID:      id,
		Follows: make(map[string]bool),
		Listens: make(map[string]int),
	}
}

// Clone returns a deep copy so a recommendation request can hold a snapshot
// that later follow/listen writes cannot mutate.
func (u *User) Clone() *User {
	follows := make(map[string]bool, len(u.Follows))
	for id := range u.Follows {
		follows[id] = true
	}
	listens := make(map[string]int, len(u.Listens))
	for id, n := range u.Listens {
		listens[id] = n
	}
	return &User{
		ID:        u.ID,
		Follows:   follows,
		Listens:   listens,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Music is a catalog entry. Immutable once loaded; every music carries at
// least one genre label.
type Music struct {
	ID        string      `gorm:"primaryKey" json:"musicId"`
	Genres    StringArray `gorm:"type:text[]" json:"genres"`
	CreatedAt time.Time   `json:"created_at"`
}

// RecommendationImpression records that a music was served to a user at a
// given rank. Written asynchronously for offline analysis; never read back
// by the engine.
type RecommendationImpression struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"user_id"`
	MusicID   string    `gorm:"index" json:"music_id"`
	Position  int       `json:"position"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
