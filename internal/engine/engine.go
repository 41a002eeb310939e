// Package engine implements the recommendation pipeline: genre-affinity
// profiles, user similarity, follow-graph distance, genre rating aggregation
// and the final music ranking. Every request recomputes from a snapshot of
// the stores; the engine holds no state between calls.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/tunegraph/backend/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultLimit is the number of musics returned when the caller does not ask
// for a specific count.
const DefaultLimit = 5

// ErrUserNotFound is returned when the target user is not in the user store.
var ErrUserNotFound = errors.New("user not found")

// ConsistencyError marks a listen entry that references a music absent from
// the catalog. It is fatal to the request: skipping the entry would silently
// distort the aggregate ratings.
type ConsistencyError struct {
	UserID  string
	MusicID string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("user %s has a listen entry for unknown music %s", e.UserID, e.MusicID)
}

// ScoredMusic is one ranked catalog entry.
type ScoredMusic struct {
	MusicID string  `json:"musicId"`
	Rating  float64 `json:"rating"`
}

// UserSource provides a consistent view of the user set for one request.
type UserSource interface {
	Snapshot() store.UserReader
}

// Engine computes recommendations against injected stores.
type Engine struct {
	users   UserSource
	catalog store.CatalogReader
	tracer  trace.Tracer
}

// New creates an engine over the given stores.
func New(users UserSource, catalog store.CatalogReader) *Engine {
	return &Engine{
		users:   users,
		catalog: catalog,
		tracer:  otel.Tracer("tunegraph/engine"),
	}
}

// Recommend returns the top musics for the user, ordered by rating descending
// with ties broken by ascending music id. limit <= 0 means DefaultLimit; a
// catalog smaller than the limit yields the whole catalog, never padding.
func (e *Engine) Recommend(ctx context.Context, userID string, limit int) ([]ScoredMusic, error) {
	ctx, span := e.tracer.Start(ctx, "engine.Recommend",
		trace.WithAttributes(attribute.String("user_id", userID)))
	defer span.End()

	if limit <= 0 {
		limit = DefaultLimit
	}

	snap := e.users.Snapshot()
	if _, ok := snap.FindByID(userID); !ok {
		return nil, ErrUserNotFound
	}

	_, profileSpan := e.tracer.Start(ctx, "engine.BuildGenreProfiles")
	profiles, err := BuildGenreProfiles(snap, e.catalog)
	profileSpan.End()
	if err != nil {
		return nil, err
	}

	_, ratingSpan := e.tracer.Start(ctx, "engine.GenreRatings")
	ratings := GenreRatings(snap, profiles, userID)
	ratingSpan.End()

	_, rankSpan := e.tracer.Start(ctx, "engine.RankMusics")
	ranked := RankMusics(ratings, e.catalog.ReverseGenreIndex(), e.catalog.AllMusicIDs())
	rankSpan.End()

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	span.SetAttributes(attribute.Int("results", len(ranked)))
	return ranked, nil
}
