// Package engine implements the adaptive workout rules: scoring a finished
// workout, summarising recent training, proposing and applying adaptations,
// and generating new workouts from the exercise catalog.
//
// Everything here is a pure function of its arguments apart from the random
// source and clock held by Engine. Nothing in this package performs I/O.
package engine

import (
	"math/rand"
	"time"

	"alcyxob/adaptive-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rand is the randomness the engine needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Engine carries the injected random source and clock.
// It holds no other state and is safe for concurrent use as long as the Rand is.
type Engine struct {
	rnd Rand
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for exercise selection and substitution.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rnd = r }
}

// WithClock sets the clock used to date generated workouts.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an Engine seeded from the current time unless options override it.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	return e
}

// Catalog is the read-only exercise reference data, kept in its original
// order with an index by id.
type Catalog struct {
	exercises []domain.Exercise
	byID      map[primitive.ObjectID]*domain.Exercise
}

// NewCatalog builds a Catalog over exercises. The slice is not copied and
// must not be modified while the catalog is in use.
func NewCatalog(exercises []domain.Exercise) Catalog {
	byID := make(map[primitive.ObjectID]*domain.Exercise, len(exercises))
	for i := range exercises {
		byID[exercises[i].ID] = &exercises[i]
	}
	return Catalog{exercises: exercises, byID: byID}
}

// Lookup returns the exercise with id.
func (c Catalog) Lookup(id primitive.ObjectID) (*domain.Exercise, bool) {
	ex, ok := c.byID[id]
	return ex, ok
}

// Len is the number of exercises in the catalog.
func (c Catalog) Len() int {
	return len(c.exercises)
}

// tracked reports whether an optional integer parameter is present.
// Zero counts as absent, matching how entries are recorded by clients.
func tracked(p *int) bool {
	return p != nil && *p > 0
}

func trackedFloat(p *float64) bool {
	return p != nil && *p > 0
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
