package domain

import (
	"context"
	"time"
)

// SourceAdapter is the capability interface every data source implements.
// The decision engine and orchestrator depend only on this, never on a
// concrete source.
//
// Retrieve returns zero or more candidates for the slot in ctx. An empty
// slice means "nothing suitable" and is not an error; adapters absorb
// their own I/O failures and report them via the error return so the
// orchestrator can log and fall back.
type SourceAdapter interface {
	Source() Source
	Retrieve(ctx context.Context, mc MealContext) ([]Candidate, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TextGenerator is the language-model capability the generative adapter
// builds on. Implementations must honor ctx cancellation.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
