package domain

import "errors"

var (
	// ErrInvalidTarget is returned when a meal context carries a
	// non-positive calorie target or an unknown meal type.
	ErrInvalidTarget = errors.New("invalid meal target")

	// ErrNoCandidates means an adapter returned zero usable items after
	// filtering. Not a failure; it triggers fallback to the next source.
	ErrNoCandidates = errors.New("no candidates from source")

	// ErrAllSourcesExhausted means every source in the fallback chain came
	// back empty. The top-level call returns nil rather than this error;
	// it exists for callers that want to distinguish the case in logs.
	ErrAllSourcesExhausted = errors.New("all sources exhausted")

	// ErrAdapterFailure wraps a network or parse error inside one adapter.
	// It is absorbed at the adapter boundary and converted to an empty
	// candidate list, never propagated through the orchestrator.
	ErrAdapterFailure = errors.New("source adapter failure")

	// ErrCatalogUnavailable is returned when the product catalog API is
	// unreachable or answers with a non-200 status.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrCacheMiss is returned when data is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)
