package service

import (
	"context"
	"io"
	"time"
)

// The interfaces below describe the business collaborators the
// authentication core hands requests off to. Their implementations live
// outside this subsystem; they are simple I/O wrappers with no
// algorithmic depth and are wired separately.

// HabitStore is the CRUD surface for habit records.
type HabitStore interface {
	CreateHabit(ctx context.Context, username string, name string) (string, error)
	ListHabits(ctx context.Context, username string) ([]string, error)
	DeleteHabit(ctx context.Context, username string, habitID string) error
}

// AnalysisProxy forwards analysis requests to the external analysis
// backend and stores the published results it returns.
type AnalysisProxy interface {
	Analyze(ctx context.Context, username string, payload []byte) ([]byte, error)
	PublishedResult(ctx context.Context, resultID string) ([]byte, error)
}

// ObjectStorage stores uploaded files served from the public upload paths.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	URL(key string) string
}

// CodeStore is a keyed store with TTL semantics, used for email
// verification codes. Entries expire on their own; Consume removes the
// entry on a successful match.
type CodeStore interface {
	Set(ctx context.Context, key, code string, ttl time.Duration) error
	Consume(ctx context.Context, key, code string) (bool, error)
}
