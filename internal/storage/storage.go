package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"growthpulse/internal/model"
)

// SeriesHead is the latest row of a series together with the timestamp of
// its first row, from which the series age derives.
type SeriesHead struct {
	Row         model.PersistedRow
	FirstSeenAt time.Time
}

// SeriesStore is an append-only sink for persisted rows. GetLatest returns
// nil when the series has no rows yet.
type SeriesStore interface {
	GetLatest(ctx context.Context, ownerID string, platform model.Platform) (*SeriesHead, error)
	Append(ctx context.Context, row model.PersistedRow) (int64, error)
}

// TransientError marks a store failure that should be retried at the next
// scheduled tick, not within the current one.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError.
func Transient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
