package dataset

import (
	"context"
	"time"

	"github.com/rshade/datalens/internal/logging"
)

// Session owns the single working table of a run. The table is replaced
// wholesale by Load and Apply, and only when the operation succeeds.
type Session struct {
	ds   *Dataset
	path string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Load reads path and makes it the working table.
func (s *Session) Load(ctx context.Context, path string) error {
	ds, err := Load(ctx, path)
	if err != nil {
		return err
	}
	s.ds = ds
	s.path = path
	return nil
}

// Set replaces the working table.
func (s *Session) Set(ds *Dataset, path string) {
	s.ds = ds
	s.path = path
}

// Loaded reports whether a table is present.
func (s *Session) Loaded() bool { return s.ds != nil }

// Path is the file the table was read from.
func (s *Session) Path() string { return s.path }

// Dataset returns the working table or ErrNoDataset.
func (s *Session) Dataset() (*Dataset, error) {
	if s.ds == nil {
		return nil, ErrNoDataset
	}
	return s.ds, nil
}

// Apply runs fn against the working table and keeps its result on success.
// On failure the previous table is left in place and the error returned.
func (s *Session) Apply(ctx context.Context, operation string, fn func(*Dataset) (*Dataset, error)) error {
	log := logging.FromContext(ctx)
	ds, err := s.Dataset()
	if err != nil {
		return err
	}
	start := time.Now()
	out, err := fn(ds)
	if err != nil {
		log.Warn().
			Str("component", "session").
			Str("operation", operation).
			Err(err).
			Msg("operation failed, table unchanged")
		return err
	}
	s.ds = out
	rows, cols := out.Shape()
	log.Debug().
		Str("component", "session").
		Str("operation", operation).
		Int("rows", rows).
		Int("columns", cols).
		Dur("duration_ms", time.Since(start)).
		Msg("operation applied")
	return nil
}

// Save writes the working table to path.
func (s *Session) Save(ctx context.Context, path string) error {
	ds, err := s.Dataset()
	if err != nil {
		return err
	}
	return ds.Save(ctx, path)
}
