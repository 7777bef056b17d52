// Package store keeps the line lists that diagrams are built from.
//
// A [Snapshot] is one document's extracted lines. Backends:
//
//   - memory: process-local map for tests and single-process servers
//   - file: one JSON file per snapshot, used by the CLI
//   - redis: shared storage for multi-instance API deployments
//   - mongo: durable storage for the hosted API
//
// Every backend reports a missing snapshot as NO_DATA and a snapshot whose
// stored form cannot be decoded into a non-empty list of non-blank lines as
// INVALID_DATA, so callers never see partial data.
//
//	st, err := store.Open(ctx, store.Config{Backend: store.BackendFile, Dir: dir})
//	snap := store.New(lines, "report.pdf")
//	err = st.Set(ctx, snap)
//	got, err := st.Get(ctx, snap.ID)
package store

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

// Snapshot is a stored line list.
type Snapshot struct {
	ID        string    `json:"id" bson:"_id"`
	Lines     []string  `json:"lines" bson:"lines"`
	Source    string    `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// New creates a snapshot with a fresh ID.
func New(lines []string, source string) *Snapshot {
	return &Snapshot{
		ID:        uuid.New().String(),
		Lines:     slices.Clone(lines),
		Source:    source,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Check reports NO_DATA for an empty snapshot and INVALID_DATA for blank lines.
func (s *Snapshot) Check() error {
	if s == nil || len(s.Lines) == 0 {
		return errors.NoData()
	}
	return diagram.CheckLines(s.Lines)
}

// Store is a snapshot backend.
type Store interface {
	// Get returns the snapshot with id, NO_DATA when absent and
	// INVALID_DATA when the stored value is unusable.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Set stores s, replacing any snapshot with the same ID.
	Set(ctx context.Context, s *Snapshot) error

	// Delete removes a snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored snapshot, newest first. Unreadable
	// entries are skipped.
	List(ctx context.Context) ([]*Snapshot, error)

	// Clear removes every snapshot.
	Clear(ctx context.Context) error

	Close() error
}

// Latest returns the newest snapshot in st, or NO_DATA when st is empty.
func Latest(ctx context.Context, st Store) (*Snapshot, error) {
	all, err := st.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errors.NoData()
	}
	return all[0], nil
}

// Resolve returns the snapshot with id, or the newest one when id is empty.
func Resolve(ctx context.Context, st Store, id string) (*Snapshot, error) {
	if id == "" {
		return Latest(ctx, st)
	}
	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	return st.Get(ctx, id)
}

// =============================================================================
// Shared encoding
// =============================================================================

func encode(s *Snapshot) ([]byte, error) {
	if s.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "snapshot has no id")
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

func decode(data []byte) (*Snapshot, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.NoData()
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.InvalidData(err)
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return &s, nil
}

func newestFirst(all []*Snapshot) {
	slices.SortStableFunc(all, func(a, b *Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
