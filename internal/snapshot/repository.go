// Package snapshot persists the full board state as a single JSON
// document. The in-memory state is always authoritative; a snapshot that
// is missing, corrupt, or fails validation makes the caller fall back to
// the seed dataset instead of crashing.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/crewboard/crewboard/internal/tracker"
)

const schemaVersion = 1

// ErrSnapshotNotFound is returned when no persisted board exists yet.
var ErrSnapshotNotFound = errors.New("snapshot: board not found")

// document is the on-disk shape of a board snapshot.
type document struct {
	SchemaVersion int               `json:"schema_version"`
	Projects      []tracker.Project `json:"projects"`
	Tasks         []tracker.Task    `json:"tasks"`
	Members       []tracker.Member  `json:"team_members"`
}

// Repository stores board snapshots at a single well-known path.
type Repository struct {
	path string
}

// NewRepository creates a repository writing to the given file path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the file backing this repository.
func (r *Repository) Path() string {
	return r.path
}

// Load reads and validates the persisted board. Any collection missing
// from the document is filled from the seed dataset, so a partially
// written snapshot still yields a usable state.
func (r *Repository) Load() (tracker.State, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tracker.State{}, ErrSnapshotNotFound
		}
		return tracker.State{}, fmt.Errorf("snapshot: read %s: %w", r.path, err)
	}
	if err := validateDocument(data); err != nil {
		return tracker.State{}, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return tracker.State{}, fmt.Errorf("snapshot: parse %s: %w", r.path, err)
	}
	seed := tracker.Seed()
	state := tracker.State{
		Projects: doc.Projects,
		Tasks:    doc.Tasks,
		Members:  doc.Members,
	}
	if state.Projects == nil {
		state.Projects = seed.Projects
	}
	if state.Tasks == nil {
		state.Tasks = seed.Tasks
	}
	if state.Members == nil {
		state.Members = seed.Members
	}
	return state, nil
}

// Save writes the board snapshot to disk.
func (r *Repository) Save(state tracker.State) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("snapshot: ensure dir: %w", err)
	}
	// Empty collections are written as [] rather than null so a reload
	// does not mistake an emptied board for an absent field.
	doc := document{
		SchemaVersion: schemaVersion,
		Projects:      emptyIfNil(state.Projects),
		Tasks:         emptyIfNil(state.Tasks),
		Members:       emptyIfNil(state.Members),
	}
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode board: %w", err)
	}
	if err := os.WriteFile(r.path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", r.path, err)
	}
	return nil
}

func emptyIfNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
