package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bft-labs/aisparser/internal/domain"
)

const stateFileName = "aisparser.state.json"

// StateFileRepository implements ports.StateRepository using a JSON file.
type StateFileRepository struct {
	dir string
	now func() time.Time
}

// NewStateFileRepository creates a new StateFileRepository for the given directory.
func NewStateFileRepository(dir string) *StateFileRepository {
	return &StateFileRepository{dir: dir, now: time.Now}
}

// Load retrieves the last saved read position.
// Returns an empty state and nil error if no state file exists.
func (r *StateFileRepository) Load(ctx context.Context) (domain.State, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.State{}, nil
		}
		return domain.State{}, err
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.State{}, fmt.Errorf("decode %s: %w", r.Path(), err)
	}
	return state, nil
}

// Save persists the read position atomically (temp file, then rename).
func (r *StateFileRepository) Save(ctx context.Context, state domain.State) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = r.now().UTC()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the state file.
func (r *StateFileRepository) Path() string {
	return filepath.Join(r.dir, stateFileName)
}
