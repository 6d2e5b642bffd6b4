package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/driftlab/sponge/internal/domain"
	"go.uber.org/zap"
)

// StateStore persists the sponge aggregate as a single JSON file with a
// write-once archive of every superseded version. Saves are atomic:
// write to a temp sibling, then rename, so a crash mid-write never
// corrupts the live file. The archive-on-write sequencing assumes one
// writer per file; it is not safe under concurrent writers.
type StateStore struct {
	path       string
	historyDir string
	logger     *zap.Logger
}

func NewStateStore(path, historyDir string, logger *zap.Logger) *StateStore {
	return &StateStore{path: path, historyDir: historyDir, logger: logger}
}

// Load reads the live state file. A missing or corrupt file degrades to
// a fresh seed aggregate rather than raising; a partial record is never
// hydrated.
func (s *StateStore) Load() (*domain.SpongeState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("no persisted state, seeding fresh sponge", zap.String("path", s.path))
			return domain.NewSpongeState(), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state domain.SpongeState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("state file corrupt, seeding fresh sponge",
			zap.String("path", s.path), zap.Error(err))
		return domain.NewSpongeState(), nil
	}

	if state.SchemaVersion > domain.SchemaVersion {
		s.logger.Warn("state file from newer schema, seeding fresh sponge",
			zap.Int("file_schema", state.SchemaVersion),
			zap.Int("supported_schema", domain.SchemaVersion))
		return domain.NewSpongeState(), nil
	}

	state.SchemaVersion = domain.SchemaVersion
	state.Normalize()
	return &state, nil
}

// Save archives the outgoing version, then atomically replaces the live
// file. History files are write-once: re-saving at an already-archived
// version never overwrites its file.
func (s *StateStore) Save(state *domain.SpongeState) error {
	state.SchemaVersion = domain.SchemaVersion

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize state: %w", err)
	}

	if err := s.archiveOutgoing(state.Version); err != nil {
		return err
	}

	return s.writeAtomic(data)
}

// archiveOutgoing copies the current live file verbatim into the
// history dir when the state about to be written supersedes it.
func (s *StateStore) archiveOutgoing(newVersion int) error {
	prev, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read outgoing state: %w", err)
	}

	var outgoing domain.SpongeState
	if err := json.Unmarshal(prev, &outgoing); err != nil {
		s.logger.Warn("outgoing state unparsable, skipping archive", zap.Error(err))
		return nil
	}
	if outgoing.Version >= newVersion {
		return nil
	}

	if err := os.MkdirAll(s.historyDir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	histPath := filepath.Join(s.historyDir, fmt.Sprintf("sponge_v%d.json", outgoing.Version))
	f, err := os.OpenFile(histPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("create history file: %w", err)
	}

	if _, err := f.Write(prev); err != nil {
		_ = f.Close()
		return fmt.Errorf("write history file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close history file: %w", err)
	}

	s.logger.Debug("archived outgoing version",
		zap.Int("version", outgoing.Version), zap.String("path", histPath))
	return nil
}

func (s *StateStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".sponge-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
