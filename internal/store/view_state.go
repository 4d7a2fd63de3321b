package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"swipelist/internal/model"
)

const viewStateFileName = "view_state.json"

func (s Store) viewStatePath() string {
	return filepath.Join(s.Dir, viewStateFileName)
}

// LoadViewState reads the saved list view state. A missing or unreadable
// file yields an empty state; the view state is a convenience, not data.
func (s Store) LoadViewState() (*model.ViewState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &model.ViewState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.viewStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &model.ViewState{Version: 1}, nil
		}
		return nil, err
	}
	var st model.ViewState
	if err := json.Unmarshal(b, &st); err != nil {
		log.Warnw("ignoring corrupt view state", "path", s.viewStatePath(), "err", err)
		return &model.ViewState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	st.Saved = true
	return &st, nil
}

func (s Store) SaveViewState(st *model.ViewState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode view state: %w", err)
	}
	path := s.viewStatePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
