package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

// FileHistoryRepository keeps the search history as a JSON array on disk,
// oldest entry first.
type FileHistoryRepository struct {
	path  string
	mu    sync.Mutex
	newID func() string
	l     *logger.Logger
}

func NewFileHistoryRepository(path string, l *logger.Logger) *FileHistoryRepository {
	return &FileHistoryRepository{
		path:  path,
		newID: func() string { return uuid.NewString() },
		l:     l,
	}
}

func (r *FileHistoryRepository) List(ctx context.Context) ([]models.CityHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read()
}

// Add records name as the most recent search. A case-insensitive match moves
// the existing entry to the end instead of adding a duplicate.
func (r *FileHistoryRepository) Add(ctx context.Context, name string) (models.CityHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.CityHistoryEntry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		return models.CityHistoryEntry{}, err
	}

	for i, entry := range entries {
		if !strings.EqualFold(entry.Name, name) {
			continue
		}

		entries = append(entries[:i], entries[i+1:]...)
		entries = append(entries, entry)
		if err := r.write(entries); err != nil {
			return models.CityHistoryEntry{}, err
		}

		r.l.Debug("moved city to the top of the search history", map[string]any{"id": entry.ID, "name": entry.Name})
		return entry, nil
	}

	entry := models.CityHistoryEntry{ID: r.newID(), Name: name}
	if err := r.write(append(entries, entry)); err != nil {
		return models.CityHistoryEntry{}, err
	}

	r.l.Debug("added city to the search history", map[string]any{"id": entry.ID, "name": entry.Name})
	return entry, nil
}

func (r *FileHistoryRepository) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		return err
	}

	for i, entry := range entries {
		if entry.ID != id {
			continue
		}

		if err := r.write(append(entries[:i], entries[i+1:]...)); err != nil {
			return err
		}

		r.l.Debug("removed city from the search history", map[string]any{"id": entry.ID, "name": entry.Name})
		return nil
	}

	return errors.Wrapf(models.ErrNotFound, "city with id %s", id)
}

// read loads the history, creating an empty file when none exists yet.
func (r *FileHistoryRepository) read() ([]models.CityHistoryEntry, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := r.write(nil); err != nil {
			return nil, err
		}
		return []models.CityHistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read search history file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.CityHistoryEntry{}, nil
	}

	var entries []models.CityHistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse search history file: %w", err)
	}
	if entries == nil {
		entries = []models.CityHistoryEntry{}
	}

	return entries, nil
}

func (r *FileHistoryRepository) write(entries []models.CityHistoryEntry) error {
	if entries == nil {
		entries = []models.CityHistoryEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode search history: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create search history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".search-history-*.json")
	if err != nil {
		return fmt.Errorf("failed to write search history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write search history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write search history file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace search history file: %w", err)
	}

	return nil
}
