package history

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

// HistoryService manages the list of previously searched cities.
type HistoryService struct {
	repo repositories.HistoryRepository
	l    *logger.Logger
}

func NewHistoryService(repo repositories.HistoryRepository, l *logger.Logger) *HistoryService {
	return &HistoryService{
		repo: repo,
		l:    l,
	}
}

// Cities returns the search history, oldest first.
func (s *HistoryService) Cities(ctx context.Context) ([]models.CityHistoryEntry, error) {
	cities, err := s.repo.List(ctx)
	if err != nil {
		s.l.Error(err, map[string]any{"op": "list"})
		return nil, err
	}

	s.l.Debug("loaded search history", map[string]any{"cities": len(cities)})
	return cities, nil
}

// AddCity records name as the most recent search.
func (s *HistoryService) AddCity(ctx context.Context, name string) (models.CityHistoryEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CityHistoryEntry{}, errors.Wrap(models.ErrInvalidInput, "city name is required")
	}

	entry, err := s.repo.Add(ctx, name)
	if err != nil {
		s.l.Error(err, map[string]any{"op": "add", "city": name})
		return models.CityHistoryEntry{}, err
	}

	s.l.Info("saved city to search history", map[string]any{"id": entry.ID, "city": entry.Name})
	return entry, nil
}

func (s *HistoryService) RemoveCity(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.Wrap(models.ErrInvalidInput, "city id is required")
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.l.Warning("city not in search history", map[string]any{"id": id})
		} else {
			s.l.Error(err, map[string]any{"op": "remove", "id": id})
		}
		return err
	}

	s.l.Info("removed city from search history", map[string]any{"id": id})
	return nil
}
