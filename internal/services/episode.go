package services

import (
	"context"
	"math/rand/v2"

	"pka-index-backend/internal/models"
)

// EpisodeStore is the read side of the episode catalog. Implementations tag a
// missing row with repository.ErrNotFound and any other engine failure with
// *repository.StorageError.
type EpisodeStore interface {
	GetEpisode(ctx context.Context, number models.EpisodeNumber) (*models.Episode, error)
	GetVideoDetails(ctx context.Context, number models.EpisodeNumber) (*models.VideoDetails, error)
	ListEvents(ctx context.Context, number models.EpisodeNumber) ([]*models.Event, error)
	LatestNumber(ctx context.Context) (models.EpisodeNumber, error)
	ListNumbers(ctx context.Context) ([]models.EpisodeNumber, error)
}

type EpisodeService struct {
	store EpisodeStore
	intN  func(n int) int
}

func NewEpisodeService(store EpisodeStore) *EpisodeService {
	return &EpisodeService{store: store, intN: rand.IntN}
}

// FindWithAll loads the episode, its video details and its events. The first
// lookup that fails aborts the rest and its error is returned as is.
func (s *EpisodeService) FindWithAll(ctx context.Context, number models.EpisodeNumber) (*models.EpisodeWithAll, error) {
	episode, err := s.store.GetEpisode(ctx, number)
	if err != nil {
		return nil, err
	}

	details, err := s.store.GetVideoDetails(ctx, number)
	if err != nil {
		return nil, err
	}

	events, err := s.store.ListEvents(ctx, number)
	if err != nil {
		return nil, err
	}

	return models.NewEpisodeWithAll(episode, details, events), nil
}

// VideoLink is the only way the raw hosting link leaves the service.
func (s *EpisodeService) VideoLink(ctx context.Context, number models.EpisodeNumber) (string, error) {
	episode, err := s.store.GetEpisode(ctx, number)
	if err != nil {
		return "", err
	}
	return episode.VideoLink, nil
}

// LatestNumber returns the highest episode number. An empty catalog yields
// repository.ErrEmptyCatalog.
func (s *EpisodeService) LatestNumber(ctx context.Context) (models.EpisodeNumber, error) {
	return s.store.LatestNumber(ctx)
}

// RandomNumber picks an episode number uniformly. An empty catalog yields 0,
// which callers then resolve like any other number.
func (s *EpisodeService) RandomNumber(ctx context.Context) (models.EpisodeNumber, error) {
	numbers, err := s.store.ListNumbers(ctx)
	if err != nil {
		return 0, err
	}
	if len(numbers) == 0 {
		return 0, nil
	}
	return numbers[s.intN(len(numbers))], nil
}
