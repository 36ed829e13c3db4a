package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pka-index-backend/internal/models"
)

// EpisodeRepo reads the episode catalog from Postgres. Every method borrows one
// pooled connection for the duration of a single statement.
type EpisodeRepo struct {
	pool *pgxpool.Pool
}

func NewEpisodeRepo(pool *pgxpool.Pool) *EpisodeRepo {
	return &EpisodeRepo{pool: pool}
}

func (r *EpisodeRepo) GetEpisode(ctx context.Context, number models.EpisodeNumber) (*models.Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM pka_episode WHERE number_milli = $1`

	e, err := scanEpisode(r.pool.QueryRow(ctx, query, number))
	if err != nil {
		return nil, classify(ctx, "get episode "+number.String(), err)
	}
	return e, nil
}

func (r *EpisodeRepo) GetVideoDetails(ctx context.Context, number models.EpisodeNumber) (*models.VideoDetails, error) {
	query := `SELECT ` + detailsColumns + ` FROM pka_youtube_details WHERE episode_number_milli = $1`

	d, err := scanVideoDetails(r.pool.QueryRow(ctx, query, number))
	if err != nil {
		return nil, classify(ctx, "get youtube details "+number.String(), err)
	}
	return d, nil
}

func (r *EpisodeRepo) ListEvents(ctx context.Context, number models.EpisodeNumber) ([]*models.Event, error) {
	op := "list events " + number.String()
	query := `SELECT ` + eventColumns + ` FROM pka_event WHERE episode_number_milli = $1 ORDER BY timestamp ASC`

	rows, err := r.pool.Query(ctx, query, number)
	if err != nil {
		return nil, classify(ctx, op, err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, classify(ctx, op, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(ctx, op, err)
	}

	return events, nil
}

func (r *EpisodeRepo) LatestNumber(ctx context.Context) (models.EpisodeNumber, error) {
	var n models.EpisodeNumber
	err := r.pool.QueryRow(ctx, `SELECT number_milli FROM pka_episode ORDER BY number_milli DESC LIMIT 1`).Scan(&n)
	if err != nil {
		return 0, latestErr(classify(ctx, "latest episode number", err))
	}
	return n, nil
}

func (r *EpisodeRepo) ListNumbers(ctx context.Context) ([]models.EpisodeNumber, error) {
	op := "list episode numbers"

	rows, err := r.pool.Query(ctx, `SELECT number_milli FROM pka_episode ORDER BY number_milli DESC`)
	if err != nil {
		return nil, classify(ctx, op, err)
	}
	defer rows.Close()

	var numbers []models.EpisodeNumber
	for rows.Next() {
		var n models.EpisodeNumber
		if err := rows.Scan(&n); err != nil {
			return nil, classify(ctx, op, err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(ctx, op, err)
	}

	return numbers, nil
}
