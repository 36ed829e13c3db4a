package repository

import (
	"context"
	"database/sql"

	"pka-index-backend/internal/models"
)

// SQLiteEpisodeRepo is the embedded-database counterpart of EpisodeRepo. The
// connection bound comes from sql.DB.SetMaxOpenConns.
type SQLiteEpisodeRepo struct {
	db *sql.DB
}

func NewSQLiteEpisodeRepo(db *sql.DB) *SQLiteEpisodeRepo {
	return &SQLiteEpisodeRepo{db: db}
}

func (r *SQLiteEpisodeRepo) GetEpisode(ctx context.Context, number models.EpisodeNumber) (*models.Episode, error) {
	query := `SELECT ` + episodeColumns + ` FROM pka_episode WHERE number_milli = ?`

	e, err := scanEpisode(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		return nil, classify(ctx, "get episode "+number.String(), err)
	}
	return e, nil
}

func (r *SQLiteEpisodeRepo) GetVideoDetails(ctx context.Context, number models.EpisodeNumber) (*models.VideoDetails, error) {
	query := `SELECT ` + detailsColumns + ` FROM pka_youtube_details WHERE episode_number_milli = ?`

	d, err := scanVideoDetails(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		return nil, classify(ctx, "get youtube details "+number.String(), err)
	}
	return d, nil
}

func (r *SQLiteEpisodeRepo) ListEvents(ctx context.Context, number models.EpisodeNumber) ([]*models.Event, error) {
	op := "list events " + number.String()
	query := `SELECT ` + eventColumns + ` FROM pka_event WHERE episode_number_milli = ? ORDER BY timestamp ASC`

	rows, err := r.db.QueryContext(ctx, query, number)
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

func (r *SQLiteEpisodeRepo) LatestNumber(ctx context.Context) (models.EpisodeNumber, error) {
	var n models.EpisodeNumber
	err := r.db.QueryRowContext(ctx, `SELECT number_milli FROM pka_episode ORDER BY number_milli DESC LIMIT 1`).Scan(&n)
	if err != nil {
		return 0, latestErr(classify(ctx, "latest episode number", err))
	}
	return n, nil
}

func (r *SQLiteEpisodeRepo) ListNumbers(ctx context.Context) ([]models.EpisodeNumber, error) {
	op := "list episode numbers"

	rows, err := r.db.QueryContext(ctx, `SELECT number_milli FROM pka_episode ORDER BY number_milli DESC`)
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
