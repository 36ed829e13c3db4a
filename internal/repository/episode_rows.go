package repository

import "pka-index-backend/internal/models"

const (
	episodeColumns = `number_milli, name, youtube_link, upload_date`
	detailsColumns = `video_id, episode_number_milli, title, length_seconds`
	eventColumns   = `event_id, episode_number_milli, timestamp, description, length_seconds, upload_date`
)

func scanEpisode(row rowScanner) (*models.Episode, error) {
	e := &models.Episode{}
	if err := row.Scan(&e.Number, &e.Name, &e.VideoLink, &e.UploadDate); err != nil {
		return nil, err
	}
	return e, nil
}

func scanVideoDetails(row rowScanner) (*models.VideoDetails, error) {
	d := &models.VideoDetails{}
	if err := row.Scan(&d.VideoID, &d.EpisodeNumber, &d.Title, &d.LengthSeconds); err != nil {
		return nil, err
	}
	return d, nil
}

func scanEvent(row rowScanner) (*models.Event, error) {
	ev := &models.Event{}
	err := row.Scan(&ev.EventID, &ev.EpisodeNumber, &ev.Timestamp, &ev.Description, &ev.LengthSeconds, &ev.UploadDate)
	if err != nil {
		return nil, err
	}
	return ev, nil
}
