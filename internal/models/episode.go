package models

// Episode is a catalog entry. VideoLink is only handed out through the dedicated
// youtube_link endpoint, never as part of the episode payload.
type Episode struct {
	Number     EpisodeNumber `json:"number"`
	Name       string        `json:"name"`
	VideoLink  string        `json:"-"`
	UploadDate int64         `json:"uploadDate"`
}

// VideoDetails holds the hosting-platform metadata for one episode.
type VideoDetails struct {
	VideoID       string        `json:"videoId"`
	EpisodeNumber EpisodeNumber `json:"-"`
	Title         string        `json:"title"`
	LengthSeconds int32         `json:"lengthSeconds"`
}

// Event is a timestamped moment inside an episode.
type Event struct {
	EventID       string        `json:"-"`
	EpisodeNumber EpisodeNumber `json:"-"`
	Timestamp     int32         `json:"timestamp"`
	Description   string        `json:"description"`
	LengthSeconds int32         `json:"lengthSeconds"`
	UploadDate    int64         `json:"uploadDate"`
}

// EpisodeWithAll is the watch payload: the episode, its video details and its
// events ordered by timestamp.
type EpisodeWithAll struct {
	Episode        *Episode      `json:"episode"`
	YoutubeDetails *VideoDetails `json:"youtubeDetails"`
	Events         []*Event      `json:"events"`
}

func NewEpisodeWithAll(episode *Episode, details *VideoDetails, events []*Event) *EpisodeWithAll {
	if events == nil {
		events = []*Event{}
	}
	return &EpisodeWithAll{
		Episode:        episode,
		YoutubeDetails: details,
		Events:         events,
	}
}
