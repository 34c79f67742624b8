package model

import "time"

// WatchlistEntry is a user's saved reference to a TMDB movie. Movie metadata
// (title, poster, vote average) lives in TMDB, never here.
type WatchlistEntry struct {
	ID       int       `json:"id" db:"id"`
	UserID   int       `json:"user_id" db:"user_id"`
	MovieID  int       `json:"movie_id" db:"movie_id"`
	Watched  bool      `json:"watched" db:"watched"`
	Favorite bool      `json:"favorite" db:"favorite"`
	Rating   *int      `json:"rating,omitempty" db:"rating"`
	AddedAt  time.Time `json:"added_at" db:"added_at"`
}

type AddRequest struct {
	MovieID int `json:"movieId"`
}

type RateRequest struct {
	Rating int `json:"rating"`
}
