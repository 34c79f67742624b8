package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/BaGreal2/kino-server/internal/model"
)

// WatchlistStore owns the watchlist table. Every mutation is scoped to the
// owning user_id, so a valid token for one account can never touch another
// account's rows.
type WatchlistStore struct {
	db *sqlx.DB
}

func NewWatchlistStore(db *sqlx.DB) *WatchlistStore {
	return &WatchlistStore{db: db}
}

// Add saves a movie to the user's watchlist. Adding the same movie twice is
// rejected with ErrConflict via the UNIQUE (user_id, movie_id) constraint.
func (s *WatchlistStore) Add(userID, movieID int) (model.WatchlistEntry, error) {
	res, err := s.db.Exec(
		"INSERT INTO watchlist (user_id, movie_id) VALUES (?, ?)",
		userID, movieID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.WatchlistEntry{}, fmt.Errorf("%w: movie already in watchlist", ErrConflict)
		}
		return model.WatchlistEntry{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.WatchlistEntry{}, err
	}
	return s.get(userID, int(id))
}

// List returns the user's entries in insertion order. Never nil, so the
// handler serializes an empty list as [] rather than null.
func (s *WatchlistStore) List(userID int) ([]model.WatchlistEntry, error) {
	entries := []model.WatchlistEntry{}
	err := s.db.Select(&entries,
		"SELECT id, user_id, movie_id, watched, favorite, rating, added_at FROM watchlist WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *WatchlistStore) ToggleWatched(userID, entryID int) (model.WatchlistEntry, error) {
	return s.update(userID, entryID, "UPDATE watchlist SET watched = NOT watched WHERE id = ? AND user_id = ?")
}

func (s *WatchlistStore) ToggleFavorite(userID, entryID int) (model.WatchlistEntry, error) {
	return s.update(userID, entryID, "UPDATE watchlist SET favorite = NOT favorite WHERE id = ? AND user_id = ?")
}

func (s *WatchlistStore) SetRating(userID, entryID, rating int) (model.WatchlistEntry, error) {
	if rating < 1 || rating > 5 {
		return model.WatchlistEntry{}, ErrInvalidRating
	}

	res, err := s.db.Exec("UPDATE watchlist SET rating = ? WHERE id = ? AND user_id = ?", rating, entryID, userID)
	if err != nil {
		return model.WatchlistEntry{}, err
	}
	return s.checkAffected(res, userID, entryID)
}

// Remove deletes the entry. A missing row and a row owned by someone else
// both come back as ErrNotFound.
func (s *WatchlistStore) Remove(userID, entryID int) error {
	res, err := s.db.Exec("DELETE FROM watchlist WHERE id = ? AND user_id = ?", entryID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *WatchlistStore) update(userID, entryID int, query string) (model.WatchlistEntry, error) {
	res, err := s.db.Exec(query, entryID, userID)
	if err != nil {
		return model.WatchlistEntry{}, err
	}
	return s.checkAffected(res, userID, entryID)
}

func (s *WatchlistStore) checkAffected(res sql.Result, userID, entryID int) (model.WatchlistEntry, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return model.WatchlistEntry{}, err
	}
	if affected == 0 {
		return model.WatchlistEntry{}, ErrNotFound
	}
	return s.get(userID, entryID)
}

func (s *WatchlistStore) get(userID, entryID int) (model.WatchlistEntry, error) {
	var entry model.WatchlistEntry
	err := s.db.Get(&entry,
		"SELECT id, user_id, movie_id, watched, favorite, rating, added_at FROM watchlist WHERE id = ? AND user_id = ?",
		entryID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WatchlistEntry{}, ErrNotFound
	}
	if err != nil {
		return model.WatchlistEntry{}, err
	}
	return entry, nil
}
