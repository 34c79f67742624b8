package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BaGreal2/kino-server/internal/middleware"
	"github.com/BaGreal2/kino-server/internal/model"
	"github.com/BaGreal2/kino-server/internal/store"
)

// WatchlistRouter dispatches everything under /api/watchlist/. Mount behind
// the auth middleware; every operation runs as the token's account.
//
//	GET    /api/watchlist                 list
//	POST   /api/watchlist/add             add
//	PUT    /api/watchlist/{id}/watched    toggle watched
//	PUT    /api/watchlist/{id}/favorite   toggle favorite
//	PUT    /api/watchlist/{id}/rate       set rating
//	DELETE /api/watchlist/{id}            remove
func WatchlistRouter(watchlist *store.WatchlistStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/watchlist"), "/")
		parts := strings.Split(path, "/")

		switch {
		case path == "" && r.Method == http.MethodGet:
			listHandler(watchlist, log)(w, r)

		case path == "add" && r.Method == http.MethodPost:
			addHandler(watchlist, log)(w, r)

		case len(parts) == 1 && r.Method == http.MethodDelete:
			removeHandler(watchlist, parts[0])(w, r)

		case len(parts) == 2 && r.Method == http.MethodPut && parts[1] == "watched":
			toggleHandler(watchlist, parts[0], watchlist.ToggleWatched)(w, r)

		case len(parts) == 2 && r.Method == http.MethodPut && parts[1] == "favorite":
			toggleHandler(watchlist, parts[0], watchlist.ToggleFavorite)(w, r)

		case len(parts) == 2 && r.Method == http.MethodPut && parts[1] == "rate":
			rateHandler(watchlist, parts[0])(w, r)

		default:
			writeError(w, http.StatusNotFound, "Not Found")
		}
	}
}

func listHandler(watchlist *store.WatchlistStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := watchlist.List(middleware.UserID(r))
		if err != nil {
			log.Error("failed to list watchlist", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func addHandler(watchlist *store.WatchlistStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.AddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MovieID <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid movie id")
			return
		}

		entry, err := watchlist.Add(middleware.UserID(r), req.MovieID)
		if err != nil {
			if !errorsIsClient(err) {
				log.Error("failed to add watchlist entry", zap.Error(err))
			}
			storeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	}
}

func toggleHandler(watchlist *store.WatchlistStore, rawID string, toggle func(userID, entryID int) (model.WatchlistEntry, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := strconv.Atoi(rawID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entry id")
			return
		}

		entry, err := toggle(middleware.UserID(r), entryID)
		if err != nil {
			storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

func rateHandler(watchlist *store.WatchlistStore, rawID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := strconv.Atoi(rawID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entry id")
			return
		}

		var req model.RateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		entry, err := watchlist.SetRating(middleware.UserID(r), entryID, req.Rating)
		if err != nil {
			storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

func removeHandler(watchlist *store.WatchlistStore, rawID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := strconv.Atoi(rawID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entry id")
			return
		}

		if err := watchlist.Remove(middleware.UserID(r), entryID); err != nil {
			storeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
