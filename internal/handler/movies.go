package handler

import (
	"net/http"
	"strings"

	"github.com/BaGreal2/kino-server/internal/tmdb"
)

// MoviesRouter dispatches catalog reads under /api/movies/ to the TMDB proxy.
// Public: the client needs trending data before login.
func MoviesRouter(catalog *tmdb.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/movies"), "/")

		switch {
		case path == "trending":
			catalog.TrendingHandler()(w, r)
		case path != "" && !strings.Contains(path, "/"):
			catalog.MovieDetailsHandler(path)(w, r)
		default:
			writeError(w, http.StatusNotFound, "Not Found")
		}
	}
}
