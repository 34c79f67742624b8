package tmdb

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client proxies catalog reads to TMDB so the API bearer never reaches the
// browser. Responses are passed through verbatim, status included.
type Client struct {
	BaseURL string
	Bearer  string
	HTTP    *http.Client
}

func NewClient(bearer string) *Client {
	return &Client{
		BaseURL: "https://api.themoviedb.org/3",
		Bearer:  bearer,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) TrendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}
		c.proxy(w, fmt.Sprintf("%s/trending/movie/week?language=en-US&page=%s", c.BaseURL, page))
	}
}

func (c *Client) MovieDetailsHandler(id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.proxy(w, fmt.Sprintf("%s/movie/%s?language=en-US", c.BaseURL, id))
	}
}

func (c *Client) proxy(w http.ResponseWriter, url string) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		http.Error(w, "Failed to create request", http.StatusInternalServerError)
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.Bearer)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		http.Error(w, "TMDB request failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}
