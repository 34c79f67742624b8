package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BaGreal2/kino-server/internal/auth"
	"github.com/BaGreal2/kino-server/internal/middleware"
	"github.com/BaGreal2/kino-server/internal/model"
	"github.com/BaGreal2/kino-server/internal/store"
)

func RegisterHandler(users *store.UserStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req model.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		id, err := users.Create(req.Username, req.Email, req.Password)
		if err != nil {
			if !errorsIsClient(err) {
				log.Error("failed to create user", zap.Error(err))
			}
			storeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id":       id,
			"username": req.Username,
			"email":    req.Email,
		})
	}
}

func LoginHandler(users *store.UserStore, jwtSecret string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req model.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		user, err := users.Authenticate(req.Email, req.Password)
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			log.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		token, err := auth.Issue(jwtSecret, user)
		if err != nil {
			log.Error("failed to sign token", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Error generating token")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"token": token,
			"user":  user,
		})
	}
}

// MeHandler resolves the presented token back to its account. Mount behind
// the auth middleware.
func MeHandler(users *store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := users.GetByID(middleware.UserID(r))
		if err != nil {
			storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
