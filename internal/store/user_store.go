package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/mail"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/BaGreal2/kino-server/internal/model"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// UserStore owns the users table. Raw passwords are bcrypt-hashed on the way
// in and never stored, returned or logged.
type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a new account and returns its id. ErrInvalidInput covers
// the field checks; a taken username or email comes back as ErrConflict.
func (s *UserStore) Create(username, email, rawPassword string) (int, error) {
	if len(username) < minUsernameLen {
		return 0, fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, minUsernameLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return 0, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(rawPassword) < minPasswordLen {
		return 0, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	res, err := s.db.Exec(
		"INSERT INTO users (username, email, password) VALUES (?, ?, ?)",
		username, email, string(hashed),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: username or email taken", ErrConflict)
		}
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (s *UserStore) FindByEmail(email string) (model.User, string, error) {
	var row struct {
		model.User
		Password string `db:"password"`
	}
	err := s.db.Get(&row, "SELECT id, username, email, password, created_at FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, "", ErrNotFound
	}
	if err != nil {
		return model.User{}, "", err
	}
	return row.User, row.Password, nil
}

// Authenticate checks email+password against the stored hash. Both an unknown
// email and a wrong password return ErrInvalidCredentials so a caller cannot
// probe which one failed.
func (s *UserStore) Authenticate(email, rawPassword string) (model.User, error) {
	user, hashed, err := s.FindByEmail(email)
	if errors.Is(err, ErrNotFound) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(rawPassword)) != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserStore) GetByID(id int) (model.User, error) {
	var user model.User
	err := s.db.Get(&user, "SELECT id, username, email, created_at FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
