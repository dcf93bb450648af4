package repository

import (
	"database/sql"
	"strings"

	"taskapi/internal/apperr"
	"taskapi/internal/config"
	"taskapi/internal/models"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser hashes the password and inserts the user. Usernames are
// stored lowercase so uniqueness is case-insensitive.
func CreateUser(fullName, username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, "Error hashing password", err)
	}

	user := models.User{
		FullName: fullName,
		Username: strings.ToLower(username),
		Email:    email,
	}
	err = config.DB.QueryRow(
		"INSERT INTO users (full_name, username, email, password) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at",
		user.FullName, user.Username, user.Email, string(hashedPassword),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// 23505 is the postgres unique violation code
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, apperr.New(apperr.Conflict, "User with email or username already exists")
		}
		return nil, apperr.Wrap(apperr.Server, "Error creating user", err)
	}
	return &user, nil
}

// GetUserByEmail returns the full record including the password hash, for
// the login path only.
func GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := config.DB.QueryRow(
		"SELECT id, full_name, username, email, password, refresh_token, created_at, updated_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.FullName, &user.Username, &user.Email, &user.Password, &user.RefreshToken, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, "Error fetching user", err)
	}
	return &user, nil
}

// GetUserByID returns the public projection, without the password hash or
// refresh token.
func GetUserByID(id int) (*models.User, error) {
	var user models.User
	err := config.DB.QueryRow(
		"SELECT id, full_name, username, email, created_at, updated_at FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.FullName, &user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, "Error fetching user", err)
	}
	return &user, nil
}

// VerifyPassword compares the candidate against the stored bcrypt hash.
func VerifyPassword(user *models.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}

// SetRefreshToken overwrites the persisted refresh token on login.
func SetRefreshToken(userID int, refreshToken string) error {
	_, err := config.DB.Exec(
		"UPDATE users SET refresh_token = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		refreshToken, userID,
	)
	if err != nil {
		return apperr.Wrap(apperr.Server, "Error storing refresh token", err)
	}
	return nil
}

// ClearRefreshToken removes the persisted refresh token on logout.
func ClearRefreshToken(userID int) error {
	_, err := config.DB.Exec(
		"UPDATE users SET refresh_token = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = $1",
		userID,
	)
	if err != nil {
		return apperr.Wrap(apperr.Server, "Error clearing refresh token", err)
	}
	return nil
}
