package models

import (
	"database/sql"
	"time"
)

// User is the credential record. Password and RefreshToken are only
// populated on the login lookup path and never serialized.
type User struct {
	ID           int            `json:"id"`
	FullName     string         `json:"fullName"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	Password     string         `json:"-"`
	RefreshToken sql.NullString `json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type Task struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Important bool      `json:"important"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
