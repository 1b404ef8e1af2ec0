package models

import "errors"

// ErrInvalidUserRecord is returned when a stored user document fails
// validation on read.
var ErrInvalidUserRecord = errors.New("invalid user record")

// UserDB represents a user record in the store, keyed by username.
// The password is stored only as a bcrypt digest.
type UserDB struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
}

// Validate checks the fixed shape of a user document read from the store.
func (u *UserDB) Validate() error {
	if u.Username == "" || u.HashedPassword == "" {
		return ErrInvalidUserRecord
	}
	return nil
}
