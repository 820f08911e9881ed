package entities

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Doctor is a clinician account. The engine only ever sees its ID as the
// owning key for patient records; authentication mechanics live outside the
// core. Passwords are stored as bcrypt hashes, never in plaintext.
type Doctor struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SetPassword hashes the plaintext password and stores the hash.
func (d *Doctor) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (d *Doctor) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(plaintext)) == nil
}
