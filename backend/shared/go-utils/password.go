package utils

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost is the bcrypt work factor for account passwords.
const PasswordHashCost = 10

// HashPassword bcrypt-hashes password. Inputs over 72 bytes fail with
// bcrypt.ErrPasswordTooLong rather than being truncated.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// PasswordMatches reports whether password matches the stored hash.
// Accounts without a password (nil hash) never match.
func PasswordMatches(password string, hash *string) bool {
	if hash == nil || *hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) == nil
}
