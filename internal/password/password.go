package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt cost factor used for new hashes.
const Cost = 12

// maxLen is the bcrypt input limit; longer passwords are truncated so that
// Hash and Verify agree for passwords of any length.
const maxLen = 72

// truncate cuts the password to the bcrypt input limit.
func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxLen {
		b = b[:maxLen]
	}
	return b
}

// Hash returns a salted bcrypt digest of the password.
// Each call produces a different digest for the same input.
func Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(truncate(password), Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the password matches the digest.
// Malformed digests verify as false, never as an error.
func Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(password)) == nil
}
