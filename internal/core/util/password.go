package util

import "golang.org/x/crypto/bcrypt"

// PasswordCost matches the work factor of the hashes already stored in
// usuarios, so old and new rows verify the same way.
const PasswordCost = 10

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

// HashPassword returns a bcrypt digest; bcrypt embeds a fresh random salt in
// every hash it produces. Bytes past the 72nd are ignored, as the hashes
// written before this service were computed the same way.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), PasswordCost)

	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// ComparePassword checks password against a stored digest, truncating it
// the way HashPassword does. Rows created by the previous registration app
// must keep verifying, so both sides agree on the 72 byte rule.
func ComparePassword(password, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncate(password))
}

func truncate(password string) []byte {
	b := []byte(password)

	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}

	return b
}
