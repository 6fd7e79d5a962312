package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes an account password. Cost comes from
// AuthConfig; tests use a low cost to stay fast.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a login or password-change attempt against the
// stored account hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
