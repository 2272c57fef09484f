package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes credentials at registration and verifies them at
// login. Only the hash is ever persisted.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// BcryptPasswordHasher implements PasswordHasher with bcrypt. The cost is
// fixed at construction; tests use a low cost to keep hashing cheap.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher returns a hasher at bcrypt's default cost.
func NewBcryptPasswordHasher() *BcryptPasswordHasher {
	return NewBcryptPasswordHasherWithCost(bcrypt.DefaultCost)
}

// NewBcryptPasswordHasherWithCost returns a hasher with an explicit cost.
func NewBcryptPasswordHasherWithCost(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns nil when plain matches the stored hash.
func (h *BcryptPasswordHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
