package hash

// Hasher defines methods for hashing and verifying password credentials.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}
