package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported hashing algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

const argon2idPrefix = "$argon2id$"

// ErrPasswordHashMismatch is returned when a password does not match its hash.
var ErrPasswordHashMismatch = errors.New("password does not match hash")

// PasswordHasher hashes new passwords with one algorithm and verifies stored
// hashes produced by any supported algorithm.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	saltLen uint32
}

var defaultArgon2Params = argon2Params{memory: 19 * 1024, time: 2, threads: 1, keyLen: 32, saltLen: 16}

type passwordHasher struct {
	algorithm  string
	bcryptCost int
	argon      argon2Params
}

// NewPasswordHasher returns a hasher producing hashes with algorithm.
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	switch algorithm {
	case AlgorithmBcrypt:
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			bcryptCost = bcrypt.DefaultCost
		}
	case AlgorithmArgon2id:
	default:
		return nil, fmt.Errorf("unsupported password hash algorithm %q", algorithm)
	}
	return &passwordHasher{algorithm: algorithm, bcryptCost: bcryptCost, argon: defaultArgon2Params}, nil
}

// HashPassword hashes a plaintext password with bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *passwordHasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmArgon2id {
		return h.hashArgon2id(password)
	}
	return HashPassword(password, h.bcryptCost)
}

// Compare picks the algorithm from the stored hash, so accounts keep working
// after the configured algorithm changes.
func (h *passwordHasher) Compare(hashed, plain string) error {
	if strings.HasPrefix(hashed, argon2idPrefix) {
		return compareArgon2id(hashed, plain)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrPasswordHashMismatch
	}
	return nil
}

func (h *passwordHasher) hashArgon2id(password string) (string, error) {
	p := h.argon
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func compareArgon2id(encoded, plain string) error {
	// $argon2id$v=19$m=...,t=...,p=...$salt$key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return ErrPasswordHashMismatch
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return ErrPasswordHashMismatch
	}
	var p argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return ErrPasswordHashMismatch
	}
	// argon2.IDKey panics on zero time or threads.
	if p.memory == 0 || p.time == 0 || p.threads == 0 {
		return ErrPasswordHashMismatch
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrPasswordHashMismatch
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return ErrPasswordHashMismatch
	}

	got := argon2.IDKey([]byte(plain), salt, p.time, p.memory, p.threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordHashMismatch
	}
	return nil
}
