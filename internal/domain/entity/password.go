package entity

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Tuned to be expensive enough to resist offline
// brute force while staying cheap enough for interactive login:
// 64 MiB memory, 1 pass, 4 lanes, 32-byte key.
const (
	argonMemoryKiB  uint32 = 64 * 1024
	argonIterations uint32 = 1
	argonLanes      uint8  = 4
	argonKeyLen     uint32 = 32
	argonSaltLen           = 16
)

// Password holds only the PHC-encoded Argon2id hash of a credential,
// never the plaintext. Its textual representation is masked so the
// hash cannot leak through logs.
type Password struct {
	encoded string
}

// HashPassword derives an Argon2id hash of plain with a fresh random
// salt. Hashing the same plaintext twice yields different encodings.
func HashPassword(plain string) (Password, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return Password{}, fmt.Errorf("%w: %v", ErrPasswordHash, err)
	}

	key := argon2.IDKey([]byte(plain), salt, argonIterations, argonMemoryKiB, argonLanes, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemoryKiB, argonIterations, argonLanes,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return Password{encoded: encoded}, nil
}

// PasswordFromHash wraps an already-encoded hash loaded from storage
// without rehashing.
func PasswordFromHash(stored string) Password {
	return Password{encoded: stored}
}

// Verify decodes the stored hash and compares it against plain in
// constant time. A malformed stored hash verifies as false, never
// panics.
func (p Password) Verify(plain string) bool {
	parts := strings.Split(p.encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations uint32
	var lanes uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &lanes); err != nil {
		return false
	}
	if memory == 0 || iterations == 0 || lanes == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(plain), salt, iterations, memory, lanes, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1
}

// Encoded returns the PHC-encoded hash for persistence. Callers must
// not log it.
func (p Password) Encoded() string {
	return p.encoded
}

// String masks the hash in any %s/%v formatting.
func (p Password) String() string {
	return "********"
}

// GoString masks the hash in %#v formatting as well.
func (p Password) GoString() string {
	return `entity.Password("********")`
}
