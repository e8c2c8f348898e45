// Package auth holds the password hasher and the session token codec.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dom/qna-service/internal/domain"
	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

const (
	hashAlgorithm = "argon2id"
	saltLen       = 32

)

// Cost bounds accepted by Verify. Hashing outside them produces digests that
// can never be verified.
const (
	MaxArgon2Memory  = 1 << 20 // KiB, 1 GiB
	MaxArgon2Time    = 64
	MaxArgon2Threads = 255
)

// CheckArgon2Costs rejects cost values Verify would refuse. It takes wide
// integers so callers can check before narrowing.
func CheckArgon2Costs(memory, timeCost, threads int64) error {
	if threads < 1 || threads > MaxArgon2Threads {
		return fmt.Errorf("threads value %d out of range [1, %d]", threads, MaxArgon2Threads)
	}
	if timeCost < 1 || timeCost > MaxArgon2Time {
		return fmt.Errorf("time cost %d out of range [1, %d]", timeCost, MaxArgon2Time)
	}
	if memory < 1 || memory > MaxArgon2Memory {
		return fmt.Errorf("memory cost %d out of range [1, %d]", memory, MaxArgon2Memory)
	}
	return nil
}

// Argon2Params are the cost parameters written into every digest.
type Argon2Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2Params follow the OWASP argon2id recommendation.
var DefaultArgon2Params = Argon2Params{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	KeyLen:  32,
}

// PasswordHasher turns plaintext passwords into digests and checks candidates
// against them.
type PasswordHasher interface {
	Hash(password string) domain.PasswordDigest
	// Verify returns (false, nil) on a wrong password and an error matching
	// domain.ErrHashFormat when the digest cannot be parsed.
	Verify(password string, digest domain.PasswordDigest) (bool, error)
}

type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: params}
}

// Hash derives a digest under a fresh random salt, so hashing the same
// password twice never yields the same string. The result is PHC encoded:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
func (h *Argon2Hasher) Hash(password string) domain.PasswordDigest {
	salt := make([]byte, saltLen)
	// crypto/rand aborts the process rather than return an error.
	_, _ = rand.Read(salt)

	p := h.params
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return domain.PasswordDigest(fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		hashAlgorithm,
		argon2.Version,
		p.Memory,
		p.Time,
		p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	))
}

func (h *Argon2Hasher) Verify(password string, digest domain.PasswordDigest) (bool, error) {
	p, salt, expected, err := decodeDigest(string(digest))
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

func decodeDigest(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, hashFormatError("invalid hash format")
	}
	if parts[1] != hashAlgorithm {
		return p, nil, nil, hashFormatError("unsupported hash algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, hashFormatError("invalid version segment %q", parts[2])
	}
	if version != argon2.Version {
		return p, nil, nil, hashFormatError("unsupported argon2 version %d", version)
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &threads); err != nil {
		return p, nil, nil, hashFormatError("invalid parameter segment %q", parts[3])
	}
	if err := CheckArgon2Costs(int64(p.Memory), int64(p.Time), int64(threads)); err != nil {
		return p, nil, nil, hashFormatError("%v", err)
	}
	p.Threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, hashFormatError("invalid salt encoding")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, hashFormatError("invalid key encoding")
	}
	if len(key) == 0 || len(key) > 1<<10 {
		return p, nil, nil, hashFormatError("invalid key length %d", len(key))
	}
	p.KeyLen = uint32(len(key))

	return p, salt, key, nil
}

func hashFormatError(format string, args ...any) error {
	return oops.Code("HASH_FORMAT").Wrap(fmt.Errorf("%w: "+format, append([]any{domain.ErrHashFormat}, args...)...))
}
