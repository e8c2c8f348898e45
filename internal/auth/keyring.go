package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length in bytes of a token key.
const KeySize = chacha20poly1305.KeySize

// Keyring holds the key used to issue tokens and the previous keys that are
// still accepted when validating them. A key stays valid for as long as it is
// configured; dropping a previous key invalidates every token sealed with it.
type Keyring struct {
	currentID string
	keys      map[string][]byte
}

func NewKeyring(current []byte, previous ...[]byte) (*Keyring, error) {
	if len(current) != KeySize {
		return nil, oops.Code("TOKEN_KEY_INVALID").Errorf("token key must be %d bytes, got %d", KeySize, len(current))
	}

	kr := &Keyring{
		currentID: keyID(current),
		keys:      make(map[string][]byte, len(previous)+1),
	}
	kr.keys[kr.currentID] = current

	for i, k := range previous {
		if len(k) != KeySize {
			return nil, oops.Code("TOKEN_KEY_INVALID").
				With("index", i).
				Errorf("previous token key must be %d bytes, got %d", KeySize, len(k))
		}
		id := keyID(k)
		if _, ok := kr.keys[id]; !ok {
			kr.keys[id] = k
		}
	}

	return kr, nil
}

// ParseKeyring builds a keyring from hex encoded keys.
func ParseKeyring(current string, previous []string) (*Keyring, error) {
	cur, err := decodeKey(current)
	if err != nil {
		return nil, oops.Code("TOKEN_KEY_INVALID").With("key", "current").Wrap(err)
	}

	prev := make([][]byte, 0, len(previous))
	for i, p := range previous {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k, err := decodeKey(p)
		if err != nil {
			return nil, oops.Code("TOKEN_KEY_INVALID").With("key", "previous").With("index", i).Wrap(err)
		}
		prev = append(prev, k)
	}

	return NewKeyring(cur, prev...)
}

// GenerateKey returns a fresh random token key, hex encoded.
func GenerateKey() string {
	k := make([]byte, KeySize)
	_, _ = rand.Read(k)
	return hex.EncodeToString(k)
}

// Len reports how many keys are accepted for validation.
func (kr *Keyring) Len() int {
	return len(kr.keys)
}

func (kr *Keyring) current() (string, []byte) {
	return kr.currentID, kr.keys[kr.currentID]
}

func (kr *Keyring) lookup(id string) ([]byte, bool) {
	k, ok := kr.keys[id]
	return k, ok
}

func decodeKey(s string) ([]byte, error) {
	k, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decode hex key: %w", err)
	}
	if len(k) != KeySize {
		return nil, fmt.Errorf("token key must be %d bytes, got %d", KeySize, len(k))
	}
	return k, nil
}

// keyID names a key inside token footers without revealing it.
func keyID(key []byte) string {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte("qna-token-key-id"))
	h.Write(key)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
