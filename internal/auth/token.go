package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dom/qna-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/samber/oops"
	"golang.org/x/crypto/chacha20poly1305"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 24 * time.Hour

const tokenHeader = "v2.local."

// TokenCodec issues and validates encrypted session tokens. The claim set is
// sealed with XChaCha20-Poly1305, so bearers cannot read it; the footer names
// the key that sealed it.
//
// Wire format: v2.local.<base64url(nonce || ciphertext)>.<base64url(key id)>
type TokenCodec struct {
	keys      *Keyring
	now       func() time.Time
	validator *jwt.Validator
}

type CodecOption func(*TokenCodec)

// WithClock replaces time.Now as the codec's time source.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

func NewTokenCodec(keys *Keyring, opts ...CodecOption) *TokenCodec {
	c := &TokenCodec{
		keys: keys,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.validator = jwt.NewValidator(
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	return c
}

type tokenClaims struct {
	jwt.RegisteredClaims
	AccountID *domain.AccountID `json:"account_id"`
}

// Issue returns a token for accountID valid from now for TokenLifetime.
func (c *TokenCodec) Issue(accountID domain.AccountID) (string, error) {
	now := c.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
		AccountID: &accountID,
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", oops.Code("TOKEN_ISSUE").Wrap(err)
	}

	id, key := c.keys.current()
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", oops.Code("TOKEN_ISSUE").Wrap(err)
	}

	footer := []byte(id)
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(payload)+aead.Overhead())
	_, _ = rand.Read(nonce)
	sealed := aead.Seal(nonce, nonce, payload, preAuthEncode([]byte(tokenHeader), footer))

	return tokenHeader +
		base64.RawURLEncoding.EncodeToString(sealed) + "." +
		base64.RawURLEncoding.EncodeToString(footer), nil
}

// Validate decrypts token and checks its validity window. Every failure,
// including an empty token, matches domain.ErrTokenDecode.
func (c *TokenCodec) Validate(token string) (*domain.Session, error) {
	body, ok := strings.CutPrefix(token, tokenHeader)
	if !ok {
		return nil, decodeError("missing token header", nil)
	}

	encSealed, encFooter, ok := strings.Cut(body, ".")
	if !ok {
		return nil, decodeError("missing token footer", nil)
	}

	sealed, err := base64.RawURLEncoding.DecodeString(encSealed)
	if err != nil {
		return nil, decodeError("invalid payload encoding", err)
	}
	footer, err := base64.RawURLEncoding.DecodeString(encFooter)
	if err != nil {
		return nil, decodeError("invalid footer encoding", err)
	}

	key, ok := c.keys.lookup(string(footer))
	if !ok {
		return nil, decodeError("unknown key", nil)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, decodeError("cipher setup", err)
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, decodeError("payload too short", nil)
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	payload, err := aead.Open(nil, nonce, ciphertext, preAuthEncode([]byte(tokenHeader), footer))
	if err != nil {
		return nil, decodeError("decryption failed", err)
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, decodeError("invalid claim set", err)
	}
	if claims.AccountID == nil || claims.NotBefore == nil || claims.ExpiresAt == nil {
		return nil, decodeError("incomplete claim set", nil)
	}

	if err := c.validator.Validate(claims); err != nil {
		return nil, decodeError("outside validity window", err)
	}

	return &domain.Session{
		AccountID: *claims.AccountID,
		NotBefore: claims.NotBefore.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// preAuthEncode length-prefixes each piece so header and footer cannot be
// shifted into one another.
func preAuthEncode(pieces ...[]byte) []byte {
	buf := binary.LittleEndian.AppendUint64(nil, uint64(len(pieces)))
	for _, p := range pieces {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(p)))
		buf = append(buf, p...)
	}
	return buf
}

func decodeError(reason string, cause error) error {
	b := oops.Code("TOKEN_DECODE").With("reason", reason)
	if cause != nil {
		return b.Wrap(fmt.Errorf("%w: %w", domain.ErrTokenDecode, cause))
	}
	return b.Wrap(domain.ErrTokenDecode)
}
