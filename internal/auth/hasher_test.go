package auth_test

import (
	"strings"
	"testing"

	"github.com/dom/qna-service/internal/auth"
	"github.com/dom/qna-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = auth.Argon2Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32}

func TestArgon2Hasher_Hash(t *testing.T) {
	hasher := auth.NewArgon2Hasher(testParams)

	t.Run("produces PHC encoded digest", func(t *testing.T) {
		digest := hasher.Hash("secret")
		assert.True(t, strings.HasPrefix(string(digest), "$argon2id$v=19$m=1024,t=1,p=1$"))
		assert.Len(t, strings.Split(string(digest), "$"), 6)
	})

	t.Run("same password produces different digests", func(t *testing.T) {
		first := hasher.Hash("samepassword")
		second := hasher.Hash("samepassword")
		assert.NotEqual(t, first, second)
	})

	t.Run("digest does not contain plaintext", func(t *testing.T) {
		digest := hasher.Hash("plaintext-marker")
		assert.NotContains(t, string(digest), "plaintext-marker")
	})

	t.Run("default params are encoded", func(t *testing.T) {
		digest := auth.NewArgon2Hasher(auth.DefaultArgon2Params).Hash("pw")
		assert.Contains(t, string(digest), "$m=65536,t=1,p=4$")
	})
}

func TestArgon2Hasher_Verify(t *testing.T) {
	hasher := auth.NewArgon2Hasher(testParams)
	digest := hasher.Hash("correctpassword")

	tests := []struct {
		name     string
		password string
		digest   domain.PasswordDigest
		want     bool
		wantErr  bool
	}{
		{
			name:     "correct password",
			password: "correctpassword",
			digest:   digest,
			want:     true,
		},
		{
			name:     "wrong password",
			password: "wrongpassword",
			digest:   digest,
			want:     false,
		},
		{
			name:     "empty password against real digest",
			password: "",
			digest:   digest,
			want:     false,
		},
		{
			name:     "not a digest",
			password: "password",
			digest:   "not-a-valid-hash",
			wantErr:  true,
		},
		{
			name:     "empty digest",
			password: "password",
			digest:   "",
			wantErr:  true,
		},
		{
			name:     "wrong algorithm",
			password: "password",
			digest:   "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
			wantErr:  true,
		},
		{
			name:     "bcrypt digest",
			password: "password",
			digest:   "$2a$10$N9qo8uLOickgx2ZMRZoMyeIvNq.Uf3hE9tQALNP1Qn9sNp5x5x5x5",
			wantErr:  true,
		},
		{
			name:     "invalid version",
			password: "password",
			digest:   "$argon2id$vXX$m=65536,t=1,p=4$c2FsdA$aGFzaA",
			wantErr:  true,
		},
		{
			name:     "unsupported version",
			password: "password",
			digest:   "$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$aGFzaA",
			wantErr:  true,
		},
		{
			name:     "invalid parameters",
			password: "password",
			digest:   "$argon2id$v=19$invalid$c2FsdA$aGFzaA",
			wantErr:  true,
		},
		{
			name:     "threads overflow",
			password: "password",
			digest:   "$argon2id$v=19$m=65536,t=1,p=256$c2FsdA$aGFzaA",
			wantErr:  true,
		},
		{
			name:     "memory out of range",
			password: "password",
			digest:   "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$aGFzaA",
			wantErr:  true,
		},
		{
			name:     "invalid salt encoding",
			password: "password",
			digest:   "$argon2id$v=19$m=65536,t=1,p=4$!!!invalid!!!$aGFzaA",
			wantErr:  true,
		},
		{
			name:     "invalid key encoding",
			password: "password",
			digest:   "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!invalid!!!",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify(tt.password, tt.digest)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrHashFormat)
				assert.False(t, ok)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestArgon2Hasher_VerifyUsesEmbeddedParams(t *testing.T) {
	digest := auth.NewArgon2Hasher(auth.Argon2Params{Memory: 2048, Time: 2, Threads: 2, KeyLen: 16}).Hash("pw")

	// A hasher configured differently still verifies old digests.
	ok, err := auth.NewArgon2Hasher(testParams).Verify("pw", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2Hasher_DistinctPasswords(t *testing.T) {
	hasher := auth.NewArgon2Hasher(testParams)
	passwords := []string{"a", "b", "secret", "Secret", "secret ", "pässwörd"}

	for _, p1 := range passwords {
		digest := hasher.Hash(p1)
		for _, p2 := range passwords {
			ok, err := hasher.Verify(p2, digest)
			require.NoError(t, err)
			assert.Equal(t, p1 == p2, ok, "verify(%q, hash(%q))", p2, p1)
		}
	}
}

func TestCheckArgon2Costs(t *testing.T) {
	tests := []struct {
		name    string
		memory  int64
		time    int64
		threads int64
		wantErr bool
	}{
		{name: "defaults", memory: int64(auth.DefaultArgon2Params.Memory), time: 1, threads: 4},
		{name: "upper bounds", memory: auth.MaxArgon2Memory, time: auth.MaxArgon2Time, threads: auth.MaxArgon2Threads},
		{name: "time above bound", memory: 64, time: auth.MaxArgon2Time + 1, threads: 1, wantErr: true},
		{name: "memory above bound", memory: auth.MaxArgon2Memory + 1, time: 1, threads: 1, wantErr: true},
		{name: "negative memory", memory: -1, time: 1, threads: 1, wantErr: true},
		{name: "threads beyond uint8", memory: 64, time: 1, threads: 257, wantErr: true},
		{name: "zero threads", memory: 64, time: 1, threads: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.CheckArgon2Costs(tt.memory, tt.time, tt.threads)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// Costs the check accepts must produce digests Verify accepts, and the first
// rejected time cost must fail both.
func TestCheckArgon2Costs_MatchesVerify(t *testing.T) {
	atLimit := auth.Argon2Params{Memory: 64, Time: auth.MaxArgon2Time, Threads: 1, KeyLen: 32}
	require.NoError(t, auth.CheckArgon2Costs(int64(atLimit.Memory), int64(atLimit.Time), int64(atLimit.Threads)))

	hasher := auth.NewArgon2Hasher(atLimit)
	ok, err := hasher.Verify("secret", hasher.Hash("secret"))
	require.NoError(t, err)
	assert.True(t, ok)

	overLimit := atLimit
	overLimit.Time++
	assert.Error(t, auth.CheckArgon2Costs(int64(overLimit.Memory), int64(overLimit.Time), int64(overLimit.Threads)))

	hasher = auth.NewArgon2Hasher(overLimit)
	_, err = hasher.Verify("secret", hasher.Hash("secret"))
	assert.ErrorIs(t, err, domain.ErrHashFormat)
}
