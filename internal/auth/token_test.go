package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaGreal2/kino-server/internal/model"
)

const testSecret = "test-secret"

func testUser() model.User {
	return model.User{ID: 7, Email: "a@x.com", Username: "alice"}
}

func TestIssueAndVerify(t *testing.T) {
	token, err := Issue(testSecret, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Verify(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)

	exp := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(TokenTTL), exp, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := Issue(testSecret, testUser())
	require.NoError(t, err)

	_, err = Verify("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := Verify(testSecret, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

// signWithExpiry builds a token whose lifetime we control, to exercise the
// expiry boundary without sleeping for a day.
func signWithExpiry(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		UserID:   7,
		Email:    "a@x.com",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestVerifyExpiry(t *testing.T) {
	t.Run("expired token fails", func(t *testing.T) {
		token := signWithExpiry(t, time.Now().Add(-time.Minute))
		_, err := Verify(testSecret, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token just before expiry succeeds", func(t *testing.T) {
		token := signWithExpiry(t, time.Now().Add(time.Second))
		claims, err := Verify(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
	})
}

func TestVerifyRejectsUnexpectedMethod(t *testing.T) {
	// alg=none tokens must not slip past the HMAC check
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 7}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Verify(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
