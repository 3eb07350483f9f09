package auth_test

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/hospital-service/internal/auth"
	"github.com/spec-kit/hospital-service/internal/domain"
)

const testSecret = "unit-test-signing-key"

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	token, expiresAt, err := tm.GenerateToken("doctor-42", domain.RoleDoctor)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "doctor-42", claims.Subject)
	assert.Equal(t, domain.RoleDoctor, claims.Role)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestGenerateTokenRejectsMalformedClaims(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	_, _, err := tm.GenerateToken("", domain.RoleDoctor)
	assert.ErrorIs(t, err, auth.ErrMissingSubject)

	_, _, err = tm.GenerateToken("patient-1", domain.Role("admin"))
	assert.ErrorIs(t, err, auth.ErrInvalidRole)
}

func TestParseTokenExpired(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	// sign an already-expired token with the same key
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Role: domain.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "patient-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenStr, err := expired.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	_, err = tm.ParseToken(tokenStr)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestParseTokenTamperedSignature(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	token, _, err := tm.GenerateToken("patient-1", domain.RolePatient)
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.ParseToken(tampered)
	assert.ErrorIs(t, err, auth.ErrInvalidSignature)
}

func TestParseTokenWrongKey(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	other := auth.NewTokenManager("a-different-key", time.Hour)

	token, _, err := tm.GenerateToken("patient-1", domain.RolePatient)
	assert.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidSignature)
}

func TestParseTokenMalformed(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	_, err := tm.ParseToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrMalformedToken)

	_, err = tm.ParseToken("")
	assert.ErrorIs(t, err, auth.ErrMalformedToken)
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.Claims{
		Role: domain.RoleDoctor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "doctor-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = tm.ParseToken(tokenStr)
	assert.Error(t, err)
}
