package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/hospital-service/internal/auth"
)

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("pw123", bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pw123", hash)

	assert.NoError(t, auth.ComparePassword(hash, "pw123"))
}

func TestComparePassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse", bcrypt.MinCost)
	assert.NoError(t, err)

	tests := []struct {
		name    string
		hashed  string
		plain   string
		wantErr bool
	}{
		{
			name:   "matching password",
			hashed: hash,
			plain:  "correct horse",
		},
		{
			name:    "wrong password",
			hashed:  hash,
			plain:   "battery staple",
			wantErr: true,
		},
		{
			name:    "malformed stored hash fails closed",
			hashed:  "not-a-bcrypt-hash",
			plain:   "correct horse",
			wantErr: true,
		},
		{
			name:    "empty stored hash fails closed",
			hashed:  "",
			plain:   "correct horse",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ComparePassword(tt.hashed, tt.plain)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
