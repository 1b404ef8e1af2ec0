package jwt

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Valid token should pass validation
	err = j.Validate(ctx, token)
	assert.NoError(t, err)

	subject, err := j.GetSubject(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute)) // already expired
	ctx := context.Background()

	token, err := j.Generate(ctx, "alice")
	assert.NoError(t, err)

	subject, err := j.GetSubject(ctx, token)
	assert.True(t, errors.Is(err, ErrTokenExpired))
	assert.Empty(t, subject)

	assert.Error(t, j.Validate(ctx, token))
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := New(WithSecretKey("secret-a"), WithExpiration(time.Minute))
	verifier := New(WithSecretKey("secret-b"), WithExpiration(time.Minute))
	ctx := context.Background()

	token, err := issuer.Generate(ctx, "alice")
	assert.NoError(t, err)

	subject, err := verifier.GetSubject(ctx, token)
	assert.True(t, errors.Is(err, ErrTokenInvalidSignature))
	assert.Empty(t, subject)
}

func TestJWT_MalformedToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	subject, err := j.GetSubject(ctx, "invalid.token.string")
	assert.True(t, errors.Is(err, ErrTokenMalformed))
	assert.Empty(t, subject)
}

func TestJWT_DefaultExpiration(t *testing.T) {
	j := New(WithSecretKey("secret"))
	assert.Equal(t, 30*time.Minute, j.exp)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New()
	ctx := context.Background()

	tests := []struct {
		name          string
		header        string
		expectedToken string
		expectedErr   error
	}{
		{"ValidBearer", "Bearer mytoken123", "mytoken123", nil},
		{"LowercaseBearer", "bearer mytoken123", "mytoken123", nil},
		{"NoHeader", "", "", ErrAuthHeaderMissing},
		{"WrongScheme", "Token mytoken123", "", ErrAuthHeaderFormat},
		{"MissingValue", "Bearer", "", ErrAuthHeaderFormat},
		{"TooManyParts", "Bearer a b", "", ErrAuthHeaderFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedToken, token)
		})
	}
}
