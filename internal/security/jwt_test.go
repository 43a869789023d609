package security

import (
	"strconv"
	"testing"
	"time"

	"jobboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	user := &models.User{ID: 42, Email: "ada@example.com", Role: models.RoleRecruiter}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, models.RoleRecruiter, claims.Role)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt, time.Minute)
}

func TestTokenIssuer_UniqueJTI(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	user := &models.User{ID: 1, Role: models.RoleJobSeeker}

	first, err := issuer.Issue(user)
	require.NoError(t, err)
	second, err := issuer.Issue(user)
	require.NoError(t, err)

	c1, err := issuer.Verify(first)
	require.NoError(t, err)
	c2, err := issuer.Verify(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.JTI, c2.JTI)
}

func TestTokenIssuer_Issue_Errors(t *testing.T) {
	_, err := NewTokenIssuer("").Issue(&models.User{ID: 1})
	assert.Error(t, err)

	_, err = NewTokenIssuer(testSecret).Issue(&models.User{})
	assert.Error(t, err)
}

func TestTokenIssuer_Verify_Rejects(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	sign := func(claims jwt.MapClaims, method jwt.SigningMethod, key any) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": strconv.Itoa(7),
			"iss": Issuer,
			"aud": Audience,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "Empty", token: ""},
		{name: "Garbage", token: "not-a-token"},
		{
			name: "Expired",
			token: func() string {
				c := valid()
				c["exp"] = time.Now().Add(-time.Hour).Unix()
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			}(),
		},
		{
			name: "Missing expiry",
			token: func() string {
				c := valid()
				delete(c, "exp")
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			}(),
		},
		{
			name: "Wrong issuer",
			token: func() string {
				c := valid()
				c["iss"] = "someone-else"
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			}(),
		},
		{
			name: "Wrong audience",
			token: func() string {
				c := valid()
				c["aud"] = "another-client"
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			}(),
		},
		{
			name: "Non numeric subject",
			token: func() string {
				c := valid()
				c["sub"] = "abc"
				return sign(c, jwt.SigningMethodHS256, []byte(testSecret))
			}(),
		},
		{
			name:  "Wrong secret",
			token: sign(valid(), jwt.SigningMethodHS256, []byte("another-secret-another-secret-another")),
		},
		{
			name:  "Unsigned",
			token: sign(valid(), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
