package jwt_test

import (
	"context"
	"testing"
	"time"

	jwtGo "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"travelbook/config"
	"travelbook/infras/jwt"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.Claims, secret string) string {
	t.Helper()

	token := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)

	return signed
}

func TestValidateToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testSecret

	svc := jwt.New(cfg)

	tests := []struct {
		name    string
		token   string
		wantErr error
		wantID  string
	}{
		{
			name: "valid token",
			token: signToken(t, jwt.Claims{
				UserID: "user-1",
				Email:  "jane@example.com",
				RegisteredClaims: jwtGo.RegisteredClaims{
					ExpiresAt: jwtGo.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}, testSecret),
			wantID: "user-1",
		},
		{
			name: "expired token",
			token: signToken(t, jwt.Claims{
				UserID: "user-1",
				RegisteredClaims: jwtGo.RegisteredClaims{
					ExpiresAt: jwtGo.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}, testSecret),
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name: "wrong signature",
			token: signToken(t, jwt.Claims{
				UserID: "user-1",
				RegisteredClaims: jwtGo.RegisteredClaims{
					ExpiresAt: jwtGo.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}, "another-secret"),
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name:    "garbage token",
			token:   "not.a.token",
			wantErr: jwt.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(context.Background(), tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, claims.UserID)
			}
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{
			name:   "valid bearer header",
			header: "Bearer abc.def.ghi",
			want:   "abc.def.ghi",
		},
		{
			name:    "empty header",
			header:  "",
			wantErr: true,
		},
		{
			name:    "missing bearer prefix",
			header:  "Basic abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, token)
			}
		})
	}
}
