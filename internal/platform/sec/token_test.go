// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

const testSecret = "unit-test-secret-0123456789"

func newCodec(t *testing.T, now func() time.Time) *sec.TokenService {
	t.Helper()
	codec, err := sec.NewTokenService(testSecret, 86400*time.Second, sec.WithClock(now))
	require.NoError(t, err)
	return codec
}

/*
TestTokenService_RoundTrip verifies that every identity claim survives
issue and decode and that exp is derived from iat plus the ttl.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newCodec(t, func() time.Time { return fixed })

	input := sec.AuthClaims{
		UserID:   42,
		FullName: "Juan Pérez",
		Email:    "juan@example.com",
		Role:     sec.RoleSeller.DisplayName(),
		IP:       "10.0.0.7",
	}

	token, err := codec.Issue(input, 0)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, input.UserID, claims.UserID)
	assert.Equal(t, input.FullName, claims.FullName)
	assert.Equal(t, input.Email, claims.Email)
	assert.Equal(t, input.Role, claims.Role)
	assert.Equal(t, input.IP, claims.IP)
	assert.Empty(t, claims.Purpose)

	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, claims.IssuedAt.Unix()+86400, claims.ExpiresAt.Unix())
}

/*
TestTokenService_DecodeFailures covers every failure class.
*/
func TestTokenService_DecodeFailures(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newCodec(t, func() time.Time { return issuedAt })

	valid, err := issuer.Issue(sec.AuthClaims{UserID: 1, Email: "a@b.com"}, time.Hour)
	require.NoError(t, err)

	otherSecret, err := sec.NewTokenService("another-secret-9876543210", time.Hour)
	require.NoError(t, err)
	foreign, err := otherSecret.Issue(sec.AuthClaims{UserID: 1}, time.Hour)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1, "exp": issuedAt.Add(time.Hour).Unix()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{"garbage", "not-a-token", issuedAt, sec.ErrMalformed},
		{"truncated", valid[:len(valid)/2], issuedAt, sec.ErrMalformed},
		{"wrong_secret", foreign, issuedAt, sec.ErrInvalidSignature},
		{"tampered_signature", valid[:len(valid)-2] + flip(valid[len(valid)-2:]), issuedAt, sec.ErrInvalidSignature},
		{"alg_none", noneToken, issuedAt, sec.ErrInvalidSignature},
		{"expired", valid, issuedAt.Add(2 * time.Hour), sec.ErrExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := newCodec(t, func() time.Time { return tt.now })
			_, err := codec.Decode(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

/*
TestTokenService_ExpiredKeepsClaims ensures expired tokens still expose their identity.
*/
func TestTokenService_ExpiredKeepsClaims(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token, err := newCodec(t, func() time.Time { return issuedAt }).Issue(sec.AuthClaims{UserID: 9}, time.Minute)
	require.NoError(t, err)

	later := newCodec(t, func() time.Time { return issuedAt.Add(time.Hour) })
	claims, err := later.Decode(token)

	assert.ErrorIs(t, err, sec.ErrExpired)
	require.NotNil(t, claims)
	assert.Equal(t, int64(9), claims.UserID)
	assert.Equal(t, issuedAt.Add(time.Minute).Unix(), claims.ExpiresAtTime().Unix())
}

/*
TestNewTokenService_Validation rejects unusable configuration.
*/
func TestNewTokenService_Validation(t *testing.T) {
	_, err := sec.NewTokenService("", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testSecret, 0)
	assert.Error(t, err)
}

/*
TestFingerprint checks the hash is stable and hides the token.
*/
func TestFingerprint(t *testing.T) {
	first := sec.Fingerprint("abc.def.ghi")
	assert.Len(t, first, 64)
	assert.Equal(t, first, sec.Fingerprint("abc.def.ghi"))
	assert.NotEqual(t, first, sec.Fingerprint("abc.def.ghj"))
	assert.False(t, strings.Contains(first, "abc"))
}

// flip swaps the characters of a short base64url suffix for different valid ones.
func flip(suffix string) string {
	var builder strings.Builder
	for _, r := range suffix {
		if r == 'A' {
			builder.WriteRune('B')
		} else {
			builder.WriteRune('A')
		}
	}
	return builder.String()
}
