package helpers

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16"

func TestIssueAndParseToken(t *testing.T) {
	signer := NewTokenSigner(testSecret, 24*time.Hour)

	token, exp, err := signer.Issue(7, "admin", RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issued := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	signer := NewTokenSigner(testSecret, time.Hour).WithClock(func() time.Time { return issued })
	token, _, err := signer.Issue(1, "staff", RoleStaff)
	require.NoError(t, err)

	signer.WithClock(func() time.Time { return issued.Add(2 * time.Hour) })
	_, err = signer.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenSigner("another-secret-value", time.Hour).Issue(1, "admin", RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenSigner(testSecret, time.Hour).Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = NewTokenSigner(testSecret, time.Hour).Parse("not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestHasAnyRole(t *testing.T) {
	admin := &Claims{Role: RoleAdmin}
	staff := &Claims{Role: RoleStaff}

	assert.True(t, admin.HasAnyRole(RoleStaff))
	assert.True(t, staff.HasAnyRole(RoleStaff))
	assert.False(t, staff.HasAnyRole(RoleAdmin))
}

func TestGenerateOrderID(t *testing.T) {
	now := time.UnixMilli(1739620800000)

	id, err := GenerateOrderID(now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ORD-1739620800000-\d{1,6}$`), id)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc", "abc.def"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestIsPasswordAcceptable(t *testing.T) {
	assert.False(t, IsPasswordAcceptable("12345"))
	assert.True(t, IsPasswordAcceptable("123456"))
	assert.True(t, IsPasswordAcceptable("пароль"))
}
