package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joshua-takyi/eventtickets/internal/helpers"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginWrongPassword(t *testing.T) {
	ts := setupTestServices(t)
	ts.store.AddUser("admin", "admin123", models.RoleAdmin)

	res, err := ts.auth.Login(context.Background(), "admin", "wrong")
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, models.ErrUnauthorized))

	u, err := ts.store.GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Nil(t, u.LastLogin)
}

func TestAuthService_LoginUnknownUserLooksLikeWrongPassword(t *testing.T) {
	ts := setupTestServices(t)
	ts.store.AddUser("admin", "admin123", models.RoleAdmin)

	_, errUnknown := ts.auth.Login(context.Background(), "ghost", "admin123")
	_, errWrong := ts.auth.Login(context.Background(), "admin", "nope")

	require.Error(t, errUnknown)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestAuthService_LoginIssuesToken(t *testing.T) {
	ts := setupTestServices(t)
	staff := ts.store.AddUser("door", "letmein", models.RoleStaff)

	res, err := ts.auth.Login(context.Background(), "door", "letmein")
	require.NoError(t, err)
	require.NotNil(t, res.User.LastLogin)
	assert.Equal(t, testNow, *res.User.LastLogin)

	claims, err := ts.auth.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.ID)
	assert.Equal(t, "door", claims.Username)
	assert.Equal(t, helpers.RoleStaff, claims.Role)

	u, err := ts.store.GetUserByUsername(context.Background(), "door")
	require.NoError(t, err)
	require.NotNil(t, u.LastLogin)
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	ts := setupTestServices(t)

	_, err := ts.auth.Authenticate("abc.def.ghi")
	assert.True(t, errors.Is(err, models.ErrForbidden))
}

func TestAuthService_ChangePassword(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	u := ts.store.AddUser("admin", "admin123", models.RoleAdmin)
	claims := &helpers.Claims{ID: u.ID, Username: u.Username, Role: helpers.RoleAdmin}

	err := ts.auth.ChangePassword(ctx, claims, "wrong", "secret99")
	assert.True(t, errors.Is(err, models.ErrUnauthorized))

	err = ts.auth.ChangePassword(ctx, claims, "admin123", "12345")
	assert.True(t, errors.Is(err, models.ErrValidation))

	require.NoError(t, ts.auth.ChangePassword(ctx, claims, "admin123", "secret99"))

	_, err = ts.auth.Login(ctx, "admin", "admin123")
	assert.True(t, errors.Is(err, models.ErrUnauthorized))
	_, err = ts.auth.Login(ctx, "admin", "secret99")
	assert.NoError(t, err)
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	require.NoError(t, ts.auth.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, ts.auth.EnsureAdmin(ctx, "admin", "other-password"))

	_, err := ts.auth.Login(ctx, "admin", "admin123")
	assert.NoError(t, err)
}
